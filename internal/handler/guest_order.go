package handler

import (
    "errors"
    "log"
    "net/http"
    "strconv"

    "github.com/labstack/echo/v4"

    "github.com/emirsoy/lal-floor/internal/repository"
)

// CheckoutHandler serves the guest-facing checkout endpoint.  A checkout
// creates the order together with its lines in one transaction; from that
// moment the table counts as occupied on every floor view.
type CheckoutHandler struct {
    Orders     *repository.OrderRepo // order persistence
    Notify     *Notifier             // change fan-out after the commit
    TableCount int                   // highest valid table number
}

// NewCheckoutHandler wires the checkout handler with its dependencies.
func NewCheckoutHandler(orders *repository.OrderRepo, notify *Notifier, tableCount int) *CheckoutHandler {
    return &CheckoutHandler{Orders: orders, Notify: notify, TableCount: tableCount}
}

type checkoutRequest struct {
    TableNo int `json:"table_no"`
    Items   []struct {
        MenuItemID uint64 `json:"menu_item_id"`
        Quantity   uint32 `json:"quantity"`
    } `json:"items"`
}

// Checkout handles POST /v1/orders.
func (h *CheckoutHandler) Checkout(c echo.Context) error {
    var req checkoutRequest
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
    }
    if req.TableNo < 1 || req.TableNo > h.TableCount {
        return c.JSON(http.StatusBadRequest, echo.Map{
            "error": "table_no must be between 1 and " + strconv.Itoa(h.TableCount),
        })
    }

    // Merge duplicate lines and drop empty ones so the repository sees a
    // clean list; order of first appearance is preserved.
    merged := make([]repository.CheckoutItem, 0, len(req.Items))
    index := make(map[uint64]int, len(req.Items))
    for _, it := range req.Items {
        if it.MenuItemID == 0 || it.Quantity == 0 {
            continue
        }
        if i, ok := index[it.MenuItemID]; ok {
            merged[i].Quantity += it.Quantity
            continue
        }
        index[it.MenuItemID] = len(merged)
        merged = append(merged, repository.CheckoutItem{MenuItemID: it.MenuItemID, Quantity: it.Quantity})
    }
    if len(merged) == 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "order must contain at least one item"})
    }

    order, err := h.Orders.Create(c.Request().Context(), req.TableNo, merged)
    if err != nil {
        if errors.Is(err, repository.ErrNotFound) {
            return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown or unavailable menu item"})
        }
        log.Printf("checkout failed: %v", err)
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create order"})
    }

    h.Notify.Changed("orders", order.TableNo, "insert")
    return c.JSON(http.StatusCreated, echo.Map{"order": orderJSON(order)})
}
