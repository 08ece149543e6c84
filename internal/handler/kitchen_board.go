package handler

import (
    "errors"
    "log"
    "net/http"
    "strconv"

    "github.com/labstack/echo/v4"

    "github.com/emirsoy/lal-floor/internal/lifecycle"
    "github.com/emirsoy/lal-floor/internal/model"
    "github.com/emirsoy/lal-floor/internal/repository"
)

// KitchenHandler serves the kitchen board: the list of unsettled orders
// and the single-step status advance used by the kitchen staff.
type KitchenHandler struct {
    Orders    *repository.OrderRepo // board reads
    Lifecycle *lifecycle.Manager    // status transitions
    Notify    *Notifier             // change fan-out after the commit
}

// NewKitchenHandler wires the kitchen handler with its dependencies.
func NewKitchenHandler(orders *repository.OrderRepo, lc *lifecycle.Manager, notify *Notifier) *KitchenHandler {
    return &KitchenHandler{Orders: orders, Lifecycle: lc, Notify: notify}
}

// ListOrders handles GET /v1/orders.  Settled orders never appear here;
// the board shows the live queue oldest first.
func (h *KitchenHandler) ListOrders(c echo.Context) error {
    orders, err := h.Orders.ListBoard(c.Request().Context())
    if err != nil {
        log.Printf("kitchen board read failed: %v", err)
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load orders"})
    }
    items := make([]echo.Map, 0, len(orders))
    for _, o := range orders {
        items = append(items, orderJSON(o))
    }
    return c.JSON(http.StatusOK, echo.Map{"items": items, "count": len(items)})
}

type statusRequest struct {
    Status model.OrderStatus `json:"status"`
}

// UpdateStatus handles PATCH /v1/orders/:id/status.  Only the single
// next step of the lifecycle is allowed; anything else is rejected with
// a conflict and the stored status stays untouched.
func (h *KitchenHandler) UpdateStatus(c echo.Context) error {
    id, err := strconv.ParseUint(c.Param("id"), 10, 64)
    if err != nil || id == 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid order id"})
    }
    var req statusRequest
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
    }
    switch req.Status {
    case model.OrderPending, model.OrderPreparing, model.OrderServed, model.OrderCompleted, model.OrderSettled:
    default:
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown order status"})
    }

    order, err := h.Lifecycle.Advance(c.Request().Context(), id, req.Status)
    if err != nil {
        switch {
        case errors.Is(err, repository.ErrNotFound):
            return c.JSON(http.StatusNotFound, echo.Map{"error": "order not found"})
        case errors.Is(err, lifecycle.ErrIllegalTransition):
            return c.JSON(http.StatusConflict, echo.Map{"error": err.Error()})
        default:
            log.Printf("order %d status update failed: %v", id, err)
            return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update order"})
        }
    }

    h.Notify.Changed("orders", order.TableNo, "status")
    return c.JSON(http.StatusOK, echo.Map{"order": orderJSON(order)})
}
