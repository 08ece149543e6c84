package handler

import (
    "log"
    "net/http"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/emirsoy/lal-floor/internal/lifecycle"
    "github.com/emirsoy/lal-floor/internal/model"
    "github.com/emirsoy/lal-floor/internal/poll"
    "github.com/emirsoy/lal-floor/internal/repository"
)

// FloorHandler serves the floor map: the reconciled status of every
// table, the staff override switch and the table-wide settle.
type FloorHandler struct {
    Poller     *poll.Poller             // reconciled floor state
    Lifecycle  *lifecycle.Manager       // batch settle
    Overrides  *repository.OverrideRepo // manual override writes
    Notify     *Notifier                // change fan-out after the commit
    TableCount int                      // highest valid table number
}

// NewFloorHandler wires the floor handler with its dependencies.
func NewFloorHandler(p *poll.Poller, lc *lifecycle.Manager, ov *repository.OverrideRepo, notify *Notifier, tableCount int) *FloorHandler {
    return &FloorHandler{Poller: p, Lifecycle: lc, Overrides: ov, Notify: notify, TableCount: tableCount}
}

// GetFloor handles GET /v1/tables.  The response always covers every
// table; when the last refresh failed the previous mapping is served
// with the stale flag raised instead of an error.
func (h *FloorHandler) GetFloor(c echo.Context) error {
    st := h.Poller.State()
    if st.Tables == nil {
        return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": "floor state not computed yet"})
    }
    resp := echo.Map{
        "tables":      st.Tables,
        "computed_at": st.ComputedAt.Format(time.RFC3339),
        "stale":       st.Stale,
    }
    if st.Stale && st.Err != nil {
        resp["stale_reason"] = st.Err.Error()
    }
    return c.JSON(http.StatusOK, resp)
}

type overrideRequest struct {
    Status model.TableStatus `json:"status"`
}

// SetOverride handles PUT /v1/tables/:no/override.  An available
// override clears any previous manual pin; live orders still win over
// whatever is written here.
func (h *FloorHandler) SetOverride(c echo.Context) error {
    no, err := parseTableNo(c, "no", h.TableCount)
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
    }
    var req overrideRequest
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
    }
    switch req.Status {
    case model.TableAvailable, model.TableOccupied, model.TableReserved:
    default:
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "status must be available, occupied or reserved"})
    }

    if err := h.Overrides.Upsert(c.Request().Context(), no, req.Status); err != nil {
        log.Printf("table %d override failed: %v", no, err)
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to set override"})
    }

    h.Notify.Changed("table_overrides", no, "override")
    return c.JSON(http.StatusOK, echo.Map{"table_no": no, "status": req.Status})
}

// SettleTable handles POST /v1/tables/:no/settle.  Every unsettled
// order on the table is closed in one statement; repeating the call is
// harmless and reports zero rows.
func (h *FloorHandler) SettleTable(c echo.Context) error {
    no, err := parseTableNo(c, "no", h.TableCount)
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
    }

    settled, err := h.Lifecycle.SettleTable(c.Request().Context(), no)
    if err != nil {
        log.Printf("table %d settle failed: %v", no, err)
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to settle table"})
    }

    if settled > 0 {
        h.Notify.Changed("orders", no, "settle")
    }
    return c.JSON(http.StatusOK, echo.Map{"table_no": no, "settled": settled})
}
