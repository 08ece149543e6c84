package handler

import (
    "errors"
    "log"
    "net/http"
    "strconv"

    "github.com/labstack/echo/v4"

    "github.com/emirsoy/lal-floor/internal/repository"
)

// StaffReservationHandler serves the staff reservation board: listing,
// table assignment and marking a party as seated.
type StaffReservationHandler struct {
    Reservations *repository.ReservationRepo
    Notify       *Notifier
    TableCount   int
}

// NewStaffReservationHandler wires the staff reservation handler.
func NewStaffReservationHandler(res *repository.ReservationRepo, notify *Notifier, tableCount int) *StaffReservationHandler {
    return &StaffReservationHandler{Reservations: res, Notify: notify, TableCount: tableCount}
}

// List handles GET /v1/reservations.
func (h *StaffReservationHandler) List(c echo.Context) error {
    all, err := h.Reservations.List(c.Request().Context())
    if err != nil {
        log.Printf("reservation list failed: %v", err)
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load reservations"})
    }
    items := make([]echo.Map, 0, len(all))
    for _, r := range all {
        items = append(items, reservationJSON(r))
    }
    return c.JSON(http.StatusOK, echo.Map{"items": items, "count": len(items)})
}

type assignRequest struct {
    TableNo int `json:"table_no"`
}

// Assign handles POST /v1/reservations/:id/assign.  Confirming the
// reservation and writing the reserved override happen in a single
// transaction so the two tables never disagree.
func (h *StaffReservationHandler) Assign(c echo.Context) error {
    id, err := strconv.ParseUint(c.Param("id"), 10, 64)
    if err != nil || id == 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid reservation id"})
    }
    var req assignRequest
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
    }
    if req.TableNo < 1 || req.TableNo > h.TableCount {
        return c.JSON(http.StatusBadRequest, echo.Map{
            "error": "table_no must be between 1 and " + strconv.Itoa(h.TableCount),
        })
    }

    if err := h.Reservations.AssignTable(c.Request().Context(), id, req.TableNo); err != nil {
        switch {
        case errors.Is(err, repository.ErrNotFound):
            return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
        case errors.Is(err, repository.ErrConflict):
            return c.JSON(http.StatusConflict, echo.Map{"error": err.Error()})
        default:
            log.Printf("reservation %d assign failed: %v", id, err)
            return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to assign table"})
        }
    }

    h.Notify.Changed("reservations", req.TableNo, "assign")
    return c.JSON(http.StatusOK, echo.Map{"message": "reservation confirmed", "table_no": req.TableNo})
}

// Seat handles POST /v1/reservations/:id/seat.  A seated reservation
// holds its table occupied regardless of the booked time window.
func (h *StaffReservationHandler) Seat(c echo.Context) error {
    id, err := strconv.ParseUint(c.Param("id"), 10, 64)
    if err != nil || id == 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid reservation id"})
    }

    tableNo, err := h.Reservations.MarkSeated(c.Request().Context(), id)
    if err != nil {
        switch {
        case errors.Is(err, repository.ErrNotFound):
            return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
        case errors.Is(err, repository.ErrConflict):
            return c.JSON(http.StatusConflict, echo.Map{"error": err.Error()})
        default:
            log.Printf("reservation %d seat failed: %v", id, err)
            return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to seat reservation"})
        }
    }

    h.Notify.Changed("reservations", tableNo, "seat")
    return c.JSON(http.StatusOK, echo.Map{"message": "guest seated", "table_no": tableNo})
}
