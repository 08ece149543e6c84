package handler

import (
    "log"
    "net/http"
    "strings"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/emirsoy/lal-floor/internal/model"
    "github.com/emirsoy/lal-floor/internal/repository"
)

// GuestReservationHandler serves the public reservation form.  New
// reservations start out pending with no table; a table only enters the
// picture once the staff assigns one.
type GuestReservationHandler struct {
    Reservations *repository.ReservationRepo
    Notify       *Notifier
}

// NewGuestReservationHandler wires the guest reservation handler.
func NewGuestReservationHandler(res *repository.ReservationRepo, notify *Notifier) *GuestReservationHandler {
    return &GuestReservationHandler{Reservations: res, Notify: notify}
}

type reservationRequest struct {
    FullName string `json:"full_name"`
    Email    string `json:"email"`
    ResDate  string `json:"res_date"` // YYYY-MM-DD
    ResTime  string `json:"res_time"` // HH:MM
    Note     string `json:"note"`
}

// CreateReservation handles POST /v1/reservations.
func (h *GuestReservationHandler) CreateReservation(c echo.Context) error {
    var req reservationRequest
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
    }
    req.FullName = strings.TrimSpace(req.FullName)
    req.Email = strings.TrimSpace(req.Email)
    if req.FullName == "" || req.Email == "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "full_name and email are required"})
    }
    if _, err := time.Parse("2006-01-02", req.ResDate); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "res_date must be YYYY-MM-DD"})
    }
    if _, err := time.Parse("15:04", req.ResTime); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "res_time must be HH:MM"})
    }

    id, err := h.Reservations.Create(c.Request().Context(), model.Reservation{
        FullName: req.FullName,
        Email:    req.Email,
        ResDate:  req.ResDate,
        ResTime:  req.ResTime,
        Note:     req.Note,
    })
    if err != nil {
        log.Printf("reservation create failed: %v", err)
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create reservation"})
    }

    h.Notify.Changed("reservations", 0, "insert")
    return c.JSON(http.StatusCreated, echo.Map{"id": id, "message": "reservation received"})
}
