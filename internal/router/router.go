package router

import (
    "database/sql"

    "github.com/labstack/echo/v4"
    "github.com/redis/go-redis/v9"

    "github.com/emirsoy/lal-floor/internal/config"
    "github.com/emirsoy/lal-floor/internal/handler"
    appmw "github.com/emirsoy/lal-floor/internal/middleware"
)

// Handlers bundles every handler the HTTP surface needs.
type Handlers struct {
    Checkout         *handler.CheckoutHandler
    Kitchen          *handler.KitchenHandler
    GuestReservation *handler.GuestReservationHandler
    StaffReservation *handler.StaffReservationHandler
    Floor            *handler.FloorHandler
    Menu             *handler.MenuHandler
}

// RegisterRoutes mounts the full API surface under /v1.  The menu read
// goes through the Redis response cache and the public reservation form
// through the rate limiter; both middlewares turn into no-ops when
// Redis is unavailable.
func RegisterRoutes(e *echo.Echo, h Handlers, db *sql.DB, rdb *redis.Client) {
    e.GET("/healthz", handler.Health(db))

    cacheMW := appmw.NewRedisCache(config.LoadCacheConfig(), rdb)
    limitMW := appmw.NewTokenBucket(config.LoadRateLimitConfig(), rdb)

    v1 := e.Group("/v1")

    // Guest-facing surface.
    v1.GET("/menu", h.Menu.GetMenu, cacheMW)
    v1.POST("/orders", h.Checkout.Checkout)
    v1.POST("/reservations", h.GuestReservation.CreateReservation, limitMW)

    // Kitchen board.
    v1.GET("/orders", h.Kitchen.ListOrders)
    v1.PATCH("/orders/:id/status", h.Kitchen.UpdateStatus)

    // Staff reservation board.
    v1.GET("/reservations", h.StaffReservation.List)
    v1.POST("/reservations/:id/assign", h.StaffReservation.Assign)
    v1.POST("/reservations/:id/seat", h.StaffReservation.Seat)

    // Floor map.
    v1.GET("/tables", h.Floor.GetFloor)
    v1.PUT("/tables/:no/override", h.Floor.SetOverride)
    v1.POST("/tables/:no/settle", h.Floor.SettleTable)
}
