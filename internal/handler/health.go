package handler

import (
    "context"
    "database/sql"
    "net/http"
    "time"

    "github.com/labstack/echo/v4"
)

// Health returns a handler for GET /healthz.  The database is pinged on
// every call so external keep-alive probes exercise the whole path, not
// just the HTTP listener.
func Health(db *sql.DB) echo.HandlerFunc {
    return func(c echo.Context) error {
        ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
        defer cancel()
        if err := db.PingContext(ctx); err != nil {
            return c.JSON(http.StatusServiceUnavailable, echo.Map{"status": "degraded", "error": err.Error()})
        }
        return c.JSON(http.StatusOK, echo.Map{"status": "ok"})
    }
}
