package main

import (
    "context"
    "log"
    "net/http"
    "os/signal"
    "syscall"
    "time"

    "github.com/joho/godotenv"
    "github.com/labstack/echo/v4"
    echomw "github.com/labstack/echo/v4/middleware"

    "github.com/emirsoy/lal-floor/internal/config"
    "github.com/emirsoy/lal-floor/internal/database"
    "github.com/emirsoy/lal-floor/internal/handler"
    "github.com/emirsoy/lal-floor/internal/lifecycle"
    "github.com/emirsoy/lal-floor/internal/poll"
    "github.com/emirsoy/lal-floor/internal/queue"
    "github.com/emirsoy/lal-floor/internal/repository"
    "github.com/emirsoy/lal-floor/internal/router"
)

func main() {
    // .env is optional; real deployments set the environment directly.
    _ = godotenv.Load()

    cfg := config.Load()

    db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
    if err != nil {
        log.Fatalf("database: %v", err)
    }
    defer db.Close()

    orders := repository.NewOrderRepo(db)
    reservations := repository.NewReservationRepo(db)
    overrides := repository.NewOverrideRepo(db)
    menu := repository.NewMenuRepo(db)

    manager := lifecycle.NewManager(orders)
    reader := repository.NewFloorReader(orders, reservations, overrides)

    ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
    defer stop()

    // The poller recomputes the floor every tick; stale completed orders
    // are swept right before each snapshot so the floor never shows a
    // table held by a forgotten order.
    poller := poll.New(time.Duration(cfg.PollIntervalSec)*time.Second, cfg.TableCount, reader.Snapshot).
        WithPrepare(func(ctx context.Context) error {
            _, err := manager.AutoSettle(ctx, time.Now())
            return err
        })
    go poller.Run(ctx)

    // Change events from other processes collapse into poller nudges;
    // when the broker is down the floor falls back to plain polling.
    go queue.StartChangeConsumer(ctx, poller.Nudge)

    // Redis is optional; nil disables the menu cache and the rate limiter.
    rdb := config.NewRedisClient()
    if rdb == nil {
        log.Println("redis unavailable, cache and rate limit disabled")
    }

    notify := &handler.Notifier{Poller: poller}
    h := router.Handlers{
        Checkout:         handler.NewCheckoutHandler(orders, notify, cfg.TableCount),
        Kitchen:          handler.NewKitchenHandler(orders, manager, notify),
        GuestReservation: handler.NewGuestReservationHandler(reservations, notify),
        StaffReservation: handler.NewStaffReservationHandler(reservations, notify, cfg.TableCount),
        Floor:            handler.NewFloorHandler(poller, manager, overrides, notify, cfg.TableCount),
        Menu:             handler.NewMenuHandler(menu),
    }

    e := echo.New()
    e.HideBanner = true
    e.Use(echomw.Logger())
    e.Use(echomw.Recover())
    e.Use(echomw.CORS())

    router.RegisterRoutes(e, h, db, rdb)

    go func() {
        if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
            log.Fatalf("server: %v", err)
        }
    }()

    <-ctx.Done()
    log.Println("shutting down")

    shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
    defer cancel()
    if err := e.Shutdown(shutdownCtx); err != nil {
        log.Printf("shutdown: %v", err)
    }
}
