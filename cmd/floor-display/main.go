package main

// floor-display is a terminal client for the floor map.  It runs its own
// reconciliation loop against the database, so it shows exactly what the
// server shows without ever calling the server: every client reconciles
// the same signals independently.

import (
    "context"
    "fmt"
    "log"
    "os/signal"
    "sort"
    "strings"
    "syscall"
    "time"

    "github.com/joho/godotenv"

    "github.com/emirsoy/lal-floor/internal/config"
    "github.com/emirsoy/lal-floor/internal/database"
    "github.com/emirsoy/lal-floor/internal/model"
    "github.com/emirsoy/lal-floor/internal/poll"
    "github.com/emirsoy/lal-floor/internal/queue"
    "github.com/emirsoy/lal-floor/internal/repository"
)

const tablesPerRow = 8

func main() {
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
    reader := repository.NewFloorReader(orders, reservations, overrides)

    ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
    defer stop()

    poller := poll.New(time.Duration(cfg.PollIntervalSec)*time.Second, cfg.TableCount, reader.Snapshot).
        WithObserver(render)

    go queue.StartChangeConsumer(ctx, poller.Nudge)

    poller.Run(ctx)
}

// render prints the whole floor after every reconciliation pass.
func render(st poll.State) {
    nos := make([]int, 0, len(st.Tables))
    for no := range st.Tables {
        nos = append(nos, no)
    }
    sort.Ints(nos)

    var b strings.Builder
    fmt.Fprintf(&b, "floor @ %s", st.ComputedAt.Format("15:04:05"))
    if st.Stale {
        fmt.Fprintf(&b, "  [STALE: %v]", st.Err)
    }
    b.WriteByte('\n')

    for i, no := range nos {
        fmt.Fprintf(&b, "%3d:%-2s", no, mark(st.Tables[no]))
        if (i+1)%tablesPerRow == 0 {
            b.WriteByte('\n')
        } else {
            b.WriteString("  ")
        }
    }
    if len(nos)%tablesPerRow != 0 {
        b.WriteByte('\n')
    }
    fmt.Println(b.String())
}

func mark(s model.TableStatus) string {
    switch s {
    case model.TableOccupied:
        return "X"
    case model.TableReserved:
        return "R"
    default:
        return "."
    }
}
