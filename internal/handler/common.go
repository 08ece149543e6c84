package handler

// This file holds helpers shared across handlers: the change notifier
// invoked after every committed write, table-number parsing against the
// fixed floor range, and the JSON shapes for orders and reservations.

import (
    "context"
    "fmt"
    "strconv"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/emirsoy/lal-floor/internal/model"
    "github.com/emirsoy/lal-floor/internal/poll"
    "github.com/emirsoy/lal-floor/internal/queue"
    change_publisher "github.com/emirsoy/lal-floor/internal/service"
)

// Notifier re-runs the local reconciliation pass and fans the change out
// to every other client after a committed write.  Every status mutation
// on the floor's signal sources goes through it.
type Notifier struct {
    Poller *poll.Poller
}

// Changed nudges the local poller immediately and publishes the event in
// the background; a failed publish only delays other clients until their
// next poll tick, so the request path never waits on the broker.
func (n *Notifier) Changed(source string, tableNo int, action string) {
    if n == nil {
        return
    }
    if n.Poller != nil {
        n.Poller.Nudge()
    }
    ev := queue.TableChangedEvent{
        Source:     source,
        TableNo:    tableNo,
        Action:     action,
        OccurredAt: time.Now().UTC().Format(time.RFC3339),
    }
    go func() {
        ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
        defer cancel()
        _ = change_publisher.PublishTableChanged(ctx, ev)
    }()
}

// parseTableNo reads a table number from the named path parameter and
// checks it against the fixed range 1..max.
func parseTableNo(c echo.Context, param string, max int) (int, error) {
    no, err := strconv.Atoi(c.Param(param))
    if err != nil || no < 1 || no > max {
        return 0, fmt.Errorf("table number must be between 1 and %d", max)
    }
    return no, nil
}

// orderJSON is the wire shape of an order shared by the checkout response
// and the kitchen board.
func orderJSON(o model.Order) echo.Map {
    items := make([]echo.Map, 0, len(o.Items))
    for _, it := range o.Items {
        items = append(items, echo.Map{
            "menu_item_id": it.MenuItemID,
            "name":         it.Name,
            "quantity":     it.Quantity,
            "unit_price":   it.UnitPrice,
        })
    }
    return echo.Map{
        "id":          o.ID,
        "table_no":    o.TableNo,
        "status":      o.Status,
        "total_price": o.TotalPrice,
        "created_at":  o.CreatedAt.Format(time.RFC3339),
        "items":       items,
    }
}

// reservationJSON is the wire shape of a reservation on the staff board.
func reservationJSON(r model.Reservation) echo.Map {
    out := echo.Map{
        "id":         r.ID,
        "full_name":  r.FullName,
        "email":      r.Email,
        "res_date":   r.ResDate,
        "res_time":   r.ResTime,
        "note":       r.Note,
        "status":     r.Status,
        "created_at": r.CreatedAt.Format(time.RFC3339),
    }
    if r.TableNo != nil {
        out["table_no"] = *r.TableNo
    }
    return out
}
