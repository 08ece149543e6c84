package handler

import (
    "log"
    "net/http"

    "github.com/labstack/echo/v4"

    "github.com/emirsoy/lal-floor/internal/repository"
)

// MenuHandler serves the read-only menu used by the checkout page.
type MenuHandler struct {
    Menu *repository.MenuRepo
}

// NewMenuHandler wires the menu handler.
func NewMenuHandler(menu *repository.MenuRepo) *MenuHandler {
    return &MenuHandler{Menu: menu}
}

// GetMenu handles GET /v1/menu.  Only available items are listed.
func (h *MenuHandler) GetMenu(c echo.Context) error {
    ctx := c.Request().Context()

    categories, err := h.Menu.Categories(ctx)
    if err != nil {
        log.Printf("menu categories read failed: %v", err)
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load menu"})
    }
    items, err := h.Menu.Items(ctx, true)
    if err != nil {
        log.Printf("menu items read failed: %v", err)
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load menu"})
    }

    cats := make([]echo.Map, 0, len(categories))
    for _, cat := range categories {
        cats = append(cats, echo.Map{
            "id":        cat.ID,
            "name":      cat.Name,
            "icon_name": cat.IconName,
        })
    }
    list := make([]echo.Map, 0, len(items))
    for _, it := range items {
        list = append(list, echo.Map{
            "id":          it.ID,
            "category_id": it.CategoryID,
            "name":        it.Name,
            "description": it.Description,
            "price":       it.Price,
            "is_popular":  it.IsPopular,
        })
    }
    return c.JSON(http.StatusOK, echo.Map{"categories": cats, "items": list})
}
