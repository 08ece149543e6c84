package model

// Category groups menu items for display.  Categories are read-only for
// this service; the catalog is managed elsewhere.
type Category struct {
    ID           uint64 // categories.id
    Name         string // categories.name
    IconName     string // categories.icon_name
    DisplayOrder int    // categories.display_order
}

// MenuItem is a dish on the menu.  Price here is the current list price;
// orders snapshot it into order_items at checkout so that menu edits do
// not rewrite history.
type MenuItem struct {
    ID          uint64  // menu_items.id
    CategoryID  uint64  // menu_items.category_id
    Name        string  // menu_items.name
    Description string  // menu_items.description
    Price       float64 // menu_items.price
    IsPopular   bool    // menu_items.is_popular
    IsAvailable bool    // menu_items.is_available
}
