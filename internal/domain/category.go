package domain

// Category groups menu items for display.
type Category struct {
	ID   int64
	Name string
}
