package domain

import (
	"strconv"
	"strings"
	"time"
)

// MenuItem is a sellable catalog row. Only ID is guaranteed; the alternate
// identifiers depend on how the row was seeded.
type MenuItem struct {
	ID          int64
	MenuID      *string
	Slug        *string
	Name        string
	Description *string
	Price       float64
	CategoryID  *int64
	ImageURL    *string
	Rating      *float64
	Reviews     *int32
	CreatedAt   time.Time
}

// IDText returns the primary identifier in its textual form.
func (m MenuItem) IDText() string {
	return strconv.FormatInt(m.ID, 10)
}

// ExternalID returns the trimmed business identifier, or "" when absent.
func (m MenuItem) ExternalID() string {
	if m.MenuID == nil {
		return ""
	}
	return strings.TrimSpace(*m.MenuID)
}

// SlugText returns the trimmed, lower-cased stored slug, or "" when absent.
func (m MenuItem) SlugText() string {
	if m.Slug == nil {
		return ""
	}
	return strings.ToLower(strings.TrimSpace(*m.Slug))
}

// NameSlug derives a slug from the display name: lower-cased, trimmed and with
// every whitespace run collapsed to a single hyphen.
func (m MenuItem) NameSlug() string {
	return strings.Join(strings.Fields(strings.ToLower(m.Name)), "-")
}
