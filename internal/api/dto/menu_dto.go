package dto

import (
	"time"

	"github.com/spec-kit/coffee-shop-service/internal/domain"
)

// MenuItemResponse is the wire form of a catalog row.
type MenuItemResponse struct {
	ID          int64     `json:"id"`
	MenuID      *string   `json:"menu_id"`
	Slug        *string   `json:"slug"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	Price       float64   `json:"price"`
	CategoryID  *int64    `json:"category_id"`
	ImageURL    *string   `json:"image_url"`
	Rating      *float64  `json:"rating"`
	Reviews     *int32    `json:"reviews"`
	CreatedAt   time.Time `json:"created_at"`
}

// CategoryResponse is the wire form of a category.
type CategoryResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// NewMenuItemResponse converts a single item.
func NewMenuItemResponse(item domain.MenuItem) MenuItemResponse {
	return MenuItemResponse{
		ID:          item.ID,
		MenuID:      item.MenuID,
		Slug:        item.Slug,
		Name:        item.Name,
		Description: item.Description,
		Price:       item.Price,
		CategoryID:  item.CategoryID,
		ImageURL:    item.ImageURL,
		Rating:      item.Rating,
		Reviews:     item.Reviews,
		CreatedAt:   item.CreatedAt,
	}
}

// NewMenuItemResponses converts a list, never returning nil.
func NewMenuItemResponses(items []domain.MenuItem) []MenuItemResponse {
	out := make([]MenuItemResponse, 0, len(items))
	for _, item := range items {
		out = append(out, NewMenuItemResponse(item))
	}
	return out
}

// NewCategoryResponses converts a list, never returning nil.
func NewCategoryResponses(categories []domain.Category) []CategoryResponse {
	out := make([]CategoryResponse, 0, len(categories))
	for _, c := range categories {
		out = append(out, CategoryResponse{ID: c.ID, Name: c.Name})
	}
	return out
}
