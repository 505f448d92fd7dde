package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/coffee-shop-service/internal/api/dto"
	"github.com/spec-kit/coffee-shop-service/internal/repository"
	"github.com/spec-kit/coffee-shop-service/internal/service"
)

// MenuHandler exposes catalog reads.
type MenuHandler struct {
	catalog *service.CatalogService
}

// NewMenuHandler constructs handler.
func NewMenuHandler(catalog *service.CatalogService) *MenuHandler {
	return &MenuHandler{catalog: catalog}
}

// Categories handles GET /categories.
func (h *MenuHandler) Categories(c *fiber.Ctx) error {
	categories, err := h.catalog.ListCategories(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(dto.NewCategoryResponses(categories))
}

// List handles GET /menu.
func (h *MenuHandler) List(c *fiber.Ctx) error {
	items, err := h.catalog.ListMenu(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(dto.NewMenuItemResponses(items))
}

// Search handles GET /menu/search?search=&category=.
func (h *MenuHandler) Search(c *fiber.Ctx) error {
	items, err := h.catalog.SearchMenu(c.UserContext(), repository.MenuFilter{
		Search:     c.Query(querySearch),
		CategoryID: c.Query(queryCategory),
	})
	if err != nil {
		return err
	}
	return c.JSON(dto.NewMenuItemResponses(items))
}

// Show handles GET /menu/:id.
func (h *MenuHandler) Show(c *fiber.Ctx) error {
	item, err := h.catalog.LookupMenuItem(c.UserContext(), pathParam(c, paramMenuID))
	if err != nil {
		return err
	}
	return c.JSON(dto.NewMenuItemResponse(*item))
}
