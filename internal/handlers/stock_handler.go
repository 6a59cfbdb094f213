package handlers

import (
	"errors"
	"log"

	"stockpro/internal/services"
	"stockpro/pkg/marketdata"

	"github.com/gofiber/fiber/v2"
)

// StockHandler handles HTTP requests for market data.
type StockHandler struct {
	service *services.StockService
}

// NewStockHandler creates a new StockHandler.
func NewStockHandler(service *services.StockService) *StockHandler {
	return &StockHandler{
		service: service,
	}
}

// RegisterRoutes registers the stock routes with the Fiber app.
// The router is expected to already require authentication.
func (h *StockHandler) RegisterRoutes(router fiber.Router) {
	stockRoutes := router.Group("/stocks")
	// /search must be registered before /:symbol or it would match as a symbol
	stockRoutes.Get("/search", h.HandleSearch)
	stockRoutes.Get("/:symbol", h.HandleGetStock)
}

// HandleSearch returns symbol suggestions for a search query.
func (h *StockHandler) HandleSearch(c *fiber.Ctx) error {
	query := c.Query("query")
	if query == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Search query is required",
		})
	}

	return c.JSON(h.service.Search(query))
}

// HandleGetStock returns the current quote and recent history for a symbol.
func (h *StockHandler) HandleGetStock(c *fiber.Ctx) error {
	symbol := c.Params("symbol")

	detail, err := h.service.GetStock(c.UserContext(), symbol)
	if err != nil {
		log.Printf("Stock fetch error for %s: %v", symbol, err)
		switch {
		case errors.Is(err, services.ErrInvalidSymbol):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"success": false,
				"message": "Invalid stock symbol",
			})
		case errors.Is(err, marketdata.ErrSymbolNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"success": false,
				"message": "Stock not found",
			})
		case errors.Is(err, marketdata.ErrUnavailable):
			return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
				"success": false,
				"message": "Market data is currently unavailable",
			})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"success": false,
				"message": "Failed to fetch stock data",
			})
		}
	}

	return c.JSON(detail)
}
