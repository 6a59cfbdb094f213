package handlers

import (
	"errors"
	"log"

	"stockpro/internal/middleware"
	"stockpro/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// WatchlistHandler handles HTTP requests for the user's watchlist.
type WatchlistHandler struct {
	service  *services.WatchlistService
	validate *validator.Validate
}

// NewWatchlistHandler creates a new WatchlistHandler.
func NewWatchlistHandler(service *services.WatchlistService) *WatchlistHandler {
	return &WatchlistHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the watchlist routes with the Fiber app.
// The router is expected to already require authentication.
func (h *WatchlistHandler) RegisterRoutes(router fiber.Router) {
	watchlistRoutes := router.Group("/watchlist")
	watchlistRoutes.Get("/", h.HandleGetWatchlist)
	watchlistRoutes.Post("/", h.HandleAddToWatchlist)
	watchlistRoutes.Delete("/:symbol", h.HandleRemoveFromWatchlist)
}

// HandleGetWatchlist retrieves the authenticated user's watchlist.
func (h *WatchlistHandler) HandleGetWatchlist(c *fiber.Ctx) error {
	entries, err := h.service.List(middleware.UserID(c))
	if err != nil {
		log.Printf("Watchlist fetch error: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Failed to fetch watchlist",
		})
	}

	return c.JSON(fiber.Map{
		"success":   true,
		"watchlist": entries,
	})
}

// AddToWatchlistRequest represents the request body for adding a symbol.
// The price fields are optional client-side snapshots.
type AddToWatchlistRequest struct {
	Symbol       string  `json:"symbol" validate:"required"`
	CompanyName  string  `json:"companyName"`
	CurrentPrice float64 `json:"currentPrice"`
	ProfitLoss   float64 `json:"profitLoss"`
}

// HandleAddToWatchlist adds a symbol to the authenticated user's watchlist.
func (h *WatchlistHandler) HandleAddToWatchlist(c *fiber.Ctx) error {
	var req AddToWatchlistRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing watchlist add request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(req); err != nil {
		return validationErrorResponse(c, err)
	}

	entries, err := h.service.Add(middleware.UserID(c), services.AddRequest{
		Symbol:       req.Symbol,
		CompanyName:  req.CompanyName,
		CurrentPrice: req.CurrentPrice,
		ProfitLoss:   req.ProfitLoss,
	})
	if err != nil {
		log.Printf("Watchlist add error: %v", err)
		if errors.Is(err, services.ErrInvalidSymbol) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"success": false,
				"message": "Invalid stock symbol",
			})
		}
		if errors.Is(err, services.ErrDuplicateSymbol) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"success": false,
				"message": "Stock already in watchlist",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Failed to add stock to watchlist",
		})
	}

	return c.JSON(fiber.Map{
		"success":   true,
		"message":   "Stock added to watchlist",
		"watchlist": entries,
	})
}

// HandleRemoveFromWatchlist removes a symbol from the authenticated
// user's watchlist. Removing an absent symbol still returns the list.
func (h *WatchlistHandler) HandleRemoveFromWatchlist(c *fiber.Ctx) error {
	entries, err := h.service.Remove(middleware.UserID(c), c.Params("symbol"))
	if err != nil {
		log.Printf("Watchlist remove error: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Failed to remove from watchlist",
		})
	}

	return c.JSON(fiber.Map{
		"success":   true,
		"message":   "Stock removed from watchlist",
		"watchlist": entries,
	})
}
