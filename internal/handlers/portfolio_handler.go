package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"portfolio-simulator/internal/models"
	"portfolio-simulator/internal/services"
)

type PortfolioHandler struct {
	service *services.PortfolioService
}

func NewPortfolioHandler(service *services.PortfolioService) *PortfolioHandler {
	return &PortfolioHandler{service: service}
}

type CreatePortfolioRequest struct {
	InitialBalance float64 `json:"initialBalance" binding:"required,gt=0"`
	RiskTolerance  string  `json:"riskTolerance" binding:"required,oneof=conservative moderate aggressive"`
	Focus          string  `json:"focus" binding:"required,oneof=tech healthcare diversified growth dividend"`
}

type TradeRequest struct {
	Symbol   string `json:"symbol" binding:"required"`
	Action   string `json:"action" binding:"required,oneof=buy sell"`
	Quantity int    `json:"quantity" binding:"required,min=1"`
}

func (h *PortfolioHandler) CreatePortfolio(c *gin.Context) {
	var req CreatePortfolioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	portfolio, available, err := h.service.CreatePortfolio(
		c.Request.Context(),
		req.InitialBalance,
		models.RiskTolerance(req.RiskTolerance),
		models.Focus(req.Focus),
	)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"portfolio":            portfolio,
		"availableInstruments": available,
	})
}

func (h *PortfolioHandler) GetPortfolio(c *gin.Context) {
	portfolio, err := h.service.GetPortfolio(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, portfolio)
}

// ExecuteTrade always answers with the TradeResult shape; callers branch
// on the success flag rather than parsing the message.
func (h *PortfolioHandler) ExecuteTrade(c *gin.Context) {
	var req TradeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.TradeResult{
			Success: false,
			Message: "Invalid request: " + err.Error(),
		})
		return
	}

	result, err := h.service.ExecuteTrade(
		c.Request.Context(),
		c.Param("id"),
		req.Symbol,
		models.TradeAction(req.Action),
		req.Quantity,
	)
	if err != nil {
		c.JSON(statusFor(err), models.TradeResult{
			Success: false,
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *PortfolioHandler) RefreshPrices(c *gin.Context) {
	portfolio, available, err := h.service.RefreshPrices(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"portfolio":            portfolio,
		"availableInstruments": available,
	})
}

// statusFor maps engine errors onto HTTP statuses.
func statusFor(err error) int {
	switch {
	case errors.Is(err, services.ErrPortfolioNotFound),
		errors.Is(err, services.ErrInstrumentNotFound):
		return http.StatusNotFound
	case errors.Is(err, services.ErrInvalidInput),
		errors.Is(err, services.ErrInsufficientFunds),
		errors.Is(err, services.ErrInsufficientShares),
		errors.Is(err, services.ErrNoPosition):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
