package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"portfolio-simulator/internal/services"
)

type MarketHandler struct {
	catalog *services.Catalog
}

func NewMarketHandler(catalog *services.Catalog) *MarketHandler {
	return &MarketHandler{catalog: catalog}
}

func (h *MarketHandler) ListInstruments(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"instruments": h.catalog.All()})
}

func (h *MarketHandler) GetInstrument(c *gin.Context) {
	symbol := c.Param("symbol")

	instrument, ok := h.catalog.Lookup(symbol)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "instrument " + symbol + " not found"})
		return
	}

	c.JSON(http.StatusOK, instrument)
}
