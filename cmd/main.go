package main

import (
	"context"
	"math/rand"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"portfolio-simulator/config"
	"portfolio-simulator/internal/handlers"
	"portfolio-simulator/internal/logger"
	"portfolio-simulator/internal/services"
	"portfolio-simulator/internal/store"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins in development
	},
}

func main() {
	cfg := config.Load()

	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	seed := cfg.RandomSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	catalog := services.NewCatalog()
	if err := catalog.ValidateSectors(services.DiversifiedSectors); err != nil {
		log.Fatal("catalog misconfigured", zap.Error(err))
	}

	planner := services.NewPlanner(catalog, rand.New(rand.NewSource(seed)))
	simulator := services.NewSimulator(catalog, rand.New(rand.NewSource(seed+1)))

	portfolioStore, cleanup, err := buildStore(cfg)
	if err != nil {
		log.Fatal("failed to initialize store", zap.Error(err))
	}
	defer cleanup()

	hub := services.NewQuoteHub(log)
	go hub.Run()

	portfolioService := services.NewPortfolioService(catalog, planner, simulator, portfolioStore, hub, log)

	if cfg.TickerInterval > 0 {
		go runMarketTicker(hub, simulator, cfg.TickerInterval, log)
	}

	router := gin.Default()

	// CORS middleware
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	portfolioHandler := handlers.NewPortfolioHandler(portfolioService)
	marketHandler := handlers.NewMarketHandler(catalog)

	router.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "OK",
			"message": "Portfolio Simulator API",
			"version": "1.0.0",
			"endpoints": []string{
				"GET /health",
				"GET /api/instruments",
				"GET /api/instruments/:symbol",
				"POST /api/portfolios",
				"GET /api/portfolios/:id",
				"POST /api/portfolios/:id/trades",
				"POST /api/portfolios/:id/refresh",
				"GET /ws",
			},
		})
	})

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "OK",
			"message": "Portfolio Simulator API is running",
		})
	})

	router.GET("/api/instruments", marketHandler.ListInstruments)
	router.GET("/api/instruments/:symbol", marketHandler.GetInstrument)

	router.POST("/api/portfolios", portfolioHandler.CreatePortfolio)
	router.GET("/api/portfolios/:id", portfolioHandler.GetPortfolio)
	router.POST("/api/portfolios/:id/trades", portfolioHandler.ExecuteTrade)
	router.POST("/api/portfolios/:id/refresh", portfolioHandler.RefreshPrices)

	// WebSocket quote stream
	router.GET("/ws", func(c *gin.Context) {
		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			log.Warn("failed to upgrade connection", zap.Error(err))
			c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to upgrade to WebSocket"})
			return
		}

		client := hub.RegisterClient(conn)
		go client.WritePump()
		go client.ReadPump()
	})

	log.Info("portfolio simulator listening",
		zap.String("port", cfg.Port),
		zap.String("store", cfg.StoreBackend),
		zap.Duration("ticker", cfg.TickerInterval))

	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}

// buildStore picks the portfolio store backend from config. Memory is
// the default; mongo gives durability behind the same interface.
func buildStore(cfg *config.Config) (store.PortfolioStore, func(), error) {
	if cfg.StoreBackend != "mongo" {
		return store.NewMemoryStore(), func() {}, nil
	}

	mongoStore, err := store.NewMongoStore(context.Background(), cfg.MongoURI, cfg.MongoDatabase)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = mongoStore.Close(ctx)
	}
	return mongoStore, cleanup, nil
}

// runMarketTicker walks catalog prices on a fixed interval and streams
// the fresh quotes to WebSocket clients. Portfolios are not revalued
// here; valuation stays on-demand per portfolio.
func runMarketTicker(hub *services.QuoteHub, simulator *services.Simulator, interval time.Duration, log *zap.Logger) {
	// Let the server come up before the first tick.
	time.Sleep(2 * time.Second)
	log.Info("starting market ticker", zap.Duration("interval", interval))

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for range ticker.C {
		quotes := simulator.Step()
		hub.BroadcastQuotes(quotes)
	}
}
