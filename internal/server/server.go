package server

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"CryptoRadar/internal/auth"
	"CryptoRadar/internal/config"
	"CryptoRadar/internal/fetcher"
	"CryptoRadar/internal/history"
	"CryptoRadar/internal/store"
)

// Server wires the HTTP API over the fetcher chain, stores, and recorder.
type Server struct {
	cfg      *config.Config
	chain    *fetcher.Chain
	entries  *store.EntryStore
	accounts *auth.Store
	tokens   *auth.TokenIssuer
	recorder history.Recorder
	now      func() time.Time
}

// New creates a Server with all dependencies injected.
func New(cfg *config.Config, chain *fetcher.Chain, entries *store.EntryStore,
	accounts *auth.Store, tokens *auth.TokenIssuer, rec history.Recorder) *Server {
	return &Server{
		cfg:      cfg,
		chain:    chain,
		entries:  entries,
		accounts: accounts,
		tokens:   tokens,
		recorder: rec,
		now:      time.Now,
	}
}

// Router builds the gin engine with all routes registered.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	corsCfg := cors.DefaultConfig()
	if len(s.cfg.Server.AllowOrigins) > 0 {
		corsCfg.AllowOrigins = s.cfg.Server.AllowOrigins
	} else {
		corsCfg.AllowAllOrigins = true
	}
	corsCfg.AllowHeaders = append(corsCfg.AllowHeaders, "Authorization")
	r.Use(cors.New(corsCfg))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	api.POST("/auth/login", s.handleLogin)
	api.POST("/auth/register", s.handleRegister)

	protected := api.Group("", AuthRequired(s.tokens))
	protected.GET("/market/snapshot", s.handleSnapshot)
	protected.GET("/market/series", s.handleSeries)
	protected.GET("/market/ohlc", s.handleOHLC)
	protected.GET("/market/correlation", s.handleCorrelation)
	protected.GET("/market/provider-history", s.handleProviderHistory)
	protected.GET("/entries", s.handleListEntries)
	protected.POST("/entries", s.handleAddEntry)

	return r
}
