package recorder

import (
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func (s *Server) registerRoutes() {
	// Observability endpoints (no auth required)
	s.echo.GET("/health/live", s.handleLiveness)
	s.echo.GET("/health/ready", s.handleReadiness)
	s.echo.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// Auth routes
	s.echo.POST("/login", s.handleLogin, newRateLimiter(s.config.LoginRatePerSecond, s.config.LoginBurst))
	s.echo.GET("/logout", s.handleLogout)

	// Timer entry writes (session required)
	s.echo.GET("/start", s.handleStart, s.requireAuth)
	s.echo.POST("/end", s.handleEnd, s.requireAuth)

	// Global entry feed. Unauthenticated even though every write is
	// session-gated; PROTECT_FEED opts into closing that gap.
	if s.config.ProtectFeed {
		s.echo.GET("/", s.handleFeed, s.requireAuth)
	} else {
		s.echo.GET("/", s.handleFeed)
	}
}
