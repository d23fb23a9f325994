// Package statsweb is the read-side HTTP service: it renders per-user
// aggregates computed by the stats engine over the shared store.
package statsweb

import (
	"context"
	"fmt"
	"time"

	"github.com/aaron7/pomodoro/internal/config"
	"github.com/aaron7/pomodoro/internal/correlation"
	"github.com/aaron7/pomodoro/internal/domain"
	apperrors "github.com/aaron7/pomodoro/internal/errors"
	"github.com/aaron7/pomodoro/internal/stats"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// summarizer is the slice of the stats engine the handlers need.
type summarizer interface {
	Summary(ctx context.Context, userID int64) (*stats.Summary, error)
}

// postgresPinger is a minimal interface for readiness checks.
type postgresPinger interface {
	Ping(ctx context.Context) error
}

type Server struct {
	echo      *echo.Echo
	config    *config.Config
	users     domain.UserRepository
	engine    summarizer
	db        postgresPinger
	startTime time.Time
}

func NewServer(cfg *config.Config, users domain.UserRepository, engine summarizer, db postgresPinger) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(correlationMiddleware())
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(apperrors.Middleware())

	srv := &Server{
		echo:      e,
		config:    cfg,
		users:     users,
		engine:    engine,
		db:        db,
		startTime: time.Now(),
	}

	srv.registerRoutes()

	return srv
}

func correlationMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			ctx := correlation.WithID(req.Context(), correlation.NewID())
			c.SetRequest(req.WithContext(ctx))
			return next(c)
		}
	}
}

func (s *Server) Start() error {
	return s.echo.Start(fmt.Sprintf(":%s", s.config.StatsPort))
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}
