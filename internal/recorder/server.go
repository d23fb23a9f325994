// Package recorder is the write-side HTTP service: it authenticates users
// and records timer entries into the shared store.
package recorder

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/aaron7/pomodoro/internal/config"
	"github.com/aaron7/pomodoro/internal/correlation"
	"github.com/aaron7/pomodoro/internal/domain"
	apperrors "github.com/aaron7/pomodoro/internal/errors"
	"github.com/gorilla/sessions"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

const sessionName = "pomodoro_session"

const sessionKeyUserID = "user_id"

// postgresPinger is a minimal interface for readiness checks.
type postgresPinger interface {
	Ping(ctx context.Context) error
}

type Server struct {
	echo         *echo.Echo
	config       *config.Config
	users        domain.UserRepository
	entries      domain.EntryRepository
	sessionStore *sessions.CookieStore
	db           postgresPinger
	startTime    time.Time
}

func NewServer(cfg *config.Config, users domain.UserRepository, entries domain.EntryRepository, db postgresPinger) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(correlationMiddleware())
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(apperrors.Middleware())

	sessionStore := sessions.NewCookieStore([]byte(cfg.SessionSecret))
	sessionStore.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   int(cfg.SessionMaxAge.Seconds()),
		HttpOnly: true,
		Secure:   cfg.AppEnv == "production",
		SameSite: http.SameSiteLaxMode,
	}

	srv := &Server{
		echo:         e,
		config:       cfg,
		users:        users,
		entries:      entries,
		sessionStore: sessionStore,
		db:           db,
		startTime:    time.Now(),
	}

	srv.registerRoutes()

	return srv
}

// correlationMiddleware tags every request context with a fresh correlation
// ID so log lines from one request can be tied together.
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
	return s.echo.Start(fmt.Sprintf(":%s", s.config.RecorderPort))
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}
