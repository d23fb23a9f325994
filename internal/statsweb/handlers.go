package statsweb

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/aaron7/pomodoro/internal/domain"
	apperrors "github.com/aaron7/pomodoro/internal/errors"
	"github.com/aaron7/pomodoro/internal/metrics"
	"github.com/aaron7/pomodoro/internal/stats"
	"github.com/labstack/echo/v4"
)

const statsTimeout = 10 * time.Second

// userStatsResponse flattens the summary fields next to the username.
type userStatsResponse struct {
	Username string `json:"username"`
	*stats.Summary
}

func (s *Server) handleWelcome(c echo.Context) error {
	return c.String(http.StatusOK, "Hello, world!")
}

func (s *Server) handleUserStats(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), statsTimeout)
	defer cancel()

	username := c.Param("username")

	user, err := s.users.GetByName(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUnknownUser) {
			metrics.StatsRequests.WithLabelValues("unknown_user").Inc()
			return apperrors.NotFoundError(fmt.Sprintf("user %s does not exist", username))
		}
		metrics.StatsRequests.WithLabelValues("error").Inc()
		return apperrors.InternalError("failed to look up user", err)
	}

	started := time.Now()
	summary, err := s.engine.Summary(ctx, user.ID)
	if err != nil {
		metrics.StatsRequests.WithLabelValues("error").Inc()
		return apperrors.InternalError("failed to build user stats", err)
	}
	metrics.StatsQueryDuration.Observe(time.Since(started).Seconds())
	metrics.StatsRequests.WithLabelValues("ok").Inc()

	slog.InfoContext(ctx, "Served user stats", "user", username, "user_id", user.ID)

	return c.JSON(http.StatusOK, userStatsResponse{
		Username: username,
		Summary:  summary,
	})
}
