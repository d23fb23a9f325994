package recorder

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/aaron7/pomodoro/internal/domain"
	apperrors "github.com/aaron7/pomodoro/internal/errors"
	"github.com/aaron7/pomodoro/internal/metrics"
	"github.com/labstack/echo/v4"
)

// parseTimestamp validates a caller-supplied unix timestamp. Garbage fails
// fast here instead of surfacing as an opaque storage error.
func parseTimestamp(raw, field string) (int64, error) {
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || v < 0 {
		return 0, apperrors.ValidationError(fmt.Sprintf("%s must be a non-negative integer timestamp", field)).
			WithContext("value", raw)
	}
	return v, nil
}

func parseTypeID(raw string) (int64, error) {
	if raw == "" {
		return domain.TypeFocus, nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || (v != domain.TypeFocus && v != domain.TypeProject) {
		return 0, apperrors.ValidationError("type_id must be 1 (focus) or 2 (project)").
			WithContext("value", raw)
	}
	return v, nil
}

func (s *Server) handleStart(c echo.Context) error {
	userID := c.Get("userID").(int64)

	start, err := parseTimestamp(c.QueryParam("time"), "time")
	if err != nil {
		return err
	}
	typeID, err := parseTypeID(c.QueryParam("type_id"))
	if err != nil {
		return err
	}

	id, err := s.entries.Insert(c.Request().Context(), userID, start, typeID)
	if err != nil {
		return apperrors.InternalError("failed to insert entry", err)
	}

	metrics.PomodorosStarted.Inc()
	return c.String(http.StatusOK, strconv.FormatInt(id, 10))
}

func (s *Server) handleEnd(c echo.Context) error {
	userID := c.Get("userID").(int64)
	ctx := c.Request().Context()

	id, err := parseTimestamp(c.FormValue("id"), "id")
	if err != nil {
		return err
	}
	end, err := parseTimestamp(c.FormValue("time"), "time")
	if err != nil {
		return err
	}

	entry, err := s.entries.GetForUser(ctx, id, userID)
	if errors.Is(err, domain.ErrEntryNotFound) {
		// Foreign or unknown id: the scoped update below would match
		// nothing. Answer OK without touching the store.
		return c.String(http.StatusOK, "OK")
	}
	if err != nil {
		return apperrors.InternalError("failed to load entry", err)
	}

	if end < entry.Start {
		return apperrors.ValidationError("time must not be before the entry's start").
			WithContext("start", entry.Start).
			WithContext("time", end)
	}

	rows, err := s.entries.SetEnd(ctx, id, userID, end)
	if err != nil {
		return apperrors.InternalError("failed to close entry", err)
	}
	if rows > 0 {
		metrics.PomodorosCompleted.Inc()
	}

	return c.String(http.StatusOK, "OK")
}

// handleFeed returns every entry across all users, ascending by id.
func (s *Server) handleFeed(c echo.Context) error {
	entries, err := s.entries.ListAll(c.Request().Context())
	if err != nil {
		return apperrors.InternalError("failed to list entries", err)
	}
	if entries == nil {
		entries = []domain.TimerEntry{}
	}
	return c.JSON(http.StatusOK, entries)
}
