package http

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Augustwise/fullstack-task-manager/internal/auth"
	dto "github.com/Augustwise/fullstack-task-manager/internal/data_models"
	apperrors "github.com/Augustwise/fullstack-task-manager/internal/errors"
	middleware "github.com/Augustwise/fullstack-task-manager/internal/http/middlewares"
	"github.com/Augustwise/fullstack-task-manager/internal/services"
)

type Handler struct {
	authService *services.AuthService
	taskService *services.TaskService
	sessions    *auth.SessionManager
	cookie      middleware.SessionCookie
	healthCheck func(ctx context.Context) error
	logger      *slog.Logger
}

func NewHandler(
	authService *services.AuthService,
	taskService *services.TaskService,
	sessions *auth.SessionManager,
	cookie middleware.SessionCookie,
	healthCheck func(ctx context.Context) error,
	logger *slog.Logger,
) *Handler {
	return &Handler{
		authService: authService,
		taskService: taskService,
		sessions:    sessions,
		cookie:      cookie,
		healthCheck: healthCheck,
		logger:      logger,
	}
}

func (h *Handler) Health(c echo.Context) error {
	if h.healthCheck != nil {
		if err := h.healthCheck(c.Request().Context()); err != nil {
			h.logger.ErrorContext(c.Request().Context(), "health check failed", "error", err)
			return c.JSON(http.StatusServiceUnavailable, echo.Map{"status": "unavailable"})
		}
	}
	return c.JSON(http.StatusOK, echo.Map{"status": "ok"})
}

// audit records a user action the way the access log cannot: with the
// account behind it.
func (h *Handler) audit(c echo.Context, action, accountID string, attrs ...any) {
	args := append([]any{
		"action", action,
		"account_id", accountID,
		"ip", c.RealIP(),
		"request_id", c.Response().Header().Get(echo.HeaderXRequestID),
	}, attrs...)
	h.logger.InfoContext(c.Request().Context(), "audit", args...)
}

// ErrorHandler renders every failure as {"message": ...}. Errors that are
// not client-facing are logged and reported as a generic server error.
func ErrorHandler(logger *slog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status, message := resolveError(err)
		if status >= http.StatusInternalServerError {
			logger.ErrorContext(c.Request().Context(), "request failed",
				"method", c.Request().Method,
				"path", c.Path(),
				"error", err,
			)
		}

		var writeErr error
		if c.Request().Method == http.MethodHead {
			writeErr = c.NoContent(status)
		} else {
			writeErr = c.JSON(status, dto.MessageResponse{Message: message})
		}
		if writeErr != nil {
			logger.ErrorContext(c.Request().Context(), "failed to write error response", "error", writeErr)
		}
	}
}

func resolveError(err error) (int, string) {
	var appErr *apperrors.Exception
	if errors.As(err, &appErr) {
		return appErr.StatusCode, appErr.Message
	}

	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		switch httpErr.Code {
		case http.StatusRequestEntityTooLarge:
			return httpErr.Code, apperrors.ErrFileTooLarge.Message
		case http.StatusInternalServerError:
			return httpErr.Code, apperrors.ErrInternal.Message
		}
		if msg, ok := httpErr.Message.(string); ok {
			return httpErr.Code, msg
		}
		return httpErr.Code, fmt.Sprint(httpErr.Message)
	}

	return apperrors.ErrInternal.StatusCode, apperrors.ErrInternal.Message
}
