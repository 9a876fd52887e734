package http

import (
	"log/slog"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/Augustwise/fullstack-task-manager/internal/auth"
	middleware "github.com/Augustwise/fullstack-task-manager/internal/http/middlewares"
	"github.com/Augustwise/fullstack-task-manager/internal/http/validators"
	"github.com/Augustwise/fullstack-task-manager/internal/ratelimit"
)

// TaskBodyLimit leaves room for the form fields around a maximum size
// attachment.
const TaskBodyLimit = "11M"

type RouteOptions struct {
	Limiter     ratelimit.Limiter
	AuthLimiter ratelimit.Limiter
	Sessions    *auth.SessionManager
	Cookie      middleware.SessionCookie
	LoginURL    string
	Logger      *slog.Logger
}

// NewServer returns an echo instance with the error handler, validator and
// global middleware installed.
func NewServer(logger *slog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = ErrorHandler(logger)
	e.Validator = validators.NewRequestValidator()
	e.Server.ReadHeaderTimeout = 10 * time.Second

	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())
	e.Use(middleware.RequestLogger(logger))

	return e
}

func Register(e *echo.Echo, h *Handler, opts RouteOptions) {
	if opts.Limiter != nil {
		e.Use(middleware.RateLimiter(opts.Limiter, "global", opts.Logger))
	}

	e.GET("/healthz", h.Health)

	api := e.Group("/api")

	authRoutes := []echo.MiddlewareFunc{}
	if opts.AuthLimiter != nil {
		authRoutes = append(authRoutes, middleware.RateLimiter(opts.AuthLimiter, "auth", opts.Logger))
	}
	api.POST("/signup", h.SignUp, authRoutes...)
	api.POST("/login", h.Login, authRoutes...)
	api.POST("/logout", h.Logout)
	api.GET("/auth-check", h.AuthCheck)

	gate := middleware.RequireSession(opts.Sessions, opts.Cookie, opts.LoginURL)
	api.GET("/user", h.CurrentUser, gate)

	tasks := api.Group("/tasks", gate, echomw.BodyLimit(TaskBodyLimit))
	tasks.GET("", h.ListTasks)
	tasks.POST("", h.CreateTask)
	tasks.PUT("/:id", h.UpdateTask)
	tasks.DELETE("/:id", h.DeleteTask)
	tasks.PATCH("/:id/toggle-completed", h.ToggleCompleted)
	tasks.GET("/:id/file", h.DownloadAttachment)
}
