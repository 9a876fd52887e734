package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Augustwise/fullstack-task-manager/internal/auth"
	"github.com/Augustwise/fullstack-task-manager/internal/constants"
	dto "github.com/Augustwise/fullstack-task-manager/internal/data_models"
	apperrors "github.com/Augustwise/fullstack-task-manager/internal/errors"
	middleware "github.com/Augustwise/fullstack-task-manager/internal/http/middlewares"
	model "github.com/Augustwise/fullstack-task-manager/internal/models"
)

func (h *Handler) SignUp(c echo.Context) error {
	var req dto.CredentialsRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.ErrInvalidJSON
	}
	if auth.ContainsCyrillic(req.Password) {
		return apperrors.ErrCyrillicPassword
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	account, err := h.authService.Register(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return err
	}

	if err := h.startSession(c, account); err != nil {
		return err
	}
	h.audit(c, constants.ActionSignUp, account.ID, "email", account.Email)

	return c.JSON(http.StatusCreated, dto.MessageResponse{Message: "User created successfully"})
}

func (h *Handler) Login(c echo.Context) error {
	var req dto.LoginRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.ErrInvalidJSON
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	account, err := h.authService.Authenticate(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return err
	}

	if err := h.startSession(c, account); err != nil {
		return err
	}
	h.audit(c, constants.ActionLogin, account.ID)

	return c.JSON(http.StatusOK, dto.MessageResponse{Message: "Login successful"})
}

func (h *Handler) Logout(c echo.Context) error {
	c.SetCookie(h.cookie.Cleared())
	return c.JSON(http.StatusOK, dto.MessageResponse{Message: "Logout successful"})
}

// AuthCheck never fails: an absent or invalid session is simply reported
// as unauthenticated.
func (h *Handler) AuthCheck(c echo.Context) error {
	session, err := middleware.SessionFromRequest(c, h.sessions, h.cookie.Name)
	if err != nil {
		return c.JSON(http.StatusOK, dto.AuthCheckResponse{IsAuthenticated: false})
	}
	return c.JSON(http.StatusOK, dto.AuthCheckResponse{IsAuthenticated: true, Email: session.Email})
}

func (h *Handler) CurrentUser(c echo.Context) error {
	session, ok := middleware.CurrentSession(c)
	if !ok {
		return apperrors.ErrInvalidSession
	}
	return c.JSON(http.StatusOK, dto.UserResponse{Email: session.Email})
}

func (h *Handler) startSession(c echo.Context, account *model.Account) error {
	token, err := h.sessions.Issue(account)
	if err != nil {
		return err
	}
	c.SetCookie(h.cookie.New(token))
	return nil
}
