package http

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/labstack/echo/v4"

	"github.com/Augustwise/fullstack-task-manager/internal/auth"
	"github.com/Augustwise/fullstack-task-manager/internal/constants"
	dto "github.com/Augustwise/fullstack-task-manager/internal/data_models"
	apperrors "github.com/Augustwise/fullstack-task-manager/internal/errors"
	middleware "github.com/Augustwise/fullstack-task-manager/internal/http/middlewares"
	"github.com/Augustwise/fullstack-task-manager/internal/http/validators"
)

func (h *Handler) ListTasks(c echo.Context) error {
	session, ok := middleware.CurrentSession(c)
	if !ok {
		return apperrors.ErrInvalidSession
	}

	tasks, err := h.taskService.ListTasks(c.Request().Context(), session.AccountID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, dto.NewTaskListResponse(tasks))
}

func (h *Handler) CreateTask(c echo.Context) error {
	session, ok := middleware.CurrentSession(c)
	if !ok {
		return apperrors.ErrInvalidSession
	}

	data, release, err := validators.ParseTaskForm(c)
	defer release()
	if err != nil {
		return err
	}

	task, err := h.taskService.CreateTask(c.Request().Context(), session.AccountID, data)
	if err != nil {
		return err
	}
	h.audit(c, constants.ActionCreateTask, session.AccountID, "task_id", task.ID)

	return c.JSON(http.StatusCreated, dto.NewTaskResponse(*task))
}

func (h *Handler) UpdateTask(c echo.Context) error {
	session, id, err := h.ownedTarget(c)
	if err != nil {
		return err
	}

	data, release, err := validators.ParseTaskForm(c)
	defer release()
	if err != nil {
		return err
	}

	task, err := h.taskService.UpdateTask(c.Request().Context(), id, session.AccountID, data)
	if err != nil {
		return err
	}
	h.audit(c, constants.ActionEditTask, session.AccountID, "task_id", task.ID)

	return c.JSON(http.StatusOK, dto.NewTaskResponse(*task))
}

func (h *Handler) DeleteTask(c echo.Context) error {
	session, id, err := h.ownedTarget(c)
	if err != nil {
		return err
	}

	if err := h.taskService.DeleteTask(c.Request().Context(), id, session.AccountID); err != nil {
		return err
	}
	h.audit(c, constants.ActionDeleteTask, session.AccountID, "task_id", id)

	return c.JSON(http.StatusOK, dto.MessageResponse{Message: "Task deleted successfully"})
}

func (h *Handler) ToggleCompleted(c echo.Context) error {
	session, id, err := h.ownedTarget(c)
	if err != nil {
		return err
	}

	task, err := h.taskService.ToggleCompleted(c.Request().Context(), id, session.AccountID)
	if err != nil {
		if errors.Is(err, apperrors.ErrTaskNotFound) {
			return apperrors.ErrToggleTaskNotFound
		}
		return err
	}
	h.audit(c, constants.ActionToggleCompleted, session.AccountID, "task_id", id, "completed", task.Completed)

	return c.JSON(http.StatusOK, dto.NewTaskResponse(*task))
}

func (h *Handler) DownloadAttachment(c echo.Context) error {
	session, id, err := h.ownedTarget(c)
	if err != nil {
		return err
	}

	att, err := h.taskService.OpenAttachment(c.Request().Context(), id, session.AccountID)
	if err != nil {
		return err
	}
	defer att.Content.Close()

	c.Response().Header().Set(echo.HeaderContentDisposition,
		`attachment; filename="`+url.PathEscape(att.OriginalName)+`"`)
	return c.Stream(http.StatusOK, att.MimeType, att.Content)
}

func (h *Handler) ownedTarget(c echo.Context) (*auth.Session, string, error) {
	session, ok := middleware.CurrentSession(c)
	if !ok {
		return nil, "", apperrors.ErrInvalidSession
	}
	id := c.Param("id")
	if id == "" {
		return nil, "", apperrors.ErrTaskIDRequired
	}
	return session, id, nil
}
