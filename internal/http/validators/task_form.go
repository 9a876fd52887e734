package validators

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Augustwise/fullstack-task-manager/internal/constants"
	dto "github.com/Augustwise/fullstack-task-manager/internal/data_models"
	apperrors "github.com/Augustwise/fullstack-task-manager/internal/errors"
)

const TaskFileField = "taskFile"

// ParseTaskForm reads a create or edit form. The returned closer releases
// the uploaded part and must be called once the request is handled.
func ParseTaskForm(c echo.Context) (dto.TaskRequestData, func(), error) {
	noop := func() {}

	if strings.HasPrefix(c.Request().Header.Get(echo.HeaderContentType), echo.MIMEMultipartForm) {
		if _, err := c.MultipartForm(); err != nil {
			if isBodyTooLarge(err) {
				return dto.TaskRequestData{}, noop, apperrors.ErrFileTooLarge
			}
			return dto.TaskRequestData{}, noop, apperrors.ErrInvalidForm
		}
	}

	data := dto.TaskRequestData{
		Name:        strings.TrimSpace(c.FormValue("name")),
		Description: c.FormValue("description"),
		Priority:    constants.ParsePriority(c.FormValue("priority")),
	}

	due, err := ParseDueDate(c.FormValue("dueDate"))
	if err != nil {
		return data, noop, err
	}
	data.DueDate = due

	header, err := c.FormFile(TaskFileField)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return data, noop, nil
		}
		return data, noop, apperrors.ErrInvalidForm
	}

	f, err := header.Open()
	if err != nil {
		return data, noop, apperrors.ErrInvalidForm
	}

	data.File = &dto.UploadedFile{
		OriginalName: header.Filename,
		MimeType:     header.Header.Get(echo.HeaderContentType),
		Size:         header.Size,
		Content:      f,
	}
	return data, func() { f.Close() }, nil
}

// ParseDueDate accepts a calendar date, read as UTC midnight, or an RFC 3339
// timestamp. An empty value means no due date.
func ParseDueDate(raw string) (*time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}

	if t, err := time.Parse(time.DateOnly, raw); err == nil {
		return &t, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		t = t.UTC()
		return &t, nil
	}
	return nil, apperrors.ErrInvalidDueDate
}

func isBodyTooLarge(err error) bool {
	var maxBytes *http.MaxBytesError
	if errors.As(err, &maxBytes) {
		return true
	}
	var httpErr *echo.HTTPError
	return errors.As(err, &httpErr) && httpErr.Code == http.StatusRequestEntityTooLarge
}
