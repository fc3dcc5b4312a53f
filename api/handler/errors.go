package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"taskboard/internal/service"

	"github.com/labstack/echo/v4"
)

func decodeJSON(c echo.Context, target any) error {
	decoder := json.NewDecoder(c.Request().Body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(target)
}

func writeError(c echo.Context, status int, err error) error {
	return c.JSON(status, map[string]string{"message": err.Error()})
}

// writeServiceError translates the service layer's sentinel errors into HTTP
// statuses. Anything unrecognized is a 500.
func writeServiceError(c echo.Context, err error) error {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, service.ErrInvalidInput),
		errors.Is(err, service.ErrInvalidRole),
		errors.Is(err, service.ErrInvalidTaskStatus),
		errors.Is(err, service.ErrInvalidProjectData):
		status = http.StatusBadRequest
	case errors.Is(err, service.ErrInvalidPassword),
		errors.Is(err, service.ErrInvalid2FACode):
		status = http.StatusUnauthorized
	case errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, service.ErrProjectNotFound),
		errors.Is(err, service.ErrTaskNotFound),
		errors.Is(err, service.ErrAssigneeNotFound),
		errors.Is(err, service.ErrMemberNotFound):
		status = http.StatusNotFound
	case errors.Is(err, service.ErrAlreadyMember):
		status = http.StatusConflict
	}
	return writeError(c, status, err)
}
