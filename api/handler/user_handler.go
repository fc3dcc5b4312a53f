package handler

import (
	"errors"
	"net/http"

	"taskboard/api/middleware"
	"taskboard/internal/dto"
	"taskboard/internal/service"

	"github.com/labstack/echo/v4"
)

type UserHandler struct {
	Service *service.UserService
}

func NewUserHandler(svc *service.UserService) *UserHandler {
	return &UserHandler{Service: svc}
}

func (h *UserHandler) Me(c echo.Context) error {
	principal, ok := middleware.PrincipalFromContext(c)
	if !ok {
		return writeError(c, http.StatusUnauthorized, errors.New("unauthorized"))
	}

	user, err := h.Service.GetByEmail(c.Request().Context(), principal.Email)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, dto.UserBasicInfoFromEntity(user))
}

func (h *UserHandler) ListUsers(c echo.Context) error {
	users, err := h.Service.ListUsers(c.Request().Context())
	if err != nil {
		return writeServiceError(c, err)
	}

	infos := make([]dto.UserBasicInfo, 0, len(users))
	for i := range users {
		infos = append(infos, dto.UserBasicInfoFromEntity(&users[i]))
	}
	return c.JSON(http.StatusOK, infos)
}
