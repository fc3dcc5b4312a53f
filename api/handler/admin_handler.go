package handler

import (
	"net/http"

	"taskboard/internal/dto"
	"taskboard/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type AdminHandler struct {
	Service  *service.AdminService
	Validate *validator.Validate
}

func NewAdminHandler(svc *service.AdminService, validate *validator.Validate) *AdminHandler {
	return &AdminHandler{Service: svc, Validate: validate}
}

func (h *AdminHandler) ChangeUserRole(c echo.Context) error {
	var req dto.ChangeRoleRequest
	if err := decodeJSON(c, &req); err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	if h.Validate != nil {
		if err := h.Validate.Struct(req); err != nil {
			return writeError(c, http.StatusBadRequest, err)
		}
	}

	if err := h.Service.ChangeUserRole(c.Request().Context(), req.Email, req.NewRole); err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "user role updated successfully"})
}

func (h *AdminHandler) ListUsers(c echo.Context) error {
	users, err := h.Service.ListUsers(c.Request().Context())
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, dto.UserResponsesFromEntities(users))
}
