package handler

import (
	"errors"
	"net/http"
	"strconv"

	"taskboard/api/middleware"
	"taskboard/internal/dto"
	"taskboard/internal/entity"
	"taskboard/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type ProjectHandler struct {
	Service  *service.ProjectService
	Validate *validator.Validate
}

func NewProjectHandler(svc *service.ProjectService, validate *validator.Validate) *ProjectHandler {
	return &ProjectHandler{Service: svc, Validate: validate}
}

func (h *ProjectHandler) ListMine(c echo.Context) error {
	principal, ok := middleware.PrincipalFromContext(c)
	if !ok {
		return writeError(c, http.StatusUnauthorized, errors.New("unauthorized"))
	}

	projects, err := h.Service.ListForCreator(c.Request().Context(), principal.Email)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, dto.ProjectResponsesFromEntities(projects))
}

func (h *ProjectHandler) Get(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return writeError(c, http.StatusBadRequest, errors.New("invalid project id"))
	}

	project, err := h.Service.GetByID(c.Request().Context(), id)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, dto.ProjectResponseFromEntity(project))
}

func (h *ProjectHandler) Create(c echo.Context) error {
	principal, ok := middleware.PrincipalFromContext(c)
	if !ok {
		return writeError(c, http.StatusUnauthorized, errors.New("unauthorized"))
	}

	var req dto.CreateProjectRequest
	if err := decodeJSON(c, &req); err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	if err := h.validate(req); err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}

	input := service.CreateProjectInput{
		Name:        req.Name,
		Description: req.Description,
		Status:      entity.ProjectStatus(req.Status),
		Icon:        req.Icon,
	}
	project, err := h.Service.Create(c.Request().Context(), principal.Email, input)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, dto.ProjectResponseFromEntity(project))
}

func (h *ProjectHandler) Update(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return writeError(c, http.StatusBadRequest, errors.New("invalid project id"))
	}

	var req dto.UpdateProjectRequest
	if err := decodeJSON(c, &req); err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	if err := h.validate(req); err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}

	input := service.UpdateProjectInput{
		Name:        req.Name,
		Description: req.Description,
		Status:      entity.ProjectStatus(req.Status),
	}
	project, err := h.Service.Update(c.Request().Context(), id, input)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, dto.ProjectResponseFromEntity(project))
}

func (h *ProjectHandler) Delete(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return writeError(c, http.StatusBadRequest, errors.New("invalid project id"))
	}

	if err := h.Service.Delete(c.Request().Context(), id); err != nil {
		return writeServiceError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *ProjectHandler) AddMember(c echo.Context) error {
	projectID, err := uuid.Parse(c.Param("projectId"))
	if err != nil {
		return writeError(c, http.StatusBadRequest, errors.New("invalid project id"))
	}

	var req dto.AddProjectMemberRequest
	if err := decodeJSON(c, &req); err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	if err := h.validate(req); err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}

	member, err := h.Service.AddMember(c.Request().Context(), projectID, req.UserEmail, entity.ProjectRole(req.ProjectRole))
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, dto.ProjectMemberResponseFromEntity(member))
}

func (h *ProjectHandler) ListMembers(c echo.Context) error {
	projectID, err := uuid.Parse(c.Param("projectId"))
	if err != nil {
		return writeError(c, http.StatusBadRequest, errors.New("invalid project id"))
	}

	members, err := h.Service.ListMembers(c.Request().Context(), projectID)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, dto.ProjectMemberResponsesFromEntities(members))
}

func (h *ProjectHandler) RemoveMember(c echo.Context) error {
	projectID, err := uuid.Parse(c.Param("projectId"))
	if err != nil {
		return writeError(c, http.StatusBadRequest, errors.New("invalid project id"))
	}
	userID, err := strconv.ParseUint(c.Param("userId"), 10, 32)
	if err != nil {
		return writeError(c, http.StatusBadRequest, errors.New("invalid user id"))
	}

	if err := h.Service.RemoveMember(c.Request().Context(), projectID, uint(userID)); err != nil {
		return writeServiceError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *ProjectHandler) ListMemberProjects(c echo.Context) error {
	principal, ok := middleware.PrincipalFromContext(c)
	if !ok {
		return writeError(c, http.StatusUnauthorized, errors.New("unauthorized"))
	}

	projects, err := h.Service.ListMemberProjects(c.Request().Context(), principal.Email)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, dto.ProjectResponsesFromEntities(projects))
}

func (h *ProjectHandler) validate(payload any) error {
	if h.Validate == nil {
		return nil
	}
	return h.Validate.Struct(payload)
}
