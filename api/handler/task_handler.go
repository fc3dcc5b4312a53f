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

type TaskHandler struct {
	Service  *service.TaskService
	Validate *validator.Validate
}

func NewTaskHandler(svc *service.TaskService, validate *validator.Validate) *TaskHandler {
	return &TaskHandler{Service: svc, Validate: validate}
}

func (h *TaskHandler) Create(c echo.Context) error {
	principal, ok := middleware.PrincipalFromContext(c)
	if !ok {
		return writeError(c, http.StatusUnauthorized, errors.New("unauthorized"))
	}

	var req dto.CreateTaskRequest
	if err := decodeJSON(c, &req); err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	if err := h.validate(req); err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}

	projectID, err := uuid.Parse(req.ProjectID)
	if err != nil {
		return writeError(c, http.StatusBadRequest, errors.New("invalid project id"))
	}

	input := service.CreateTaskInput{
		ProjectID:    projectID,
		Title:        req.Title,
		Description:  req.Description,
		Status:       entity.TaskStatus(req.Status),
		Priority:     entity.TaskPriority(req.Priority),
		DueDate:      req.DueDate,
		AssignedToID: req.AssignedToID,
	}
	task, err := h.Service.Create(c.Request().Context(), principal.Email, input)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, dto.TaskResponseFromEntity(task))
}

func (h *TaskHandler) Get(c echo.Context) error {
	id, err := parseTaskID(c)
	if err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}

	task, err := h.Service.GetByID(c.Request().Context(), id)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, dto.TaskResponseFromEntity(task))
}

func (h *TaskHandler) Update(c echo.Context) error {
	id, err := parseTaskID(c)
	if err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}

	var req dto.UpdateTaskRequest
	if err := decodeJSON(c, &req); err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	if err := h.validate(req); err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}

	input := service.UpdateTaskInput{
		Title:        req.Title,
		Description:  req.Description,
		DueDate:      req.DueDate,
		AssignedToID: req.AssignedToID,
	}
	if req.Status != nil {
		status := entity.TaskStatus(*req.Status)
		input.Status = &status
	}
	if req.Priority != nil {
		priority := entity.TaskPriority(*req.Priority)
		input.Priority = &priority
	}

	task, err := h.Service.Update(c.Request().Context(), id, input)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, dto.TaskResponseFromEntity(task))
}

func (h *TaskHandler) Delete(c echo.Context) error {
	id, err := parseTaskID(c)
	if err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}

	if err := h.Service.Delete(c.Request().Context(), id); err != nil {
		return writeServiceError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *TaskHandler) ListByProject(c echo.Context) error {
	projectID, err := uuid.Parse(c.Param("projectId"))
	if err != nil {
		return writeError(c, http.StatusBadRequest, errors.New("invalid project id"))
	}

	tasks, err := h.Service.ListForProject(c.Request().Context(), projectID)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, dto.TaskResponsesFromEntities(tasks))
}

func (h *TaskHandler) ListAssignedByProject(c echo.Context) error {
	principal, ok := middleware.PrincipalFromContext(c)
	if !ok {
		return writeError(c, http.StatusUnauthorized, errors.New("unauthorized"))
	}
	projectID, err := uuid.Parse(c.Param("projectId"))
	if err != nil {
		return writeError(c, http.StatusBadRequest, errors.New("invalid project id"))
	}

	tasks, err := h.Service.ListAssignedInProject(c.Request().Context(), projectID, principal.Email)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, dto.TaskResponsesFromEntities(tasks))
}

func (h *TaskHandler) MarkToReview(c echo.Context) error {
	id, err := parseTaskID(c)
	if err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}

	task, err := h.Service.MarkToReview(c.Request().Context(), id)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, dto.TaskResponseFromEntity(task))
}

func (h *TaskHandler) AddComment(c echo.Context) error {
	principal, ok := middleware.PrincipalFromContext(c)
	if !ok {
		return writeError(c, http.StatusUnauthorized, errors.New("unauthorized"))
	}
	id, err := parseTaskID(c)
	if err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}

	var req dto.CreateCommentRequest
	if err := decodeJSON(c, &req); err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	if err := h.validate(req); err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}

	comment, err := h.Service.AddComment(c.Request().Context(), id, principal.Email, req.Comment)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, dto.TaskCommentResponseFromEntity(comment))
}

func (h *TaskHandler) ListComments(c echo.Context) error {
	id, err := parseTaskID(c)
	if err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}

	comments, err := h.Service.ListComments(c.Request().Context(), id)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, dto.TaskCommentResponsesFromEntities(comments))
}

func (h *TaskHandler) validate(payload any) error {
	if h.Validate == nil {
		return nil
	}
	return h.Validate.Struct(payload)
}

func parseTaskID(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return 0, errors.New("invalid task id")
	}
	return uint(id), nil
}
