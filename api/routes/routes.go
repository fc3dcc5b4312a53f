package routes

import (
	"net/http"
	"time"

	"taskboard/api/handler"
	"taskboard/api/middleware"
	"taskboard/internal/entity"

	"github.com/labstack/echo/v4"
	"golang.org/x/time/rate"
)

type Router struct {
	Echo           *echo.Echo
	Auth           *handler.AuthHandler
	Users          *handler.UserHandler
	Admin          *handler.AdminHandler
	Projects       *handler.ProjectHandler
	Tasks          *handler.TaskHandler
	AuthMiddleware middleware.AuthMiddleware
	AuthRate       *middleware.RateLimiter
	LoginRate      *middleware.RateLimiter
}

func NewRouter(
	e *echo.Echo,
	auth *handler.AuthHandler,
	users *handler.UserHandler,
	admin *handler.AdminHandler,
	projects *handler.ProjectHandler,
	tasks *handler.TaskHandler,
	authMiddleware middleware.AuthMiddleware,
) *Router {
	return &Router{
		Echo:           e,
		Auth:           auth,
		Users:          users,
		Admin:          admin,
		Projects:       projects,
		Tasks:          tasks,
		AuthMiddleware: authMiddleware,
		AuthRate:       middleware.NewRateLimiter(rate.Limit(5), 10, 5*time.Minute),
		LoginRate:      middleware.NewRateLimiter(rate.Limit(2), 4, 10*time.Minute),
	}
}

// AccessPolicy is the route→role table, ordered most-specific-first because
// the first matching rule wins. ADMIN routes require exactly ADMIN, and the
// MANAGER rules deliberately do not list ADMIN: roles are exact-match, not
// hierarchical.
func AccessPolicy() middleware.Policy {
	manager := []entity.Role{entity.RoleManager}
	admin := []entity.Role{entity.RoleAdmin}
	managerOrAdmin := []entity.Role{entity.RoleManager, entity.RoleAdmin}

	return middleware.Policy{Rules: []middleware.Rule{
		{Method: http.MethodPatch, Pattern: "/api/tasks/*/to-review", Public: true},
		{Method: "*", Pattern: "/api/auth/**", Public: true},
		{Method: "*", Pattern: "/api/admin/**", Roles: admin},
		{Method: http.MethodGet, Pattern: "/api/users", Roles: managerOrAdmin},
		{Method: http.MethodPost, Pattern: "/api/projects/**", Roles: manager},
		{Method: http.MethodPut, Pattern: "/api/projects/**", Roles: manager},
		{Method: http.MethodDelete, Pattern: "/api/projects/**", Roles: manager},
		{Method: "*", Pattern: "/**"},
	}}
}

func (r *Router) RegisterRoutes() {
	e := r.Echo

	e.Use(r.AuthMiddleware.Authenticate)
	e.Use(AccessPolicy().Enforce())

	e.POST("/api/auth/register", r.Auth.Register, r.AuthRate.Middleware())
	e.POST("/api/auth/login", r.Auth.Login, r.LoginRate.Middleware())
	e.POST("/api/auth/2fa/enable", r.Auth.Enable2FA, r.AuthRate.Middleware())
	e.POST("/api/auth/2fa/verify", r.Auth.Verify2FA, r.LoginRate.Middleware())

	e.GET("/api/users/me", r.Users.Me)
	e.GET("/api/users", r.Users.ListUsers)

	e.POST("/api/admin/change-role", r.Admin.ChangeUserRole)
	e.GET("/api/admin/users", r.Admin.ListUsers)

	e.GET("/api/projects", r.Projects.ListMine)
	e.GET("/api/projects/my-member-projects", r.Projects.ListMemberProjects)
	e.GET("/api/projects/:id", r.Projects.Get)
	e.POST("/api/projects", r.Projects.Create)
	e.PUT("/api/projects/:id", r.Projects.Update)
	e.DELETE("/api/projects/:id", r.Projects.Delete)
	e.POST("/api/projects/:projectId/members", r.Projects.AddMember)
	e.GET("/api/projects/:projectId/members", r.Projects.ListMembers)
	e.DELETE("/api/projects/:projectId/members/:userId", r.Projects.RemoveMember)

	e.POST("/api/tasks", r.Tasks.Create)
	e.GET("/api/tasks/:id", r.Tasks.Get)
	e.PUT("/api/tasks/:id", r.Tasks.Update)
	e.DELETE("/api/tasks/:id", r.Tasks.Delete)
	e.GET("/api/tasks/project/:projectId", r.Tasks.ListByProject)
	e.GET("/api/tasks/project/:projectId/mine", r.Tasks.ListAssignedByProject)
	e.PATCH("/api/tasks/:id/to-review", r.Tasks.MarkToReview)
	e.POST("/api/tasks/:id/comments", r.Tasks.AddComment)
	e.GET("/api/tasks/:id/comments", r.Tasks.ListComments)
}
