// Package httpserver exposes the task-list HTTP JSON API.
package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/avelichko/taskkeeper/internal/service"
)

// AuthHeader carries the signed session token on requests and responses.
const AuthHeader = "x-auth"

// Server wires services into HTTP handlers.
type Server struct {
	accounts service.AccountService
	tasks    service.TaskService
	log      *zap.Logger
}

// New constructs an HTTP server with injected services.
func New(accounts service.AccountService, tasks service.TaskService, log *zap.Logger) *Server {
	return &Server{accounts: accounts, tasks: tasks, log: log}
}

// Router builds the gin engine with middleware and all routes.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(Recovery(s.log), Logging(s.log))

	r.GET("/healthz", s.healthz)
	r.POST("/users", s.register)
	r.POST("/users/login", s.login)

	auth := r.Group("", RequireAuth(s.accounts))
	auth.GET("/users/me", s.me)
	auth.PATCH("/users/me", s.updateMe)
	auth.DELETE("/users/me/token", s.logout)
	auth.POST("/todos", s.createTodo)
	auth.GET("/todos", s.listTodos)
	auth.GET("/todos/:id", s.getTodo)
	auth.PATCH("/todos/:id", s.patchTodo)
	auth.DELETE("/todos/:id", s.deleteTodo)

	return r
}

func (s *Server) healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// fail logs an unexpected error and answers with a generic 500 body.
func (s *Server) fail(c *gin.Context, err error) {
	s.log.Error("internal error",
		zap.String("method", c.Request.Method),
		zap.String("path", c.Request.URL.Path),
		zap.Error(err),
	)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
}
