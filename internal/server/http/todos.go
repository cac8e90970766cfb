package httpserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/avelichko/taskkeeper/internal/convert"
	"github.com/avelichko/taskkeeper/internal/errs"
	"github.com/avelichko/taskkeeper/internal/model"
)

type createTodoRequest struct {
	Text string `json:"text"`
}

type todoPatchRequest struct {
	Text      *string `json:"text"`
	Completed *bool   `json:"completed"`
}

func (s *Server) createTodo(c *gin.Context) {
	a, ok := AccountFrom(c)
	if !ok {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}
	var req createTodoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid request body"})
		return
	}
	t, err := s.tasks.Create(c.Request.Context(), a.ID, req.Text)
	if err != nil {
		if errors.Is(err, errs.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
			return
		}
		s.log.Error("create todo", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "could not save todo"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "todo": convert.ToTaskJSON(t)})
}

func (s *Server) listTodos(c *gin.Context) {
	a, ok := AccountFrom(c)
	if !ok {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}
	ts, err := s.tasks.List(c.Request.Context(), a.ID)
	if err != nil {
		s.log.Error("list todos", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "could not load todos"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "todos": convert.ToTaskJSONs(ts)})
}

func (s *Server) getTodo(c *gin.Context) {
	a, ok := AccountFrom(c)
	if !ok {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}
	t, err := s.tasks.Get(c.Request.Context(), a.ID, c.Param("id"))
	if err != nil {
		s.todoError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "todo": convert.ToTaskJSON(t)})
}

func (s *Server) patchTodo(c *gin.Context) {
	a, ok := AccountFrom(c)
	if !ok {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}
	var req todoPatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	t, err := s.tasks.Update(c.Request.Context(), a.ID, c.Param("id"), model.TaskPatch{
		Text:      req.Text,
		Completed: req.Completed,
	})
	if err != nil {
		s.todoError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "todo": convert.ToTaskJSON(t)})
}

func (s *Server) deleteTodo(c *gin.Context) {
	a, ok := AccountFrom(c)
	if !ok {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}
	t, err := s.tasks.Delete(c.Request.Context(), a.ID, c.Param("id"))
	if err != nil {
		s.todoError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "todo": convert.ToTaskJSON(t)})
}

// todoError maps task service failures onto the API contract. A task owned by
// another account surfaces as the same 404 as a nonexistent one.
func (s *Server) todoError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, errs.ErrInvalidID):
		c.JSON(http.StatusNotFound, gin.H{"error": "Not a valid ID"})
	case errors.Is(err, errs.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "No todo found"})
	case errors.Is(err, errs.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		s.fail(c, err)
	}
}
