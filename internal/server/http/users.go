package httpserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/avelichko/taskkeeper/internal/convert"
	"github.com/avelichko/taskkeeper/internal/errs"
	"github.com/avelichko/taskkeeper/internal/model"
)

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type accountPatchRequest struct {
	Email    *string `json:"email"`
	Password *string `json:"password"`
}

// register creates an account and immediately issues a session token in the
// x-auth response header.
func (s *Server) register(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	a, err := s.accounts.Register(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, errs.ErrAlreadyExists):
			c.JSON(http.StatusBadRequest, gin.H{"error": "email already registered"})
		case errors.Is(err, errs.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, errs.ErrUnauthorized):
			c.JSON(http.StatusBadRequest, gin.H{"error": "registration failed"})
		default:
			s.fail(c, err)
		}
		return
	}
	tok, err := s.accounts.IssueAuthToken(c.Request.Context(), a)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.Header(AuthHeader, tok)
	c.JSON(http.StatusOK, convert.ToAccountJSON(a))
}

// login authenticates by credentials. Failures are an empty 400 without an
// x-auth header; unknown email and wrong password are indistinguishable.
func (s *Server) login(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}
	a, err := s.accounts.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, errs.ErrUnauthorized) {
			c.Status(http.StatusBadRequest)
			return
		}
		s.fail(c, err)
		return
	}
	tok, err := s.accounts.IssueAuthToken(c.Request.Context(), a)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.Header(AuthHeader, tok)
	c.JSON(http.StatusOK, convert.ToAccountJSON(a))
}

// me returns the authenticated account.
func (s *Server) me(c *gin.Context) {
	a, ok := AccountFrom(c)
	if !ok {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}
	c.JSON(http.StatusOK, convert.ToAccountJSON(a))
}

// updateMe applies a partial account edit. The password digest is only
// recomputed when the patch carries a new password.
func (s *Server) updateMe(c *gin.Context) {
	a, ok := AccountFrom(c)
	if !ok {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}
	var req accountPatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	updated, err := s.accounts.Update(c.Request.Context(), a.ID, model.AccountPatch{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		switch {
		case errors.Is(err, errs.ErrAlreadyExists):
			c.JSON(http.StatusBadRequest, gin.H{"error": "email already registered"})
		case errors.Is(err, errs.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			s.fail(c, err)
		}
		return
	}
	c.JSON(http.StatusOK, convert.ToAccountJSON(updated))
}

// logout removes the presented token from the account's token list, making it
// unusable even though its signature stays valid.
func (s *Server) logout(c *gin.Context) {
	a, ok := AccountFrom(c)
	if !ok {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}
	tok, ok := TokenFrom(c)
	if !ok {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}
	if err := s.accounts.Logout(c.Request.Context(), a.ID, tok); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}
	c.Status(http.StatusOK)
}
