package httpserver

import (
	"github.com/gin-gonic/gin"

	"github.com/avelichko/taskkeeper/internal/model"
)

const (
	accountKey = "tk.account"
	tokenKey   = "tk.token"
)

// SetAuth stores the resolved account and raw token on the request context.
func SetAuth(c *gin.Context, a *model.Account, tok string) {
	c.Set(accountKey, a)
	c.Set(tokenKey, tok)
}

// AccountFrom fetches the authenticated account from the request context.
func AccountFrom(c *gin.Context) (*model.Account, bool) {
	v, ok := c.Get(accountKey)
	if !ok {
		return nil, false
	}
	a, ok := v.(*model.Account)
	return a, ok
}

// TokenFrom fetches the raw session token from the request context.
func TokenFrom(c *gin.Context) (string, bool) {
	v, ok := c.Get(tokenKey)
	if !ok {
		return "", false
	}
	tok, ok := v.(string)
	return tok, ok
}
