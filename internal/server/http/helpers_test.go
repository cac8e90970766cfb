package httpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gofrs/uuid/v5"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/avelichko/taskkeeper/internal/errs"
	"github.com/avelichko/taskkeeper/internal/model"
	"github.com/avelichko/taskkeeper/internal/repository"
	"github.com/avelichko/taskkeeper/internal/service"
	"github.com/avelichko/taskkeeper/internal/token"
)

// In-memory repositories so the full stack (middleware, services, handlers)
// runs against real auth and ownership semantics.

type memAccounts struct {
	byID map[uuid.UUID]*model.Account
}

var _ repository.AccountRepository = (*memAccounts)(nil)

func (m *memAccounts) Create(_ context.Context, a *model.Account) error {
	for _, ex := range m.byID {
		if ex.Email == a.Email {
			return errs.ErrAlreadyExists
		}
	}
	cpy := *a
	m.byID[a.ID] = &cpy
	return nil
}

func (m *memAccounts) GetByID(_ context.Context, id uuid.UUID) (*model.Account, error) {
	a, ok := m.byID[id]
	if !ok {
		return nil, errs.ErrNotFound
	}
	c := *a
	return &c, nil
}

func (m *memAccounts) GetByEmail(_ context.Context, email string) (*model.Account, error) {
	for _, a := range m.byID {
		if a.Email == email {
			c := *a
			return &c, nil
		}
	}
	return nil, errs.ErrNotFound
}

func (m *memAccounts) GetByIDAndToken(_ context.Context, id uuid.UUID, purpose, tok string) (*model.Account, error) {
	a, ok := m.byID[id]
	if !ok {
		return nil, errs.ErrNotFound
	}
	for _, t := range a.Tokens {
		if t.Purpose == purpose && t.Token == tok {
			c := *a
			return &c, nil
		}
	}
	return nil, errs.ErrNotFound
}

func (m *memAccounts) AddToken(_ context.Context, id uuid.UUID, purpose, tok string) error {
	a, ok := m.byID[id]
	if !ok {
		return errs.ErrNotFound
	}
	a.Tokens = append(a.Tokens, model.AuthToken{Purpose: purpose, Token: tok})
	return nil
}

func (m *memAccounts) RemoveToken(_ context.Context, id uuid.UUID, tok string) error {
	a, ok := m.byID[id]
	if !ok {
		return nil
	}
	out := a.Tokens[:0]
	for _, t := range a.Tokens {
		if t.Token != tok {
			out = append(out, t)
		}
	}
	a.Tokens = out
	return nil
}

func (m *memAccounts) UpdateEmail(_ context.Context, id uuid.UUID, email string) error {
	a, ok := m.byID[id]
	if !ok {
		return errs.ErrNotFound
	}
	for _, ex := range m.byID {
		if ex.ID != id && ex.Email == email {
			return errs.ErrAlreadyExists
		}
	}
	a.Email = email
	return nil
}

func (m *memAccounts) UpdateDigest(_ context.Context, id uuid.UUID, digest string) error {
	a, ok := m.byID[id]
	if !ok {
		return errs.ErrNotFound
	}
	a.PasswordDigest = digest
	return nil
}

type memTasks struct {
	byID map[uuid.UUID]*model.Task
}

var _ repository.TaskRepository = (*memTasks)(nil)

func (m *memTasks) Create(_ context.Context, t *model.Task) error {
	cpy := *t
	m.byID[t.ID] = &cpy
	return nil
}

func (m *memTasks) ListByOwner(_ context.Context, ownerID uuid.UUID) ([]model.Task, error) {
	out := []model.Task{}
	for _, t := range m.byID {
		if t.OwnerID == ownerID {
			out = append(out, *t)
		}
	}
	return out, nil
}

func (m *memTasks) GetOwned(_ context.Context, ownerID, taskID uuid.UUID) (*model.Task, error) {
	t, ok := m.byID[taskID]
	if !ok || t.OwnerID != ownerID {
		return nil, errs.ErrNotFound
	}
	c := *t
	return &c, nil
}

func (m *memTasks) UpdateOwned(_ context.Context, ownerID, taskID uuid.UUID, patch model.TaskPatch, nowMillis int64) (*model.Task, error) {
	t, ok := m.byID[taskID]
	if !ok || t.OwnerID != ownerID {
		return nil, errs.ErrNotFound
	}
	if patch.Text != nil {
		t.Text = *patch.Text
	}
	if patch.Completed != nil {
		t.Completed = *patch.Completed
	}
	if t.Completed {
		if t.CompletedAt == nil {
			ts := nowMillis
			t.CompletedAt = &ts
		}
	} else {
		t.CompletedAt = nil
	}
	c := *t
	return &c, nil
}

func (m *memTasks) DeleteOwned(_ context.Context, ownerID, taskID uuid.UUID) (*model.Task, error) {
	t, ok := m.byID[taskID]
	if !ok || t.OwnerID != ownerID {
		return nil, errs.ErrNotFound
	}
	delete(m.byID, taskID)
	return t, nil
}

// newTestRouter wires the real services over in-memory repos.
func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	gin.SetMode(gin.TestMode)
	codec := token.New([]byte("test-key"), time.Hour)
	accounts := service.NewAccountService(&memAccounts{byID: map[uuid.UUID]*model.Account{}}, codec)
	tasks := service.NewTaskService(&memTasks{byID: map[uuid.UUID]*model.Task{}})
	return New(accounts, tasks, zap.NewNop()).Router()
}

// do performs a JSON request against the router.
func do(t *testing.T, r http.Handler, method, path, tok string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		rd = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if tok != "" {
		req.Header.Set(AuthHeader, tok)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// decode unmarshals a JSON response body into a generic map.
func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

// registerAccount registers a new account and returns its id and session token.
func registerAccount(t *testing.T, r http.Handler, email, password string) (id, tok string) {
	t.Helper()
	w := do(t, r, http.MethodPost, "/users", "", gin.H{"email": email, "password": password})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	tok = w.Header().Get(AuthHeader)
	require.NotEmpty(t, tok)
	body := decode(t, w)
	id, _ = body["id"].(string)
	require.NotEmpty(t, id)
	return id, tok
}
