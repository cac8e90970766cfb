// Package convert maps domain entities to their JSON API representations.
package convert

import "github.com/avelichko/taskkeeper/internal/model"

// AccountJSON is the public shape of an account. The password digest and the
// token list never serialize.
type AccountJSON struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// TaskJSON is the public shape of a task. CompletedAt is epoch milliseconds
// and null unless the task is completed.
type TaskJSON struct {
	ID          string `json:"id"`
	Text        string `json:"text"`
	Completed   bool   `json:"completed"`
	CompletedAt *int64 `json:"completedAt"`
	OwnerID     string `json:"ownerId"`
}

// ToAccountJSON strips an account down to its public fields.
func ToAccountJSON(a *model.Account) AccountJSON {
	return AccountJSON{ID: a.ID.String(), Email: a.Email}
}

// ToTaskJSON converts a task to its API representation.
func ToTaskJSON(t *model.Task) TaskJSON {
	return TaskJSON{
		ID:          t.ID.String(),
		Text:        t.Text,
		Completed:   t.Completed,
		CompletedAt: t.CompletedAt,
		OwnerID:     t.OwnerID.String(),
	}
}

// ToTaskJSONs converts a task slice, never returning nil so an empty list
// serializes as [] rather than null.
func ToTaskJSONs(ts []model.Task) []TaskJSON {
	out := make([]TaskJSON, 0, len(ts))
	for i := range ts {
		out = append(out, ToTaskJSON(&ts[i]))
	}
	return out
}
