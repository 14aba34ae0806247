package user

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/springreviewer/admin/core"
	"github.com/springreviewer/admin/services/notify"
)

func TestListController_Load(t *testing.T) {
	deps, buf := newTestDeps()
	repo := NewRepositoryMock(User{ID: 1, Username: "alice"}, User{ID: 2, Username: "Bob"})
	ctrl := NewListController(repo, deps)

	require.NoError(t, ctrl.Load(context.Background()))
	assert.Len(t, ctrl.All(), 2)
	assert.Equal(t, ctrl.All(), ctrl.Displayed())
	assert.False(t, ctrl.Loading())

	ctrl.SetFilter(Filter{Search: "BO"})
	assert.Equal(t, []User{{ID: 2, Username: "Bob"}}, ctrl.Displayed())
	assert.Len(t, ctrl.All(), 2)
	assert.Equal(t, 1, repo.Queries, "filters never re-fetch")

	// reload clears the filter
	require.NoError(t, ctrl.Load(context.Background()))
	assert.Equal(t, Filter{}, ctrl.Filter())
	assert.Len(t, ctrl.Displayed(), 2)

	t.Run("transport failure", func(t *testing.T) {
		repo.Err = &core.APIError{Status: http.StatusInternalServerError, Message: "db down"}
		defer func() { repo.Err = nil }()

		assert.Error(t, ctrl.Load(context.Background()))
		assert.Equal(t, []string{"Request failed (500): db down"}, buf.Messages(notify.LevelError))
		assert.Len(t, ctrl.All(), 2, "previous collection is kept")
	})
}

func TestListController_CreateUpdate(t *testing.T) {
	deps, buf := newTestDeps()
	repo := NewRepositoryMock(User{ID: 1, Username: "alice"})
	ctrl := NewListController(repo, deps)
	require.NoError(t, ctrl.Load(context.Background()))

	form := ctrl.Add()
	form.SetUsername("zed")
	require.NoError(t, form.Submit(context.Background()))
	assert.False(t, form.IsOpen())
	assert.Equal(t, []User{{ID: 1, Username: "alice"}, {ID: 2, Username: "zed"}}, ctrl.All())

	form = ctrl.Edit(User{ID: 2, Username: "zed"})
	form.SetUsername("zoe")
	require.NoError(t, form.Submit(context.Background()))
	assert.Equal(t, []User{{ID: 1, Username: "alice"}, {ID: 2, Username: "zoe"}}, ctrl.All())
	assert.Equal(t, []string{"User created", "User updated"}, buf.Messages(notify.LevelSuccess))

	t.Run("server rejection", func(t *testing.T) {
		repo.Err = &core.APIError{Status: http.StatusConflict, Message: "username taken"}
		defer func() { repo.Err = nil }()

		form := ctrl.Add()
		form.SetUsername("alice")
		assert.Error(t, form.Submit(context.Background()))
		assert.True(t, form.IsOpen())
		assert.Contains(t, buf.Messages(notify.LevelError), "Request failed (409): username taken")
	})
}

func TestListController_Delete(t *testing.T) {
	deps, buf := newTestDeps()
	repo := NewRepositoryMock(User{ID: 1, Username: "alice"}, User{ID: 2, Username: "bob"})
	ctrl := NewListController(repo, deps)
	require.NoError(t, ctrl.Load(context.Background()))

	var prompts []string
	confirmer := func(answer bool) core.Confirmer {
		return core.ConfirmFunc(func(_ context.Context, prompt string) (bool, error) {
			prompts = append(prompts, prompt)
			return answer, nil
		})
	}

	deleted, err := ctrl.Delete(context.Background(), User{ID: 1, Username: "alice"}, confirmer(false))
	require.NoError(t, err)
	assert.False(t, deleted)
	assert.Equal(t, 1, repo.Queries)

	deleted, err = ctrl.Delete(context.Background(), User{ID: 1, Username: "alice"}, confirmer(true))
	require.NoError(t, err)
	assert.True(t, deleted)
	assert.Equal(t, []string{`Delete user "alice"?`, `Delete user "alice"?`}, prompts)
	assert.Equal(t, 2, repo.Queries, "delete re-fetches")
	assert.Equal(t, []User{{ID: 2, Username: "bob"}}, ctrl.Displayed())
	assert.Equal(t, []string{"User deleted"}, buf.Messages(notify.LevelSuccess))

	deleted, err = ctrl.Delete(context.Background(), User{ID: 9, Username: "ghost"}, core.AlwaysConfirm)
	assert.Error(t, err)
	assert.False(t, deleted)
	assert.Equal(t, []string{"The requested record was not found."}, buf.Messages(notify.LevelError))
}
