package mockapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/springreviewer/admin/core"
	"github.com/springreviewer/admin/core/subject"
	"github.com/springreviewer/admin/core/teacher"
	logsvc "github.com/springreviewer/admin/services/logger"
	"github.com/springreviewer/admin/services/notify"
	inmemdb "github.com/springreviewer/admin/storage/inmem"
	"github.com/springreviewer/admin/storage/restapi"
)

func setup(t *testing.T, opts *Options, seed bool) Server {
	db := inmemdb.Open()
	if seed {
		require.NoError(t, inmemdb.Seed(context.Background(), db))
	}
	opts.DisableReqLogs = true
	return NewServer(opts, NewDeps(db, logsvc.NewLoggerMock()))
}

func newRequest(method, path, token string) (*http.Request, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req, httptest.NewRecorder()
}

func TestServer_Errors(t *testing.T) {
	app := setup(t, &Options{}, true)

	tests := []struct {
		name     string
		path     string
		wantCode int
		wantMsg  string
	}{
		{"missing record", "/users/999", http.StatusNotFound, "User not found with id: 999"},
		{"malformed id", "/teachers/abc", http.StatusBadRequest, `invalid id: "abc"`},
		{"user without reviews", "/reviews/user/2", http.StatusNotFound, "No reviews found for user ID: 2"},
		{"bad min grade", "/reviews/search?minGrade=x", http.StatusBadRequest, `invalid minGrade: "x"`},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req, rec := newRequest(http.MethodGet, tc.path, "")
			app.ServeHTTP(rec, req)

			assert.Equal(t, tc.wantCode, rec.Code)
			var body errorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tc.wantCode, body.Status)
			assert.Equal(t, tc.wantMsg, body.Message)
			assert.Equal(t, http.StatusText(tc.wantCode), body.Error)
		})
	}
}

func TestServer_Token(t *testing.T) {
	app := setup(t, &Options{Token: "s3cr3t"}, false)

	tests := []struct {
		name     string
		token    string
		wantCode int
	}{
		{"missing token", "", http.StatusBadRequest},
		{"wrong token", "nope", http.StatusUnauthorized},
		{"valid token", "s3cr3t", http.StatusOK},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req, rec := newRequest(http.MethodGet, "/subjects", tc.token)
			app.ServeHTTP(rec, req)
			assert.Equal(t, tc.wantCode, rec.Code)
		})
	}
}

func TestServer_RequestID(t *testing.T) {
	app := setup(t, &Options{}, false)

	req, rec := newRequest(http.MethodGet, "/users", "")
	req.Header.Set(restapi.HeaderRequestID, "req-1")
	app.ServeHTTP(rec, req)
	assert.Equal(t, "req-1", rec.Header().Get(restapi.HeaderRequestID))

	req, rec = newRequest(http.MethodGet, "/users", "")
	app.ServeHTTP(rec, req)
	assert.NotEmpty(t, rec.Header().Get(restapi.HeaderRequestID))
}

// TestRoundTrip drives the subject and teacher controllers against the server over HTTP.
func TestRoundTrip(t *testing.T) {
	ctx := context.Background()
	srv := httptest.NewServer(setup(t, &Options{}, false))
	defer srv.Close()

	conf := &core.Config{}
	conf.API.BaseURL = srv.URL
	client := restapi.New(conf, logsvc.NewLoggerMock())
	notices := notify.NewBuffer()
	deps := core.NewDeps(notices, logsvc.NewLoggerMock())

	subjects := subject.NewListController(client.Subjects(), deps)
	teachers := teacher.NewListController(client.Teachers(), client.Subjects(), client.TeacherSubjects(), deps)

	form := subjects.Add()
	form.SetName("Math")
	require.NoError(t, form.Submit(ctx))
	mathID := subjects.All()[0].ID

	tForm := teachers.Add(ctx)
	tForm.SetSurname("Ivanov")
	tForm.SetName("Ivan")
	tForm.SetSubjectIDs([]int{mathID})
	require.NoError(t, tForm.Submit(ctx))
	require.Len(t, teachers.All(), 1)
	assert.Equal(t, []string{"Math"}, teachers.All()[0].Subjects)

	form = subjects.Add()
	form.SetName("Physics")
	require.NoError(t, form.Submit(ctx))
	require.Len(t, subjects.All(), 2)
	physics := subjects.All()[1]
	assert.Equal(t, "Physics", physics.Name)
	assert.Empty(t, physics.TeacherNames)

	tForm = teachers.Edit(ctx, teachers.All()[0])
	require.Equal(t, []int{mathID}, tForm.SubjectIDs())
	tForm.SetSubjectIDs([]int{mathID, physics.ID})
	require.NoError(t, tForm.Submit(ctx))
	assert.Equal(t, []string{"Math", "Physics"}, teachers.All()[0].Subjects)

	require.NoError(t, subjects.Load(ctx))
	assert.Equal(t, []string{"Ivanov Ivan"}, subjects.All()[1].TeacherNames)

	tForm = teachers.Edit(ctx, teachers.All()[0])
	tForm.SetSubjectIDs([]int{physics.ID})
	require.NoError(t, tForm.Submit(ctx))
	assert.Equal(t, []string{"Physics"}, teachers.All()[0].Subjects)

	require.NoError(t, subjects.Load(ctx))
	assert.Empty(t, subjects.All()[0].TeacherNames)
	assert.Empty(t, notices.Messages(notify.LevelError))
}
