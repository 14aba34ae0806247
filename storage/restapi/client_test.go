package restapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/springreviewer/admin/core"
	"github.com/springreviewer/admin/core/review"
	"github.com/springreviewer/admin/core/subject"
	"github.com/springreviewer/admin/core/teacher"
	"github.com/springreviewer/admin/core/user"
	logsvc "github.com/springreviewer/admin/services/logger"
)

type recorded struct {
	method string
	path   string
	query  map[string]string
	header http.Header
	body   map[string]interface{}
}

// newTestClient starts a server answering every request with status and payload.
func newTestClient(t *testing.T, status int, payload interface{}) (*Client, *[]recorded) {
	var reqs []recorded
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := recorded{method: r.Method, path: r.URL.Path, header: r.Header.Clone(), query: map[string]string{}}
		for k := range r.URL.Query() {
			rec.query[k] = r.URL.Query().Get(k)
		}
		_ = json.NewDecoder(r.Body).Decode(&rec.body)
		reqs = append(reqs, rec)

		if payload == nil {
			w.WriteHeader(status)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(payload)
	}))
	t.Cleanup(srv.Close)

	conf := &core.Config{}
	conf.API.BaseURL = srv.URL
	conf.API.Token = "s3cr3t"
	conf.API.UserAgent = "reviewer-test"
	return New(conf, logsvc.NewLoggerMock()), &reqs
}

func TestClient_Headers(t *testing.T) {
	c, reqs := newTestClient(t, http.StatusOK, []user.User{{ID: 1, Username: "alice"}})

	users, err := c.Users().QueryAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []user.User{{ID: 1, Username: "alice"}}, users)

	require.Len(t, *reqs, 1)
	rec := (*reqs)[0]
	assert.Equal(t, http.MethodGet, rec.method)
	assert.Equal(t, "/users", rec.path)
	assert.Equal(t, "Bearer s3cr3t", rec.header.Get("Authorization"))
	assert.Equal(t, "reviewer-test", rec.header.Get("User-Agent"))
	assert.NotEmpty(t, rec.header.Get(HeaderRequestID))
}

func TestClient_Errors(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		payload  interface{}
		wantMsg  string
		notFound bool
	}{
		{"not found with message", http.StatusNotFound, map[string]string{"message": "User not found"}, "User not found", true},
		{"spring default body", http.StatusInternalServerError, map[string]string{"error": "Internal Server Error"}, "Internal Server Error", false},
		{"no body", http.StatusBadRequest, nil, "", false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c, _ := newTestClient(t, tc.status, tc.payload)

			_, err := c.Users().GetByID(context.Background(), 7)
			require.Error(t, err)
			var apiErr *core.APIError
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, tc.status, apiErr.Status)
			assert.Equal(t, tc.wantMsg, apiErr.Message)
			assert.Equal(t, tc.notFound, core.IsNotFound(err))
		})
	}
}

func TestClient_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()
	conf := &core.Config{}
	conf.API.BaseURL = srv.URL
	c := New(conf, logsvc.NewLoggerMock())

	_, err := c.Subjects().QueryAll(context.Background())
	require.Error(t, err)
	assert.Equal(t, 0, core.StatusCode(err))
	assert.False(t, core.IsNotFound(err))
}

func TestReviewRepository_Search(t *testing.T) {
	c, reqs := newTestClient(t, http.StatusOK, []review.Review{})
	minGrade := 7

	reviews, err := c.Reviews().Search(context.Background(), review.SearchParams{
		StartDate:      "2024-01-01",
		TeacherSurname: "Ivanov",
		MinGrade:       &minGrade,
	})
	require.NoError(t, err)
	assert.Empty(t, reviews)

	rec := (*reqs)[0]
	assert.Equal(t, "/reviews/search", rec.path)
	assert.Equal(t, map[string]string{
		"startDate":      "2024-01-01",
		"teacherSurname": "Ivanov",
		"minGrade":       "7",
	}, rec.query)
}

func TestReviewRepository_Create(t *testing.T) {
	c, reqs := newTestClient(t, http.StatusCreated, review.Review{ID: 3, Grade: 9})
	uid, tid, sid := 1, 2, 4

	r, err := c.Reviews().Create(context.Background(), review.Values{
		UserID: &uid, TeacherID: &tid, SubjectID: &sid, Date: "2024-03-01", Grade: 9,
	})
	require.NoError(t, err)
	assert.Equal(t, 3, r.ID)

	rec := (*reqs)[0]
	assert.Equal(t, http.MethodPost, rec.method)
	assert.Equal(t, "/reviews", rec.path)
	assert.Equal(t, map[string]interface{}{
		"userId": 1.0, "teacherId": 2.0, "subjectId": 4.0, "date": "2024-03-01", "grade": 9.0, "comment": "",
	}, rec.body)
}

func TestRepositories_Paths(t *testing.T) {
	ctx := context.Background()
	tests := []struct {
		name   string
		call   func(c *Client) error
		method string
		path   string
	}{
		{"user by username", func(c *Client) error { _, err := c.Users().GetByUsername(ctx, "bob"); return err }, http.MethodGet, "/users/username/bob"},
		{"update subject", func(c *Client) error { _, err := c.Subjects().Update(ctx, 5, subject.Values{Name: "Physics"}); return err }, http.MethodPut, "/subjects/5"},
		{"delete teacher", func(c *Client) error { return c.Teachers().Delete(ctx, 9) }, http.MethodDelete, "/teachers/9"},
		{"link subject", func(c *Client) error { return c.TeacherSubjects().LinkSubject(ctx, 2, 3) }, http.MethodPost, "/teachers/2/subjects/3"},
		{"unlink subject", func(c *Client) error { return c.TeacherSubjects().UnlinkSubject(ctx, 2, 3) }, http.MethodDelete, "/teachers/2/subjects/3"},
		{"reviews by user", func(c *Client) error { _, err := c.Reviews().QueryByUser(ctx, 4); return err }, http.MethodGet, "/reviews/user/4"},
		{"reviews by teacher", func(c *Client) error { _, err := c.Reviews().QueryByTeacher(ctx, 8); return err }, http.MethodGet, "/reviews/teacher/8"},
		{"delete review", func(c *Client) error { return c.Reviews().Delete(ctx, 11) }, http.MethodDelete, "/reviews/11"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c, reqs := newTestClient(t, http.StatusOK, nil)
			require.NoError(t, tc.call(c))
			require.Len(t, *reqs, 1)
			assert.Equal(t, tc.method, (*reqs)[0].method)
			assert.Equal(t, tc.path, (*reqs)[0].path)
		})
	}
}

func TestTeacherRepository_Update(t *testing.T) {
	c, reqs := newTestClient(t, http.StatusOK, teacher.Teacher{ID: 2, Surname: "Petrov", Subjects: []string{"Math"}})

	got, err := c.Teachers().Update(context.Background(), 2, teacher.Values{Surname: "Petrov", Name: "Ivan"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Math"}, got.Subjects)
	assert.Equal(t, "Petrov", (*reqs)[0].body["surname"])
}
