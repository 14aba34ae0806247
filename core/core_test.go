package core

import (
	"context"
	"net/http"
	"sync/atomic"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "validation",
			err:  NewValidationError(nil, FieldError{"name", "name is required"}, FieldError{"grade", "grade must be 10 or less"}),
			want: "Invalid data: name is required; grade must be 10 or less",
		},
		{name: "not found", err: errors.Wrap(&APIError{Status: http.StatusNotFound, Message: "Teacher not found"}, "loading"), want: "The requested record was not found."},
		{name: "transport", err: &APIError{Err: errors.New("connection refused")}, want: "Could not reach the server. Check your connection and try again."},
		{name: "server message", err: &APIError{Status: http.StatusConflict, Message: "Username already exists: bob"}, want: "Request failed (409): Username already exists: bob"},
		{name: "bare status", err: &APIError{Status: http.StatusBadGateway}, want: "Request failed with status 502."},
		{name: "other", err: errors.Wrap(errors.New("boom"), "context"), want: "Something went wrong: boom"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ErrorMessage(tt.err))
		})
	}
}

type noticeRecorder struct{ errs []string }

func (r *noticeRecorder) Success(string)   {}
func (r *noticeRecorder) Info(string)      {}
func (r *noticeRecorder) Error(msg string) { r.errs = append(r.errs, msg) }

func TestReportError(t *testing.T) {
	var n noticeRecorder
	ReportError(&n, nil)
	ReportError(nil, errors.New("ignored"))
	ReportError(&n, &APIError{Status: http.StatusNotFound})
	assert.Equal(t, []string{"The requested record was not found."}, n.errs)
}

func TestAPIError(t *testing.T) {
	cause := errors.New("dial tcp: refused")
	assert.Equal(t, "transport: dial tcp: refused", (&APIError{Err: cause}).Error())
	assert.Equal(t, "404 Not Found", (&APIError{Status: 404}).Error())
	assert.Equal(t, "400 bad input", (&APIError{Status: 400, Message: "bad input"}).Error())
	assert.True(t, errors.Is(&APIError{Err: cause}, cause))

	assert.Equal(t, 0, StatusCode(cause))
	assert.Equal(t, 409, StatusCode(errors.Wrap(&APIError{Status: 409}, "creating")))
	assert.True(t, IsNotFound(errors.Wrap(&APIError{Status: 404}, "loading")))
	assert.False(t, IsNotFound(&APIError{Status: 400}))
}

func TestSettleAll(t *testing.T) {
	errFail := errors.New("users failed")
	var calls int32
	errs := SettleAll(context.Background(),
		func(context.Context) error { atomic.AddInt32(&calls, 1); return nil },
		func(context.Context) error { atomic.AddInt32(&calls, 1); return errFail },
		func(context.Context) error { atomic.AddInt32(&calls, 1); return nil },
	)
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls), "a failure does not cancel the other calls")
	assert.Equal(t, []error{nil, errFail, nil}, errs)
	assert.Equal(t, errFail, FirstError(errs))
	assert.NoError(t, FirstError(SettleAll(context.Background())))
}

func TestValidateStruct(t *testing.T) {
	validate := validator.New()
	translator := NewTranslator()
	InitValidators(validate, translator)

	type values struct {
		Surname string `json:"surname" validate:"required,notblank,max=5"`
		Grade   int    `json:"grade" validate:"required,min=1,max=10"`
	}

	tests := []struct {
		name   string
		v      values
		fields []string
		want   map[string]string
	}{
		{name: "valid", v: values{Surname: "Ivan", Grade: 3}},
		{
			name: "missing", v: values{},
			want: map[string]string{"surname": "surname is required", "grade": "grade is required"},
		},
		{name: "blank", v: values{Surname: "   ", Grade: 1}, want: map[string]string{"surname": "surname cannot be blank"}},
		{name: "partial", v: values{Grade: 11}, fields: []string{"Grade"}, want: map[string]string{"grade": "grade must be 10 or less"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateStruct(validate, translator, tt.v, tt.fields...)
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			var vErr *ValidationError
			require.True(t, errors.As(err, &vErr))
			assert.Equal(t, tt.want, vErr.FieldMap())
		})
	}
}

func TestHelpers(t *testing.T) {
	assert.Equal(t, "12.02.2024", DisplayDate("2024-02-12"))
	assert.Equal(t, "N/A", DisplayDate(""))
	assert.Equal(t, "N/A", DisplayDate("12/02/2024"))
	assert.Equal(t, "105", DigitsOnly(" 1a0-5٣"))
	assert.Equal(t, "bob", CleanString("  BOB ", true))
	assert.True(t, ContainsFold("Ivanov Ivan", "IVAN"))
}
