package mockapi

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/springreviewer/admin/core"
)

// errorResponse mirrors the default error body of the upstream API.
type errorResponse struct {
	Timestamp string `json:"timestamp"`
	Status    int    `json:"status"`
	Error     string `json:"error"`
	Message   string `json:"message"`
	Path      string `json:"path"`
}

func newHTTPErrorHandler(logger core.Logger) echo.HTTPErrorHandler {
	return func(err error, ctx echo.Context) {
		code := http.StatusInternalServerError
		message := http.StatusText(code)

		var apiErr *core.APIError
		var httpErr *echo.HTTPError
		switch {
		case errors.As(err, &apiErr) && apiErr.Status != 0:
			code, message = apiErr.Status, apiErr.Message
		case errors.As(err, &httpErr):
			code, message = httpErr.Code, fmt.Sprint(httpErr.Message)
		default: // any other error is a server error
			logger.Error(message, err, map[string]interface{}{"path": ctx.Request().URL.Path})
		}
		if ctx.Echo().Debug {
			message = err.Error()
		}

		if !ctx.Response().Committed {
			if ctx.Request().Method == http.MethodHead {
				err = ctx.NoContent(code)
			} else {
				err = ctx.JSON(code, errorResponse{
					Timestamp: time.Now().UTC().Format(time.RFC3339),
					Status:    code,
					Error:     http.StatusText(code),
					Message:   message,
					Path:      ctx.Request().URL.Path,
				})
			}
			if err != nil {
				ctx.Echo().Logger.Error(err)
			}
		}
	}
}

func paramID(ctx echo.Context, name string) (int, error) {
	id, err := strconv.Atoi(ctx.Param(name))
	if err != nil {
		return 0, &core.APIError{Status: http.StatusBadRequest, Message: fmt.Sprintf("invalid %s: %q", name, ctx.Param(name))}
	}
	return id, nil
}

func bindError(err error) error {
	return &core.APIError{Status: http.StatusBadRequest, Message: "malformed request body", Err: err}
}
