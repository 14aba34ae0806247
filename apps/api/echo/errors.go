package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"

	"github.com/springreviewer/admin/core"
	"github.com/springreviewer/admin/services/notify"
)

var (
	errUnauthorized    = echo.NewHTTPError(http.StatusUnauthorized, "user not authenticated")
	errHttpForbidden   = echo.NewHTTPError(http.StatusForbidden, "permission denied")
	errHttpNotFound    = echo.NewHTTPError(http.StatusNotFound, "not found")
	errConfirmRequired = echo.NewHTTPError(http.StatusBadRequest, "deletion must be confirmed with confirm=true")
)

// newAppHTTPErrorHandler returns a custom echo.HTTPErrorHandler that knows how to handle our errors.
func newAppHTTPErrorHandler(logger core.Logger) echo.HTTPErrorHandler {
	return func(err error, ctx echo.Context) {
		var code int
		var message interface{}

		switch origErr := errors.Cause(err).(type) {
		case *echo.HTTPError:
			if origErr == middleware.ErrJWTMissing {
				code = http.StatusUnauthorized
				message = origErr.Message
				break
			}
			if origErr.Internal != nil {
				if herr, ok := origErr.Internal.(*echo.HTTPError); ok {
					origErr = herr
				}
			}
			code = origErr.Code
			message = origErr.Message
		case *core.ValidationError:
			if origErr.Fields != nil {
				message = origErr.FieldMap()
			} else {
				message = origErr.Error()
			}
			code = http.StatusBadRequest
		case *core.APIError:
			switch {
			case origErr.Status == http.StatusNotFound:
				code = http.StatusNotFound
			case origErr.Status >= 400 && origErr.Status < 500:
				code = origErr.Status
			default: // the server of record failed or could not be reached
				code = http.StatusBadGateway
				logger.Warn("upstream failure", err, contextOperator(ctx))
			}
			message = core.ErrorMessage(origErr)
		default:
			if origErr == core.ErrIncompleteRecord {
				code = http.StatusUnprocessableEntity
				message = "Not enough data to edit this record."
				break
			}
			// any other error is a server error
			code = http.StatusInternalServerError
			msg := http.StatusText(http.StatusInternalServerError)
			message = msg
			logger.Error(msg, errors.Wrap(err, msg), contextOperator(ctx))
		}

		if ctx.Echo().Debug {
			message = err.Error()
		}
		if m, ok := message.(string); ok {
			body := echo.Map{"error": m}
			if buf, ok := ctx.Get(contextNoticesKey).(*notify.Buffer); ok {
				body["notifications"] = buf.Notices()
			}
			message = body
		}

		// Send response
		if !ctx.Response().Committed {
			if ctx.Request().Method == http.MethodHead { // Issue #608
				err = ctx.NoContent(code)
			} else {
				err = ctx.JSON(code, message)
			}
			if err != nil {
				ctx.Echo().Logger.Error(err)
			}
		}
	}
}
