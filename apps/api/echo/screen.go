package echoapi

import (
	"github.com/labstack/echo/v4"

	"github.com/springreviewer/admin/core"
	"github.com/springreviewer/admin/core/review"
	"github.com/springreviewer/admin/services/notify"
)

const contextNoticesKey = "notices"

// env holds the deps shared by every request.
type env struct {
	deps core.Deps
}

func newEnv(d Deps) env {
	var deps core.Deps
	if d.Validate != nil && d.Translator != nil {
		deps = core.Deps{Validate: d.Validate, Translator: d.Translator, Notifier: d.Notifier, Logger: d.Logger}
	} else {
		deps = core.NewDeps(d.Notifier, d.Logger)
	}
	return env{deps: deps}
}

// screen is the view state of one request: controllers built on it report to their own notice buffer.
type screen struct {
	deps    core.Deps
	notices *notify.Buffer
}

func (e env) screen(ctx echo.Context) *screen {
	buf := notify.NewBuffer()
	ctx.Set(contextNoticesKey, buf)

	var n core.Notifier = buf
	if e.deps.Notifier != nil {
		n = notify.Multi{buf, e.deps.Notifier}
	}
	return &screen{deps: e.deps.WithNotifier(n), notices: buf}
}

type listResponse struct {
	Items         interface{}     `json:"items"`
	Empty         string          `json:"empty,omitempty"` // empty-state text
	Title         string          `json:"title,omitempty"`
	Label         *review.Label   `json:"label,omitempty"`
	Notifications []notify.Notice `json:"notifications"`
}

func newListResponse[T any](scr *screen, items []T, emptyText string) listResponse {
	if items == nil {
		items = []T{}
	}
	resp := listResponse{Items: items, Notifications: scr.notices.Notices()}
	if len(items) == 0 {
		resp.Empty = emptyText
	}
	return resp
}
