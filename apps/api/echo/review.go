package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/springreviewer/admin/core"
	"github.com/springreviewer/admin/core/review"
)

type reviewApi struct {
	env
	repo     review.Repository
	users    review.UserSource
	teachers review.TeacherSource
	subjects review.SubjectSource
}

func registerReviewAPI(g *echo.Group, jwt echo.MiddlewareFunc, e env, deps Deps) {
	api := reviewApi{env: e, repo: deps.Reviews, users: deps.Users, teachers: deps.Teachers, subjects: deps.Subjects}
	admin := adminMiddleware()

	rg := g.Group("/reviews", jwt, admin)
	rg.GET("", api.query)
	rg.GET("/search", api.search)
	rg.POST("", api.create)
	rg.PUT("/:id", api.update)
	rg.DELETE("/:id", api.destroy)

	g.GET("/users/:id/reviews", api.queryByUser, jwt, admin)
	g.GET("/teachers/:id/reviews", api.queryByTeacher, jwt, admin)
}

func (api *reviewApi) controller(scr *screen) *review.ListController {
	return review.NewListController(api.repo, api.users, api.teachers, api.subjects, scr.deps)
}

// list loads scope s and renders it. A 404 is rendered as an empty list with its label state.
func (api *reviewApi) list(ctx echo.Context, s review.Scope, f review.Filter) error {
	scr := api.screen(ctx)
	c := api.controller(scr)
	if err := c.Load(ctx.Request().Context(), s); err != nil && !core.IsNotFound(err) {
		return errors.Wrapf(err, "loading reviews (%s)", s)
	}
	c.SetFilter(f)
	return ctx.JSON(http.StatusOK, api.render(scr, c))
}

func (api *reviewApi) render(scr *screen, c *review.ListController) listResponse {
	resp := newListResponse(scr, c.Displayed(), c.EmptyText())
	resp.Title = c.Title()
	if k := c.Scope().Kind; k == review.KindUser || k == review.KindTeacher {
		label := c.Label()
		resp.Label = &label
	}
	return resp
}

// Handlers

func (api *reviewApi) query(ctx echo.Context) error {
	f, err := bindReviewFilter(ctx)
	if err != nil {
		return err
	}
	return api.list(ctx, review.ScopeAll, f)
}

func (api *reviewApi) search(ctx echo.Context) error {
	p, err := bindSearchParams(ctx)
	if err != nil {
		return err
	}
	return api.list(ctx, review.ScopeSearch(p), review.Filter{})
}

func (api *reviewApi) queryByUser(ctx echo.Context) error {
	id, err := paramID(ctx)
	if err != nil {
		return err
	}
	return api.list(ctx, review.ScopeUser(id), review.Filter{})
}

func (api *reviewApi) queryByTeacher(ctx echo.Context) error {
	id, err := paramID(ctx)
	if err != nil {
		return err
	}
	return api.list(ctx, review.ScopeTeacher(id), review.Filter{})
}

func (api *reviewApi) create(ctx echo.Context) error {
	var data review.Values
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to review.Values")
	}

	scr := api.screen(ctx)
	c := api.controller(scr)
	form := c.Add(ctx.Request().Context())
	if data.Date == "" {
		data.Date = form.Values().Date // today
	}
	form.SetValues(data)
	if err := form.Submit(ctx.Request().Context()); err != nil {
		return errors.Wrap(err, "creating review")
	}
	return ctx.JSON(http.StatusCreated, api.render(scr, c))
}

func (api *reviewApi) update(ctx echo.Context) error {
	r, err := api.retrieve(ctx)
	if err != nil {
		return err
	}
	var data review.Values
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to review.Values")
	}

	scr := api.screen(ctx)
	c := api.controller(scr)
	form, err := c.Edit(ctx.Request().Context(), r)
	if err != nil {
		return errors.Wrapf(err, "editing review %d", r.ID)
	}
	form.SetValues(data)
	if err = form.Submit(ctx.Request().Context()); err != nil {
		return errors.Wrap(err, "updating review")
	}
	return ctx.JSON(http.StatusOK, api.render(scr, c))
}

func (api *reviewApi) destroy(ctx echo.Context) error {
	if err := confirmed(ctx); err != nil {
		return err
	}
	r, err := api.retrieve(ctx)
	if err != nil {
		return err
	}

	scr := api.screen(ctx)
	c := api.controller(scr)
	if _, err = c.Delete(ctx.Request().Context(), r, core.AlwaysConfirm); err != nil {
		return errors.Wrap(err, "deleting review")
	}
	return ctx.JSON(http.StatusOK, api.render(scr, c))
}

func (api *reviewApi) retrieve(ctx echo.Context) (review.Review, error) {
	id, err := paramID(ctx)
	if err != nil {
		return review.Review{}, err
	}
	r, err := api.repo.GetByID(ctx.Request().Context(), id)
	if err != nil {
		return review.Review{}, errors.Wrap(err, "finding review by ID")
	}
	return r, nil
}
