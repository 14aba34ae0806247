package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/springreviewer/admin/core"
	"github.com/springreviewer/admin/core/subject"
)

type subjectApi struct {
	env
	repo subject.Repository
}

func registerSubjectAPI(g *echo.Group, jwt echo.MiddlewareFunc, e env, repo subject.Repository) {
	api := subjectApi{env: e, repo: repo}

	ug := g.Group("/subjects", jwt, adminMiddleware())
	ug.GET("", api.query)
	ug.POST("", api.create)
	ug.PUT("/:id", api.update)
	ug.DELETE("/:id", api.destroy)
}

// Handlers

func (api *subjectApi) query(ctx echo.Context) error {
	scr := api.screen(ctx)
	c := subject.NewListController(api.repo, scr.deps)
	if err := c.Load(ctx.Request().Context()); err != nil {
		return errors.Wrap(err, "loading subjects")
	}
	c.SetFilter(subject.Filter{Search: ctx.QueryParam("search")})
	return ctx.JSON(http.StatusOK, newListResponse(scr, c.Displayed(), c.EmptyText()))
}

func (api *subjectApi) create(ctx echo.Context) error {
	var data subject.Values
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to subject.Values")
	}

	scr := api.screen(ctx)
	c := subject.NewListController(api.repo, scr.deps)
	form := c.Add()
	form.SetValues(data)
	if err := form.Submit(ctx.Request().Context()); err != nil {
		return errors.Wrap(err, "creating subject")
	}
	return ctx.JSON(http.StatusCreated, newListResponse(scr, c.Displayed(), c.EmptyText()))
}

func (api *subjectApi) update(ctx echo.Context) error {
	sub, err := api.retrieve(ctx)
	if err != nil {
		return err
	}
	var data subject.Values
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to subject.Values")
	}

	scr := api.screen(ctx)
	c := subject.NewListController(api.repo, scr.deps)
	form := c.Edit(sub)
	form.SetValues(data)
	if err = form.Submit(ctx.Request().Context()); err != nil {
		return errors.Wrap(err, "updating subject")
	}
	return ctx.JSON(http.StatusOK, newListResponse(scr, c.Displayed(), c.EmptyText()))
}

func (api *subjectApi) destroy(ctx echo.Context) error {
	if err := confirmed(ctx); err != nil {
		return err
	}
	sub, err := api.retrieve(ctx)
	if err != nil {
		return err
	}

	scr := api.screen(ctx)
	c := subject.NewListController(api.repo, scr.deps)
	if _, err = c.Delete(ctx.Request().Context(), sub, core.AlwaysConfirm); err != nil {
		return errors.Wrap(err, "deleting subject")
	}
	return ctx.JSON(http.StatusOK, newListResponse(scr, c.Displayed(), c.EmptyText()))
}

func (api *subjectApi) retrieve(ctx echo.Context) (subject.Subject, error) {
	id, err := paramID(ctx)
	if err != nil {
		return subject.Subject{}, err
	}
	sub, err := api.repo.GetByID(ctx.Request().Context(), id)
	if err != nil {
		return subject.Subject{}, errors.Wrap(err, "finding subject by ID")
	}
	return sub, nil
}
