package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/springreviewer/admin/core"
	"github.com/springreviewer/admin/core/user"
)

type userApi struct {
	env
	repo user.Repository
}

func registerUserAPI(g *echo.Group, jwt echo.MiddlewareFunc, e env, repo user.Repository) {
	api := userApi{env: e, repo: repo}

	ug := g.Group("/users", jwt, adminMiddleware())
	ug.GET("", api.query)
	ug.POST("", api.create)
	ug.PUT("/:id", api.update)
	ug.DELETE("/:id", api.destroy)
}

// Handlers

func (api *userApi) query(ctx echo.Context) error {
	scr := api.screen(ctx)
	c := user.NewListController(api.repo, scr.deps)
	if err := c.Load(ctx.Request().Context()); err != nil {
		return errors.Wrap(err, "loading users")
	}
	c.SetFilter(user.Filter{Search: ctx.QueryParam("search")})
	return ctx.JSON(http.StatusOK, newListResponse(scr, c.Displayed(), c.EmptyText()))
}

func (api *userApi) create(ctx echo.Context) error {
	var data user.Values
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to user.Values")
	}

	scr := api.screen(ctx)
	c := user.NewListController(api.repo, scr.deps)
	form := c.Add()
	form.SetValues(data)
	if err := form.Submit(ctx.Request().Context()); err != nil {
		return errors.Wrap(err, "creating user")
	}
	return ctx.JSON(http.StatusCreated, newListResponse(scr, c.Displayed(), c.EmptyText()))
}

func (api *userApi) update(ctx echo.Context) error {
	usr, err := api.retrieve(ctx)
	if err != nil {
		return err
	}
	var data user.Values
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to user.Values")
	}

	scr := api.screen(ctx)
	c := user.NewListController(api.repo, scr.deps)
	form := c.Edit(usr)
	form.SetValues(data)
	if err = form.Submit(ctx.Request().Context()); err != nil {
		return errors.Wrap(err, "updating user")
	}
	return ctx.JSON(http.StatusOK, newListResponse(scr, c.Displayed(), c.EmptyText()))
}

func (api *userApi) destroy(ctx echo.Context) error {
	if err := confirmed(ctx); err != nil {
		return err
	}
	usr, err := api.retrieve(ctx)
	if err != nil {
		return err
	}

	scr := api.screen(ctx)
	c := user.NewListController(api.repo, scr.deps)
	if _, err = c.Delete(ctx.Request().Context(), usr, core.AlwaysConfirm); err != nil {
		return errors.Wrap(err, "deleting user")
	}
	return ctx.JSON(http.StatusOK, newListResponse(scr, c.Displayed(), c.EmptyText()))
}

func (api *userApi) retrieve(ctx echo.Context) (user.User, error) {
	id, err := paramID(ctx)
	if err != nil {
		return user.User{}, err
	}
	usr, err := api.repo.GetByID(ctx.Request().Context(), id)
	if err != nil {
		return user.User{}, errors.Wrap(err, "finding user by ID")
	}
	return usr, nil
}
