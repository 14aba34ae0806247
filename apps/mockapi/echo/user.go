package mockapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/springreviewer/admin/core/user"
)

type userApi struct {
	repo user.Repository
}

func registerUserRoutes(app *echo.Echo, repo user.Repository) {
	api := userApi{repo: repo}

	g := app.Group("/users")
	g.GET("", api.query)
	g.POST("", api.create)
	g.GET("/username/:username", api.retrieveByUsername)
	g.GET("/:id", api.retrieve)
	g.PUT("/:id", api.update)
	g.DELETE("/:id", api.destroy)
}

func (api *userApi) query(ctx echo.Context) error {
	users, err := api.repo.QueryAll(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "querying users")
	}
	return ctx.JSON(http.StatusOK, users)
}

func (api *userApi) retrieve(ctx echo.Context) error {
	id, err := paramID(ctx, "id")
	if err != nil {
		return err
	}
	usr, err := api.repo.GetByID(ctx.Request().Context(), id)
	if err != nil {
		return errors.Wrap(err, "finding user by ID")
	}
	return ctx.JSON(http.StatusOK, usr)
}

func (api *userApi) retrieveByUsername(ctx echo.Context) error {
	usr, err := api.repo.GetByUsername(ctx.Request().Context(), ctx.Param("username"))
	if err != nil {
		return errors.Wrap(err, "finding user by username")
	}
	return ctx.JSON(http.StatusOK, usr)
}

func (api *userApi) create(ctx echo.Context) error {
	var data user.Values
	if err := ctx.Bind(&data); err != nil {
		return bindError(err)
	}
	usr, err := api.repo.Create(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating user")
	}
	return ctx.JSON(http.StatusCreated, usr)
}

func (api *userApi) update(ctx echo.Context) error {
	id, err := paramID(ctx, "id")
	if err != nil {
		return err
	}
	var data user.Values
	if err = ctx.Bind(&data); err != nil {
		return bindError(err)
	}
	usr, err := api.repo.Update(ctx.Request().Context(), id, data)
	if err != nil {
		return errors.Wrap(err, "updating user")
	}
	return ctx.JSON(http.StatusOK, usr)
}

func (api *userApi) destroy(ctx echo.Context) error {
	id, err := paramID(ctx, "id")
	if err != nil {
		return err
	}
	if err = api.repo.Delete(ctx.Request().Context(), id); err != nil {
		return errors.Wrap(err, "deleting user")
	}
	return ctx.NoContent(http.StatusNoContent)
}
