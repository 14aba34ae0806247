package mockapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/springreviewer/admin/core/teacher"
)

type teacherApi struct {
	repo   teacher.Repository
	linker teacher.Linker
}

func registerTeacherRoutes(app *echo.Echo, repo teacher.Repository, linker teacher.Linker) {
	api := teacherApi{repo: repo, linker: linker}

	g := app.Group("/teachers")
	g.GET("", api.query)
	g.POST("", api.create)
	g.GET("/:id", api.retrieve)
	g.PUT("/:id", api.update)
	g.DELETE("/:id", api.destroy)
	g.POST("/:id/subjects/:subjectId", api.linkSubject)
	g.DELETE("/:id/subjects/:subjectId", api.unlinkSubject)
}

func (api *teacherApi) query(ctx echo.Context) error {
	teachers, err := api.repo.QueryAll(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "querying teachers")
	}
	return ctx.JSON(http.StatusOK, teachers)
}

func (api *teacherApi) retrieve(ctx echo.Context) error {
	id, err := paramID(ctx, "id")
	if err != nil {
		return err
	}
	t, err := api.repo.GetByID(ctx.Request().Context(), id)
	if err != nil {
		return errors.Wrap(err, "finding teacher by ID")
	}
	return ctx.JSON(http.StatusOK, t)
}

func (api *teacherApi) create(ctx echo.Context) error {
	var data teacher.Values
	if err := ctx.Bind(&data); err != nil {
		return bindError(err)
	}
	t, err := api.repo.Create(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating teacher")
	}
	return ctx.JSON(http.StatusCreated, t)
}

func (api *teacherApi) update(ctx echo.Context) error {
	id, err := paramID(ctx, "id")
	if err != nil {
		return err
	}
	var data teacher.Values
	if err = ctx.Bind(&data); err != nil {
		return bindError(err)
	}
	t, err := api.repo.Update(ctx.Request().Context(), id, data)
	if err != nil {
		return errors.Wrap(err, "updating teacher")
	}
	return ctx.JSON(http.StatusOK, t)
}

func (api *teacherApi) destroy(ctx echo.Context) error {
	id, err := paramID(ctx, "id")
	if err != nil {
		return err
	}
	if err = api.repo.Delete(ctx.Request().Context(), id); err != nil {
		return errors.Wrap(err, "deleting teacher")
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *teacherApi) linkIDs(ctx echo.Context) (teacherID, subjectID int, err error) {
	if teacherID, err = paramID(ctx, "id"); err != nil {
		return 0, 0, err
	}
	subjectID, err = paramID(ctx, "subjectId")
	return teacherID, subjectID, err
}

func (api *teacherApi) linkSubject(ctx echo.Context) error {
	teacherID, subjectID, err := api.linkIDs(ctx)
	if err != nil {
		return err
	}
	if err = api.linker.LinkSubject(ctx.Request().Context(), teacherID, subjectID); err != nil {
		return errors.Wrap(err, "linking subject")
	}
	return ctx.NoContent(http.StatusOK)
}

func (api *teacherApi) unlinkSubject(ctx echo.Context) error {
	teacherID, subjectID, err := api.linkIDs(ctx)
	if err != nil {
		return err
	}
	if err = api.linker.UnlinkSubject(ctx.Request().Context(), teacherID, subjectID); err != nil {
		return errors.Wrap(err, "unlinking subject")
	}
	return ctx.NoContent(http.StatusNoContent)
}
