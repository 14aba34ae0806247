package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/springreviewer/admin/core"
	"github.com/springreviewer/admin/core/teacher"
)

type teacherApi struct {
	env
	repo     teacher.Repository
	subjects teacher.SubjectLister
	linker   teacher.Linker
}

// teacherRequest is a teacher body with an optional subject selection.
// A missing subjectIds leaves the links of an edited teacher untouched.
type teacherRequest struct {
	teacher.Values
	SubjectIDs *[]int `json:"subjectIds"`
}

func registerTeacherAPI(g *echo.Group, jwt echo.MiddlewareFunc, e env, repo teacher.Repository, subjects teacher.SubjectLister, linker teacher.Linker) {
	api := teacherApi{env: e, repo: repo, subjects: subjects, linker: linker}

	tg := g.Group("/teachers", jwt, adminMiddleware())
	tg.GET("", api.query)
	tg.POST("", api.create)
	tg.PUT("/:id", api.update)
	tg.DELETE("/:id", api.destroy)
}

func (api *teacherApi) controller(scr *screen) *teacher.ListController {
	return teacher.NewListController(api.repo, api.subjects, api.linker, scr.deps)
}

// Handlers

func (api *teacherApi) query(ctx echo.Context) error {
	subjectID, err := queryInt(ctx, "subjectId")
	if err != nil {
		return err
	}

	scr := api.screen(ctx)
	c := api.controller(scr)
	if err = c.Load(ctx.Request().Context()); err != nil {
		return errors.Wrap(err, "loading teachers")
	}
	c.SetFilter(teacher.Filter{Search: ctx.QueryParam("search"), SubjectID: subjectID})
	return ctx.JSON(http.StatusOK, newListResponse(scr, c.Displayed(), c.EmptyText()))
}

func (api *teacherApi) create(ctx echo.Context) error {
	var data teacherRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to teacherRequest")
	}

	scr := api.screen(ctx)
	c := api.controller(scr)
	form := c.Add(ctx.Request().Context())
	form.SetValues(data.Values)
	if data.SubjectIDs != nil {
		form.SetSubjectIDs(*data.SubjectIDs)
	}
	if err := form.Submit(ctx.Request().Context()); err != nil {
		return errors.Wrap(err, "creating teacher")
	}
	return ctx.JSON(http.StatusCreated, newListResponse(scr, c.Displayed(), c.EmptyText()))
}

func (api *teacherApi) update(ctx echo.Context) error {
	t, err := api.retrieve(ctx)
	if err != nil {
		return err
	}
	var data teacherRequest
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to teacherRequest")
	}

	scr := api.screen(ctx)
	c := api.controller(scr)
	form := c.Edit(ctx.Request().Context(), t)
	form.SetValues(data.Values)
	if data.SubjectIDs != nil {
		form.SetSubjectIDs(*data.SubjectIDs)
	}
	if err = form.Submit(ctx.Request().Context()); err != nil {
		return errors.Wrap(err, "updating teacher")
	}
	return ctx.JSON(http.StatusOK, newListResponse(scr, c.Displayed(), c.EmptyText()))
}

func (api *teacherApi) destroy(ctx echo.Context) error {
	if err := confirmed(ctx); err != nil {
		return err
	}
	t, err := api.retrieve(ctx)
	if err != nil {
		return err
	}

	scr := api.screen(ctx)
	c := api.controller(scr)
	if _, err = c.Delete(ctx.Request().Context(), t, core.AlwaysConfirm); err != nil {
		return errors.Wrap(err, "deleting teacher")
	}
	return ctx.JSON(http.StatusOK, newListResponse(scr, c.Displayed(), c.EmptyText()))
}

func (api *teacherApi) retrieve(ctx echo.Context) (teacher.Teacher, error) {
	id, err := paramID(ctx)
	if err != nil {
		return teacher.Teacher{}, err
	}
	t, err := api.repo.GetByID(ctx.Request().Context(), id)
	if err != nil {
		return teacher.Teacher{}, errors.Wrap(err, "finding teacher by ID")
	}
	return t, nil
}
