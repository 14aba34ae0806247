package mockapi

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/springreviewer/admin/core"
	"github.com/springreviewer/admin/core/review"
)

type reviewApi struct {
	repo review.Repository
}

func registerReviewRoutes(app *echo.Echo, repo review.Repository) {
	api := reviewApi{repo: repo}

	g := app.Group("/reviews")
	g.GET("", api.query)
	g.POST("", api.create)
	g.GET("/search", api.search)
	g.GET("/user/:id", api.queryByUser)
	g.GET("/teacher/:id", api.queryByTeacher)
	g.GET("/:id", api.retrieve)
	g.PUT("/:id", api.update)
	g.DELETE("/:id", api.destroy)
}

func (api *reviewApi) query(ctx echo.Context) error {
	reviews, err := api.repo.QueryAll(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "querying reviews")
	}
	return ctx.JSON(http.StatusOK, reviews)
}

func (api *reviewApi) queryByUser(ctx echo.Context) error {
	id, err := paramID(ctx, "id")
	if err != nil {
		return err
	}
	reviews, err := api.repo.QueryByUser(ctx.Request().Context(), id)
	if err != nil {
		return errors.Wrap(err, "querying reviews by user")
	}
	return ctx.JSON(http.StatusOK, reviews)
}

func (api *reviewApi) queryByTeacher(ctx echo.Context) error {
	id, err := paramID(ctx, "id")
	if err != nil {
		return err
	}
	reviews, err := api.repo.QueryByTeacher(ctx.Request().Context(), id)
	if err != nil {
		return errors.Wrap(err, "querying reviews by teacher")
	}
	return ctx.JSON(http.StatusOK, reviews)
}

func (api *reviewApi) search(ctx echo.Context) error {
	params := review.SearchParams{
		StartDate:      ctx.QueryParam("startDate"),
		EndDate:        ctx.QueryParam("endDate"),
		TeacherSurname: ctx.QueryParam("teacherSurname"),
		SubjectName:    ctx.QueryParam("subjectName"),
	}
	if s := ctx.QueryParam("minGrade"); s != "" {
		minGrade, err := strconv.Atoi(s)
		if err != nil {
			return &core.APIError{Status: http.StatusBadRequest, Message: fmt.Sprintf("invalid minGrade: %q", s)}
		}
		params.MinGrade = &minGrade
	}

	reviews, err := api.repo.Search(ctx.Request().Context(), params)
	if err != nil {
		return errors.Wrap(err, "searching reviews")
	}
	return ctx.JSON(http.StatusOK, reviews)
}

func (api *reviewApi) retrieve(ctx echo.Context) error {
	id, err := paramID(ctx, "id")
	if err != nil {
		return err
	}
	r, err := api.repo.GetByID(ctx.Request().Context(), id)
	if err != nil {
		return errors.Wrap(err, "finding review by ID")
	}
	return ctx.JSON(http.StatusOK, r)
}

func (api *reviewApi) create(ctx echo.Context) error {
	var data review.Values
	if err := ctx.Bind(&data); err != nil {
		return bindError(err)
	}
	r, err := api.repo.Create(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating review")
	}
	return ctx.JSON(http.StatusCreated, r)
}

func (api *reviewApi) update(ctx echo.Context) error {
	id, err := paramID(ctx, "id")
	if err != nil {
		return err
	}
	var data review.Values
	if err = ctx.Bind(&data); err != nil {
		return bindError(err)
	}
	r, err := api.repo.Update(ctx.Request().Context(), id, data)
	if err != nil {
		return errors.Wrap(err, "updating review")
	}
	return ctx.JSON(http.StatusOK, r)
}

func (api *reviewApi) destroy(ctx echo.Context) error {
	id, err := paramID(ctx, "id")
	if err != nil {
		return err
	}
	if err = api.repo.Delete(ctx.Request().Context(), id); err != nil {
		return errors.Wrap(err, "deleting review")
	}
	return ctx.NoContent(http.StatusNoContent)
}
