package echoapi

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/springreviewer/admin/core"
	"github.com/springreviewer/admin/core/review"
)

const confirmParam = "confirm"

// queryInt parses the optional integer query param name; nil when absent.
func queryInt(ctx echo.Context, name string) (*int, error) {
	s := strings.TrimSpace(ctx.QueryParam(name))
	if s == "" {
		return nil, nil
	}
	i, err := strconv.Atoi(s)
	if err != nil {
		return nil, core.NewValidationError(nil, core.FieldError{Field: name, Error: fmt.Sprintf("%s must be a number", name)})
	}
	return &i, nil
}

func paramID(ctx echo.Context) (int, error) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return 0, errHttpNotFound
	}
	return id, nil
}

// confirmed reports errConfirmRequired unless the request carries confirm=true.
func confirmed(ctx echo.Context) error {
	if ok, _ := strconv.ParseBool(ctx.QueryParam(confirmParam)); !ok {
		return errConfirmRequired
	}
	return nil
}

func bindReviewFilter(ctx echo.Context) (review.Filter, error) {
	var f review.Filter
	var err error
	if f.AuthorID, err = queryInt(ctx, "authorId"); err != nil {
		return f, err
	}
	if f.TeacherID, err = queryInt(ctx, "teacherId"); err != nil {
		return f, err
	}
	f.SubjectID, err = queryInt(ctx, "subjectId")
	return f, err
}

func bindSearchParams(ctx echo.Context) (review.SearchParams, error) {
	p := review.SearchParams{
		StartDate:      ctx.QueryParam("startDate"),
		EndDate:        ctx.QueryParam("endDate"),
		TeacherSurname: ctx.QueryParam("teacherSurname"),
		SubjectName:    ctx.QueryParam("subjectName"),
	}
	var err error
	p.MinGrade, err = queryInt(ctx, "minGrade")
	return p, err
}
