// Package restapi implements the entity repositories over the HTTP API of the server of record.
package restapi

import (
	"context"
	"strconv"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/springreviewer/admin/core"
	"github.com/springreviewer/admin/core/review"
	"github.com/springreviewer/admin/core/subject"
	"github.com/springreviewer/admin/core/teacher"
	"github.com/springreviewer/admin/core/user"
)

const HeaderRequestID = "X-Request-ID"

// Client is the API gateway shared by every repository of this package.
// No timeout is set unless configured; calls end with the transport or their context.
type Client struct {
	rc     *resty.Client
	logger core.Logger
}

func New(conf *core.Config, logger core.Logger) *Client {
	rc := resty.New().
		SetBaseURL(conf.API.BaseURL).
		SetHeader("Accept", "application/json").
		SetHeader("User-Agent", conf.API.UserAgent)
	if conf.API.Token != "" {
		rc.SetAuthToken(conf.API.Token)
	}
	if conf.API.Timeout > 0 {
		rc.SetTimeout(conf.API.Timeout)
	}
	rc.OnBeforeRequest(func(_ *resty.Client, req *resty.Request) error {
		if req.Header.Get(HeaderRequestID) == "" {
			req.SetHeader(HeaderRequestID, uuid.NewString())
		}
		return nil
	})
	return &Client{rc: rc, logger: logger}
}

func (c *Client) Users() user.Repository          { return NewUserRepository(c) }
func (c *Client) Subjects() subject.Repository    { return NewSubjectRepository(c) }
func (c *Client) Teachers() teacher.Repository    { return NewTeacherRepository(c) }
func (c *Client) TeacherSubjects() teacher.Linker { return NewTeacherSubjectLinker(c) }
func (c *Client) Reviews() review.Repository      { return NewReviewRepository(c) }

// errorBody is the error payload of the server of record.
type errorBody struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

func (eb *errorBody) text() string {
	if eb == nil {
		return ""
	}
	if eb.Message != "" {
		return eb.Message
	}
	return eb.Error
}

func (c *Client) request(ctx context.Context) *resty.Request {
	return c.rc.R().SetContext(ctx).SetError(&errorBody{})
}

// execute sends req and normalizes every failure into a *core.APIError.
func (c *Client) execute(req *resty.Request, method, url string) error {
	resp, err := req.Execute(method, url)
	if err != nil {
		c.logger.Warn("api: "+method+" "+url, err, map[string]interface{}{"requestId": req.Header.Get(HeaderRequestID)})
		return &core.APIError{Err: errors.Wrapf(err, "%s %s", method, url)}
	}
	if resp.IsError() {
		eb, _ := resp.Error().(*errorBody)
		return &core.APIError{Status: resp.StatusCode(), Message: eb.text()}
	}
	return nil
}

func (c *Client) get(ctx context.Context, url string, result interface{}, pathParams map[string]string) error {
	req := c.request(ctx).SetResult(result).SetPathParams(pathParams)
	return c.execute(req, resty.MethodGet, url)
}

func (c *Client) send(ctx context.Context, method, url string, body, result interface{}, pathParams map[string]string) error {
	req := c.request(ctx).SetPathParams(pathParams)
	if body != nil {
		req.SetBody(body)
	}
	if result != nil {
		req.SetResult(result)
	}
	return c.execute(req, method, url)
}

func id(i int) map[string]string {
	return map[string]string{"id": strconv.Itoa(i)}
}
