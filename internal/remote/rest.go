package remote

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/userconsole/internal/common"
	"github.com/dmitrijs2005/userconsole/internal/models"
	"github.com/go-resty/resty/v2"
)

// Upstream login reason strings.
const (
	reasonUserNotFound    = "user not found"
	reasonInvalidPassword = "invalid password"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string `json:"token"`
}

// errorResponse is the upstream error body, e.g. {"error":"user not found"}.
type errorResponse struct {
	Error string `json:"error"`
}

type updateResponse struct {
	models.User
	UpdatedAt string `json:"updatedAt"`
}

// RESTClient implements Client over HTTP+JSON.
type RESTClient struct {
	rest *resty.Client
}

// Option customizes a RESTClient.
type Option func(c *resty.Client)

// WithAPIKey sends key in the x-api-key header on every request.
func WithAPIKey(key string) Option {
	return func(c *resty.Client) {
		if key != "" {
			c.SetHeader(common.APIKeyHeaderName, key)
		}
	}
}

// WithTimeout bounds every request. Zero means no timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *resty.Client) {
		c.SetTimeout(d)
	}
}

// NewRESTClient builds a client for the API rooted at baseURL, e.g.
// "https://reqres.in/api".
func NewRESTClient(baseURL string, opts ...Option) *RESTClient {
	c := resty.New()
	c.SetBaseURL(strings.TrimRight(baseURL, "/"))
	c.SetHeader("Content-Type", "application/json")
	c.SetHeader("Accept", "application/json")
	c.SetHeader("User-Agent", "userconsole/1.0")
	c.SetRetryCount(0)

	for _, opt := range opts {
		opt(c)
	}
	return &RESTClient{rest: c}
}

func (c *RESTClient) Login(ctx context.Context, email, password string) (string, error) {
	var ok loginResponse
	var fail errorResponse

	resp, err := c.rest.R().
		SetContext(ctx).
		SetBody(loginRequest{Email: email, Password: password}).
		SetResult(&ok).
		SetError(&fail).
		Post("/login")
	if err != nil {
		return "", mapTransportError(err)
	}

	if resp.IsError() {
		return "", mapLoginError(resp.StatusCode(), fail.Error)
	}
	if ok.Token == "" {
		return "", fmt.Errorf("%w: empty token", common.ErrMalformedResponse)
	}
	return ok.Token, nil
}

func (c *RESTClient) ListUsers(ctx context.Context, page int) (*models.UserList, error) {
	var list models.UserList
	var fail errorResponse

	resp, err := c.rest.R().
		SetContext(ctx).
		SetQueryParam("page", strconv.Itoa(page)).
		SetResult(&list).
		SetError(&fail).
		Get("/users")
	if err != nil {
		return nil, mapTransportError(err)
	}
	if resp.IsError() {
		return nil, statusError(resp.StatusCode(), fail.Error)
	}
	if list.TotalPages < 0 {
		return nil, fmt.Errorf("%w: total_pages=%d", common.ErrMalformedResponse, list.TotalPages)
	}
	return &list, nil
}

func (c *RESTClient) UpdateUser(ctx context.Context, id int, patch models.UserPatch) (*models.User, error) {
	var updated updateResponse
	var fail errorResponse

	resp, err := c.rest.R().
		SetContext(ctx).
		SetPathParam("id", strconv.Itoa(id)).
		SetBody(patch).
		SetResult(&updated).
		SetError(&fail).
		Put("/users/{id}")
	if err != nil {
		return nil, mapTransportError(err)
	}
	if resp.IsError() {
		return nil, statusError(resp.StatusCode(), fail.Error)
	}
	u := updated.User
	u.ID = id
	return &u, nil
}

func (c *RESTClient) DeleteUser(ctx context.Context, id int) error {
	var fail errorResponse

	resp, err := c.rest.R().
		SetContext(ctx).
		SetPathParam("id", strconv.Itoa(id)).
		SetError(&fail).
		Delete("/users/{id}")
	if err != nil {
		return mapTransportError(err)
	}
	if resp.IsError() {
		return statusError(resp.StatusCode(), fail.Error)
	}
	return nil
}

func mapTransportError(err error) error {
	if errors.Is(err, context.Canceled) {
		return err
	}
	return fmt.Errorf("%w: %v", common.ErrUnavailable, err)
}

func mapLoginError(status int, reason string) error {
	switch strings.ToLower(strings.TrimSpace(reason)) {
	case reasonUserNotFound:
		return common.ErrUserNotFound
	case reasonInvalidPassword:
		return common.ErrInvalidPassword
	}
	if status >= http.StatusInternalServerError {
		return statusError(status, reason)
	}
	if reason == "" {
		return common.ErrInvalidCredentials
	}
	return fmt.Errorf("%w: %s", common.ErrInvalidCredentials, reason)
}

func statusError(status int, reason string) error {
	if reason == "" {
		return fmt.Errorf("%w: %d", common.ErrUnexpectedStatus, status)
	}
	return fmt.Errorf("%w: %d %s", common.ErrUnexpectedStatus, status, reason)
}
