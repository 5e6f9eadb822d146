package resthttp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/sirupsen/logrus"
)

// Error an error response of the api
type Error struct {
	Status int    `json:"-"`
	Code   int    `json:"code"`
	Msg    string `json:"msg"`
	Hint   string `json:"hint,omitempty"`
}

func (e *Error) Error() string {
	return fmt.Sprintf("[%d] %d %s", e.Status, e.Code, e.Msg)
}

// Client api client
type Client struct {
	client *resty.Client
}

// New new api client
func New(endpoint string) *Client {
	c := resty.New().
		SetHostURL(strings.TrimSuffix(endpoint, "/")).
		SetHeader("Content-Type", "application/json").
		SetHeader("Charset", "utf-8").
		SetTimeout(10 * time.Second)

	return &Client{client: c}
}

// Get get resource, the response data is decoded into out
func (c *Client) Get(ctx context.Context, path string, query map[string]string, out interface{}) error {
	req := c.request(ctx).SetQueryParams(query)
	resp, err := req.Get(path)
	if err != nil {
		return err
	}

	return decodeResponse(resp, out)
}

// Post post body, the response data is decoded into out
func (c *Client) Post(ctx context.Context, path string, body interface{}, out interface{}) error {
	req := c.request(ctx)
	if body != nil {
		req = req.SetBody(body)
	}

	resp, err := req.Post(path)
	if err != nil {
		return err
	}

	return decodeResponse(resp, out)
}

func (c *Client) request(ctx context.Context) *resty.Request {
	return c.client.R().SetContext(ctx)
}

func decodeResponse(resp *resty.Response, out interface{}) error {
	if resp.IsError() {
		e := &Error{Status: resp.StatusCode()}
		if err := json.Unmarshal(resp.Body(), e); err != nil || e.Msg == "" {
			e.Msg = strings.TrimSpace(string(resp.Body()))
		}

		logrus.Debugln("resthttp:", resp.Request.Method, resp.Request.URL, e)
		return e
	}

	var body struct {
		Data json.RawMessage `json:"data"`
	}

	if err := json.Unmarshal(resp.Body(), &body); err != nil {
		return err
	}

	if out == nil || len(body.Data) == 0 {
		return nil
	}

	return json.Unmarshal(body.Data, out)
}
