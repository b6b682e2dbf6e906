// Package jira is a small REST client for the parts of Jira the tools use:
// projects, worklogs, issue search and the current user.
package jira

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"jira-tools/internal/logging"

	"github.com/cenkalti/backoff/v4"
	"github.com/pterm/pterm"
	"golang.org/x/oauth2"
)

const (
	apiPrefix  = "/rest/api/2"
	userAgent  = "jira-tools/1.0"
	maxRetries = 3
)

// Options configures a Client.
type Options struct {
	BaseURL  string
	Email    string
	APIToken string

	// HTTPClient overrides the transport. When nil a client is built from the
	// credentials: Basic auth when Email is set, bearer token otherwise.
	HTTPClient *http.Client
	Logger     *pterm.Logger
}

// Client groups the Jira API areas behind one authenticated transport.
type Client struct {
	baseURL string
	email   string
	token   string
	http    *http.Client
	log     *pterm.Logger

	// newBackOff builds the retry policy for one request.
	newBackOff func() backoff.BackOff

	Projects *ProjectService
	Worklogs *WorklogService
	Issues   *IssueService
	Users    *UserService
}

type service struct {
	client *Client
}

// StatusError is returned for non-2xx responses.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("jira returned %d: %s", e.StatusCode, e.Body)
}

func NewClient(opts Options) *Client {
	c := &Client{
		baseURL: strings.TrimRight(opts.BaseURL, "/"),
		email:   opts.Email,
		token:   opts.APIToken,
		http:    opts.HTTPClient,
		log:     logging.OrDiscard(opts.Logger),
		newBackOff: func() backoff.BackOff {
			b := backoff.NewExponentialBackOff()
			b.InitialInterval = 500 * time.Millisecond
			b.MaxElapsedTime = 30 * time.Second
			return b
		},
	}
	if c.http == nil {
		c.http = newHTTPClient(c.email, c.token)
	}

	svc := service{client: c}
	c.Projects = (*ProjectService)(&svc)
	c.Worklogs = (*WorklogService)(&svc)
	c.Issues = (*IssueService)(&svc)
	c.Users = (*UserService)(&svc)
	return c
}

// newHTTPClient returns a bearer-token client when no email is configured.
// Basic auth is applied per request in setAuth.
func newHTTPClient(email, token string) *http.Client {
	if email != "" || token == "" {
		return &http.Client{Timeout: 30 * time.Second}
	}
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token, TokenType: "Bearer"})
	hc := oauth2.NewClient(context.Background(), ts)
	hc.Timeout = 30 * time.Second
	return hc
}

func (c *Client) setAuth(req *http.Request) {
	if c.email == "" {
		return
	}
	auth := base64.StdEncoding.EncodeToString([]byte(c.email + ":" + c.token))
	req.Header.Set("Authorization", "Basic "+auth)
}

// do sends one API request, retrying 429 and 5xx responses, and decodes a
// JSON response into out when out is non-nil.
func (c *Client) do(ctx context.Context, method, path string, payload, out any) error {
	if c.baseURL == "" {
		return fmt.Errorf("jira URL not configured")
	}

	var body []byte
	if payload != nil {
		var err error
		body, err = json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("marshal payload: %w", err)
		}
	}

	var respBody []byte
	operation := func() error {
		var err error
		respBody, err = c.send(ctx, method, c.baseURL+apiPrefix+path, body)
		if err == nil {
			return nil
		}
		var se *StatusError
		if errors.As(err, &se) && !retryable(se.StatusCode) {
			return backoff.Permanent(err)
		}
		if ctx.Err() != nil {
			return backoff.Permanent(err)
		}
		return err
	}
	notify := func(err error, wait time.Duration) {
		c.log.Warn("jira request failed, retrying",
			c.log.Args("method", method, "path", path, "wait", wait.String(), "error", err.Error()))
	}

	policy := backoff.WithContext(backoff.WithMaxRetries(c.newBackOff(), maxRetries), ctx)
	if err := backoff.RetryNotify(operation, policy, notify); err != nil {
		return err
	}

	if out == nil || len(respBody) == 0 {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func (c *Client) send(ctx context.Context, method, endpoint string, body []byte) ([]byte, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	c.setAuth(req)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("jira request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: string(respBody)}
	}
	return respBody, nil
}

func retryable(code int) bool {
	return code == http.StatusTooManyRequests || code >= 500
}
