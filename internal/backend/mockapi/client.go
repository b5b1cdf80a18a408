// Package mockapi implements the service.Service interface over the REST
// list/task API (the hosted mock API or `todolist serve`).
package mockapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/charmbracelet/log"
	"google.golang.org/api/googleapi"

	"todolist/internal/config"
	"todolist/internal/logging"
	"todolist/internal/service"
)

// maxErrorBody limits how much of an error response is quoted in messages.
const maxErrorBody = 200

// Client implements service.Service over HTTP.
type Client struct {
	baseURL string
	http    *http.Client
	timeout time.Duration
	log     *log.Logger
}

// New creates a client for the API configured in cfg.
func New(cfg *config.Config, logger *log.Logger) (*Client, error) {
	return NewWithHTTPClient(cfg.APIURL, cfg.Timeout, http.DefaultClient, logger)
}

// NewWithHTTPClient creates a client with a custom HTTP client (for testing).
func NewWithHTTPClient(baseURL string, timeout time.Duration, httpClient *http.Client, logger *log.Logger) (*Client, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	u, err := url.Parse(baseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid api url: %q", baseURL)
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		baseURL: baseURL,
		http:    httpClient,
		timeout: timeout,
		log:     logging.OrDiscard(logger),
	}, nil
}

// ListLists returns all lists in API order.
func (c *Client) ListLists(ctx context.Context) ([]service.List, error) {
	var lists []service.List
	if err := c.do(ctx, http.MethodGet, "/list", nil, &lists); err != nil {
		return nil, err
	}
	return lists, nil
}

// GetList returns a single list.
func (c *Client) GetList(ctx context.Context, listID string) (service.List, error) {
	var list service.List
	if err := c.do(ctx, http.MethodGet, listPath(listID), nil, &list); err != nil {
		return service.List{}, err
	}
	return list, nil
}

// CreateList creates a new list.
func (c *Client) CreateList(ctx context.Context, title string) (service.List, error) {
	var list service.List
	body := struct {
		Title string `json:"title"`
	}{Title: title}
	if err := c.do(ctx, http.MethodPost, "/list", body, &list); err != nil {
		return service.List{}, err
	}
	return list, nil
}

// DeleteList deletes a list by ID.
func (c *Client) DeleteList(ctx context.Context, listID string) error {
	return c.do(ctx, http.MethodDelete, listPath(listID), nil, nil)
}

// ListTasks returns the tasks of a list. A 404 comes back wrapping
// service.ErrNotFound; deciding that it means "no tasks" is up to the caller.
func (c *Client) ListTasks(ctx context.Context, listID string) ([]service.Task, error) {
	var tasks []service.Task
	if err := c.do(ctx, http.MethodGet, tasksPath(listID), nil, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// GetTask returns a single task.
func (c *Client) GetTask(ctx context.Context, listID, taskID string) (service.Task, error) {
	var task service.Task
	if err := c.do(ctx, http.MethodGet, taskPath(listID, taskID), nil, &task); err != nil {
		return service.Task{}, err
	}
	return task, nil
}

// CreateTask creates a new task in the specified list.
func (c *Client) CreateTask(ctx context.Context, listID string, in service.TaskInput) (service.Task, error) {
	var task service.Task
	if err := c.do(ctx, http.MethodPost, tasksPath(listID), in, &task); err != nil {
		return service.Task{}, err
	}
	return task, nil
}

// UpdateTask replaces a task with a full record.
func (c *Client) UpdateTask(ctx context.Context, listID, taskID string, task service.Task) (service.Task, error) {
	var updated service.Task
	if err := c.do(ctx, http.MethodPut, taskPath(listID, taskID), task, &updated); err != nil {
		return service.Task{}, err
	}
	return updated, nil
}

// DeleteTask deletes a task.
func (c *Client) DeleteTask(ctx context.Context, listID, taskID string) error {
	return c.do(ctx, http.MethodDelete, taskPath(listID, taskID), nil, nil)
}

func listPath(listID string) string {
	return "/list/" + url.PathEscape(listID)
}

func tasksPath(listID string) string {
	return listPath(listID) + "/tasks"
}

func taskPath(listID, taskID string) string {
	return tasksPath(listID) + "/" + url.PathEscape(taskID)
}

// do sends one request and decodes a JSON response into out (when non-nil).
func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Debug("request failed", "method", method, "path", path, "err", err)
		return wrapError(err)
	}
	defer googleapi.CloseBody(resp)
	c.log.Debug("request", "method", method, "path", path, "status", resp.StatusCode, "took", time.Since(start))

	if err := googleapi.CheckResponse(resp); err != nil {
		return wrapError(err)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}

// wrapError maps transport and HTTP errors to user-facing errors.
func wrapError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("request timed out: %w", err)
	}

	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		if apiErr.Code == http.StatusNotFound {
			return service.ErrNotFound
		}
		msg := truncate(strings.TrimSpace(apiErr.Body), maxErrorBody)
		if msg == "" {
			msg = http.StatusText(apiErr.Code)
		}
		return fmt.Errorf("server returned %d: %s", apiErr.Code, msg)
	}

	return err
}

// truncate cuts s to at most n bytes without splitting a rune.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n] + "..."
}
