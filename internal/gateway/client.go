// Package gateway is the typed HTTP wrapper over the school-records
// service. Every authorized call attaches the current credential; failures
// are normalized into a single Error shape and never retried. A 401 from
// any authorized call clears the session store before the error is
// surfaced, so one expired token logs the whole client out.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mbarros/escolactl/internal/logging"
	"github.com/mbarros/escolactl/internal/models"
	"github.com/mbarros/escolactl/internal/session"
)

// TokenResponse is the login payload.
type TokenResponse struct {
	AccessToken string         `json:"access_token"`
	TokenType   string         `json:"token_type"`
	User        models.Profile `json:"user"`
}

// Message is the acknowledgment shape of mutation endpoints. For student
// deletion it distinguishes "marked inactive" from "permanently deleted".
type Message struct {
	Message string `json:"message"`
	Success bool   `json:"success"`
}

type Client struct {
	http    *http.Client
	baseURL string
	session *session.Store
	log     logging.Logger

	// newRequestID is a seam so tests can pin the X-Request-Id header.
	newRequestID func() string
}

func New(baseURL string, timeout time.Duration, sess *session.Store, log logging.Logger) *Client {
	return &Client{
		http:         &http.Client{Timeout: timeout},
		baseURL:      strings.TrimRight(baseURL, "/"),
		session:      sess,
		log:          log,
		newRequestID: uuid.NewString,
	}
}

// Auth

// Login posts the OAuth2 form the service expects and returns the issued
// token. Invalid credentials surface as ErrUnauthenticated.
func (c *Client) Login(ctx context.Context, email, password string) (TokenResponse, error) {
	form := url.Values{}
	form.Set("username", email)
	form.Set("password", password)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/auth/login",
		strings.NewReader(form.Encode()))
	if err != nil {
		return TokenResponse{}, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	var out TokenResponse
	if err := c.send(req, &out, false); err != nil {
		return TokenResponse{}, err
	}
	return out, nil
}

func (c *Client) Register(ctx context.Context, in models.RegisterInput) (Message, error) {
	var out Message
	err := c.do(ctx, http.MethodPost, "/auth/register", in, &out, false)
	return out, err
}

func (c *Client) Me(ctx context.Context) (models.Profile, error) {
	var out models.Profile
	err := c.do(ctx, http.MethodGet, "/auth/me", nil, &out, true)
	return out, err
}

// Health probes the service without credentials; used by the connectivity
// watcher only.
func (c *Client) Health(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/health", nil, nil, false)
}

// Classes

func (c *Client) ListClasses(ctx context.Context) ([]models.ClassGroup, error) {
	var out []models.ClassGroup
	err := c.do(ctx, http.MethodGet, "/turmas", nil, &out, true)
	return out, err
}

func (c *Client) GetClass(ctx context.Context, id int) (models.ClassGroup, error) {
	var out models.ClassGroup
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/turmas/%d", id), nil, &out, true)
	return out, err
}

func (c *Client) CreateClass(ctx context.Context, in models.ClassInput) (models.ClassGroup, error) {
	var out models.ClassGroup
	err := c.do(ctx, http.MethodPost, "/turmas", in, &out, true)
	return out, err
}

func (c *Client) UpdateClass(ctx context.Context, id int, in models.ClassInput) (models.ClassGroup, error) {
	var out models.ClassGroup
	err := c.do(ctx, http.MethodPut, fmt.Sprintf("/turmas/%d", id), in, &out, true)
	return out, err
}

func (c *Client) DeleteClass(ctx context.Context, id int) (Message, error) {
	var out Message
	err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/turmas/%d", id), nil, &out, true)
	return out, err
}

// Students

func (c *Client) ListStudents(ctx context.Context) ([]models.Student, error) {
	var out []models.Student
	err := c.do(ctx, http.MethodGet, "/alunos", nil, &out, true)
	return out, err
}

func (c *Client) GetStudent(ctx context.Context, id int) (models.Student, error) {
	var out models.Student
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/alunos/%d", id), nil, &out, true)
	return out, err
}

func (c *Client) CreateStudent(ctx context.Context, in models.StudentInput) (models.Student, error) {
	var out models.Student
	err := c.do(ctx, http.MethodPost, "/alunos", in, &out, true)
	return out, err
}

func (c *Client) UpdateStudent(ctx context.Context, id int, in models.StudentInput) (models.Student, error) {
	var out models.Student
	err := c.do(ctx, http.MethodPut, fmt.Sprintf("/alunos/%d", id), in, &out, true)
	return out, err
}

// DeleteStudent lets the service pick the action: an active student is
// marked inactive, an already-inactive one is removed for good. The
// returned message says which happened.
func (c *Client) DeleteStudent(ctx context.Context, id int) (Message, error) {
	var out Message
	err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/alunos/%d", id), nil, &out, true)
	return out, err
}

// Accounts

func (c *Client) ListAccounts(ctx context.Context) ([]models.Account, error) {
	var out []models.Account
	err := c.do(ctx, http.MethodGet, "/users", nil, &out, true)
	return out, err
}

func (c *Client) GetAccount(ctx context.Context, id int) (models.Account, error) {
	var out models.Account
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/users/%d", id), nil, &out, true)
	return out, err
}

func (c *Client) CreateAccount(ctx context.Context, in models.AccountInput) (models.Account, error) {
	var out models.Account
	err := c.do(ctx, http.MethodPost, "/users", in, &out, true)
	return out, err
}

func (c *Client) UpdateAccount(ctx context.Context, id int, in models.AccountInput) (models.Account, error) {
	var out models.Account
	err := c.do(ctx, http.MethodPut, fmt.Sprintf("/users/%d", id), in, &out, true)
	return out, err
}

func (c *Client) DeleteAccount(ctx context.Context, id int) (Message, error) {
	var out Message
	err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/users/%d", id), nil, &out, true)
	return out, err
}

// Statistics

func (c *Client) Statistics(ctx context.Context) (models.Statistics, error) {
	var out models.Statistics
	err := c.do(ctx, http.MethodGet, "/statistics", nil, &out, true)
	return out, err
}

// plumbing

// do issues a JSON request and decodes the JSON response into out (when
// non-nil).
func (c *Client) do(ctx context.Context, method, path string, in, out any, authed bool) error {
	var body io.Reader
	if in != nil {
		buf := &bytes.Buffer{}
		if err := json.NewEncoder(buf).Encode(in); err != nil {
			return err
		}
		body = buf
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.send(req, out, authed)
}

// send applies auth, performs the request, and normalizes the outcome.
// Calls needing auth fail locally when no credential is live, without
// touching the network.
func (c *Client) send(req *http.Request, out any, authed bool) error {
	if authed {
		cred, ok := c.session.Current()
		if !ok {
			return &Error{Kind: ErrUnauthenticated, Detail: "no credential"}
		}
		req.Header.Set("Authorization", cred.AuthorizationValue())
	}
	req.Header.Set("X-Request-Id", c.newRequestID())
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return &Error{Kind: ErrUnreachable, cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusUnauthorized {
		// Only a rejected credential invalidates the session. A 401 from a
		// credential-less call (login with a wrong password, a health probe)
		// must leave any stored credential alone.
		if authed {
			c.session.Clear()
			c.log.Warn(req.Context(), "credential rejected, session cleared",
				"method", req.Method, "path", req.URL.Path)
		}
		return &Error{Kind: ErrUnauthenticated, Status: resp.StatusCode, Detail: readDetail(resp.Body)}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &Error{Kind: ErrRemoteRejected, Status: resp.StatusCode, Detail: readDetail(resp.Body)}
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &Error{Kind: ErrRemoteRejected, Status: resp.StatusCode, Detail: "malformed response", cause: err}
	}
	return nil
}

// readDetail extracts the service's {"detail": "..."} message, falling back
// to the raw body.
func readDetail(r io.Reader) string {
	data, err := io.ReadAll(io.LimitReader(r, 4096))
	if err != nil {
		return ""
	}
	var payload struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(data, &payload); err == nil && payload.Detail != "" {
		return payload.Detail
	}
	return strings.TrimSpace(string(data))
}
