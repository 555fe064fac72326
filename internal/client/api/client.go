// Package api is an HTTP client for the KnotHost account and contact API.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/knothost/siteapi/internal/common"
)

var ErrUnavailable = errors.New("server unavailable")

// APIError is a non-2xx response. Message is the server's "message" field.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("server returned %d", e.Status)
	}
	return e.Message
}

type SignupRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

type ContactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone,omitempty"`
	Details string `json:"details"`
}

type ContactResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	ID      string `json:"id"`
}

type Profile struct {
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type emailBody struct {
	Email string `json:"email"`
}

type messageBody struct {
	Message string `json:"message"`
}

type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

func (c *Client) Signup(ctx context.Context, req SignupRequest) (string, error) {
	var out messageBody
	if err := c.do(ctx, http.MethodPost, "/api/auth/signup", "", req, &out); err != nil {
		return "", err
	}
	return out.Message, nil
}

func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	var out struct {
		Token string `json:"token"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", "", credentials{email, password}, &out); err != nil {
		return "", err
	}
	return out.Token, nil
}

func (c *Client) Forgot(ctx context.Context, email string) (string, error) {
	var out messageBody
	if err := c.do(ctx, http.MethodPost, "/api/auth/forgot", "", emailBody{email}, &out); err != nil {
		return "", err
	}
	return out.Message, nil
}

func (c *Client) CheckEmail(ctx context.Context, email string) (bool, error) {
	var out struct {
		Exists bool `json:"exists"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/auth/check-email", "", emailBody{email}, &out); err != nil {
		return false, err
	}
	return out.Exists, nil
}

func (c *Client) Reset(ctx context.Context, email, password string) error {
	return c.do(ctx, http.MethodPost, "/api/auth/reset", "", credentials{email, password}, nil)
}

func (c *Client) Me(ctx context.Context, token string) (*Profile, error) {
	var out Profile
	if err := c.do(ctx, http.MethodGet, "/api/auth/me", token, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Contact(ctx context.Context, req ContactRequest) (*ContactResult, error) {
	var out ContactResult
	if err := c.do(ctx, http.MethodPost, "/api/contact", "", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// do sends body as JSON and decodes a 2xx response into out (when non-nil).
// Transport failures match ErrUnavailable; other statuses become *APIError.
func (c *Client) do(ctx context.Context, method, path, token string, body, out any) error {
	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		rdr = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rdr)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set(common.AuthorizationHeaderName, common.BearerPrefix+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var mb messageBody
		_ = json.NewDecoder(resp.Body).Decode(&mb)
		return &APIError{Status: resp.StatusCode, Message: mb.Message}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
