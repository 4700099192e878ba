package client

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

	"github.com/dmitrijs2005/contactkeeper/internal/client/models"
	"github.com/dmitrijs2005/contactkeeper/internal/common"
	"github.com/dmitrijs2005/contactkeeper/internal/logging"
)

// DefaultBaseURL is used when no override is configured.
const DefaultBaseURL = "http://localhost:5000/api"

// maxBodySize bounds how much of a response is read.
const maxBodySize = 1 << 20

type HTTPClient struct {
	baseURL   string
	http      *http.Client
	log       logging.Logger
	requestID func() string
}

var _ Client = (*HTTPClient)(nil)

type Option func(*HTTPClient)

// WithHTTPClient replaces the underlying *http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *HTTPClient) { c.http = hc }
}

// WithTimeout bounds every request, connection included.
func WithTimeout(d time.Duration) Option {
	return func(c *HTTPClient) { c.http.Timeout = d }
}

func WithLogger(l logging.Logger) Option {
	return func(c *HTTPClient) { c.log = l }
}

// NewHTTPClient builds a client for baseURL, e.g. "http://localhost:5000/api".
// An empty baseURL selects DefaultBaseURL.
func NewHTTPClient(baseURL string, opts ...Option) *HTTPClient {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &HTTPClient{
		baseURL:   strings.TrimRight(baseURL, "/"),
		http:      &http.Client{},
		log:       logging.Discard(),
		requestID: func() string { return uuid.NewString() },
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the normalized API root.
func (c *HTTPClient) BaseURL() string {
	return c.baseURL
}

type errorBody struct {
	Message string `json:"message"`
}

func messageFrom(body []byte) string {
	var eb errorBody
	if err := json.Unmarshal(body, &eb); err == nil && eb.Message != "" {
		return eb.Message
	}
	return GenericMessage
}

// do sends one JSON request and decodes a 2xx body into out when out is
// non-nil. token, when set, is sent as a bearer credential.
func (c *HTTPClient) do(ctx context.Context, method, path, token string, in, out any) error {
	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode %s %s: %w", method, path, err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("build %s %s: %w", method, path, err)
	}

	reqID := c.requestID()
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set(common.RequestIDHeaderName, reqID)
	if token != "" {
		req.Header.Set(common.AuthorizationHeaderName, common.BearerPrefix+token)
	}

	log := c.log.With("request_id", reqID, "method", method, "path", path)
	started := time.Now()

	resp, err := c.http.Do(req)
	if err != nil {
		log.Warn(ctx, "request failed", "error", err, "elapsed", time.Since(started))
		return &NetworkError{Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		log.Warn(ctx, "reading response failed", "status", resp.StatusCode, "error", err)
		return &NetworkError{Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		authErr := &AuthError{Status: resp.StatusCode, Message: messageFrom(data)}
		log.Info(ctx, "request rejected", "status", resp.StatusCode, "elapsed", time.Since(started))
		return authErr
	}

	log.Debug(ctx, "request succeeded", "status", resp.StatusCode, "elapsed", time.Since(started))

	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return &AuthError{Status: resp.StatusCode, Message: GenericMessage, Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string `json:"token"`
}

// Login exchanges credentials for a bearer token.
func (c *HTTPClient) Login(ctx context.Context, email, password string) (string, error) {
	var resp loginResponse
	if err := c.do(ctx, http.MethodPost, "/auth/login", "", loginRequest{Email: email, Password: password}, &resp); err != nil {
		return "", err
	}
	if resp.Token == "" {
		return "", &AuthError{Status: http.StatusOK, Message: GenericMessage, Err: fmt.Errorf("login response has no token")}
	}
	return resp.Token, nil
}

type registerRequest struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
}

// Register creates the account; the server then mails a one-time code.
func (c *HTTPClient) Register(ctx context.Context, email, username, password string) error {
	return c.do(ctx, http.MethodPost, "/auth/register", "", registerRequest{Email: email, Username: username, Password: password}, nil)
}

type verifyOTPRequest struct {
	Email string `json:"email"`
	OTP   string `json:"otp"`
}

func (c *HTTPClient) VerifyOTP(ctx context.Context, email, code string) error {
	return c.do(ctx, http.MethodPost, "/auth/verify-otp", "", verifyOTPRequest{Email: email, OTP: code}, nil)
}

type resendOTPRequest struct {
	Email string `json:"email"`
}

func (c *HTTPClient) ResendOTP(ctx context.Context, email string) error {
	return c.do(ctx, http.MethodPost, "/auth/resend-verification-email", "", resendOTPRequest{Email: email}, nil)
}

func (c *HTTPClient) GetUserDetails(ctx context.Context, token string) (*models.UserDetails, error) {
	var d models.UserDetails
	if err := c.do(ctx, http.MethodGet, "/users/details", token, nil, &d); err != nil {
		return nil, err
	}
	return &d, nil
}

func (c *HTTPClient) ListContacts(ctx context.Context, token string) ([]models.Contact, error) {
	contacts := []models.Contact{}
	if err := c.do(ctx, http.MethodGet, "/contacts", token, nil, &contacts); err != nil {
		return nil, err
	}
	return contacts, nil
}

func contactPath(id string) string {
	return "/contacts/" + url.PathEscape(id)
}

func (c *HTTPClient) GetContact(ctx context.Context, token, id string) (*models.Contact, error) {
	var ct models.Contact
	if err := c.do(ctx, http.MethodGet, contactPath(id), token, nil, &ct); err != nil {
		return nil, err
	}
	return &ct, nil
}

func (c *HTTPClient) CreateContact(ctx context.Context, token string, in models.ContactInput) (*models.Contact, error) {
	var ct models.Contact
	if err := c.do(ctx, http.MethodPost, "/contacts", token, in, &ct); err != nil {
		return nil, err
	}
	return &ct, nil
}

func (c *HTTPClient) UpdateContact(ctx context.Context, token, id string, in models.ContactInput) (*models.Contact, error) {
	var ct models.Contact
	if err := c.do(ctx, http.MethodPut, contactPath(id), token, in, &ct); err != nil {
		return nil, err
	}
	return &ct, nil
}
