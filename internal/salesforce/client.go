package salesforce

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

	"go.uber.org/zap"
)

// Credentials are the inputs to the OAuth 2.0 username-password flow.
type Credentials struct {
	Username      string
	Password      string
	SecurityToken string
	ClientID      string
	ClientSecret  string
}

// Client is a minimal Salesforce REST client: token login, SOQL query, and
// generic sobject create. It is safe for sequential use after Login.
type Client struct {
	http        *http.Client
	loginURL    string
	apiVersion  string
	creds       Credentials
	log         *zap.Logger
	instanceURL string
	accessToken string
}

type ClientOption func(*Client)

func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) { c.http = hc }
}

func WithClientLogger(log *zap.Logger) ClientOption {
	return func(c *Client) { c.log = log }
}

func NewClient(loginURL, apiVersion string, creds Credentials, opts ...ClientOption) *Client {
	c := &Client{
		http:       &http.Client{Timeout: 30 * time.Second},
		loginURL:   strings.TrimRight(loginURL, "/"),
		apiVersion: apiVersion,
		creds:      creds,
		log:        zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	InstanceURL string `json:"instance_url"`
	TokenType   string `json:"token_type"`
}

// Login exchanges the credentials for an access token and records the org's
// instance URL for subsequent calls.
func (c *Client) Login(ctx context.Context) error {
	form := url.Values{}
	form.Set("grant_type", "password")
	form.Set("client_id", c.creds.ClientID)
	form.Set("client_secret", c.creds.ClientSecret)
	form.Set("username", c.creds.Username)
	form.Set("password", c.creds.Password+c.creds.SecurityToken)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.loginURL+"/services/oauth2/token", strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("salesforce login: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("salesforce login: status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var tok tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tok); err != nil {
		return fmt.Errorf("salesforce login: decode token: %w", err)
	}
	c.accessToken = tok.AccessToken
	c.instanceURL = strings.TrimRight(tok.InstanceURL, "/")
	c.log.Info("authenticated with salesforce", zap.String("instance_url", c.instanceURL))
	return nil
}

// Query runs a SOQL query.
func (c *Client) Query(ctx context.Context, soql string) (*QueryResult, error) {
	endpoint := fmt.Sprintf("%s/services/data/v%s/query?q=%s",
		c.instanceURL, c.apiVersion, url.QueryEscape(soql))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	var out QueryResult
	if err := c.do(req, http.StatusOK, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateSObject creates a record of the named object type from a field map.
func (c *Client) CreateSObject(ctx context.Context, objectType string, fields map[string]any) (*SaveResult, error) {
	body, err := json.Marshal(fields)
	if err != nil {
		return nil, err
	}
	endpoint := fmt.Sprintf("%s/services/data/v%s/sobjects/%s",
		c.instanceURL, c.apiVersion, url.PathEscape(objectType))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	var out SaveResult
	if err := c.do(req, http.StatusCreated, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// do sends req with auth headers and decodes a JSON body into out, turning
// unexpected statuses into APIError.
func (c *Client) do(req *http.Request, wantStatus int, out any) error {
	req.Header.Set("Authorization", "Bearer "+c.accessToken)
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("salesforce: %s %s: %w", req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()
	c.log.Debug("salesforce request",
		zap.String("method", req.Method),
		zap.String("path", req.URL.Path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("duration", time.Since(start)))

	if resp.StatusCode != wantStatus {
		return decodeAPIError(resp)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("salesforce: decode response: %w", err)
	}
	return nil
}

func decodeAPIError(resp *http.Response) error {
	apiErr := &APIError{StatusCode: resp.StatusCode}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return apiErr
	}
	if err := json.Unmarshal(body, &apiErr.Errors); err != nil {
		// not the standard error array, keep the raw body
		apiErr.Errors = []restError{{Message: strings.TrimSpace(string(body))}}
	}
	return apiErr
}
