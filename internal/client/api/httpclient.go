package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/ekodina/vetdesk/internal/client/models"
)

// HTTPClient is the production Client implementation. One instance serves
// both session kinds; the bearer token is attached per request, never stored
// on the transport.
type HTTPClient struct {
	baseURL string
	http    *http.Client
}

// NewHTTPClient builds a client for the backend at baseURL. A trailing slash
// on baseURL is tolerated.
func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// loginRequest matches POST /auth/login. UserType distinguishes the two
// credential populations sharing the endpoint.
type loginRequest struct {
	Identifier string `json:"identifier"`
	Secret     string `json:"password"`
	UserType   string `json:"user_type"`
}

type loginResponse struct {
	AccessToken string          `json:"access_token"`
	Principal   json.RawMessage `json:"principal"`
}

// errorResponse matches the backend's error body.
type errorResponse struct {
	Detail string `json:"detail"`
}

func (c *HTTPClient) LoginClinic(ctx context.Context, identifier, secret string) (string, models.ClinicProfile, error) {
	var profile models.ClinicProfile
	token, err := c.login(ctx, loginRequest{Identifier: identifier, Secret: secret, UserType: "clinic"}, &profile)
	return token, profile, err
}

func (c *HTTPClient) LoginClient(ctx context.Context, identifier, secret string) (string, models.ClientProfile, error) {
	var profile models.ClientProfile
	token, err := c.login(ctx, loginRequest{Identifier: identifier, Secret: secret, UserType: "client"}, &profile)
	return token, profile, err
}

func (c *HTTPClient) login(ctx context.Context, req loginRequest, principal any) (string, error) {
	var resp loginResponse
	if err := c.do(ctx, http.MethodPost, "/auth/login", "", req, &resp); err != nil {
		return "", err
	}
	if resp.AccessToken == "" {
		return "", fmt.Errorf("login response missing access token: %w", ErrUnavailable)
	}
	if err := json.Unmarshal(resp.Principal, principal); err != nil {
		return "", fmt.Errorf("failed to decode principal: %w", err)
	}
	return resp.AccessToken, nil
}

func (c *HTTPClient) ClinicProfile(ctx context.Context, token string) (models.ClinicProfile, error) {
	var profile models.ClinicProfile
	if err := c.do(ctx, http.MethodGet, "/clinic/profile", token, nil, &profile); err != nil {
		return models.ClinicProfile{}, err
	}
	return profile, nil
}

func (c *HTTPClient) ClientProfile(ctx context.Context, token string) (models.ClientProfile, error) {
	var profile models.ClientProfile
	if err := c.do(ctx, http.MethodGet, "/client/profile", token, nil, &profile); err != nil {
		return models.ClientProfile{}, err
	}
	return profile, nil
}

func (c *HTTPClient) Logout(ctx context.Context, token string) error {
	return c.do(ctx, http.MethodPost, "/auth/logout", token, nil, nil)
}

func (c *HTTPClient) Animals(ctx context.Context, token string) ([]models.Animal, error) {
	var animals []models.Animal
	if err := c.do(ctx, http.MethodGet, "/animals", token, nil, &animals); err != nil {
		return nil, err
	}
	return animals, nil
}

func (c *HTTPClient) Appointments(ctx context.Context, token string, filter ListFilter) ([]models.Appointment, error) {
	var appointments []models.Appointment
	if err := c.do(ctx, http.MethodGet, listPath("/appointments", filter), token, nil, &appointments); err != nil {
		return nil, err
	}
	return appointments, nil
}

func (c *HTTPClient) DietLogs(ctx context.Context, token string, filter ListFilter) ([]models.DietLog, error) {
	var diets []models.DietLog
	if err := c.do(ctx, http.MethodGet, listPath("/diets", filter), token, nil, &diets); err != nil {
		return nil, err
	}
	return diets, nil
}

// listPath appends the animal filter as a query parameter. The unscoped
// filter issues the bare path so the backend returns the whole catalog.
func listPath(path string, filter ListFilter) string {
	if filter.Unscoped() {
		return path
	}
	q := url.Values{}
	q.Set("animal_id", strconv.FormatInt(filter.AnimalID, 10))
	return path + "?" + q.Encode()
}

// do issues one JSON request. A non-empty token is attached as a bearer
// credential on this request only. Responses outside 2xx are decoded into
// StatusError; failures before an HTTP response wrap ErrUnavailable.
func (c *HTTPClient) do(ctx context.Context, method, path, token string, in, out any) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var er errorResponse
		_ = json.NewDecoder(resp.Body).Decode(&er)
		return &StatusError{Code: resp.StatusCode, Detail: er.Detail}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
