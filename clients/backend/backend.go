package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
)

// ErrInvalidResponse marks a backend payload that decoded but failed the
// schema check. Handlers treat it the same as any backend failure; it exists
// so malformed data never reaches message rendering.
var ErrInvalidResponse = errors.New("backend: invalid response payload")

// APIError is a non-2xx backend reply. Message, when present, came from the
// backend's error body and is safe to relay to the user verbatim.
type APIError struct {
	StatusCode int
	Message    string `json:"message"`
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("backend: status %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("backend: status %d", e.StatusCode)
}

// Plan is a purchasable subscription tier. Plans carry no stable id; the
// 1-based position in the catalog is the user-facing selector.
type Plan struct {
	Name  string `json:"name" validate:"required"`
	Price int64  `json:"price" validate:"gte=0"`
}

// SubscriptionStatus is the backend-computed state for one telegram user.
type SubscriptionStatus struct {
	IsActive      bool `json:"isActive"`
	DaysRemaining int  `json:"daysRemaining" validate:"gte=0"`
}

// PaymentSession is a checkout reference the user visits to pay.
type PaymentSession struct {
	PaymentURL string `json:"paymentUrl" validate:"required,url"`
}

// Client talks to the subscription backend. Fire-and-await: no retries,
// no caching, errors bubble to the caller.
type Client struct {
	baseURL    string
	httpClient *http.Client
	validate   *validator.Validate
}

func New(baseURL string) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		validate:   validator.New(),
	}
}

func (c *Client) ListPlans(ctx context.Context) ([]Plan, error) {
	body, err := c.do(ctx, http.MethodGet, "/plans", nil)
	if err != nil {
		return nil, err
	}

	var plans []Plan
	if err := json.Unmarshal(body, &plans); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	for i := range plans {
		if err := c.validate.Struct(&plans[i]); err != nil {
			return nil, fmt.Errorf("%w: plan %d: %v", ErrInvalidResponse, i+1, err)
		}
	}
	return plans, nil
}

func (c *Client) GetStatus(ctx context.Context, telegramID int64) (*SubscriptionStatus, error) {
	body, err := c.do(ctx, http.MethodGet, fmt.Sprintf("/plans/status/%d", telegramID), nil)
	if err != nil {
		return nil, err
	}

	var status SubscriptionStatus
	if err := json.Unmarshal(body, &status); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	if err := c.validate.Struct(&status); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	return &status, nil
}

func (c *Client) CreatePayment(ctx context.Context, planID int, telegramID int64) (*PaymentSession, error) {
	payload := map[string]any{
		"planId":     planID,
		"telegramId": telegramID,
	}
	body, err := c.do(ctx, http.MethodPost, "/plans/pay", payload)
	if err != nil {
		return nil, err
	}

	var session PaymentSession
	if err := json.Unmarshal(body, &session); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	if err := c.validate.Struct(&session); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	return &session, nil
}

func (c *Client) do(ctx context.Context, method, path string, payload any) ([]byte, error) {
	var reqBody io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("backend: marshal request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("backend: build request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("backend: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("backend: read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		// the backend sends {"message": "..."} on handled errors
		_ = json.Unmarshal(body, apiErr)
		return nil, apiErr
	}
	return body, nil
}
