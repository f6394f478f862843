package factory

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/pizza-service/internal/domain"
)

// ErrRejected is returned when the factory answers with a non-success status.
var ErrRejected = errors.New("factory rejected order")

// Receipt is what the factory returns for an order.
type Receipt struct {
	ReportURL string `json:"reportUrl"`
	JWT       string `json:"jwt"`
}

// RejectedError carries the factory status and whatever receipt it returned.
type RejectedError struct {
	Status  int
	Receipt Receipt
}

func (e *RejectedError) Error() string {
	return fmt.Sprintf("%v: status %d", ErrRejected, e.Status)
}

func (e *RejectedError) Unwrap() error {
	return ErrRejected
}

// Client forwards orders to the factory. Each order is a single call with no retry.
type Client struct {
	baseURL string
	apiKey  string
	timeout time.Duration
}

// NewClient builds a factory client.
func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), apiKey: apiKey, timeout: timeout}
}

// BaseURL returns the configured factory address.
func (c *Client) BaseURL() string {
	return c.baseURL
}

type orderPayload struct {
	Diner domain.Diner  `json:"diner"`
	Order *domain.Order `json:"order"`
}

// Submit posts the order and returns the factory receipt.
func (c *Client) Submit(ctx context.Context, diner domain.Diner, order *domain.Order) (*Receipt, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	agent := fiber.Post(c.baseURL + "/api/order")
	agent.Set(fiber.HeaderAuthorization, "Bearer "+c.apiKey)
	agent.JSON(orderPayload{Diner: diner, Order: order})
	if c.timeout > 0 {
		agent.Timeout(c.timeout)
	}

	status, body, errs := agent.Bytes()
	if len(errs) > 0 {
		return nil, fmt.Errorf("call factory: %w", errors.Join(errs...))
	}

	var receipt Receipt
	if len(body) > 0 {
		if err := json.Unmarshal(body, &receipt); err != nil && status < 300 {
			return nil, fmt.Errorf("decode factory response: %w", err)
		}
	}
	if status < 200 || status >= 300 {
		return nil, &RejectedError{Status: status, Receipt: receipt}
	}
	return &receipt, nil
}
