// Package hub pkg/hub/client.go provides the client for the external
// home-automation hub's REST API.
package hub

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/hubview/hubview/pkg/models"
	"golang.org/x/time/rate"
)

const (
	requestTimeout = 10 * time.Second

	// Outbound REST ceiling. The dashboard can trigger bursts of state
	// reads; the hub should never see more than this.
	restRatePerSecond = 5
	restBurst         = 10
)

// Client talks to one hub at a fixed address with a fixed token.
// Clients are immutable; changing the connection means building a new
// Client and swapping it into the Handle.
type Client struct {
	address string
	token   string
	rest    *resty.Client
	limiter *rate.Limiter
}

// NewClient creates a hub client for the given address and access token.
func NewClient(address, token string) *Client {
	rest := resty.New().
		SetBaseURL(fmt.Sprintf("http://%s/api", address)).
		SetAuthToken(token).
		SetHeader("Content-Type", "application/json").
		SetTimeout(requestTimeout)

	return &Client{
		address: address,
		token:   token,
		rest:    rest,
		limiter: rate.NewLimiter(rate.Limit(restRatePerSecond), restBurst),
	}
}

// Address returns the hub address this client was built for.
func (c *Client) Address() string {
	return c.address
}

// Token returns the access token this client was built for.
func (c *Client) Token() string {
	return c.token
}

// Matches reports whether the client still corresponds to the given
// connection configuration.
func (c *Client) Matches(address, token string) bool {
	return c.address == address && c.token == token
}

// GetStates fetches the current state of every hub entity in one call.
func (c *Client) GetStates(ctx context.Context) ([]models.StateSnapshot, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	var states []models.StateSnapshot

	resp, err := c.rest.R().
		SetContext(ctx).
		SetResult(&states).
		Get("/states")
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrHubUnreachable, err)
	}

	if resp.IsError() {
		return nil, &Error{Code: resp.StatusCode(), Reason: string(resp.Body())}
	}

	return states, nil
}

// GetState fetches the current state of a single hub entity.
func (c *Client) GetState(ctx context.Context, entityID string) (*models.StateSnapshot, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	var state models.StateSnapshot

	resp, err := c.rest.R().
		SetContext(ctx).
		SetResult(&state).
		Get(fmt.Sprintf("/states/%s", entityID))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrHubUnreachable, err)
	}

	if resp.IsError() {
		return nil, &Error{Code: resp.StatusCode(), Reason: string(resp.Body())}
	}

	return &state, nil
}

// GetConfig fetches the hub's config/health blob. A non-2xx response
// comes back as *Error with the hub's status code and body.
func (c *Client) GetConfig(ctx context.Context) (models.HubConfig, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	var config models.HubConfig

	resp, err := c.rest.R().
		SetContext(ctx).
		SetResult(&config).
		Get("/config")
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrHubUnreachable, err)
	}

	if resp.IsError() {
		return nil, &Error{Code: resp.StatusCode(), Reason: string(resp.Body())}
	}

	return config, nil
}
