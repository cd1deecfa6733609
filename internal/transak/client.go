package transak

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/rampworks/ramp-gateway/internal/monitor"
	"github.com/rampworks/ramp-gateway/internal/serve/httpclient"
)

// ClientInterface defines the calls made to the Transak API gateway.
type ClientInterface interface {
	GetAccessToken(ctx context.Context) (*AccessToken, error)
	RefreshAccessToken(ctx context.Context, refreshToken string) (*RefreshedToken, error)
	CreateWidgetURL(ctx context.Context, accessToken string, request WidgetURLRequest) (*WidgetURLResult, error)
	Environment() Environment
}

// Client forwards calls to the Transak API gateway.
type Client struct {
	environment    Environment
	apiKey         string
	apiSecret      string
	httpClient     httpclient.HTTPClientInterface
	monitorService monitor.MonitorServiceInterface
}

// ClientOptions configures a Client. Missing credentials are not rejected here: the calls that need them fail with
// a ConfigError instead, so the server can start before it is fully configured.
type ClientOptions struct {
	Environment    Environment
	APIKey         string
	APISecret      string
	HTTPClient     httpclient.HTTPClientInterface
	MonitorService monitor.MonitorServiceInterface
}

func (opts ClientOptions) Validate() error {
	if opts.Environment == "" {
		return fmt.Errorf("environment is required")
	}
	if opts.Environment != Production && opts.Environment != Staging {
		return fmt.Errorf("invalid environment %q", opts.Environment)
	}
	return nil
}

// NewClient creates a new instance of the Transak Client.
func NewClient(opts ClientOptions) (*Client, error) {
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("validating client options: %w", err)
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = httpclient.DefaultClient()
	}

	return &Client{
		environment:    opts.Environment,
		apiKey:         opts.APIKey,
		apiSecret:      opts.APISecret,
		httpClient:     httpClient,
		monitorService: opts.MonitorService,
	}, nil
}

func (c *Client) Environment() Environment {
	return c.environment
}

// GetAccessToken exchanges the configured API key and secret for an access token.
func (c *Client) GetAccessToken(ctx context.Context) (*AccessToken, error) {
	if c.apiKey == "" {
		return nil, ErrMissingAPIKey
	}
	if c.apiSecret == "" {
		return nil, ErrMissingAPISecret
	}

	var token AccessToken
	reqBody := accessTokenRequest{APIKey: c.apiKey, APISecret: c.apiSecret}
	if err := c.doJSON(ctx, http.MethodPost, authTokenPath, reqBody, nil, &token); err != nil {
		return nil, fmt.Errorf("requesting access token: %w", err)
	}
	if token.AccessToken == "" {
		return nil, ErrMissingAccessToken
	}
	if token.TokenType == "" {
		token.TokenType = defaultTokenType
	}

	return &token, nil
}

// RefreshAccessToken exchanges a refresh token for a new access token.
func (c *Client) RefreshAccessToken(ctx context.Context, refreshToken string) (*RefreshedToken, error) {
	if refreshToken == "" {
		return nil, errors.New("refreshToken is required")
	}
	if c.apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	var token RefreshedToken
	reqBody := refreshTokenRequest{APIKey: c.apiKey, RefreshToken: refreshToken}
	if err := c.doJSON(ctx, http.MethodPost, refreshTokenPath, reqBody, nil, &token); err != nil {
		return nil, fmt.Errorf("refreshing access token: %w", err)
	}
	if token.AccessToken == "" {
		return nil, ErrMissingAccessToken
	}

	return &token, nil
}

// CreateWidgetURL creates a widget session for the given configuration, authenticated with accessToken.
func (c *Client) CreateWidgetURL(ctx context.Context, accessToken string, request WidgetURLRequest) (*WidgetURLResult, error) {
	if accessToken == "" {
		return nil, errors.New("accessToken is required")
	}
	if c.apiKey == "" {
		return nil, ErrMissingAPIKey
	}
	if request.ReferrerDomain == "" {
		return nil, errors.New("referrerDomain is required")
	}

	reqBody := createWidgetURLRequest{
		WidgetParams: WidgetParams{
			APIKey:         c.apiKey,
			ReferrerDomain: request.ReferrerDomain,
			Environment:    c.environment.Name(),
			WidgetConfig:   request.Config,
		},
	}
	headers := map[string]string{"Authorization": "Bearer " + accessToken}

	var result WidgetURLResult
	if err := c.doJSON(ctx, http.MethodPost, createWidgetURLPath, reqBody, headers, &result); err != nil {
		return nil, fmt.Errorf("creating widget URL: %w", err)
	}
	if result.URL == "" {
		return nil, ErrMissingWidgetURL
	}

	return &result, nil
}

var _ ClientInterface = (*Client)(nil)
