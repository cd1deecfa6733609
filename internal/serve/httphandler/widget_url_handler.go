package httphandler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/stellar/go-stellar-sdk/support/log"
	"github.com/stellar/go-stellar-sdk/support/render/httpjson"

	"github.com/rampworks/ramp-gateway/internal/monitor"
	"github.com/rampworks/ramp-gateway/internal/serve/httperror"
	"github.com/rampworks/ramp-gateway/internal/serve/validators"
	"github.com/rampworks/ramp-gateway/internal/transak"
)

const DefaultReferrerDomain = "http://localhost:3000"

type WidgetURLResponse struct {
	URL       string               `json:"url"`
	ExpiresAt any                  `json:"expires_at,omitempty"`
	SessionID string               `json:"sessionId,omitempty"`
	Config    transak.WidgetConfig `json:"config"`
}

type WidgetURLHandler struct {
	TransakClient transak.ClientInterface
	// AllowedOrigins is the configured CORS allow-list, its first concrete entry is the fallback referrer domain.
	AllowedOrigins    []string
	ExposeErrorDetail bool
	MonitorService    monitor.MonitorServiceInterface
}

// PostWidgetURL validates the widget configuration and creates a widget session with the caller's access token.
func (h WidgetURLHandler) PostWidgetURL(rw http.ResponseWriter, req *http.Request) {
	ctx := req.Context()

	accessToken, ok := bearerToken(req)
	if !ok {
		httperror.Unauthorized("Missing or invalid authorization header", nil).Render(rw)
		return
	}

	var reqBody validators.WidgetConfigRequest
	if err := json.NewDecoder(req.Body).Decode(&reqBody); err != nil && !errors.Is(err, io.EOF) {
		httperror.BadRequest("Invalid request body", err, nil).Render(rw)
		return
	}

	validator := validators.NewWidgetConfigValidator()
	config := validator.ValidateWidgetConfig(reqBody)
	if validator.HasErrors() {
		httperror.BadRequest("Invalid widget configuration", nil, validator.Messages).Render(rw)
		return
	}

	referrerDomain := h.referrerDomain(req)
	log.Ctx(ctx).Infof("Creating widget URL for %s/%s on %s with referrerDomain %s",
		config.FiatCurrency, config.CryptoCurrencyCode, config.Network, referrerDomain)

	result, err := h.TransakClient.CreateWidgetURL(ctx, accessToken, transak.WidgetURLRequest{
		ReferrerDomain: referrerDomain,
		Config:         config,
	})
	if err != nil {
		h.widgetURLError(ctx, err).WithDetail(h.ExposeErrorDetail).Render(rw)
		return
	}

	h.recordWidgetURLCreated(ctx, config)
	log.Ctx(ctx).Infof("Widget URL created successfully, sessionId=%q", result.SessionID)

	httpjson.RenderStatus(rw, http.StatusOK, WidgetURLResponse{
		URL:       result.URL,
		ExpiresAt: result.ExpiresAt,
		SessionID: result.SessionID,
		Config:    config,
	}, httpjson.JSON)
}

// bearerToken extracts the token of an `Authorization: Bearer <token>` header.
func bearerToken(req *http.Request) (string, bool) {
	authHeader := req.Header.Get("Authorization")
	token, found := strings.CutPrefix(authHeader, "Bearer ")
	if !found {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

// referrerDomain picks the Origin header, then the origin of the Referer header, then the first configured
// allowed origin, then DefaultReferrerDomain.
func (h WidgetURLHandler) referrerDomain(req *http.Request) string {
	if origin := req.Header.Get("Origin"); origin != "" && origin != "null" {
		return origin
	}

	if referer := req.Header.Get("Referer"); referer != "" {
		if u, err := url.Parse(referer); err == nil && u.Scheme != "" && u.Host != "" {
			return u.Scheme + "://" + u.Host
		}
		return referer
	}

	for _, origin := range h.AllowedOrigins {
		if origin != "" && !strings.Contains(origin, "*") {
			return origin
		}
	}

	return DefaultReferrerDomain
}

// widgetURLError maps a provider failure to the status returned to the caller. Statuses other than 400, 401 and
// 403 become a 500.
func (h WidgetURLHandler) widgetURLError(ctx context.Context, err error) *httperror.HTTPError {
	statusCode := http.StatusInternalServerError

	var remoteErr transak.RemoteError
	if errors.As(err, &remoteErr) {
		statusCode = remoteErr.StatusCode
	} else {
		msg := err.Error()
		switch {
		case strings.Contains(msg, "401") || strings.Contains(msg, "Unauthorized"):
			statusCode = http.StatusUnauthorized
		case strings.Contains(msg, "400") || strings.Contains(msg, "Bad Request"):
			statusCode = http.StatusBadRequest
		case strings.Contains(msg, "403") || strings.Contains(msg, "Forbidden"):
			statusCode = http.StatusForbidden
		}
	}

	switch statusCode {
	case http.StatusUnauthorized:
		log.Ctx(ctx).Warnf("Widget URL creation rejected: %v", err)
		return httperror.Unauthorized("Authentication failed - token may be expired", err)
	case http.StatusBadRequest:
		log.Ctx(ctx).Warnf("Widget URL creation rejected: %v", err)
		return httperror.BadRequest("Invalid request parameters", err, nil)
	case http.StatusForbidden:
		log.Ctx(ctx).Warnf("Widget URL creation rejected: %v", err)
		return httperror.Forbidden("Access denied - check API permissions", err)
	default:
		return httperror.InternalError(ctx, "Failed to create widget URL", err)
	}
}

func (h WidgetURLHandler) recordWidgetURLCreated(ctx context.Context, config transak.WidgetConfig) {
	if h.MonitorService == nil {
		return
	}

	labels := monitor.WidgetURLLabels{
		Network:      config.Network,
		FiatCurrency: config.FiatCurrency,
		Flow:         config.Flow(),
	}
	if err := h.MonitorService.MonitorCounters(monitor.WidgetURLsCreatedCounterTag, labels.ToMap()); err != nil {
		log.Ctx(ctx).Errorf("monitoring counter %s: %v", monitor.WidgetURLsCreatedCounterTag, err)
	}
}
