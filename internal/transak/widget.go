package transak

import "encoding/json"

const createWidgetURLPath = "/api/v1/widgets/create-url"

// WidgetConfig is the sanitized configuration of a single widget session.
type WidgetConfig struct {
	FiatCurrency             string  `json:"fiatCurrency"`
	CryptoCurrencyCode       string  `json:"cryptoCurrencyCode"`
	FiatAmount               float64 `json:"fiatAmount"`
	Network                  string  `json:"network"`
	CountryCode              string  `json:"countryCode"`
	WalletAddress            string  `json:"walletAddress,omitempty"`
	Email                    string  `json:"email,omitempty"`
	ThemeColor               string  `json:"themeColor"`
	IsAutoFillUserData       bool    `json:"isAutoFillUserData"`
	HideMenu                 bool    `json:"hideMenu"`
	ExchangeScreenTitle      string  `json:"exchangeScreenTitle"`
	IsFeeCalculationHidden   bool    `json:"isFeeCalculationHidden"`
	IsDisableCrypto          bool    `json:"isDisableCrypto"`
	DisableWalletAddressForm bool    `json:"disableWalletAddressForm"`
	IsSell                   bool    `json:"isSell"`
	PartnerOrderID           string  `json:"partnerOrderId,omitempty"`
}

// Flow returns "sell" for off-ramp sessions and "buy" otherwise.
func (wc WidgetConfig) Flow() string {
	if wc.IsSell {
		return "sell"
	}
	return "buy"
}

// WidgetURLRequest holds what the caller controls when creating a widget URL. The API key and environment are
// added by the client.
type WidgetURLRequest struct {
	ReferrerDomain string
	Config         WidgetConfig
}

// WidgetParams is the body of the create-url call, nested under `widgetParams`.
type WidgetParams struct {
	APIKey         string `json:"apiKey"`
	ReferrerDomain string `json:"referrerDomain"`
	Environment    string `json:"environment"`
	WidgetConfig
}

type createWidgetURLRequest struct {
	WidgetParams WidgetParams `json:"widgetParams"`
}

// WidgetURLResult is the provider-issued session URL.
type WidgetURLResult struct {
	URL       string `json:"url"`
	SessionID string `json:"sessionId,omitempty"`
	ExpiresAt any    `json:"expires_at,omitempty"`
}

type widgetURLPayload struct {
	WidgetURL string            `json:"widgetUrl"`
	URL       string            `json:"url"`
	SessionID string            `json:"sessionId"`
	ExpiresAt any               `json:"expires_at"`
	Data      *widgetURLPayload `json:"data"`
}

func (p widgetURLPayload) url() string {
	if p.WidgetURL != "" {
		return p.WidgetURL
	}
	return p.URL
}

// UnmarshalJSON accepts `widgetUrl` or `url`, either at the top level or inside a `data` envelope.
func (r *WidgetURLResult) UnmarshalJSON(data []byte) error {
	var payload widgetURLPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return err
	}

	if payload.url() == "" && payload.Data != nil {
		payload = *payload.Data
	}

	*r = WidgetURLResult{
		URL:       payload.url(),
		SessionID: payload.SessionID,
		ExpiresAt: payload.ExpiresAt,
	}
	return nil
}
