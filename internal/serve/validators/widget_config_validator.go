package validators

import (
	"slices"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/rampworks/ramp-gateway/internal/transak"
	"github.com/rampworks/ramp-gateway/internal/utils"
)

const (
	defaultFiatCurrency        = "USD"
	defaultCryptoCurrencyCode  = "ETH"
	defaultNetwork             = "ethereum"
	defaultCountryCode         = "US"
	defaultThemeColor          = "000000"
	defaultExchangeScreenTitle = "Buy Crypto"
	minCryptoCurrencyCodeLen   = 2
)

var (
	MinFiatAmount     = decimal.NewFromInt(10)
	MaxFiatAmount     = decimal.NewFromInt(50000)
	DefaultFiatAmount = decimal.NewFromInt(100)
)

var (
	SupportedFiatCurrencies = transak.FiatCurrencies
	SupportedNetworks       = transak.NetworkIDs()
	SupportedCountryCodes   = transak.CountryCodes
)

// WidgetConfigRequest is the body accepted by the create-widget-url endpoint. Every field is optional.
type WidgetConfigRequest struct {
	FiatCurrency             string           `json:"fiatCurrency"`
	CryptoCurrencyCode       string           `json:"cryptoCurrencyCode"`
	FiatAmount               *decimal.Decimal `json:"fiatAmount"`
	Network                  string           `json:"network"`
	CountryCode              string           `json:"countryCode"`
	WalletAddress            string           `json:"walletAddress"`
	Email                    string           `json:"email"`
	ThemeColor               string           `json:"themeColor"`
	IsAutoFillUserData       *bool            `json:"isAutoFillUserData"`
	HideMenu                 bool             `json:"hideMenu"`
	ExchangeScreenTitle      string           `json:"exchangeScreenTitle"`
	IsFeeCalculationHidden   bool             `json:"isFeeCalculationHidden"`
	IsDisableCrypto          bool             `json:"isDisableCrypto"`
	DisableWalletAddressForm bool             `json:"disableWalletAddressForm"`
	IsSell                   bool             `json:"isSell"`
	PartnerOrderID           string           `json:"partnerOrderId"`
}

type WidgetConfigValidator struct {
	*Validator
	generateOrderID func() string
}

func NewWidgetConfigValidator() *WidgetConfigValidator {
	return &WidgetConfigValidator{
		Validator:       NewValidator(),
		generateOrderID: uuid.NewString,
	}
}

// ValidateWidgetConfig applies the defaults, sanitizes the request and then checks the result. The returned config
// is always populated, the violations are found in Messages in a stable order.
func (wv *WidgetConfigValidator) ValidateWidgetConfig(req WidgetConfigRequest) transak.WidgetConfig {
	config := SanitizeWidgetConfig(req)
	if config.PartnerOrderID == "" {
		config.PartnerOrderID = wv.generateOrderID()
	}

	amount := decimal.NewFromFloat(config.FiatAmount)

	wv.Check(slices.Contains(SupportedFiatCurrencies, config.FiatCurrency), "fiatCurrency", "Invalid fiat currency")
	wv.Check(amount.GreaterThanOrEqual(MinFiatAmount) && amount.LessThanOrEqual(MaxFiatAmount), "fiatAmount", "Fiat amount must be between 10 and 50000")
	wv.Check(slices.Contains(SupportedNetworks, config.Network), "network", "Invalid network")
	wv.Check(len(config.CryptoCurrencyCode) >= minCryptoCurrencyCodeLen, "cryptoCurrencyCode", "Invalid crypto currency code")
	wv.Check(slices.Contains(SupportedCountryCodes, config.CountryCode), "countryCode", "Invalid country code")
	if config.WalletAddress != "" {
		wv.CheckError(utils.ValidateWalletAddress(config.WalletAddress), "walletAddress", "Invalid wallet address")
	}
	if config.Email != "" {
		wv.CheckError(utils.ValidateEmail(config.Email), "email", "Invalid email address")
	}

	return config
}

// SanitizeWidgetConfig fills in the defaults, normalizes the casing of the codes and clamps the amount to the
// supported range. It is the same transformation the widget page applies before calling the API.
func SanitizeWidgetConfig(req WidgetConfigRequest) transak.WidgetConfig {
	isAutoFillUserData := true
	if req.IsAutoFillUserData != nil {
		isAutoFillUserData = *req.IsAutoFillUserData
	}

	return transak.WidgetConfig{
		FiatCurrency:             strings.ToUpper(withDefault(req.FiatCurrency, defaultFiatCurrency)),
		CryptoCurrencyCode:       strings.ToUpper(withDefault(req.CryptoCurrencyCode, defaultCryptoCurrencyCode)),
		FiatAmount:               ClampFiatAmount(req.FiatAmount).InexactFloat64(),
		Network:                  strings.ToLower(withDefault(req.Network, defaultNetwork)),
		CountryCode:              strings.ToUpper(withDefault(req.CountryCode, defaultCountryCode)),
		WalletAddress:            strings.TrimSpace(req.WalletAddress),
		Email:                    strings.TrimSpace(req.Email),
		ThemeColor:               strings.TrimPrefix(withDefault(req.ThemeColor, defaultThemeColor), "#"),
		IsAutoFillUserData:       isAutoFillUserData,
		HideMenu:                 req.HideMenu,
		ExchangeScreenTitle:      withDefault(req.ExchangeScreenTitle, defaultExchangeScreenTitle),
		IsFeeCalculationHidden:   req.IsFeeCalculationHidden,
		IsDisableCrypto:          req.IsDisableCrypto,
		DisableWalletAddressForm: req.DisableWalletAddressForm,
		IsSell:                   req.IsSell,
		PartnerOrderID:           strings.TrimSpace(req.PartnerOrderID),
	}
}

// ClampFiatAmount returns the default amount when amount is absent or zero, and otherwise bounds it to
// [MinFiatAmount, MaxFiatAmount].
func ClampFiatAmount(amount *decimal.Decimal) decimal.Decimal {
	if amount == nil || amount.IsZero() {
		return DefaultFiatAmount
	}
	return decimal.Max(MinFiatAmount, decimal.Min(MaxFiatAmount, *amount))
}

func withDefault(value, fallback string) string {
	if v := strings.TrimSpace(value); v != "" {
		return v
	}
	return fallback
}
