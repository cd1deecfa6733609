package httphandler

import (
	"net/http"

	"github.com/rampworks/ramp-gateway/internal/htmltemplate"
	"github.com/rampworks/ramp-gateway/internal/serve/httperror"
	"github.com/rampworks/ramp-gateway/internal/serve/validators"
	"github.com/rampworks/ramp-gateway/internal/transak"
)

type WidgetPageHandler struct {
	Title       string
	Environment transak.Environment
}

// GetWidgetPage renders the configuration form that embeds the widget.
func (h WidgetPageHandler) GetWidgetPage(rw http.ResponseWriter, req *http.Request) {
	ctx := req.Context()

	title := h.Title
	if title == "" {
		title = "Buy Crypto"
	}

	page, err := htmltemplate.ExecuteHTMLTemplateForWidgetPage(htmltemplate.WidgetPageTemplate{
		Title:          title,
		Environment:    h.Environment.Name(),
		Networks:       transak.Networks,
		FiatCurrencies: transak.FiatCurrencies,
		CountryCodes:   transak.CountryCodes,
		MinAmount:      validators.MinFiatAmount.InexactFloat64(),
		MaxAmount:      validators.MaxFiatAmount.InexactFloat64(),
		DefaultAmount:  validators.DefaultFiatAmount.InexactFloat64(),
		AuthPath:       "auth",
		WidgetURLPath:  "create-widget-url",
	})
	if err != nil {
		httperror.InternalError(ctx, "Cannot render widget page", err).Render(rw)
		return
	}

	rw.Header().Set("Content-Type", "text/html; charset=utf-8")
	rw.WriteHeader(http.StatusOK)
	_, _ = rw.Write([]byte(page))
}
