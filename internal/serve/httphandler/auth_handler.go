package httphandler

import (
	"net/http"

	"github.com/stellar/go-stellar-sdk/support/log"
	"github.com/stellar/go-stellar-sdk/support/render/httpjson"

	"github.com/rampworks/ramp-gateway/internal/serve/httperror"
	"github.com/rampworks/ramp-gateway/internal/transak"
)

type AuthHandler struct {
	TransakClient transak.ClientInterface
	// ExposeErrorDetail returns the underlying error in the `message` field, only enabled in development.
	ExposeErrorDetail bool
}

// PostAuth exchanges the configured API credentials for an access token.
func (h AuthHandler) PostAuth(rw http.ResponseWriter, req *http.Request) {
	ctx := req.Context()

	log.Ctx(ctx).Infof("Authenticating with Transak API (%s)", h.TransakClient.Environment().Name())
	token, err := h.TransakClient.GetAccessToken(ctx)
	if err != nil {
		httperror.InternalError(ctx, "Authentication failed", err).WithDetail(h.ExposeErrorDetail).Render(rw)
		return
	}

	log.Ctx(ctx).Info("Authentication successful")
	httpjson.RenderStatus(rw, http.StatusOK, token, httpjson.JSON)
}
