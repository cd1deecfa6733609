package httphandler

import (
	"net/http"
	"strings"

	"github.com/stellar/go-stellar-sdk/support/http/httpdecode"
	"github.com/stellar/go-stellar-sdk/support/render/httpjson"

	"github.com/rampworks/ramp-gateway/internal/serve/httperror"
	"github.com/rampworks/ramp-gateway/internal/transak"
)

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type RefreshTokenHandler struct {
	TransakClient     transak.ClientInterface
	ExposeErrorDetail bool
}

// PostRefreshToken exchanges a refresh token for a new access token. A body that cannot be decoded is treated as a
// missing refresh token.
func (h RefreshTokenHandler) PostRefreshToken(rw http.ResponseWriter, req *http.Request) {
	ctx := req.Context()

	var reqBody RefreshTokenRequest
	if err := httpdecode.DecodeJSON(req, &reqBody); err != nil || strings.TrimSpace(reqBody.RefreshToken) == "" {
		httperror.BadRequest("refresh_token is required", err, nil).Render(rw)
		return
	}

	token, err := h.TransakClient.RefreshAccessToken(ctx, strings.TrimSpace(reqBody.RefreshToken))
	if err != nil {
		httperror.InternalError(ctx, "Token refresh failed", err).WithDetail(h.ExposeErrorDetail).Render(rw)
		return
	}

	httpjson.RenderStatus(rw, http.StatusOK, token, httpjson.JSON)
}
