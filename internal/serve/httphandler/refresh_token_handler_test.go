package httphandler

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/rampworks/ramp-gateway/internal/transak"
)

func Test_RefreshTokenHandler(t *testing.T) {
	url := "/refresh-token"

	testCases := []struct {
		name              string
		body              string
		exposeErrorDetail bool
		prepareMocks      func(t *testing.T, clientMock *transak.MockClient)
		wantStatusCode    int
		wantBody          string
	}{
		{
			name:           "returns BadRequest when the body is empty",
			body:           "",
			wantStatusCode: http.StatusBadRequest,
			wantBody:       `{"error": "refresh_token is required"}`,
		},
		{
			name:           "returns BadRequest when the body is not JSON",
			body:           "refresh_token=abc",
			wantStatusCode: http.StatusBadRequest,
			wantBody:       `{"error": "refresh_token is required"}`,
		},
		{
			name:           "returns BadRequest when refresh_token is missing",
			body:           `{"token": "abc"}`,
			wantStatusCode: http.StatusBadRequest,
			wantBody:       `{"error": "refresh_token is required"}`,
		},
		{
			name: "returns InternalServerError with a sanitized message when the provider fails",
			body: `{"refresh_token": "abc"}`,
			prepareMocks: func(t *testing.T, clientMock *transak.MockClient) {
				clientMock.
					On("RefreshAccessToken", mock.Anything, "abc").
					Return(nil, transak.RemoteError{StatusCode: http.StatusUnauthorized, Message: "refresh token expired"}).
					Once()
			},
			wantStatusCode: http.StatusInternalServerError,
			wantBody:       `{"error": "Token refresh failed", "message": "Internal server error"}`,
		},
		{
			name:              "returns InternalServerError with the detail in development",
			body:              `{"refresh_token": "abc"}`,
			exposeErrorDetail: true,
			prepareMocks: func(t *testing.T, clientMock *transak.MockClient) {
				clientMock.
					On("RefreshAccessToken", mock.Anything, "abc").
					Return(nil, errors.New("refreshing access token: boom")).
					Once()
			},
			wantStatusCode: http.StatusInternalServerError,
			wantBody:       `{"error": "Token refresh failed", "message": "refreshing access token: boom"}`,
		},
		{
			name: "returns the refreshed token",
			body: `{"refresh_token": " abc "}`,
			prepareMocks: func(t *testing.T, clientMock *transak.MockClient) {
				clientMock.
					On("RefreshAccessToken", mock.Anything, "abc").
					Return(&transak.RefreshedToken{AccessToken: "new-token", ExpiresIn: 3600, RefreshToken: "next"}, nil).
					Once()
			},
			wantStatusCode: http.StatusOK,
			wantBody:       `{"access_token": "new-token", "expires_in": 3600, "refresh_token": "next"}`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			clientMock := transak.NewMockClient(t)
			if tc.prepareMocks != nil {
				tc.prepareMocks(t, clientMock)
			}
			handler := RefreshTokenHandler{TransakClient: clientMock, ExposeErrorDetail: tc.exposeErrorDetail}

			w := httptest.NewRecorder()
			req, err := http.NewRequest(http.MethodPost, url, strings.NewReader(tc.body))
			require.NoError(t, err)

			http.HandlerFunc(handler.PostRefreshToken).ServeHTTP(w, req)

			resp := w.Result()
			respBody, err := io.ReadAll(resp.Body)
			require.NoError(t, err)

			assert.Equal(t, tc.wantStatusCode, resp.StatusCode)
			assert.JSONEq(t, tc.wantBody, string(respBody))
		})
	}
}
