package utils

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_GetRoutePattern(t *testing.T) {
	testCases := []struct {
		expectedRoutePattern string
		method               string
	}{
		{expectedRoutePattern: "/mock", method: "GET"},
		{expectedRoutePattern: "undefined", method: "POST"},
	}

	mHTTPHandler := http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	for _, tc := range testCases {
		t.Run("getting route pattern", func(t *testing.T) {
			mAssertRoutePattern := func(next http.Handler) http.Handler {
				return http.HandlerFunc(func(rw http.ResponseWriter, req *http.Request) {
					routePattern := GetRoutePattern(req)

					assert.Equal(t, tc.expectedRoutePattern, routePattern)
					next.ServeHTTP(rw, req)
				})
			}

			r := chi.NewRouter()
			r.Use(mAssertRoutePattern)
			r.Get("/mock", mHTTPHandler.ServeHTTP)

			req, err := http.NewRequest(tc.method, "/mock", nil)
			require.NoError(t, err)
			rr := httptest.NewRecorder()
			r.ServeHTTP(rr, req)
		})
	}
}

func Test_GetRoutePattern_withoutRouter(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/auth", nil)
	assert.Equal(t, "undefined", GetRoutePattern(req))
}
