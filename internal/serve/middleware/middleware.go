package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"
	"github.com/rs/cors"
	"github.com/stellar/go-stellar-sdk/support/log"

	"github.com/rampworks/ramp-gateway/internal/monitor"
	"github.com/rampworks/ramp-gateway/internal/serve/httperror"
	"github.com/rampworks/ramp-gateway/internal/utils"
)

const (
	CorsAllowedMethods = "GET, POST, OPTIONS"
	CorsAllowedHeaders = "Content-Type, Authorization"
	CorsMaxAge         = "86400"
)

// RecoverHandler is a middleware that recovers from panics and logs the error.
func RecoverHandler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(rw http.ResponseWriter, req *http.Request) {
		defer func() {
			r := recover()
			if r == nil {
				return
			}
			err, ok := r.(error)
			if !ok {
				err = fmt.Errorf("panic: %v", r)
			}

			// No need to recover when the client has disconnected:
			if errors.Is(err, http.ErrAbortHandler) {
				panic(err)
			}

			ctx := req.Context()
			httperror.InternalError(ctx, "", err).Render(rw)
		}()

		next.ServeHTTP(rw, req)
	})
}

// MetricsRequestHandler is a middleware that monitors http requests, and export the data
// to the metrics server
func MetricsRequestHandler(monitorService monitor.MonitorServiceInterface) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(rw http.ResponseWriter, req *http.Request) {
			mw := middleware.NewWrapResponseWriter(rw, req.ProtoMajor)
			then := time.Now()
			next.ServeHTTP(mw, req)

			duration := time.Since(then)

			labels := monitor.HTTPRequestLabels{
				Status: fmt.Sprintf("%d", mw.Status()),
				Route:  utils.GetRoutePattern(req),
				Method: req.Method,
			}

			err := monitorService.MonitorHTTPRequestDuration(duration, labels)
			if err != nil {
				log.Ctx(req.Context()).Errorf("Error trying to monitor request time: %s", err)
			}
		})
	}
}

// CorsMiddleware sets the CORS headers on every response and answers preflight requests with an empty 200.
//
// When "*" is configured every origin is allowed. Otherwise the request origin is echoed back if it matches one
// of corsAllowedOrigins (wildcards such as `https://*.example.com` are supported), and requests without an Origin
// header get the first concrete configured origin.
func CorsMiddleware(corsAllowedOrigins []string) func(http.Handler) http.Handler {
	allowAll := len(corsAllowedOrigins) == 0 || slices.Contains(corsAllowedOrigins, "*")
	originMatcher := cors.New(cors.Options{AllowedOrigins: corsAllowedOrigins})

	var defaultOrigin string
	for _, origin := range corsAllowedOrigins {
		if !strings.Contains(origin, "*") {
			defaultOrigin = origin
			break
		}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(rw http.ResponseWriter, req *http.Request) {
			header := rw.Header()
			origin := req.Header.Get("Origin")

			switch {
			case allowAll:
				header.Set("Access-Control-Allow-Origin", "*")
			case origin != "":
				header.Add("Vary", "Origin")
				if originMatcher.OriginAllowed(req) {
					header.Set("Access-Control-Allow-Origin", origin)
				}
			case defaultOrigin != "":
				header.Set("Access-Control-Allow-Origin", defaultOrigin)
			}
			header.Set("Access-Control-Allow-Methods", CorsAllowedMethods)
			header.Set("Access-Control-Allow-Headers", CorsAllowedHeaders)
			header.Set("Access-Control-Max-Age", CorsMaxAge)

			if req.Method == http.MethodOptions {
				rw.WriteHeader(http.StatusOK)
				return
			}

			next.ServeHTTP(rw, req)
		})
	}
}

// RateLimitMiddleware limits each client IP to requestsPerMinute requests. A non-positive limit disables it.
func RateLimitMiddleware(requestsPerMinute int) func(http.Handler) http.Handler {
	if requestsPerMinute <= 0 {
		return func(next http.Handler) http.Handler { return next }
	}

	return httprate.Limit(
		requestsPerMinute,
		time.Minute,
		httprate.WithKeyFuncs(httprate.KeyByRealIP),
		httprate.WithLimitHandler(func(rw http.ResponseWriter, req *http.Request) {
			log.Ctx(req.Context()).Warnf("rate limit exceeded for %s", req.RemoteAddr)
			httperror.TooManyRequests().Render(rw)
		}),
	)
}

// LoggingMiddleware is a middleware that logs requests to the logger.
func LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(rw http.ResponseWriter, req *http.Request) {
		mw := middleware.NewWrapResponseWriter(rw, req.ProtoMajor)

		reqCtx := req.Context()
		logFields := log.F{
			"method": req.Method,
			"path":   req.URL.Path,
			"req":    middleware.GetReqID(reqCtx),
		}
		logCtx := log.Set(reqCtx, log.Ctx(reqCtx).WithFields(logFields))
		req = req.WithContext(logCtx)

		logRequestStart(req)
		started := time.Now()

		next.ServeHTTP(mw, req)
		ended := time.Since(started)
		logRequestEnd(req, mw, ended)
	})
}

func logRequestStart(req *http.Request) {
	l := log.Ctx(req.Context()).WithFields(
		log.F{
			"subsys":    "http",
			"ip":        req.RemoteAddr,
			"host":      req.Host,
			"origin":    req.Header.Get("Origin"),
			"useragent": req.Header.Get("User-Agent"),
		},
	)

	l.Info("starting request")
}

func logRequestEnd(req *http.Request, mw middleware.WrapResponseWriter, duration time.Duration) {
	l := log.Ctx(req.Context()).WithFields(log.F{
		"subsys":   "http",
		"status":   mw.Status(),
		"bytes":    mw.BytesWritten(),
		"duration": duration,
	})
	if routeContext := chi.RouteContext(req.Context()); routeContext != nil {
		l = l.WithField("route", routeContext.RoutePattern())
	}

	l.Info("finished request")
}
