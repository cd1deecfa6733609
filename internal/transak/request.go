package transak

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/stellar/go-stellar-sdk/support/log"

	"github.com/rampworks/ramp-gateway/internal/monitor"
)

type errorResponse struct {
	Message string `json:"message"`
}

// doJSON performs one outbound request with a JSON body and decodes a 2xx JSON response into out. There are no
// retries; the request is bound to ctx and to the timeout of the underlying HTTP client.
func (c *Client) doJSON(ctx context.Context, method, path string, body any, headers map[string]string, out any) error {
	u, err := url.JoinPath(string(c.environment), path)
	if err != nil {
		return fmt.Errorf("building URL path: %w", err)
	}

	var reqBody io.Reader
	if body != nil {
		jsonData, marshalErr := json.Marshal(body)
		if marshalErr != nil {
			return fmt.Errorf("marshaling request: %w", marshalErr)
		}
		reqBody = bytes.NewBuffer(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reqBody)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	startTime := time.Now()
	resp, err := c.httpClient.Do(req)
	c.recordRequestMetrics(ctx, method, path, resp, err, time.Since(startTime))
	if err != nil {
		return fmt.Errorf("making HTTP request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		remoteErr := RemoteError{StatusCode: resp.StatusCode}
		var errResp errorResponse
		if jsonErr := json.Unmarshal(respBody, &errResp); jsonErr == nil && errResp.Message != "" {
			remoteErr.Message = errResp.Message
		} else {
			remoteErr.Message = fmt.Sprintf("HTTP %d", resp.StatusCode)
		}
		return remoteErr
	}

	if out == nil {
		return nil
	}
	if err = json.Unmarshal(respBody, out); err != nil {
		return ParseError{StatusCode: resp.StatusCode, Err: err}
	}

	return nil
}

func (c *Client) recordRequestMetrics(ctx context.Context, method, path string, resp *http.Response, reqErr error, duration time.Duration) {
	if c.monitorService == nil {
		return
	}

	status, statusCode := monitor.ParseHTTPResponseStatus(resp, reqErr)
	labels := monitor.ProviderAPILabels{
		Method:     method,
		Endpoint:   path,
		Status:     status,
		StatusCode: statusCode,
	}.ToMap()

	if err := c.monitorService.MonitorCounters(monitor.ProviderAPIRequestsTotalTag, labels); err != nil {
		log.Ctx(ctx).Errorf("monitoring counter %s: %v", monitor.ProviderAPIRequestsTotalTag, err)
	}
	if err := c.monitorService.MonitorHistogram(duration.Seconds(), monitor.ProviderAPIRequestDurationTag, labels); err != nil {
		log.Ctx(ctx).Errorf("monitoring histogram %s: %v", monitor.ProviderAPIRequestDurationTag, err)
	}
}
