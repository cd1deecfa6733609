package monitor

import (
	"fmt"
	"net/http"
)

const (
	noHTTPStatus  = "0"
	successStatus = "success"
	errorStatus   = "error"
)

// ParseHTTPResponseStatus classifies an outbound call for the provider API metrics. A call that never got a
// response is reported with status code "0".
func ParseHTTPResponseStatus(resp *http.Response, reqErr error) (status, statusCode string) {
	if reqErr != nil || resp == nil {
		return errorStatus, noHTTPStatus
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return errorStatus, fmt.Sprint(resp.StatusCode)
	}
	return successStatus, fmt.Sprint(resp.StatusCode)
}
