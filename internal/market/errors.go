package market

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
)

// BackendError is a response whose body reports a failure, either in its
// error field or as a failure message with no data.
type BackendError struct {
	Endpoint string
	Message  string
	Detail   string
}

func (e *BackendError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("backend %s: %s", e.Endpoint, e.Message)
	}
	return fmt.Sprintf("backend %s: %s: %s", e.Endpoint, e.Message, e.Detail)
}

// HTTPStatus maps a market failure to the status a view responds with:
// 504 for timeouts and cancellation, 502 for everything else.
func HTTPStatus(err error) int {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return http.StatusGatewayTimeout
	}

	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return http.StatusGatewayTimeout
	}

	return http.StatusBadGateway
}
