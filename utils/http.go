// utils/http.go
package utils

import (
	"net/http"
	"time"
)

// HTTPClient is the shared client for outbound calls (identity service,
// signup sync). Generous timeout because the identity service can be slow
// right after a deploy.
var HTTPClient = &http.Client{
	Timeout: 30 * time.Second,
}
