// Package gateway implements the client-facing API gateway: it routes
// requests to the backend services, preserves auth headers, and maps backend
// failures to a uniform error envelope.
package gateway

import (
	"bytes"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// forwardTimeout bounds a proxied backend call.
const forwardTimeout = 10 * time.Second

// Forwarder proxies a request to a backend service. The Authorization header
// travels verbatim, the JSON body and query parameters pass through
// unchanged, and the backend's status and body are returned as-is. An
// unreachable backend maps to 502 with an {error, details} body.
type Forwarder struct {
	httpClient *http.Client
}

// NewForwarder creates a new Forwarder.
func NewForwarder() *Forwarder {
	return &Forwarder{
		httpClient: &http.Client{
			Timeout: forwardTimeout,
		},
	}
}

// Forward proxies the current request to baseURL+path using the given method.
func (f *Forwarder) Forward(c *gin.Context, method, baseURL, path string, serviceName string) {
	var body io.Reader
	if c.Request.Body != nil {
		data, err := io.ReadAll(c.Request.Body)
		if err != nil {
			c.JSON(http.StatusBadGateway, gin.H{
				"error":   serviceName + " unavailable",
				"details": err.Error(),
			})
			return
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(c.Request.Context(), method, baseURL+path, body)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{
			"error":   serviceName + " unavailable",
			"details": err.Error(),
		})
		return
	}

	req.URL.RawQuery = c.Request.URL.RawQuery
	req.Header.Set("Content-Type", "application/json")
	if auth := c.GetHeader("Authorization"); auth != "" {
		req.Header.Set("Authorization", auth)
	}

	resp, err := f.httpClient.Do(req)
	if err != nil {
		log.Printf("error contacting %s: %v", serviceName, err)
		c.JSON(http.StatusBadGateway, gin.H{
			"error":   serviceName + " unavailable",
			"details": err.Error(),
		})
		return
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{
			"error":   serviceName + " unavailable",
			"details": err.Error(),
		})
		return
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/json"
	}
	c.Data(resp.StatusCode, contentType, data)
}
