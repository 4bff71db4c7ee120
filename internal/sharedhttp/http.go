package sharedhttp

import (
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"browsarr/internal/domain"

	"github.com/avast/retry-go"
)

var Transport = &http.Transport{
	Proxy: http.ProxyFromEnvironment,
	DialContext: (&net.Dialer{
		Timeout:   30 * time.Second,
		KeepAlive: 30 * time.Second,
	}).DialContext,
	ForceAttemptHTTP2:     true,
	MaxIdleConns:          100,
	MaxIdleConnsPerHost:   10,
	IdleConnTimeout:       90 * time.Second,
	TLSHandshakeTimeout:   10 * time.Second,
	ExpectContinueTimeout: 1 * time.Second,
	ReadBufferSize:        65536,
	WriteBufferSize:       65536,
	TLSClientConfig: &tls.Config{
		MinVersion: tls.VersionTLS12,
	},
}

func NewClient() *http.Client {
	return &http.Client{
		Timeout:   60 * time.Second,
		Transport: Transport,
	}
}

func CheckStatusCode(statusCode int) error {
	switch statusCode {
	case http.StatusOK:

	case http.StatusUnauthorized, http.StatusForbidden:
		return retry.Unrecoverable(fmt.Errorf("unrecoverable error fetching page: status code %d", statusCode))

	case http.StatusMethodNotAllowed:
		return retry.Unrecoverable(fmt.Errorf("method not allowed: status code %d", statusCode))

	case http.StatusNotFound:
		return fmt.Errorf("page not found - retrying: status code %d", statusCode)

	case http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout, http.StatusInternalServerError:
		return fmt.Errorf("server error encountered while fetching page: status code %d - retrying", statusCode)

	default:
		return retry.Unrecoverable(fmt.Errorf("unexpected error fetching page: status code %d", statusCode))
	}

	return nil
}

// FetchBody performs a request and returns the response body. Transient
// upstream statuses are retried a few times; anything terminal comes back
// wrapped in domain.ErrUpstream. Cancelling ctx aborts the in-flight call.
func FetchBody(ctx context.Context, client *http.Client, method, url string, headers map[string]string, form string) ([]byte, error) {
	var body []byte

	err := retry.Do(func() error {
		var reqBody io.Reader
		if form != "" {
			reqBody = strings.NewReader(form)
		}

		req, err := http.NewRequestWithContext(ctx, method, url, reqBody)
		if err != nil {
			return retry.Unrecoverable(err)
		}

		req.Header.Set("User-Agent", "browsarr")
		for k, v := range headers {
			req.Header.Set(k, v)
		}

		resp, err := client.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return retry.Unrecoverable(ctx.Err())
			}
			return err
		}
		defer resp.Body.Close()

		if err := CheckStatusCode(resp.StatusCode); err != nil {
			return err
		}

		body, err = io.ReadAll(resp.Body)
		if err != nil {
			return err
		}

		return nil
	},
		retry.Delay(time.Second*3),
		retry.Attempts(3),
		retry.MaxJitter(time.Second*1),
		retry.Context(ctx),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %s %s: %s", domain.ErrUpstream, method, url, err)
	}

	return body, nil
}
