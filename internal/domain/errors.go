package domain

import "errors"

var (
	// ErrUpstream signals a transport failure or a response whose top-level
	// shape could not be parsed. Fatal for the call, never retried here.
	ErrUpstream = errors.New("upstream request failed")

	// ErrAuthTokenNotFound signals that the anti-forgery token pattern did
	// not match during token acquisition. The token cache is left unset so
	// the next call retries acquisition.
	ErrAuthTokenNotFound = errors.New("auth token not found")

	// ErrMalformedPagePayload signals a chapter page missing or corrupting
	// its embedded page-list data. Fatal for that chapter fetch only.
	ErrMalformedPagePayload = errors.New("malformed page payload")
)
