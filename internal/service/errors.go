package service

import "errors"

var (
	// ErrInvalidEndpoint is returned by NewClient when the API base is not a
	// fully-qualified http or https origin.
	ErrInvalidEndpoint = errors.New("invalid api base: must be an absolute http(s) URL")

	// ErrInvalidProxyAddress is returned when a SOCKS5 proxy address is not in
	// "host:port" format.
	ErrInvalidProxyAddress = errors.New("invalid proxy address: must be host:port")

	// ErrResponseTooLarge is the transport cause recorded when the response
	// body exceeds the configured limit.
	ErrResponseTooLarge = errors.New("response body exceeds size limit")

	// ErrMalformedBody is the transport cause recorded when the response body
	// is not valid JSON.
	ErrMalformedBody = errors.New("malformed response body")
)
