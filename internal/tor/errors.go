package tor

import "errors"

var (
	// ErrProxyNotSOCKS5 is returned when the proxy address answers but does
	// not speak SOCKS5 without authentication.
	ErrProxyNotSOCKS5 = errors.New("proxy is not a SOCKS5 proxy without authentication")

	// ErrProxyCannotConnect is returned when no TCP connection to the proxy
	// can be made. Usually Tor is not running or the address is wrong.
	ErrProxyCannotConnect = errors.New("cannot connect to proxy")

	// ErrProxyTimeout is returned when the proxy handshake times out.
	ErrProxyTimeout = errors.New("timeout connecting to proxy")

	// ErrDaemonNotRunning is returned by Daemon methods that need a started
	// Tor process.
	ErrDaemonNotRunning = errors.New("embedded Tor daemon is not running")

	// ErrInvalidOnionAddress is returned for a .onion host that is not a
	// valid v3 address.
	ErrInvalidOnionAddress = errors.New("invalid onion address")

	// ErrV2AddressDeprecated is returned for a v2 (16 character) address.
	// V2 onion services stopped working in October 2021.
	ErrV2AddressDeprecated = errors.New("v2 onion addresses are deprecated and no longer functional")

	// ErrOnionWithoutProxy is returned when an onion service is configured
	// without a proxy or embedded daemon to reach it.
	ErrOnionWithoutProxy = errors.New("onion service requires --tor or a SOCKS5 proxy")
)

// ProxyStatus is the result of CheckProxy.
type ProxyStatus int

const (
	// ProxyStatusOK means the proxy completed a SOCKS5 handshake.
	ProxyStatusOK ProxyStatus = iota

	// ProxyStatusWrongType means something answered that is not a usable
	// SOCKS5 proxy.
	ProxyStatusWrongType

	// ProxyStatusCannotConnect means the TCP connection failed.
	ProxyStatusCannotConnect

	// ProxyStatusTimeout means the handshake did not finish in time.
	ProxyStatusTimeout
)

// String returns a human-readable description of the proxy status.
func (s ProxyStatus) String() string {
	switch s {
	case ProxyStatusOK:
		return "OK"
	case ProxyStatusWrongType:
		return "wrong type (not SOCKS5)"
	case ProxyStatusCannotConnect:
		return "cannot connect"
	case ProxyStatusTimeout:
		return "timeout"
	default:
		return "unknown"
	}
}

// Error returns the error for this status, or nil if OK.
func (s ProxyStatus) Error() error {
	switch s {
	case ProxyStatusOK:
		return nil
	case ProxyStatusWrongType:
		return ErrProxyNotSOCKS5
	case ProxyStatusCannotConnect:
		return ErrProxyCannotConnect
	case ProxyStatusTimeout:
		return ErrProxyTimeout
	default:
		return errors.New("unknown proxy status")
	}
}
