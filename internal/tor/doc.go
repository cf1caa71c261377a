// Package tor lets pdfredact reach a redaction service through Tor.
//
// It provides three pieces:
//   - Daemon: an embedded Tor process started with tornago, whose SOCKS5
//     address is handed to the service client as its proxy
//   - CheckProxy: a SOCKS5 handshake that verifies a configured proxy
//     before any document is uploaded through it
//   - onion host validation, so a mistyped .onion service address fails
//     before a submission instead of as a network error
//
// Documents sent to a .onion service never leave the Tor network, which is
// why an onion API base without a proxy is rejected rather than dialed
// directly.
package tor
