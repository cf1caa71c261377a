package tor

import (
	"encoding/base32"
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"golang.org/x/crypto/sha3"
)

const (
	// OnionSuffix ends every onion host.
	OnionSuffix = ".onion"

	// OnionV3Version is the trailing version byte of a decoded v3 address.
	OnionV3Version = 0x03

	// v3 addresses decode to pubkey(32) || checksum(2) || version(1).
	v3PubkeyLen  = 32
	v3DecodedLen = 35
)

var (
	onionV3Pattern = regexp.MustCompile(`^[a-z2-7]{56}\.onion$`)
	onionV2Pattern = regexp.MustCompile(`^[a-z2-7]{16}\.onion$`)
)

// checksumPrefix is hashed in front of the key when computing the v3 checksum.
var checksumPrefix = []byte(".onion checksum")

// IsValidV3Address reports whether address is a v3 onion address with a
// valid checksum. Case is ignored; the ".onion" suffix is required.
func IsValidV3Address(address string) bool {
	address = strings.ToLower(address)
	if !onionV3Pattern.MatchString(address) {
		return false
	}

	label := strings.ToUpper(strings.TrimSuffix(address, OnionSuffix))
	decoded, err := base32.StdEncoding.DecodeString(label)
	if err != nil || len(decoded) != v3DecodedLen {
		return false
	}
	if decoded[v3DecodedLen-1] != OnionV3Version {
		return false
	}

	sum := v3Checksum(decoded[:v3PubkeyLen])
	return decoded[32] == sum[0] && decoded[33] == sum[1]
}

// v3Checksum returns the first two bytes of
// SHA3-256(".onion checksum" || pubkey || version).
func v3Checksum(pubkey []byte) [2]byte {
	h := sha3.New256()
	h.Write(checksumPrefix)
	h.Write(pubkey)
	h.Write([]byte{OnionV3Version})
	var sum [2]byte
	copy(sum[:], h.Sum(nil))
	return sum
}

// IsV2Address reports whether address has the v2 (16 character) format.
func IsV2Address(address string) bool {
	return onionV2Pattern.MatchString(strings.ToLower(address))
}

// IsOnionHost reports whether host, without port, is in the .onion domain.
func IsOnionHost(host string) bool {
	return strings.HasSuffix(strings.ToLower(strings.TrimSuffix(host, ".")), OnionSuffix)
}

// CheckServiceURL validates the host of a redaction service URL. A clearnet
// host is always accepted. An onion host must be a valid v3 address and
// needs a proxy, since it cannot be dialed directly.
func CheckServiceURL(apiBase string, hasProxy bool) error {
	u, err := url.Parse(apiBase)
	if err != nil {
		return fmt.Errorf("%s: %w", apiBase, err)
	}
	host := strings.TrimSuffix(strings.ToLower(u.Hostname()), ".")
	if !IsOnionHost(host) {
		return nil
	}
	if !IsValidV3Address(host) {
		if IsV2Address(host) {
			return fmt.Errorf("%s: %w", host, ErrV2AddressDeprecated)
		}
		return fmt.Errorf("%s: %w", host, ErrInvalidOnionAddress)
	}
	if !hasProxy {
		return ErrOnionWithoutProxy
	}
	return nil
}

// ComputeV3AddressFromPublicKey returns the v3 onion address of a 32-byte
// ed25519 public key.
func ComputeV3AddressFromPublicKey(pubkey []byte) (string, error) {
	if len(pubkey) != v3PubkeyLen {
		return "", ErrInvalidOnionAddress
	}
	sum := v3Checksum(pubkey)
	raw := make([]byte, 0, v3DecodedLen)
	raw = append(raw, pubkey...)
	raw = append(raw, sum[0], sum[1], OnionV3Version)
	return strings.ToLower(base32.StdEncoding.EncodeToString(raw)) + OnionSuffix, nil
}
