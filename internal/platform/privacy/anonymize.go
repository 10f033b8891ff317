// Package privacy keeps citizen identifiers and client addresses out of logs,
// traces and user-facing renderings.
package privacy

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net"
	"strings"
)

// MaskedBack replaces the back part of a resident registration number.
const MaskedBack = "******"

// AnonymizeIP truncates an IP address to its network prefix (/24 for IPv4,
// /48 for IPv6). Returns "unknown" for empty input and "invalid" when unparseable.
func AnonymizeIP(ip string) string {
	if ip == "" || ip == "unknown" {
		return "unknown"
	}
	if host, _, err := net.SplitHostPort(ip); err == nil {
		ip = host
	}

	parsed := net.ParseIP(ip)
	if parsed == nil {
		return "invalid"
	}

	if v4 := parsed.To4(); v4 != nil {
		return fmt.Sprintf("%d.%d.%d.0", v4[0], v4[1], v4[2])
	}

	return fmt.Sprintf("%02x%02x:%02x%02x:%02x%02x::",
		parsed[0], parsed[1],
		parsed[2], parsed[3],
		parsed[4], parsed[5])
}

// MaskNationalID renders "front-******". An empty front renders as MaskedBack alone.
func MaskNationalID(front string) string {
	front = strings.TrimSpace(front)
	if front == "" {
		return MaskedBack
	}
	return front + "-" + MaskedBack
}

// HashNationalID returns a short SHA-256 digest of a national id so log lines
// and spans can be correlated without exposing it.
func HashNationalID(front, back string) string {
	if front == "" && back == "" {
		return ""
	}
	hash := sha256.Sum256([]byte(front + "-" + back))
	return hex.EncodeToString(hash[:8])
}
