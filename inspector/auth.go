package inspector

import "crypto/subtle"

// AuthResult is the outcome of an authentication attempt.
type AuthResult struct {
	OK     bool   `json:"ok"`
	Method string `json:"method,omitempty"` // "token" | "open"
	Reason string `json:"reason,omitempty"`
}

// Authorize checks the client's credentials against the configured token.
// With no token configured the inspector trusts the transport; settings
// validation refuses that combination on anything but a loopback bind.
func Authorize(token string, clientAuth *ConnectAuth) AuthResult {
	if token == "" {
		return AuthResult{OK: true, Method: "open"}
	}
	if clientAuth == nil || clientAuth.Token == "" {
		return AuthResult{OK: false, Reason: "token required"}
	}
	if !safeEqual(clientAuth.Token, token) {
		return AuthResult{OK: false, Reason: "token_mismatch"}
	}
	return AuthResult{OK: true, Method: "token"}
}

// safeEqual performs a constant-time string comparison to prevent timing attacks.
// It avoids early-return on length mismatch to prevent leaking secret length via timing.
func safeEqual(a, b string) bool {
	lenMatch := subtle.ConstantTimeEq(int32(len(a)), int32(len(b)))
	// ConstantTimeCompare returns 0 for different lengths, but we check
	// length separately with ConstantTimeEq to avoid leaking length info.
	cmp := subtle.ConstantTimeCompare([]byte(a), []byte(b))
	return subtle.ConstantTimeSelect(lenMatch, cmp, 0) == 1
}
