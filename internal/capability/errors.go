package capability

import (
	"strings"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// IsRateLimited reports whether an error is a provider rate-limit or quota
// rejection. Used only for advisory logging; rate-limit failures fall back
// like any other failure.
func IsRateLimited(err error) bool {
	if err == nil {
		return false
	}
	// gRPC ResourceExhausted status from the Gemini transport
	if s, ok := status.FromError(err); ok && s.Code() == codes.ResourceExhausted {
		return true
	}
	// Wrapped errors and HTTP transports need string matching as fallback
	errStr := err.Error()
	return strings.Contains(errStr, "ResourceExhausted") ||
		strings.Contains(errStr, "429") ||
		strings.Contains(errStr, "rate limit") ||
		strings.Contains(errStr, "quota")
}
