package services

import (
	"net/url"
	"strings"

	"github.com/careerkey/portal/internal/common"
)

// ExtractRequestID reduces a raw decoded payload (QR text, scan URL or a
// typed-in value) to the canonical degree request identifier, in priority
// order:
//
//  1. payload carrying the degreeRequestId query marker: the parameter's
//     value, parsed from the query string;
//  2. payload containing a path separator: the final path segment;
//  3. anything else: the payload verbatim.
//
// Extraction is idempotent: re-extracting its own output returns the same
// identifier. An empty payload (or one reducing to empty) is reported as
// common.ErrorEmptyInput and must never reach the backend. The identifier's
// shape is not validated here; a malformed id is the backend's call.
func ExtractRequestID(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", common.ErrorEmptyInput
	}

	marker := common.RequestIDQueryParam + "="
	if strings.Contains(raw, marker) {
		query := raw
		if i := strings.Index(raw, "?"); i >= 0 {
			query = raw[i+1:]
		}
		if values, err := url.ParseQuery(query); err == nil {
			if id := values.Get(common.RequestIDQueryParam); id != "" {
				return id, nil
			}
		}
		return "", common.ErrorEmptyInput
	}

	if strings.Contains(raw, "/") {
		segments := strings.Split(raw, "/")
		id := segments[len(segments)-1]
		if id == "" {
			return "", common.ErrorEmptyInput
		}
		return id, nil
	}

	return raw, nil
}
