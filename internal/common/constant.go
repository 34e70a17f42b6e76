// Package common contains shared constants and sentinel errors used across
// CareerKey client components.
package common

const (
	// AuthorizationHeaderName carries the bearer access token on outbound
	// requests.
	AuthorizationHeaderName = "Authorization"

	// RequestIDHeaderName carries a per-request correlation id.
	RequestIDHeaderName = "X-Request-Id"

	// BearerPrefix is prepended to the access token in the Authorization
	// header.
	BearerPrefix = "Bearer "

	// RolePrefix is the canonical prefix of a normalized role token.
	RolePrefix = "ROLE_"

	// RequestIDQueryParam is the query parameter carrying a degree request
	// id in scan URLs printed on issued documents.
	RequestIDQueryParam = "degreeRequestId"

	// IPFSGatewayURL is the public gateway template used to render a
	// display link for a content-addressed degree asset. The asset itself
	// is never fetched by the client.
	IPFSGatewayURL = "https://ipfs.io/ipfs/"
)

// Canonical role tokens known to the portal.
const (
	RoleStudent    = "ROLE_STUDENT"
	RoleUniversity = "ROLE_UNIVERSITY"
	RoleHEC        = "ROLE_HEC"
)
