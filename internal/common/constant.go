package common

const (
	// AuthorizationHeaderName carries bearer tokens on inbound requests.
	AuthorizationHeaderName = "Authorization"

	// BearerScheme is the only accepted authorization scheme.
	BearerScheme = "Bearer"

	// DateLayout is the wire format of task due dates.
	DateLayout = "2006-01-02"
)
