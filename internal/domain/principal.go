package domain

// IdentityClaim is the verified identity returned by the token issuer for a
// single request. It is never persisted.
type IdentityClaim struct {
	Email string
	Name  string
	Sub   string
}

// Principal pairs a verified identity claim with the local account it
// resolved to. It is built once per request by the auth middleware and is
// immutable from the handlers' point of view. Role comes from the local user
// record, not the claim: the issuer has no concept of role.
type Principal struct {
	IdentityClaim
	UserID int64
	Role   Role
}
