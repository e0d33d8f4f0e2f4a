package admin

import "crypto/subtle"

// Authenticator decides whether a submitted credential unlocks admin mode.
// The static implementation below is a placeholder, not a security boundary;
// keeping it behind this interface lets a real credential/session collaborator
// replace it without touching the catalog or cart packages.
type Authenticator interface {
	Authenticate(candidate string) bool
}

type staticAuthenticator struct {
	credential string
}

// NewStaticAuthenticator returns an Authenticator that compares candidates
// against one fixed credential.
func NewStaticAuthenticator(credential string) Authenticator {
	return &staticAuthenticator{credential: credential}
}

func (a *staticAuthenticator) Authenticate(candidate string) bool {
	if a.credential == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(a.credential), []byte(candidate)) == 1
}
