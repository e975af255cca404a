package auth

import (
	"crypto/subtle"

	"github.com/Ilaiyarasan2005/Read-Haven/internal/domain"
)

// AdminCredentials is the fixed, configuration-supplied credential pair for
// the admin session. Admins are not records in the user store.
type AdminCredentials struct {
	Username string
	Password string
}

// Enabled reports whether admin login is configured at all.
func (c AdminCredentials) Enabled() bool {
	return c.Username != "" && c.Password != ""
}

// Verify checks a submitted credential pair. Both fields are compared in
// constant time, and a disabled pair never verifies.
func (c AdminCredentials) Verify(username, password string) error {
	if !c.Enabled() {
		return domain.ErrInvalidCredentials
	}

	userOK := subtle.ConstantTimeCompare([]byte(c.Username), []byte(username)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(c.Password), []byte(password)) == 1
	if !userOK || !passOK {
		return domain.ErrInvalidCredentials
	}
	return nil
}
