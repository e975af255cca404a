package auth

import (
	"github.com/Ilaiyarasan2005/Read-Haven/internal/domain"
)

// Authorize confirms the authenticated caller owns the resource.
// It is a pure equality check; callers must fetch the resource first so a
// missing resource surfaces as NotFound before ownership is ever considered.
func Authorize(callerID, ownerID int64) error {
	if callerID != ownerID {
		return domain.ErrForbidden
	}
	return nil
}
