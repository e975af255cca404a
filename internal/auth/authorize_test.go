package auth

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Ilaiyarasan2005/Read-Haven/internal/domain"
)

func TestAuthorize(t *testing.T) {
	tests := []struct {
		name     string
		callerID int64
		ownerID  int64
		wantErr  error
	}{
		{name: "owner", callerID: 7, ownerID: 7, wantErr: nil},
		{name: "different user", callerID: 7, ownerID: 8, wantErr: domain.ErrForbidden},
		{name: "admin subject is not an owner", callerID: 0, ownerID: 7, wantErr: domain.ErrForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Authorize(tt.callerID, tt.ownerID)
			if tt.wantErr == nil {
				require.NoError(t, err)
			} else {
				require.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}
