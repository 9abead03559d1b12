package security

import (
	"time"

	"devjobs/board-api/pkg/util"
)

const (
	// 20 random bytes, hex encoded to 40 characters
	resetTokenSize = 20

	// ResetTokenTTL is how long a password reset link stays valid
	ResetTokenTTL = time.Hour
)

// MakeResetToken generates an opaque reset token together with its
// expiry timestamp
func MakeResetToken() (token string, expires time.Time, err error) {
	token, err = util.GenerateToken(resetTokenSize)
	if err != nil {
		return "", time.Time{}, err
	}

	return token, time.Now().Add(ResetTokenTTL), nil
}
