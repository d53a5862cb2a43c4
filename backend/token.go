package backend

import (
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
)

// TokenExpiry extracts the exp claim from an access token without verifying
// the signature. The backend owns token validity; this is only used for
// logging and for showing the operator when their session token runs out.
// Returns false for opaque or malformed tokens.
func TokenExpiry(rawToken string) (time.Time, bool) {
	if rawToken == "" {
		return time.Time{}, false
	}
	token, _, err := jwtlib.NewParser().ParseUnverified(rawToken, jwtlib.MapClaims{})
	if err != nil {
		return time.Time{}, false
	}
	exp, err := token.Claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}
