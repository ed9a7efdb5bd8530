package vo

import "errors"

var ErrInvalidCredentials = errors.New("invalid credentials")

// AuthLogin is the login response. Role lets the front office decide which
// back-office screens to show without decoding the token.
type AuthLogin struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	Role        string `json:"role"`
}
