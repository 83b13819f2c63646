package dto

type TokenPair struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int64  `json:"expires_in"`
}

type DevTokenRequest struct {
	UserID string `json:"user_id"`
}
