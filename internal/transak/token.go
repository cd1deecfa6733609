package transak

const (
	authTokenPath    = "/api/v1/auth/token"
	refreshTokenPath = "/api/v1/auth/refresh-token"

	defaultTokenType = "Bearer"
)

type accessTokenRequest struct {
	APIKey    string `json:"api_key"`
	APISecret string `json:"api_secret"`
}

type refreshTokenRequest struct {
	APIKey       string `json:"api_key"`
	RefreshToken string `json:"refresh_token"`
}

// AccessToken is the short-lived bearer credential issued by the gateway.
type AccessToken struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int64  `json:"expires_in"`
	TokenType   string `json:"token_type"`
}

// RefreshedToken is the pair returned when a refresh token is exchanged.
type RefreshedToken struct {
	AccessToken  string `json:"access_token"`
	ExpiresIn    int64  `json:"expires_in"`
	RefreshToken string `json:"refresh_token"`
}
