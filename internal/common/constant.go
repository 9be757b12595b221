package common

// AuthorizationHeaderName is the HTTP header carrying the access token.
const AuthorizationHeaderName = "Authorization"

// BearerScheme is the authorization scheme prefix for access tokens.
const BearerScheme = "Bearer"

// RefreshTokenSize is the number of random bytes behind a refresh token.
// The hex form is twice as long.
const RefreshTokenSize = 32
