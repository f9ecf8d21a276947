// Package jwt provides RS256 JSON Web Token signing and validation.
//
// Guildmaster does not issue tokens in production. Access tokens come
// from the external identity provider; the API only validates them
// against the provider's public key. Signing support exists for the
// token CLI and for tests.
//
// # Validation
//
// Validate a token and extract its claims:
//
//	service, err := jwt.NewService(jwt.Config{
//	    PublicKeyPath: "keys/identity.pub",
//	    Issuer:        "emberforge-identity",
//	})
//
//	claims, err := service.Validate(tokenString)
//	if err != nil {
//	    // invalid, expired, or badly signed token
//	}
//	userID := claims.UserID
//
// Validation errors are sentinel values (ErrTokenExpired,
// ErrInvalidSignature, ErrInvalidToken) suitable for errors.Is.
//
// # Signing
//
// With a private key configured, Sign produces a token carrying the
// standard registered claims plus the user_id and email custom claims:
//
//	token, err := service.Sign(jwt.Claims{UserID: "user:123"})
package jwt
