// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package sec decodes the pre-authenticated principal the HTTP adapter
hands to the core. Password hashing and token issuance are explicitly
out of the core's scope (spec §1) — this package only verifies a
session JWT minted by an external identity service and turns its claims
into an [authz.Principal].
*/
package sec

import (
	"crypto/rsa"
	"fmt"
	"os"

	"github.com/golang-jwt/jwt/v5"

	"github.com/pointercrate-rs/corengine/internal/platform/authz"
)

// AuthClaims is the payload embedded inside a session JWT.
type AuthClaims struct {
	jwt.RegisteredClaims

	UserID      int64             `json:"uid"`
	Username    string            `json:"unm"`
	Permissions authz.Permission  `json:"perm"`
}

// Principal converts the verified claims into the [authz.Principal] the
// core's service layer consumes.
func (c *AuthClaims) Principal() authz.Principal {
	return authz.Principal{UserID: c.UserID, Permissions: c.Permissions}
}

// TokenService verifies RS256-signed session tokens issued by the
// external identity service.
type TokenService struct {
	publicKey *rsa.PublicKey
}

// NewTokenService loads the public key used to verify session tokens.
// The core never holds the private key — it only verifies.
func NewTokenService(publicKeyPath string) (*TokenService, error) {
	publicKeyData, err := os.ReadFile(publicKeyPath)
	if err != nil {
		return nil, fmt.Errorf("sec: failed to read public key from %s: %w", publicKeyPath, err)
	}

	publicKey, err := jwt.ParseRSAPublicKeyFromPEM(publicKeyData)
	if err != nil {
		return nil, fmt.Errorf("sec: failed to parse public key: %w", err)
	}

	return &TokenService{publicKey: publicKey}, nil
}

// VerifyToken checks the signature and validity of a session JWT.
func (service *TokenService) VerifyToken(tokenString string) (*AuthClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &AuthClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodRSA); !ok {
			return nil, fmt.Errorf("sec: unexpected signing method: %v", token.Header["alg"])
		}
		return service.publicKey, nil
	})
	if err != nil {
		return nil, fmt.Errorf("sec: invalid token: %w", err)
	}

	claims, ok := token.Claims.(*AuthClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("sec: invalid token claims")
	}

	return claims, nil
}
