package models

import "github.com/golang-jwt/jwt/v5"

// SupabaseClaims is the claim set the hosted auth service signs into
// its access tokens. Sub is the stable user identifier every record is
// scoped by.
type SupabaseClaims struct {
	jwt.RegisteredClaims
	Email       string `json:"email"`
	Sub         string `json:"sub"`
	Role        string `json:"role"`
	AppMetadata struct {
		Provider string `json:"provider"`
	} `json:"app_metadata"`
}
