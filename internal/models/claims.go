package models

import "github.com/golang-jwt/jwt"

// Claims is the access-token payload issued by the auth service.
type Claims struct {
	UserID string `json:"user_id"`
	Role   string `json:"role"`
	jwt.StandardClaims
}
