package models

import "github.com/golang-jwt/jwt/v5"

// UserRole represents the roles recognised by the admin API.
type UserRole string

const (
	RoleAdmin    UserRole = "ADMIN"
	RoleProvider UserRole = "PROVIDER"
)

// JWTClaims represents the JWT payload issued by the booking backend.
type JWTClaims struct {
	UserID string   `json:"user_id"`
	Role   UserRole `json:"role"`
	Email  string   `json:"email"`
	jwt.RegisteredClaims
}
