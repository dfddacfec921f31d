package auth

import "github.com/golang-jwt/jwt/v5"

// AdminSubject is the only subject an admin token is issued for.
const AdminSubject = "admin"

// AdminClaims is the JWT handed to the back office after login.
type AdminClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}
