package jwt

import (
	"fmt"
	"time"

	"github.com/cmlabs-hris/payroll-report-engine/internal/domain/user"
	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

// Claim names carried by access tokens.
const (
	ClaimUserID = "user_id"
	ClaimRole   = "role"
	ClaimType   = "type"
)

type Service interface {
	GenerateAccessToken(userID string, role user.Role) (token string, expiresAt int64, err error)
	JWTAuth() *jwtauth.JWTAuth
}

type JWTService struct {
	accessTokenExpiration time.Duration
	tokenAuth             *jwtauth.JWTAuth
}

func (j *JWTService) JWTAuth() *jwtauth.JWTAuth {
	return j.tokenAuth
}

func NewJWTService(secretKey string, accessTokenExpirationTime string) (Service, error) {
	expiration, err := time.ParseDuration(accessTokenExpirationTime)
	if err != nil {
		return nil, fmt.Errorf("parse access token expiration: %w", err)
	}

	return &JWTService{
		accessTokenExpiration: expiration,
		tokenAuth:             jwtauth.New("HS256", []byte(secretKey), nil, jwt.WithAcceptableSkew(30*time.Second)),
	}, nil
}

// GenerateAccessToken issues a token identifying the requester of report
// operations. The payroll HR system normally issues these; the engine signs
// its own for tooling and tests.
func (j *JWTService) GenerateAccessToken(userID string, role user.Role) (token string, expiresAt int64, err error) {
	expiresAt = time.Now().Add(j.accessTokenExpiration).Unix()

	_, tokenString, err := j.tokenAuth.Encode(map[string]interface{}{
		ClaimUserID: userID,
		ClaimRole:   string(role),
		ClaimType:   "access",
		"exp":       expiresAt,
	})
	return tokenString, expiresAt, err
}
