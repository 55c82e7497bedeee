package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/flvvius/hackathon-sisc-2025/shared/domain"
	internal_errors "github.com/flvvius/hackathon-sisc-2025/shared/errors"
	"github.com/flvvius/hackathon-sisc-2025/shared/logger"
	"github.com/golang-jwt/jwt/v5"
)

// JwtService verifies the identity provider's session tokens. NewToken mints
// tokens in the same format for tests and local development.
type JwtService interface {
	NewToken(identity domain.Identity) (string, error)
	DecodeToken(jwtStr string) (domain.Identity, error)
}

type identityClaims struct {
	Name    string `json:"name,omitempty"`
	Email   string `json:"email,omitempty"`
	Picture string `json:"picture,omitempty"`
	jwt.RegisteredClaims
}

type Jwt struct {
	secretKey string
	issuer    string
	ttl       time.Duration
}

// New builds a verifier. An empty issuer disables the iss check.
func New(secretKey, issuer string, ttl time.Duration) JwtService {
	return &Jwt{secretKey: secretKey, issuer: issuer, ttl: ttl}
}

func (j *Jwt) NewToken(identity domain.Identity) (string, error) {
	now := time.Now()
	claims := identityClaims{
		Name:    identity.Name,
		Email:   identity.Email,
		Picture: identity.ImageUrl,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   identity.Id,
			Issuer:    j.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(j.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(j.secretKey))
	if err != nil {
		logger.Log.Error("failed to sign token", "error", err)
		return "", errors.New("Can't create token")
	}
	return tokenString, nil
}

func (j *Jwt) DecodeToken(jwtStr string) (domain.Identity, error) {
	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired()}
	if j.issuer != "" {
		opts = append(opts, jwt.WithIssuer(j.issuer))
	}

	claims := &identityClaims{}
	token, err := jwt.ParseWithClaims(jwtStr, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(j.secretKey), nil
	}, opts...)
	if err != nil {
		logger.Log.Debug("token rejected", "error", err)
		if errors.Is(err, jwt.ErrTokenExpired) {
			return domain.Identity{}, &internal_errors.PermissionError{Message: "Access token expired", Unauthenticated: true}
		}
		return domain.Identity{}, &internal_errors.PermissionError{Message: "Invalid access token", Unauthenticated: true}
	}
	if !token.Valid || claims.Subject == "" {
		return domain.Identity{}, &internal_errors.PermissionError{Message: "Invalid access token", Unauthenticated: true}
	}

	return domain.Identity{
		Id:       claims.Subject,
		Name:     claims.Name,
		Email:    claims.Email,
		ImageUrl: claims.Picture,
	}, nil
}
