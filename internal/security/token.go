package security

import (
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidToken   = errors.New("invalid token")
	ErrExpiredToken   = errors.New("token has expired")
	ErrWrongTokenType = errors.New("wrong token type for this endpoint")
)

type TokenType string

const (
	TokenTypeAccess  TokenType = "access"
	TokenTypeRefresh TokenType = "refresh"
)

// Audience identifies who a token was minted for: a renting customer or a
// member of the operations team.
type Audience string

const (
	AudienceCustomer Audience = "customer"
	AudienceOps      Audience = "ops"
)

// Claims defines the application token claims. Role carries the operator
// role (AGENT, MANAGER) for ops tokens and is empty for customer tokens.
type Claims struct {
	SubjectID int32     `json:"subject_id"`
	Email     string    `json:"email,omitempty"`
	Type      TokenType `json:"type"`
	Aud       Audience  `json:"aud_kind"`
	Role      string    `json:"role,omitempty"`
	jwt.RegisteredClaims
}

type TokenManager interface {
	GenerateAccessToken(subjectID int32, email string, aud Audience, role string) (string, error)
	GenerateRefreshToken(subjectID int32, email string, aud Audience) (string, error)
	ValidateToken(tokenString string) (*Claims, error)
}

type tokenManager struct {
	secret        []byte
	accessExpiry  time.Duration
	refreshExpiry time.Duration
}

func NewTokenManager(secret string, accessExpiryMinutes, refreshExpiryMinutes int) TokenManager {
	return &tokenManager{
		secret:        []byte(secret),
		accessExpiry:  time.Duration(accessExpiryMinutes) * time.Minute,
		refreshExpiry: time.Duration(refreshExpiryMinutes) * time.Minute,
	}
}

func (m *tokenManager) GenerateAccessToken(subjectID int32, email string, aud Audience, role string) (string, error) {
	claims := Claims{
		SubjectID: subjectID,
		Email:     email,
		Type:      TokenTypeAccess,
		Aud:       aud,
		Role:      role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.Itoa(int(subjectID)),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(m.accessExpiry)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    "rental-api",
			Audience:  jwt.ClaimStrings{string(aud)},
			ID:        generateJTI(),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

func (m *tokenManager) GenerateRefreshToken(subjectID int32, email string, aud Audience) (string, error) {
	claims := Claims{
		SubjectID: subjectID,
		Email:     email,
		Type:      TokenTypeRefresh,
		Aud:       aud,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.Itoa(int(subjectID)),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(m.refreshExpiry)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    "rental-api",
			Audience:  jwt.ClaimStrings{string(aud)},
			ID:        generateJTI(),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

func (m *tokenManager) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return m.secret, nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		if claims.SubjectID == 0 && claims.Subject != "" {
			uid, _ := strconv.Atoi(claims.Subject)
			claims.SubjectID = int32(uid)
		}
		return claims, nil
	}

	return nil, ErrInvalidToken
}

func generateJTI() string {
	return strconv.FormatInt(time.Now().UnixNano(), 16)
}
