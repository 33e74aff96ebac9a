package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/basura/basura-api/internal/model"
)

type TokenType string

const (
	TokenAccess        TokenType = "access"
	TokenRefresh       TokenType = "refresh"
	TokenPasswordReset TokenType = "password_reset"
)

var (
	ErrTokenExpired   = errors.New("token has expired")
	ErrTokenInvalid   = errors.New("invalid token")
	ErrWrongTokenType = errors.New("wrong token type")
)

// Claims carries either an identity (access and refresh tokens) or the email a
// password reset was requested for.
type Claims struct {
	Identity *model.Principal `json:"identity,omitempty"`
	Email    string           `json:"email,omitempty"`
	Type     TokenType        `json:"type"`
	jwt.RegisteredClaims
}

// TokenManager signs and verifies HMAC-SHA256 tokens with a single secret.
type TokenManager struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	resetTTL   time.Duration
}

func NewTokenManager(secret string, accessTTL, refreshTTL, resetTTL time.Duration) *TokenManager {
	return &TokenManager{
		secret:     []byte(secret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		resetTTL:   resetTTL,
	}
}

func (m *TokenManager) IssueAccess(principal model.Principal) (string, error) {
	return m.sign(Claims{Identity: &principal, Type: TokenAccess}, principal.Username, m.accessTTL)
}

func (m *TokenManager) IssueRefresh(principal model.Principal) (string, error) {
	return m.sign(Claims{Identity: &principal, Type: TokenRefresh}, principal.Username, m.refreshTTL)
}

func (m *TokenManager) IssuePasswordReset(email string) (string, error) {
	return m.sign(Claims{Email: email, Type: TokenPasswordReset}, email, m.resetTTL)
}

func (m *TokenManager) ParseAccess(raw string) (model.Principal, error) {
	return m.parseIdentity(raw, TokenAccess)
}

func (m *TokenManager) ParseRefresh(raw string) (model.Principal, error) {
	return m.parseIdentity(raw, TokenRefresh)
}

// ParsePasswordReset returns the email the token was issued for.
func (m *TokenManager) ParsePasswordReset(raw string) (string, error) {
	claims, err := m.parse(raw, TokenPasswordReset)
	if err != nil {
		return "", err
	}
	if claims.Email == "" {
		return "", ErrTokenInvalid
	}
	return claims.Email, nil
}

func (m *TokenManager) sign(claims Claims, subject string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims.RegisteredClaims = jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		NotBefore: jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("sign %s token: %w", claims.Type, err)
	}
	return signed, nil
}

func (m *TokenManager) parseIdentity(raw string, expected TokenType) (model.Principal, error) {
	claims, err := m.parse(raw, expected)
	if err != nil {
		return model.Principal{}, err
	}
	if claims.Identity == nil || claims.Identity.Username == "" {
		return model.Principal{}, ErrTokenInvalid
	}
	return *claims.Identity, nil
}

func (m *TokenManager) parse(raw string, expected TokenType) (*Claims, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(raw, claims, func(token *jwt.Token) (interface{}, error) {
		return m.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}
	if claims.Type != expected {
		return nil, ErrWrongTokenType
	}
	return claims, nil
}
