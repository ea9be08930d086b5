package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/shelfmaster/backend/internal/infrastructure/config"
)

// TokenType distinguishes access tokens from refresh tokens so one can
// never be presented in place of the other.
type TokenType string

const (
	TokenTypeAccess  TokenType = "access"
	TokenTypeRefresh TokenType = "refresh"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token has expired")
)

// Claims carries the ShelfMaster identity inside a signed token.
type Claims struct {
	jwt.RegisteredClaims
	UserID    string    `json:"user_id"`
	Username  string    `json:"username"`
	Role      string    `json:"role"`
	TokenType TokenType `json:"token_type"`
}

func (c *Claims) GetUserUUID() (uuid.UUID, error) {
	return uuid.Parse(c.UserID)
}

// GetRemainingTTL reports how long the token stays valid. Expired tokens
// report zero.
func (c *Claims) GetRemainingTTL() time.Duration {
	if c.ExpiresAt == nil {
		return 0
	}
	if left := time.Until(c.ExpiresAt.Time); left > 0 {
		return left
	}
	return 0
}

// TokenPair is what a successful login or refresh hands back to the
// client.
type TokenPair struct {
	AccessToken           string    `json:"access_token"`
	RefreshToken          string    `json:"refresh_token"`
	AccessTokenExpiresAt  time.Time `json:"access_token_expires_at"`
	RefreshTokenExpiresAt time.Time `json:"refresh_token_expires_at"`
	TokenType             string    `json:"token_type"`
}

// JWTService signs and verifies HS256 tokens. Access and refresh tokens
// use separate secrets so a leaked access secret cannot mint refresh
// tokens.
type JWTService struct {
	secrets map[TokenType][]byte
	ttls    map[TokenType]time.Duration
	issuer  string
}

func NewJWTService(cfg config.JWTConfig) *JWTService {
	refreshSecret := cfg.RefreshSecret
	if refreshSecret == "" {
		refreshSecret = cfg.Secret
	}
	return &JWTService{
		secrets: map[TokenType][]byte{
			TokenTypeAccess:  []byte(cfg.Secret),
			TokenTypeRefresh: []byte(refreshSecret),
		},
		ttls: map[TokenType]time.Duration{
			TokenTypeAccess:  cfg.AccessTokenExpiration,
			TokenTypeRefresh: cfg.RefreshTokenExpiration,
		},
		issuer: cfg.Issuer,
	}
}

// GenerateTokenInput identifies the user a token pair is minted for.
type GenerateTokenInput struct {
	UserID   uuid.UUID
	Username string
	Role     string
}

// GenerateTokenPair mints a matching access and refresh token for the
// user.
func (s *JWTService) GenerateTokenPair(input GenerateTokenInput) (*TokenPair, error) {
	now := time.Now()

	access, err := s.mint(input, now, TokenTypeAccess)
	if err != nil {
		return nil, err
	}
	refresh, err := s.mint(input, now, TokenTypeRefresh)
	if err != nil {
		return nil, err
	}

	return &TokenPair{
		AccessToken:           access,
		RefreshToken:          refresh,
		AccessTokenExpiresAt:  now.Add(s.ttls[TokenTypeAccess]),
		RefreshTokenExpiresAt: now.Add(s.ttls[TokenTypeRefresh]),
		TokenType:             "Bearer",
	}, nil
}

// RefreshTokenPair exchanges a valid refresh token for a brand new pair.
func (s *JWTService) RefreshTokenPair(refreshToken string) (*TokenPair, error) {
	claims, err := s.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, err
	}
	userID, err := claims.GetUserUUID()
	if err != nil {
		return nil, ErrInvalidToken
	}
	return s.GenerateTokenPair(GenerateTokenInput{
		UserID:   userID,
		Username: claims.Username,
		Role:     claims.Role,
	})
}

func (s *JWTService) ValidateAccessToken(tokenString string) (*Claims, error) {
	return s.verify(tokenString, TokenTypeAccess)
}

func (s *JWTService) ValidateRefreshToken(tokenString string) (*Claims, error) {
	return s.verify(tokenString, TokenTypeRefresh)
}

func (s *JWTService) mint(input GenerateTokenInput, now time.Time, kind TokenType) (string, error) {
	expiresAt := now.Add(s.ttls[kind])
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			Issuer:    s.issuer,
			Subject:   input.UserID.String(),
			Audience:  jwt.ClaimStrings{s.issuer},
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			NotBefore: jwt.NewNumericDate(now),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		UserID:    input.UserID.String(),
		Username:  input.Username,
		Role:      input.Role,
		TokenType: kind,
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secrets[kind])
}

func (s *JWTService) verify(tokenString string, kind TokenType) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{},
		func(*jwt.Token) (interface{}, error) { return s.secrets[kind], nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.UserID == "" || claims.TokenType != kind {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
