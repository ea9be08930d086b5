package identity

import (
	"context"

	"go.uber.org/zap"

	"github.com/shelfmaster/backend/internal/domain/identity"
	"github.com/shelfmaster/backend/internal/domain/shared"
	"github.com/shelfmaster/backend/internal/infrastructure/auth"
)

// AuthService handles authentication operations
type AuthService struct {
	userRepo   identity.UserRepository
	jwtService *auth.JWTService
	blacklist  auth.TokenBlacklist
	logger     *zap.Logger
}

// NewAuthService creates a new authentication service
func NewAuthService(
	userRepo identity.UserRepository,
	jwtService *auth.JWTService,
	blacklist auth.TokenBlacklist,
	logger *zap.Logger,
) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		jwtService: jwtService,
		blacklist:  blacklist,
		logger:     logger,
	}
}

// Login authenticates a user and returns a token pair
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*LoginResult, error) {
	user, err := s.userRepo.FindByUsername(ctx, req.Username)
	if err != nil {
		s.logger.Warn("Login attempt for unknown user", zap.String("username", req.Username))
		return nil, shared.NewDomainError(shared.CodeUnauthorized, "Invalid username or password")
	}
	if !user.IsActive() {
		s.logger.Warn("Login attempt for inactive account", zap.String("username", req.Username))
		return nil, shared.NewDomainError(shared.CodeForbidden, "Account has been deactivated")
	}
	if !user.VerifyPassword(req.Password) {
		s.logger.Warn("Invalid password attempt", zap.String("username", req.Username))
		return nil, shared.NewDomainError(shared.CodeUnauthorized, "Invalid username or password")
	}

	tokens, err := s.jwtService.GenerateTokenPair(auth.GenerateTokenInput{
		UserID:   user.ID,
		Username: user.Username,
		Role:     user.Role.String(),
	})
	if err != nil {
		s.logger.Error("Failed to generate token pair", zap.Error(err))
		return nil, shared.NewDomainError(shared.CodeUnauthorized, "Failed to issue tokens")
	}

	s.logger.Info("User logged in", zap.String("username", user.Username))
	return &LoginResult{Tokens: tokens, User: ToUserResponse(user)}, nil
}

// Refresh exchanges a valid refresh token for a new pair
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*auth.TokenPair, error) {
	claims, err := s.jwtService.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, shared.NewDomainError(shared.CodeUnauthorized, "Invalid refresh token")
	}
	blacklisted, err := s.blacklist.IsBlacklisted(ctx, claims.ID)
	if err != nil {
		s.logger.Error("Blacklist check failed", zap.Error(err))
		return nil, shared.NewDomainError(shared.CodeUnauthorized, "Invalid refresh token")
	}
	if blacklisted {
		return nil, shared.NewDomainError(shared.CodeUnauthorized, "Refresh token has been revoked")
	}
	tokens, err := s.jwtService.RefreshTokenPair(refreshToken)
	if err != nil {
		return nil, shared.NewDomainError(shared.CodeUnauthorized, "Invalid refresh token")
	}
	return tokens, nil
}

// Logout revokes the presented access token for its remaining lifetime
func (s *AuthService) Logout(ctx context.Context, accessToken string) error {
	claims, err := s.jwtService.ValidateAccessToken(accessToken)
	if err != nil {
		return shared.NewDomainError(shared.CodeUnauthorized, "Invalid token")
	}
	if err := s.blacklist.AddToBlacklist(ctx, claims.ID, claims.GetRemainingTTL()); err != nil {
		s.logger.Error("Failed to blacklist token", zap.Error(err))
		return shared.NewDomainError(shared.CodeUnauthorized, "Failed to revoke token")
	}
	s.logger.Info("User logged out", zap.String("username", claims.Username))
	return nil
}

// Authenticate validates an access token against signature and blacklist
func (s *AuthService) Authenticate(ctx context.Context, accessToken string) (*auth.Claims, error) {
	claims, err := s.jwtService.ValidateAccessToken(accessToken)
	if err != nil {
		return nil, shared.NewDomainError(shared.CodeUnauthorized, "Invalid or expired token")
	}
	blacklisted, err := s.blacklist.IsBlacklisted(ctx, claims.ID)
	if err != nil {
		s.logger.Error("Blacklist check failed", zap.Error(err))
		return nil, shared.NewDomainError(shared.CodeUnauthorized, "Invalid token")
	}
	if blacklisted {
		return nil, shared.NewDomainError(shared.CodeUnauthorized, "Token has been revoked")
	}
	return claims, nil
}
