package identity

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/shoestore/backend/internal/domain/identity"
	"github.com/shoestore/backend/internal/domain/shared"
	"github.com/shoestore/backend/internal/infrastructure/auth"
)

// AuthService handles authentication operations
type AuthService struct {
	users      identity.UserRepository
	jwtService *auth.JWTService
	blacklist  auth.TokenBlacklist
	logger     *zap.Logger
}

// NewAuthService creates a new authentication service
func NewAuthService(
	users identity.UserRepository,
	jwtService *auth.JWTService,
	blacklist auth.TokenBlacklist,
	logger *zap.Logger,
) *AuthService {
	return &AuthService{
		users:      users,
		jwtService: jwtService,
		blacklist:  blacklist,
		logger:     logger,
	}
}

// Register creates a new account with the "user" role
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*UserInfo, error) {
	existing, err := s.users.FindByEmail(ctx, input.Email)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Email đã được đăng ký")
	}

	user, err := identity.NewUser(input.Username, input.Email, input.Password, identity.RoleUser)
	if err != nil {
		return nil, err
	}
	user.Phone = input.Phone

	if err := s.users.Save(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("user registered",
		zap.String("user_id", user.ID.String()),
		zap.String("email", user.Email))

	info := ToUserInfo(user)
	return &info, nil
}

// Login authenticates a user and returns a token pair
func (s *AuthService) Login(ctx context.Context, input LoginInput) (*LoginResult, error) {
	user, err := s.users.FindByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			s.logger.Warn("login attempt for unknown email", zap.String("email", input.Email))
			return nil, shared.NewDomainError("INVALID_CREDENTIALS", "Email hoặc mật khẩu không đúng")
		}
		return nil, err
	}

	if !user.CheckPassword(input.Password) {
		s.logger.Warn("invalid password attempt", zap.String("email", input.Email))
		return nil, shared.NewDomainError("INVALID_CREDENTIALS", "Email hoặc mật khẩu không đúng")
	}

	pair, err := s.jwtService.GenerateTokenPair(auth.GenerateTokenInput{
		UserID:   user.ID,
		Username: user.Username,
		Role:     string(user.Role),
	})
	if err != nil {
		s.logger.Error("failed to generate token pair", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Không thể tạo phiên đăng nhập")
	}

	s.logger.Info("user logged in",
		zap.String("user_id", user.ID.String()),
		zap.String("email", user.Email))

	return &LoginResult{
		AccessToken:           pair.AccessToken,
		RefreshToken:          pair.RefreshToken,
		AccessTokenExpiresAt:  pair.AccessTokenExpiresAt,
		RefreshTokenExpiresAt: pair.RefreshTokenExpiresAt,
		TokenType:             pair.TokenType,
		User:                  ToUserInfo(user),
	}, nil
}

// Refresh exchanges a valid refresh token for a new token pair
func (s *AuthService) Refresh(ctx context.Context, input RefreshInput) (*LoginResult, error) {
	claims, err := s.jwtService.ValidateRefreshToken(input.RefreshToken)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrExpiredToken):
			return nil, shared.NewDomainError("TOKEN_EXPIRED", "Phiên đăng nhập đã hết hạn")
		case errors.Is(err, auth.ErrMaxRefreshExceeded):
			return nil, shared.NewDomainError("TOKEN_MAX_REFRESH", "Vui lòng đăng nhập lại")
		default:
			return nil, shared.NewDomainError("TOKEN_INVALID", "Phiên đăng nhập không hợp lệ")
		}
	}

	blacklisted, err := s.blacklist.IsBlacklisted(ctx, claims.ID)
	if err != nil {
		s.logger.Error("blacklist check failed", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Không thể kiểm tra phiên đăng nhập")
	}
	if blacklisted {
		return nil, shared.NewDomainError("TOKEN_INVALID", "Phiên đăng nhập đã bị thu hồi")
	}

	userID, err := claims.GetUserUUID()
	if err != nil {
		return nil, shared.NewDomainError("TOKEN_INVALID", "Phiên đăng nhập không hợp lệ")
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("TOKEN_INVALID", "Tài khoản không còn tồn tại")
		}
		return nil, err
	}

	pair, err := s.jwtService.RefreshTokenPair(input.RefreshToken, user.Username, string(user.Role))
	if err != nil {
		if errors.Is(err, auth.ErrMaxRefreshExceeded) {
			return nil, shared.NewDomainError("TOKEN_MAX_REFRESH", "Vui lòng đăng nhập lại")
		}
		s.logger.Error("token refresh failed", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Không thể làm mới phiên đăng nhập")
	}

	return &LoginResult{
		AccessToken:           pair.AccessToken,
		RefreshToken:          pair.RefreshToken,
		AccessTokenExpiresAt:  pair.AccessTokenExpiresAt,
		RefreshTokenExpiresAt: pair.RefreshTokenExpiresAt,
		TokenType:             pair.TokenType,
		User:                  ToUserInfo(user),
	}, nil
}

// Logout revokes the given tokens for their remaining lifetime
func (s *AuthService) Logout(ctx context.Context, accessToken, refreshToken string) error {
	if claims, err := s.jwtService.ValidateAccessToken(accessToken); err == nil {
		if err := s.blacklist.AddToBlacklist(ctx, claims.ID, claims.GetRemainingTTL()); err != nil {
			s.logger.Error("failed to blacklist access token", zap.Error(err))
			return shared.NewDomainError("INTERNAL_ERROR", "Không thể đăng xuất")
		}
	}
	if refreshToken != "" {
		if claims, err := s.jwtService.ValidateRefreshToken(refreshToken); err == nil {
			if err := s.blacklist.AddToBlacklist(ctx, claims.ID, claims.GetRemainingTTL()); err != nil {
				s.logger.Error("failed to blacklist refresh token", zap.Error(err))
				return shared.NewDomainError("INTERNAL_ERROR", "Không thể đăng xuất")
			}
		}
	}
	return nil
}

// Me returns the profile of the given user
func (s *AuthService) Me(ctx context.Context, userID uuid.UUID) (*UserInfo, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	info := ToUserInfo(user)
	return &info, nil
}
