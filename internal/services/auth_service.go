package services

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"expense-manager/internal/dto"
	"expense-manager/internal/models"
	"expense-manager/internal/repositories"

	"github.com/google/uuid"
)

var (
	ErrUserAlreadyExists  = errors.New("username or email already taken")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// authService implements registration, login, logout and profile lookup.
type authService struct {
	users     repositories.UserRepositoryInterface
	revoked   repositories.RevokedTokenRepositoryInterface
	passwords PasswordServiceInterface
	tokens    TokenServiceInterface
}

func NewAuthService(
	users repositories.UserRepositoryInterface,
	revoked repositories.RevokedTokenRepositoryInterface,
	passwords PasswordServiceInterface,
	tokens TokenServiceInterface,
) AuthServiceInterface {
	return &authService{
		users:     users,
		revoked:   revoked,
		passwords: passwords,
		tokens:    tokens,
	}
}

func (s *authService) Register(req *dto.RegisterRequest) (*models.User, error) {
	username := strings.TrimSpace(req.Username)
	email := strings.ToLower(strings.TrimSpace(req.Email))

	if err := s.passwords.ValidatePassword(req.Password); err != nil {
		return nil, err
	}

	exists, err := s.users.ExistsByUsernameOrEmail(username, email)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing users: %w", err)
	}
	if exists {
		return nil, ErrUserAlreadyExists
	}

	hash, err := s.passwords.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
	}
	if err := s.users.Create(user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	slog.Info("user registered", "user_id", user.ID, "username", user.Username)
	return user, nil
}

// Login accepts either the username or the email address as the login
// identifier. The password comparison runs even for unknown logins so the
// response time does not reveal which identifiers exist.
func (s *authService) Login(req *dto.LoginRequest) (*models.User, *dto.TokenResponse, error) {
	login := strings.TrimSpace(req.Login)

	user, err := s.users.GetByUsernameOrEmail(login)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			s.passwords.ComparePassword(req.Password, dummyBcryptHash)
			return nil, nil, ErrInvalidCredentials
		}
		return nil, nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if !s.passwords.ComparePassword(req.Password, user.PasswordHash) {
		return nil, nil, ErrInvalidCredentials
	}

	accessToken, expiresAt, err := s.tokens.GenerateAccessToken(user)
	if err != nil {
		return nil, nil, err
	}

	slog.Info("user logged in", "user_id", user.ID)
	return user, &dto.TokenResponse{
		AccessToken: accessToken,
		TokenType:   "Bearer",
		ExpiresAt:   expiresAt,
	}, nil
}

// Logout revokes the presented access token so it stops authenticating
// before its natural expiry. Revocation is best effort and the operation
// always reports success: an unreadable token has nothing to revoke, and an
// expired one is recorded anyway so it cannot be replayed.
func (s *authService) Logout(accessToken string) error {
	claims, err := s.tokens.ValidateAccessToken(accessToken)
	if err != nil {
		jti, jerr := s.tokens.GetJTI(accessToken)
		if jerr != nil || jti == "" {
			return nil
		}
		if err := s.revokeToken(jti, uuid.Nil, time.Now().Add(24*time.Hour)); err != nil {
			slog.Error("failed to revoke expired token", "jti", jti, "error", err)
		}
		return nil
	}

	userID, _ := uuid.Parse(claims.UserID)

	expiry := time.Now().Add(24 * time.Hour)
	if exp, err := s.tokens.GetTokenExpiry(accessToken); err == nil {
		expiry = exp
	}

	if err := s.revokeToken(claims.ID, userID, expiry); err != nil {
		slog.Error("failed to revoke token", "jti", claims.ID, "user_id", userID, "error", err)
		return nil
	}

	slog.Info("user logged out", "user_id", userID)
	return nil
}

func (s *authService) revokeToken(jti string, userID uuid.UUID, expiresAt time.Time) error {
	return s.revoked.Create(&models.RevokedToken{
		JTI:       jti,
		UserID:    userID,
		ExpiresAt: expiresAt,
	})
}

func (s *authService) GetProfile(userID uuid.UUID) (*models.User, error) {
	return s.users.GetByID(userID)
}

// dummyBcryptHash is a hash of a random string, used to equalize the cost of
// failed logins for unknown identifiers.
const dummyBcryptHash = "$2a$12$R9h/cIPz0gi.URNNX3kh2OPST9/PgBkqquzi.Ss7KIUgO2t0jWMUW"
