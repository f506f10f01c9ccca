package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/maarriet/costa-rica-tourism-system/internal/database"
	"github.com/maarriet/costa-rica-tourism-system/internal/models"
	"github.com/maarriet/costa-rica-tourism-system/pkg/jwt"
)

// ErrInvalidCredentials is returned for a wrong email or password. The
// message never says which one so accounts cannot be enumerated.
var ErrInvalidCredentials = errors.New("invalid email or password")

// AuthService handles account registration and token issuance.
type AuthService struct {
	userRepo   *database.UserRepository
	jwtSvc     *jwt.Service
	bcryptCost int
}

// NewAuthService creates a new AuthService. An out-of-range bcrypt cost
// falls back to the library default.
func NewAuthService(userRepo *database.UserRepository, jwtSvc *jwt.Service, bcryptCost int) *AuthService {
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = bcrypt.DefaultCost
	}
	return &AuthService{
		userRepo:   userRepo,
		jwtSvc:     jwtSvc,
		bcryptCost: bcryptCost,
	}
}

// TokenPair is the access/refresh token pair returned after login.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// Register creates a client account. Administrator accounts are
// provisioned out of band, never through the public endpoint.
func (s *AuthService) Register(req *models.RegisterRequest) (*models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Name:         req.Name,
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		PasswordHash: string(hash),
		Role:         models.RoleClient,
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}

	logrus.WithField("email", user.Email).Info("Client account registered")
	return user, nil
}

// Login verifies credentials and issues a token pair.
func (s *AuthService) Login(req *models.LoginRequest) (*models.User, *TokenPair, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		if errors.Is(err, models.ErrUserNotFound) {
			return nil, nil, ErrInvalidCredentials
		}
		return nil, nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, nil, ErrInvalidCredentials
	}

	pair, err := s.issueTokens(user)
	if err != nil {
		return nil, nil, err
	}
	return user, pair, nil
}

// Refresh exchanges a valid refresh token for a fresh token pair.
func (s *AuthService) Refresh(refreshToken string) (*TokenPair, error) {
	claims, err := s.jwtSvc.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, err
	}

	// Re-read the account so a role change or deletion takes effect on
	// the next refresh rather than at token expiry.
	user, err := s.userRepo.GetByID(claims.UserID.String())
	if err != nil {
		return nil, err
	}

	return s.issueTokens(user)
}

func (s *AuthService) issueTokens(user *models.User) (*TokenPair, error) {
	userID, err := uuid.Parse(user.ID)
	if err != nil {
		return nil, fmt.Errorf("invalid user id: %w", err)
	}

	access, err := s.jwtSvc.GenerateAccessToken(userID, user.Email, string(user.Role))
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}
	refresh, err := s.jwtSvc.GenerateRefreshToken(userID, user.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}
