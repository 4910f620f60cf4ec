package service

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/campuselect/voting-portal/internal/core/domain"
	"github.com/campuselect/voting-portal/internal/core/ports"
)

// AuthService implements registration and login.
type AuthService struct {
	repo      ports.VoterRepository
	jwtSecret string
	tokenTTL  time.Duration
}

func NewAuthService(repo ports.VoterRepository, jwtSecret string, tokenTTL time.Duration) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AuthService{repo: repo, jwtSecret: jwtSecret, tokenTTL: tokenTTL}
}

// Register creates a voter account. Self-registration always produces the
// voter role; staff and admin accounts are provisioned out of band.
func (s *AuthService) Register(ctx context.Context, email, password, name, nim, role string) (*domain.Voter, error) {
	if email == "" || password == "" || nim == "" {
		return nil, domain.ErrInvalidCredentials
	}
	if role == "" {
		role = domain.RoleVoter
	}
	if !domain.ValidRole(role) {
		return nil, domain.ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	voter := &domain.Voter{
		ID:           uuid.NewString(),
		Email:        email,
		Name:         name,
		NIM:          nim,
		PasswordHash: string(hash),
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.repo.Create(ctx, voter)
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.Voter, error) {
	if email == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	voter, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return "", nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(voter.PasswordHash), []byte(password)) != nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	token, err := s.generateToken(voter)
	if err != nil {
		return "", nil, err
	}

	return token, voter, nil
}

func (s *AuthService) generateToken(voter *domain.Voter) (string, error) {
	claims := jwt.MapClaims{
		"sub":  voter.ID,
		"role": voter.Role,
		"nim":  voter.NIM,
		"exp":  time.Now().Add(s.tokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}
