package ports

import (
	"context"

	"github.com/campuselect/voting-portal/internal/core/domain"
)

type AuthService interface {
	Register(ctx context.Context, email, password, name, nim, role string) (*domain.Voter, error)
	Login(ctx context.Context, email, password string) (string, *domain.Voter, error)
}
