package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/campuselect/voting-portal/internal/core/domain"
)

func TestRegisterAndLogin(t *testing.T) {
	repo := newStubVoterRepo()
	svc := NewAuthService(repo, "secret", time.Hour)

	voter, err := svc.Register(context.Background(), "ana@campus.test", "hunter22", "Ana", "2210500123", "")
	if err != nil {
		t.Fatalf("Register error: %v", err)
	}
	if voter.Role != domain.RoleVoter {
		t.Fatalf("default role = %q, want voter", voter.Role)
	}
	if voter.PasswordHash == "hunter22" {
		t.Fatalf("password stored in plain text")
	}
	if voter.HasVoted {
		t.Fatalf("new voter must not be flagged as voted")
	}

	token, logged, err := svc.Login(context.Background(), "ana@campus.test", "hunter22")
	if err != nil {
		t.Fatalf("Login error: %v", err)
	}
	if logged.ID != voter.ID {
		t.Fatalf("logged in as %s, want %s", logged.ID, voter.ID)
	}

	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(_ *jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("token does not parse: %v", err)
	}
	if claims["sub"] != voter.ID || claims["role"] != domain.RoleVoter || claims["nim"] != "2210500123" {
		t.Fatalf("unexpected claims: %v", claims)
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	repo := newStubVoterRepo()
	svc := NewAuthService(repo, "secret", time.Hour)

	if _, err := svc.Register(context.Background(), "ana@campus.test", "hunter22", "Ana", "2210500123", ""); err != nil {
		t.Fatalf("Register error: %v", err)
	}

	_, _, err := svc.Login(context.Background(), "ana@campus.test", "wrong")
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestLogin_UnknownEmail(t *testing.T) {
	repo := newStubVoterRepo()
	svc := NewAuthService(repo, "secret", time.Hour)

	_, _, err := svc.Login(context.Background(), "ghost@campus.test", "whatever")
	if !errors.Is(err, domain.ErrVoterNotFound) {
		t.Fatalf("expected ErrVoterNotFound, got %v", err)
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	repo := newStubVoterRepo()
	svc := NewAuthService(repo, "secret", time.Hour)

	if _, err := svc.Register(context.Background(), "ana@campus.test", "hunter22", "Ana", "2210500123", ""); err != nil {
		t.Fatalf("first Register error: %v", err)
	}
	_, err := svc.Register(context.Background(), "ana@campus.test", "hunter22", "Ana Again", "2210500124", "")
	if !errors.Is(err, domain.ErrVoterExists) {
		t.Fatalf("expected ErrVoterExists, got %v", err)
	}
}

func TestRegister_RejectsUnknownRole(t *testing.T) {
	repo := newStubVoterRepo()
	svc := NewAuthService(repo, "secret", time.Hour)

	_, err := svc.Register(context.Background(), "x@campus.test", "hunter22", "X", "2210500125", "root")
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown role, got %v", err)
	}
}
