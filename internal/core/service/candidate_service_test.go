package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/campuselect/voting-portal/internal/core/domain"
	"github.com/campuselect/voting-portal/internal/core/ports"
)

func TestCandidateCreateAndList(t *testing.T) {
	repo := newStubCandidateRepo()
	svc := NewCandidateService(repo, zerolog.Nop())

	created, err := svc.Create(context.Background(), ports.CreateCandidateInput{
		BallotNumber: 1,
		Name:         "Candidate One",
		Program:      "Computer Science",
		Platform:     "Faster wifi",
	})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if !created.IsActive {
		t.Fatalf("new candidate must start active")
	}

	list, err := svc.List(context.Background(), false)
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if len(list) != 1 || list[0].ID != created.ID {
		t.Fatalf("unexpected list: %+v", list)
	}
}

func TestCandidateDeactivation(t *testing.T) {
	repo := newStubCandidateRepo()
	svc := NewCandidateService(repo, zerolog.Nop())

	created, err := svc.Create(context.Background(), ports.CreateCandidateInput{BallotNumber: 1, Name: "Candidate One"})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}

	inactive := false
	updated, err := svc.Update(context.Background(), created.ID, ports.UpdateCandidateInput{IsActive: &inactive})
	if err != nil {
		t.Fatalf("Update error: %v", err)
	}
	if updated.IsActive {
		t.Fatalf("candidate should be inactive")
	}

	visible, err := svc.List(context.Background(), false)
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if len(visible) != 0 {
		t.Fatalf("inactive candidate must be hidden from the ballot")
	}

	all, err := svc.List(context.Background(), true)
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if len(all) != 1 {
		t.Fatalf("inactive candidate must remain listable for admins")
	}
}

func TestCandidateUpdate_PartialEdit(t *testing.T) {
	repo := newStubCandidateRepo()
	svc := NewCandidateService(repo, zerolog.Nop())

	created, err := svc.Create(context.Background(), ports.CreateCandidateInput{
		BallotNumber: 2,
		Name:         "Old Name",
		Program:      "Physics",
	})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}

	name := "New Name"
	updated, err := svc.Update(context.Background(), created.ID, ports.UpdateCandidateInput{Name: &name})
	if err != nil {
		t.Fatalf("Update error: %v", err)
	}
	if updated.Name != "New Name" {
		t.Fatalf("name not updated")
	}
	if updated.Program != "Physics" || !updated.IsActive {
		t.Fatalf("untouched fields must survive a partial edit: %+v", updated)
	}
}

func TestCandidateUpdate_NotFound(t *testing.T) {
	repo := newStubCandidateRepo()
	svc := NewCandidateService(repo, zerolog.Nop())

	name := "Whoever"
	_, err := svc.Update(context.Background(), "missing", ports.UpdateCandidateInput{Name: &name})
	if !errors.Is(err, domain.ErrCandidateNotFound) {
		t.Fatalf("expected ErrCandidateNotFound, got %v", err)
	}
}
