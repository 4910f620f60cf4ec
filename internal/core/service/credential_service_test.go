package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/campuselect/voting-portal/internal/core/domain"
)

// ---------------------------------------------------------------------------
// In-memory stub repositories
// ---------------------------------------------------------------------------

// stubCredentialRepo mirrors the Mongo repository's filters, including the
// mutex-guarded check-and-set in Validate.
type stubCredentialRepo struct {
	mu        sync.Mutex
	byID      map[string]*domain.Credential
	createErr error
	deleted   []string
}

func newStubCredentialRepo() *stubCredentialRepo {
	return &stubCredentialRepo{byID: make(map[string]*domain.Credential)}
}

func (r *stubCredentialRepo) Create(_ context.Context, c *domain.Credential) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return r.createErr
	}
	for _, existing := range r.byID {
		if existing.QRPayload == c.QRPayload || existing.RedeemCode == c.RedeemCode {
			return domain.ErrDuplicateCredential
		}
	}
	clone := *c
	r.byID[c.ID] = &clone
	return nil
}

func (r *stubCredentialRepo) FindByID(_ context.Context, id string) (*domain.Credential, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrCredentialNotFound
	}
	clone := *c
	return &clone, nil
}

func (r *stubCredentialRepo) FindByRedeemCode(_ context.Context, code string) (*domain.Credential, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.byID {
		if c.RedeemCode == code {
			clone := *c
			return &clone, nil
		}
	}
	return nil, domain.ErrCredentialNotFound
}

func (r *stubCredentialRepo) FindPendingByRedeemCode(_ context.Context, code string) (*domain.Credential, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.byID {
		if c.RedeemCode == code && !c.IsValidated && !c.IsUsed {
			clone := *c
			return &clone, nil
		}
	}
	return nil, domain.ErrCredentialNotFound
}

func (r *stubCredentialRepo) FindPendingByQRPayload(_ context.Context, payload string, now time.Time) (*domain.Credential, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.byID {
		if c.QRPayload == payload && !c.IsValidated && !c.IsUsed && c.ExpiresAt.After(now) {
			clone := *c
			return &clone, nil
		}
	}
	return nil, domain.ErrCredentialNotFound
}

func (r *stubCredentialRepo) FindLatestByVoter(_ context.Context, voterID string) (*domain.Credential, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var latest *domain.Credential
	for _, c := range r.byID {
		if c.VoterID != voterID || c.IsUsed {
			continue
		}
		if latest == nil || c.CreatedAt.After(latest.CreatedAt) {
			latest = c
		}
	}
	if latest == nil {
		return nil, domain.ErrCredentialNotFound
	}
	clone := *latest
	return &clone, nil
}

func (r *stubCredentialRepo) FindValidatedByVoter(_ context.Context, voterID string, now time.Time) (*domain.Credential, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.byID {
		if c.VoterID == voterID && c.IsValidated && !c.IsUsed && c.ExpiresAt.After(now) {
			clone := *c
			return &clone, nil
		}
	}
	return nil, domain.ErrNoValidSession
}

func (r *stubCredentialRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.byID, id)
	r.deleted = append(r.deleted, id)
	return nil
}

// Validate applies the guard filter and the mutation under one lock, the same
// all-or-nothing semantics the conditional Mongo update provides.
func (r *stubCredentialRepo) Validate(_ context.Context, id, staffID string, now, clampTo time.Time) (*domain.Credential, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.byID[id]
	if !ok || c.IsValidated || c.IsUsed || !c.ExpiresAt.After(now) {
		return nil, domain.ErrCredentialNotFound
	}
	c.IsValidated = true
	c.ValidatedBy = &staffID
	validatedAt := now
	c.ValidatedAt = &validatedAt
	if c.ExpiresAt.After(clampTo) {
		c.ExpiresAt = clampTo
	}
	clone := *c
	return &clone, nil
}

type stubVoterRepo struct {
	mu      sync.Mutex
	byID    map[string]*domain.Voter
	byEmail map[string]*domain.Voter
}

func newStubVoterRepo(voters ...*domain.Voter) *stubVoterRepo {
	r := &stubVoterRepo{
		byID:    make(map[string]*domain.Voter),
		byEmail: make(map[string]*domain.Voter),
	}
	for _, v := range voters {
		r.byID[v.ID] = v
		r.byEmail[v.Email] = v
	}
	return r
}

func (r *stubVoterRepo) Create(_ context.Context, v *domain.Voter) (*domain.Voter, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byEmail[v.Email]; ok {
		return nil, domain.ErrVoterExists
	}
	r.byID[v.ID] = v
	r.byEmail[v.Email] = v
	return v, nil
}

func (r *stubVoterRepo) FindByID(_ context.Context, id string) (*domain.Voter, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	v, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrVoterNotFound
	}
	clone := *v
	return &clone, nil
}

func (r *stubVoterRepo) FindByEmail(_ context.Context, email string) (*domain.Voter, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	v, ok := r.byEmail[email]
	if !ok {
		return nil, domain.ErrVoterNotFound
	}
	clone := *v
	return &clone, nil
}

func testVoter(id string) *domain.Voter {
	return &domain.Voter{
		ID:    id,
		Email: id + "@campus.test",
		Name:  "Test Voter",
		NIM:   "2210500001",
		Role:  domain.RoleVoter,
	}
}

// ---------------------------------------------------------------------------
// Tests
// ---------------------------------------------------------------------------

func TestIssue_CreatesCredential(t *testing.T) {
	creds := newStubCredentialRepo()
	voters := newStubVoterRepo(testVoter("voter_1"))
	svc := NewCredentialService(creds, voters, 24*time.Hour, zerolog.Nop())

	cred, err := svc.Issue(context.Background(), "voter_1")
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	if cred.VoterID != "voter_1" {
		t.Fatalf("voter id = %q", cred.VoterID)
	}
	if !strings.HasPrefix(cred.QRPayload, domain.QRPayloadPrefix) {
		t.Fatalf("qr payload %q missing prefix", cred.QRPayload)
	}
	if len(cred.QRPayload) < domain.QRPayloadMinLen {
		t.Fatalf("qr payload too short: %q", cred.QRPayload)
	}
	if len(cred.RedeemCode) != domain.RedeemCodeLength {
		t.Fatalf("redeem code length = %d", len(cred.RedeemCode))
	}
	for _, ch := range cred.RedeemCode {
		if !strings.ContainsRune(redeemAlphabet, ch) {
			t.Fatalf("redeem code %q contains %q outside the alphabet", cred.RedeemCode, ch)
		}
	}
	if got := cred.ExpiresAt.Sub(cred.CreatedAt); got != 24*time.Hour {
		t.Fatalf("expiry window = %v, want 24h", got)
	}
	if cred.IsValidated || cred.IsUsed {
		t.Fatalf("fresh credential must be pending")
	}
}

func TestIssue_ReusesLiveCredential(t *testing.T) {
	creds := newStubCredentialRepo()
	voters := newStubVoterRepo(testVoter("voter_1"))
	svc := NewCredentialService(creds, voters, 24*time.Hour, zerolog.Nop())

	first, err := svc.Issue(context.Background(), "voter_1")
	if err != nil {
		t.Fatalf("first Issue error: %v", err)
	}
	second, err := svc.Issue(context.Background(), "voter_1")
	if err != nil {
		t.Fatalf("second Issue error: %v", err)
	}

	if first.ID != second.ID {
		t.Fatalf("expected the live credential reused, got %s then %s", first.ID, second.ID)
	}
	if len(creds.byID) != 1 {
		t.Fatalf("expected one stored credential, got %d", len(creds.byID))
	}
}

func TestIssue_ReplacesExpiredCredential(t *testing.T) {
	creds := newStubCredentialRepo()
	voters := newStubVoterRepo(testVoter("voter_1"))
	svc := NewCredentialService(creds, voters, 24*time.Hour, zerolog.Nop())

	old := &domain.Credential{
		ID:         "cred_old",
		VoterID:    "voter_1",
		QRPayload:  "CVP-00000000000000000000000000000000",
		RedeemCode: "AAAA2222",
		CreatedAt:  time.Now().UTC().Add(-48 * time.Hour),
		ExpiresAt:  time.Now().UTC().Add(-24 * time.Hour),
	}
	if err := creds.Create(context.Background(), old); err != nil {
		t.Fatalf("seed: %v", err)
	}

	cred, err := svc.Issue(context.Background(), "voter_1")
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}
	if cred.ID == old.ID {
		t.Fatalf("expired credential should have been replaced")
	}
	if len(creds.deleted) != 1 || creds.deleted[0] != "cred_old" {
		t.Fatalf("expired credential should have been purged, deleted=%v", creds.deleted)
	}
}

func TestIssue_RejectsVotedVoter(t *testing.T) {
	creds := newStubCredentialRepo()
	voted := testVoter("voter_1")
	voted.HasVoted = true
	voters := newStubVoterRepo(voted)
	svc := NewCredentialService(creds, voters, 24*time.Hour, zerolog.Nop())

	_, err := svc.Issue(context.Background(), "voter_1")
	if !errors.Is(err, domain.ErrAlreadyVoted) {
		t.Fatalf("expected ErrAlreadyVoted, got %v", err)
	}
	if len(creds.byID) != 0 {
		t.Fatalf("no credential should be stored for a voted voter")
	}
}

func TestIssue_GivesUpAfterRepeatedCollisions(t *testing.T) {
	creds := newStubCredentialRepo()
	creds.createErr = domain.ErrDuplicateCredential
	voters := newStubVoterRepo(testVoter("voter_1"))
	svc := NewCredentialService(creds, voters, 24*time.Hour, zerolog.Nop())

	_, err := svc.Issue(context.Background(), "voter_1")
	if !errors.Is(err, domain.ErrDuplicateCredential) {
		t.Fatalf("expected wrapped ErrDuplicateCredential, got %v", err)
	}
}

func TestActive_NotFoundWhenExpired(t *testing.T) {
	creds := newStubCredentialRepo()
	voters := newStubVoterRepo(testVoter("voter_1"))
	svc := NewCredentialService(creds, voters, 24*time.Hour, zerolog.Nop())

	stale := &domain.Credential{
		ID:         "cred_old",
		VoterID:    "voter_1",
		QRPayload:  "CVP-00000000000000000000000000000000",
		RedeemCode: "AAAA2222",
		CreatedAt:  time.Now().UTC().Add(-48 * time.Hour),
		ExpiresAt:  time.Now().UTC().Add(-24 * time.Hour),
	}
	if err := creds.Create(context.Background(), stale); err != nil {
		t.Fatalf("seed: %v", err)
	}

	_, err := svc.Active(context.Background(), "voter_1")
	if !errors.Is(err, domain.ErrCredentialNotFound) {
		t.Fatalf("expected ErrCredentialNotFound, got %v", err)
	}
}

func TestActive_ReturnsLiveCredential(t *testing.T) {
	creds := newStubCredentialRepo()
	voters := newStubVoterRepo(testVoter("voter_1"))
	svc := NewCredentialService(creds, voters, 24*time.Hour, zerolog.Nop())

	issued, err := svc.Issue(context.Background(), "voter_1")
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	active, err := svc.Active(context.Background(), "voter_1")
	if err != nil {
		t.Fatalf("Active error: %v", err)
	}
	if active.ID != issued.ID {
		t.Fatalf("Active returned %s, want %s", active.ID, issued.ID)
	}
}
