package service

import (
	"context"

	"github.com/campuselect/voting-portal/internal/core/domain"
	"github.com/campuselect/voting-portal/internal/core/ports"
)

const maxAuditPageSize = 100

type auditService struct {
	repo ports.AuditRepository
}

// NewAuditService returns an AuditService implementation.
func NewAuditService(repo ports.AuditRepository) ports.AuditService {
	return &auditService{repo: repo}
}

func (s *auditService) List(ctx context.Context, page, limit int) ([]*domain.AuditEntry, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}
	if limit > maxAuditPageSize {
		limit = maxAuditPageSize
	}
	return s.repo.List(ctx, page, limit)
}
