package ports

import (
	"context"

	"github.com/campuselect/voting-portal/internal/core/domain"
)

// AuditRepository is the append-only sink for staff action records.
type AuditRepository interface {
	Append(ctx context.Context, entry *domain.AuditEntry) error
	// List returns a page of entries, newest first, and the total count.
	List(ctx context.Context, page, limit int) ([]*domain.AuditEntry, int64, error)
}
