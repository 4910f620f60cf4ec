package domain

import "time"

const (
	AuditActionValidate = "credential.validate"
	AuditActionIssue    = "credential.issue"
)

// AuditEntry is one append-only record of a staff action against a voter's
// credential. Detail carries the credential id and the raw codes used.
type AuditEntry struct {
	ID        string            `json:"id" bson:"_id,omitempty"`
	StaffID   string            `json:"staff_id" bson:"staff_id"`
	Action    string            `json:"action" bson:"action"`
	VoterID   string            `json:"voter_id" bson:"voter_id"`
	Detail    map[string]string `json:"detail" bson:"detail"`
	CreatedAt time.Time         `json:"created_at" bson:"created_at"`
}
