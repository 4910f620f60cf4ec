package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// maxNotifyTTL caps how long a validation flag outlives the credential it
// signals; the store remains the source of truth after that.
const maxNotifyTTL = 24 * time.Hour

// ValidationNotifier bridges the staff validation and the voter's polling
// client through short-lived Redis keys, so the poll loop never touches the
// primary store on the hot path.
// Key format: credential:validated:<voter_id>
type ValidationNotifier struct {
	client *redis.Client
}

// NewValidationNotifier creates a ValidationNotifier wrapping the given client.
func NewValidationNotifier(client *redis.Client) *ValidationNotifier {
	return &ValidationNotifier{client: client}
}

// NotifyValidated records that the voter's credential has been validated. The
// key expires with the credential, clamped to maxNotifyTTL.
func (n *ValidationNotifier) NotifyValidated(ctx context.Context, voterID string, ttl time.Duration) error {
	if ttl <= 0 || ttl > maxNotifyTTL {
		ttl = maxNotifyTTL
	}
	return n.client.Set(ctx, n.key(voterID), "1", ttl).Err()
}

// IsValidated reports whether a validation flag exists for the voter. A
// missing key is not authoritative; callers fall back to the store.
func (n *ValidationNotifier) IsValidated(ctx context.Context, voterID string) (bool, error) {
	val, err := n.client.Get(ctx, n.key(voterID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, fmt.Errorf("validation flag check: %w", err)
	}
	return val == "1", nil
}

func (n *ValidationNotifier) key(voterID string) string {
	return fmt.Sprintf("credential:validated:%s", voterID)
}
