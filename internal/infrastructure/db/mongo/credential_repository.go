package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/campuselect/voting-portal/internal/core/domain"
)

const collectionCredentials = "credentials"

// CredentialRepository implements ports.CredentialRepository using MongoDB.
// The unique indexes on qr_payload and redeem_code are the storage-level
// guarantee behind token uniqueness; application-side generation merely makes
// collisions improbable.
type CredentialRepository struct {
	col *mongo.Collection
}

func NewCredentialRepository(db *mongo.Database) *CredentialRepository {
	return &CredentialRepository{col: db.Collection(collectionCredentials)}
}

// Create inserts a new credential document.
func (r *CredentialRepository) Create(ctx context.Context, c *domain.Credential) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.col.InsertOne(ctx, c)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrDuplicateCredential
		}
		return err
	}
	return nil
}

func (r *CredentialRepository) FindByID(ctx context.Context, id string) (*domain.Credential, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

// FindByRedeemCode matches a credential by its normalized redeem code with
// no state filter, so the caller can report the precise lifecycle error.
func (r *CredentialRepository) FindByRedeemCode(ctx context.Context, code string) (*domain.Credential, error) {
	return r.findOne(ctx, bson.M{"redeem_code": code})
}

// FindPendingByRedeemCode matches an unvalidated, unused credential by its
// normalized redeem code. Expiry is checked by the caller so it can report
// Expired rather than a generic NotFound.
func (r *CredentialRepository) FindPendingByRedeemCode(ctx context.Context, code string) (*domain.Credential, error) {
	return r.findOne(ctx, bson.M{
		"redeem_code":  code,
		"is_validated": false,
		"is_used":      false,
	})
}

// FindPendingByQRPayload matches the full legacy payload string, constrained
// to unvalidated, unused, and unexpired.
func (r *CredentialRepository) FindPendingByQRPayload(ctx context.Context, payload string, now time.Time) (*domain.Credential, error) {
	return r.findOne(ctx, bson.M{
		"qr_payload":   payload,
		"is_validated": false,
		"is_used":      false,
		"expires_at":   bson.M{"$gt": now},
	})
}

// FindLatestByVoter returns the voter's most recent unused credential,
// expired or not, so the issuer can decide between reuse and lazy purge.
func (r *CredentialRepository) FindLatestByVoter(ctx context.Context, voterID string) (*domain.Credential, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.FindOne().SetSort(bson.D{{Key: "created_at", Value: -1}})

	var c domain.Credential
	err := r.col.FindOne(ctx, bson.M{"voter_id": voterID, "is_used": false}, opts).Decode(&c)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrCredentialNotFound
		}
		return nil, err
	}
	return &c, nil
}

// FindValidatedByVoter returns the voter's validated, unused, unexpired
// credential, or ErrNoValidSession.
func (r *CredentialRepository) FindValidatedByVoter(ctx context.Context, voterID string, now time.Time) (*domain.Credential, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{
		"voter_id":     voterID,
		"is_validated": true,
		"is_used":      false,
		"expires_at":   bson.M{"$gt": now},
	}

	var c domain.Credential
	if err := r.col.FindOne(ctx, filter).Decode(&c); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNoValidSession
		}
		return nil, err
	}
	return &c, nil
}

func (r *CredentialRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

// Validate is the atomic PENDING -> VALIDATED transition. The filter
// re-asserts every guard so the check and the mutation are one storage
// operation: two racing calls can never both match. $min clamps the stored
// expiry down to the policy ceiling without ever extending it.
func (r *CredentialRepository) Validate(ctx context.Context, id, staffID string, now, clampTo time.Time) (*domain.Credential, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{
		"_id":          id,
		"is_validated": false,
		"is_used":      false,
		"expires_at":   bson.M{"$gt": now},
	}
	update := bson.M{
		"$set": bson.M{
			"is_validated": true,
			"validated_by": staffID,
			"validated_at": now,
		},
		"$min": bson.M{"expires_at": clampTo},
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var c domain.Credential
	err := r.col.FindOneAndUpdate(ctx, filter, update, opts).Decode(&c)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrCredentialNotFound
		}
		return nil, err
	}
	return &c, nil
}

// EnsureIndexes creates the indexes backing token uniqueness and voter lookups.
func (r *CredentialRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "qr_payload", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "redeem_code", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "voter_id", Value: 1}, {Key: "created_at", Value: -1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}

func (r *CredentialRepository) findOne(ctx context.Context, filter bson.M) (*domain.Credential, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var c domain.Credential
	if err := r.col.FindOne(ctx, filter).Decode(&c); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrCredentialNotFound
		}
		return nil, err
	}
	return &c, nil
}
