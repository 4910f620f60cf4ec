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

const collectionVoters = "voters"

// VoterRepository implements ports.VoterRepository using MongoDB.
type VoterRepository struct {
	col *mongo.Collection
}

func NewVoterRepository(db *mongo.Database) *VoterRepository {
	return &VoterRepository{col: db.Collection(collectionVoters)}
}

func (r *VoterRepository) Create(ctx context.Context, voter *domain.Voter) (*domain.Voter, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.col.InsertOne(ctx, voter); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrVoterExists
		}
		return nil, err
	}
	return voter, nil
}

func (r *VoterRepository) FindByID(ctx context.Context, id string) (*domain.Voter, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *VoterRepository) FindByEmail(ctx context.Context, email string) (*domain.Voter, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

// EnsureIndexes creates the unique indexes on email and NIM.
func (r *VoterRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "nim", Value: 1}}, Options: options.Index().SetUnique(true)},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}

func (r *VoterRepository) findOne(ctx context.Context, filter bson.M) (*domain.Voter, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var v domain.Voter
	if err := r.col.FindOne(ctx, filter).Decode(&v); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrVoterNotFound
		}
		return nil, err
	}
	return &v, nil
}
