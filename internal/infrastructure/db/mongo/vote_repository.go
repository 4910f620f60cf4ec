package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/campuselect/voting-portal/internal/core/domain"
)

const collectionVotes = "votes"

// VoteRepository implements ports.VoteRepository using MongoDB. The unique
// index on voter_id is the final double-vote backstop, independent of any
// application-level guard.
type VoteRepository struct {
	db *mongo.Database
}

func NewVoteRepository(db *mongo.Database) *VoteRepository {
	return &VoteRepository{db: db}
}

// Cast records a ballot in one multi-document transaction: insert the vote,
// consume the credential under its guard filter, and set the voter's
// has_voted flag. Any guard miss aborts the transaction, so partial writes
// never survive a race.
func (r *VoteRepository) Cast(ctx context.Context, vote *domain.Vote, credentialID string, now time.Time) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	session, err := r.db.Client().StartSession()
	if err != nil {
		return err
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		if _, err := r.db.Collection(collectionVotes).InsertOne(sc, vote); err != nil {
			if mongo.IsDuplicateKeyError(err) {
				return nil, domain.ErrAlreadyVoted
			}
			return nil, err
		}

		// Consume the credential. The filter re-asserts the full guard; a
		// matched count of zero means a concurrent cast got here first.
		res, err := r.db.Collection(collectionCredentials).UpdateOne(sc,
			bson.M{
				"_id":          credentialID,
				"is_validated": true,
				"is_used":      false,
				"expires_at":   bson.M{"$gt": now},
			},
			bson.M{"$set": bson.M{"is_used": true}},
		)
		if err != nil {
			return nil, err
		}
		if res.MatchedCount == 0 {
			return nil, domain.ErrNoValidSession
		}

		// has_voted is monotonic: the false -> true flip happens exactly here.
		res, err = r.db.Collection(collectionVoters).UpdateOne(sc,
			bson.M{"_id": vote.VoterID, "has_voted": false},
			bson.M{"$set": bson.M{"has_voted": true, "updated_at": now}},
		)
		if err != nil {
			return nil, err
		}
		if res.MatchedCount == 0 {
			return nil, domain.ErrAlreadyVoted
		}

		return nil, nil
	})
	return err
}

// EnsureIndexes creates the unique index enforcing one vote per voter.
func (r *VoteRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "voter_id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "candidate_id", Value: 1}}},
	}

	_, err := r.db.Collection(collectionVotes).Indexes().CreateMany(ctx, indexes)
	return err
}
