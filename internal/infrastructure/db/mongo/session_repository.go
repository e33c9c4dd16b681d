package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/walletmock/wallet-api/internal/core/domain"
)

const sessionsCollection = "sessions"

// SessionRepository is the session store. One document per user; the token
// and user_id fields are both uniquely indexed.
type SessionRepository struct {
	coll *mongo.Collection
}

func NewSessionRepository(db *mongo.Database) *SessionRepository {
	return &SessionRepository{coll: db.Collection(sessionsCollection)}
}

type mongoSession struct {
	Token     string    `bson:"token"`
	UserID    string    `bson:"user_id"`
	CreatedAt time.Time `bson:"created_at"`
}

func (ms mongoSession) toDomain() *domain.Session {
	return &domain.Session{Token: ms.Token, UserID: ms.UserID, CreatedAt: ms.CreatedAt.UTC()}
}

// FindOrCreate upserts on user_id with $setOnInsert, so concurrent first
// logins of the same user converge on a single session.
func (r *SessionRepository) FindOrCreate(ctx context.Context, candidate *domain.Session) (*domain.Session, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"user_id": candidate.UserID}
	// user_id is copied from the filter on insert.
	update := bson.M{"$setOnInsert": bson.M{
		"token":      candidate.Token,
		"created_at": candidate.CreatedAt,
	}}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

	var ms mongoSession
	err := r.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&ms)
	if err != nil && mongo.IsDuplicateKeyError(err) {
		// Two upserts raced on the unique user_id index; the winner's document exists now.
		err = r.coll.FindOne(ctx, filter).Decode(&ms)
	}
	if err != nil {
		return nil, fmt.Errorf("find or create session: %w", err)
	}
	return ms.toDomain(), nil
}

func (r *SessionRepository) FindByToken(ctx context.Context, token string) (*domain.Session, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var ms mongoSession
	if err := r.coll.FindOne(ctx, bson.M{"token": token}).Decode(&ms); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrSessionNotFound
		}
		return nil, fmt.Errorf("find session: %w", err)
	}
	return ms.toDomain(), nil
}

// EnsureIndexes creates the unique token and user_id indexes.
func (r *SessionRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "token", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "user_id", Value: 1}}, Options: options.Index().SetUnique(true)},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}
