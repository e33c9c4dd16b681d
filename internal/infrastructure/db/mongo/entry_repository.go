package mongo

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/walletmock/wallet-api/internal/core/domain"
)

const entriesCollection = "entries"

// EntryRepository is the append-only ledger store.
type EntryRepository struct {
	coll *mongo.Collection
}

func NewEntryRepository(db *mongo.Database) *EntryRepository {
	return &EntryRepository{coll: db.Collection(entriesCollection)}
}

type mongoEntry struct {
	ID          primitive.ObjectID   `bson:"_id"`
	UserID      string               `bson:"user_id"`
	Amount      primitive.Decimal128 `bson:"amount"`
	Description string               `bson:"description"`
	Type        string               `bson:"type"`
	Date        string               `bson:"date"`
	CreatedAt   time.Time            `bson:"created_at"`
}

func (me mongoEntry) toDomain() (*domain.Entry, error) {
	amount, err := decimal.NewFromString(me.Amount.String())
	if err != nil {
		return nil, fmt.Errorf("entry %s: amount %q: %w", me.ID.Hex(), me.Amount.String(), err)
	}
	return &domain.Entry{
		ID:          me.ID.Hex(),
		UserID:      me.UserID,
		Amount:      amount,
		Description: me.Description,
		Type:        domain.EntryType(me.Type),
		Date:        me.Date,
		CreatedAt:   me.CreatedAt.UTC(),
	}, nil
}

// Insert appends an entry. The amount is stored as Decimal128 with exactly
// two fractional digits.
func (r *EntryRepository) Insert(ctx context.Context, e *domain.Entry) (*domain.Entry, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	amount, err := primitive.ParseDecimal128(e.Amount.StringFixed(domain.AmountPlaces))
	if err != nil {
		return nil, fmt.Errorf("encode amount: %w", err)
	}

	doc := mongoEntry{
		ID:          primitive.NewObjectID(),
		UserID:      e.UserID,
		Amount:      amount,
		Description: e.Description,
		Type:        string(e.Type),
		Date:        e.Date,
		CreatedAt:   e.CreatedAt,
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("insert entry: %w", err)
	}
	return doc.toDomain()
}

// ListByUser returns the user's entries ordered by _id. Object ids grow with
// insertion, which gives insertion order.
func (r *EntryRepository) ListByUser(ctx context.Context, userID string) ([]*domain.Entry, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
	cur, err := r.coll.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}

	var docs []mongoEntry
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode entries: %w", err)
	}

	out := make([]*domain.Entry, 0, len(docs))
	for _, d := range docs {
		e, err := d.toDomain()
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, nil
}

// EnsureIndexes creates the index backing per-user listing in insertion order.
func (r *EntryRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "_id", Value: 1}},
	})
	return err
}
