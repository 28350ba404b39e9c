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

	"github.com/founderflow/founderflow/internal/core/domain"
)

const financeCollection = "financial_records"

// FinanceRepository persists ledger entries. Amounts are stored as decimal
// strings, same convention as project money fields.
type FinanceRepository struct {
	coll *mongo.Collection
}

func NewFinanceRepository(db *mongo.Database) *FinanceRepository {
	return &FinanceRepository{coll: db.Collection(financeCollection)}
}

type mongoFinanceRecord struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Type        string             `bson:"type"`
	Amount      string             `bson:"amount"`
	Description string             `bson:"description"`
	CreatedAt   time.Time          `bson:"created_at"`
}

func (r *FinanceRepository) Create(ctx context.Context, rec *domain.FinanceRecord) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoFinanceRecord{
		Type:        string(rec.Type),
		Amount:      rec.Amount.String(),
		Description: rec.Description,
		CreatedAt:   rec.CreatedAt.UTC(),
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return fmt.Errorf("insert finance record: %w", err)
	}
	rec.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return nil
}

func (r *FinanceRepository) List(ctx context.Context) ([]domain.FinanceRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("list finance records: %w", err)
	}
	defer cursor.Close(ctx)

	var records []domain.FinanceRecord
	for cursor.Next(ctx) {
		var mr mongoFinanceRecord
		if err := cursor.Decode(&mr); err != nil {
			return nil, fmt.Errorf("decode finance record: %w", err)
		}
		amount, err := decimal.NewFromString(mr.Amount)
		if err != nil {
			return nil, fmt.Errorf("finance record %s: amount: %w", mr.ID.Hex(), err)
		}
		records = append(records, domain.FinanceRecord{
			ID:          mr.ID.Hex(),
			Type:        domain.FinanceType(mr.Type),
			Amount:      amount,
			Description: mr.Description,
			CreatedAt:   mr.CreatedAt,
		})
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("list finance records: %w", err)
	}
	return records, nil
}
