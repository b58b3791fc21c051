package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/fintrack/finance-api/internal/core/domain"
	"github.com/fintrack/finance-api/internal/core/ports"
)

const budgetsCollection = "budgets"

// BudgetRepository persists budgets in MongoDB.
type BudgetRepository struct {
	coll *mongo.Collection
}

func NewBudgetRepository(db *mongo.Database) *BudgetRepository {
	return &BudgetRepository{coll: db.Collection(budgetsCollection)}
}

type budgetDoc struct {
	ID             primitive.ObjectID `bson:"_id,omitempty"`
	OwnerID        string             `bson:"user_id"`
	Category       string             `bson:"category"`
	Amount         float64            `bson:"amount"`
	Period         string             `bson:"period"`
	StartDate      time.Time          `bson:"start_date"`
	EndDate        *time.Time         `bson:"end_date,omitempty"`
	Currency       string             `bson:"currency"`
	AlertThreshold float64            `bson:"alert_threshold"`
	CreatedAt      time.Time          `bson:"created_at"`
	UpdatedAt      time.Time          `bson:"updated_at"`
}

func (d *budgetDoc) toDomain() *domain.Budget {
	return &domain.Budget{
		ID:             d.ID.Hex(),
		OwnerID:        d.OwnerID,
		Category:       d.Category,
		Amount:         d.Amount,
		Period:         domain.BudgetPeriod(d.Period),
		StartDate:      d.StartDate,
		EndDate:        d.EndDate,
		Currency:       d.Currency,
		AlertThreshold: d.AlertThreshold,
		CreatedAt:      d.CreatedAt,
		UpdatedAt:      d.UpdatedAt,
	}
}

func (r *BudgetRepository) Create(ctx context.Context, b *domain.Budget) (*domain.Budget, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := budgetDoc{
		ID:             primitive.NewObjectID(),
		OwnerID:        b.OwnerID,
		Category:       b.Category,
		Amount:         b.Amount,
		Period:         string(b.Period),
		StartDate:      b.StartDate,
		EndDate:        b.EndDate,
		Currency:       b.Currency,
		AlertThreshold: b.AlertThreshold,
		CreatedAt:      b.CreatedAt,
		UpdatedAt:      b.UpdatedAt,
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("insert budget: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *BudgetRepository) FindByID(ctx context.Context, id string) (*domain.Budget, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrBudgetNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc budgetDoc
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrBudgetNotFound
		}
		return nil, fmt.Errorf("find budget: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *BudgetRepository) ListByOwner(ctx context.Context, ownerID string) ([]*domain.Budget, error) {
	return r.list(ctx, bson.M{"user_id": ownerID})
}

func (r *BudgetRepository) ListByOwnerCategory(ctx context.Context, ownerID, category string) ([]*domain.Budget, error) {
	return r.list(ctx, bson.M{"user_id": ownerID, "category": category})
}

func (r *BudgetRepository) list(ctx context.Context, filter bson.M) ([]*domain.Budget, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cursor, err := r.coll.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("list budgets: %w", err)
	}
	defer cursor.Close(ctx)

	var out []*domain.Budget
	for cursor.Next(ctx) {
		var doc budgetDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode budget: %w", err)
		}
		out = append(out, doc.toDomain())
	}
	return out, cursor.Err()
}

func (r *BudgetRepository) UpdateOwned(ctx context.Context, id, ownerID string, upd ports.BudgetUpdate) (*domain.Budget, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrBudgetNotFound
	}

	set := bson.M{"updated_at": time.Now().UTC()}
	unset := bson.M{}
	if upd.Category != nil {
		set["category"] = *upd.Category
	}
	if upd.Amount != nil {
		set["amount"] = *upd.Amount
	}
	if upd.Period != nil {
		set["period"] = string(*upd.Period)
	}
	if upd.StartDate != nil {
		set["start_date"] = *upd.StartDate
	}
	if upd.EndDate != nil {
		if *upd.EndDate == nil {
			unset["end_date"] = ""
		} else {
			set["end_date"] = **upd.EndDate
		}
	}
	if upd.Currency != nil {
		set["currency"] = *upd.Currency
	}
	if upd.AlertThreshold != nil {
		set["alert_threshold"] = *upd.AlertThreshold
	}
	update := bson.M{"$set": set}
	if len(unset) > 0 {
		update["$unset"] = unset
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc budgetDoc
	err = r.coll.FindOneAndUpdate(
		ctx,
		bson.M{"_id": oid, "user_id": ownerID},
		update,
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrBudgetNotFound
		}
		return nil, fmt.Errorf("update budget: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *BudgetRepository) DeleteOwned(ctx context.Context, id, ownerID string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrBudgetNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid, "user_id": ownerID})
	if err != nil {
		return fmt.Errorf("delete budget: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrBudgetNotFound
	}
	return nil
}

func (r *BudgetRepository) DeleteByOwner(ctx context.Context, ownerID string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.coll.DeleteMany(ctx, bson.M{"user_id": ownerID}); err != nil {
		return fmt.Errorf("delete budgets by owner: %w", err)
	}
	return nil
}

// EnsureIndexes creates the owner-scoped indexes used by list queries and
// the alert evaluator.
func (r *BudgetRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "category", Value: 1}}},
		{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "start_date", Value: 1}}},
	}
	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}
