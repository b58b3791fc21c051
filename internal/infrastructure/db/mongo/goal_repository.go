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

const goalsCollection = "goals"

// GoalRepository persists goals in MongoDB.
type GoalRepository struct {
	coll *mongo.Collection
}

func NewGoalRepository(db *mongo.Database) *GoalRepository {
	return &GoalRepository{coll: db.Collection(goalsCollection)}
}

type goalDoc struct {
	ID                  primitive.ObjectID `bson:"_id,omitempty"`
	OwnerID             string             `bson:"user_id"`
	Name                string             `bson:"name"`
	TargetAmount        float64            `bson:"target_amount"`
	CurrentAmount       float64            `bson:"current_amount"`
	StartDate           time.Time          `bson:"start_date"`
	TargetDate          time.Time          `bson:"target_date"`
	Category            string             `bson:"category"`
	Priority            string             `bson:"priority"`
	Status              string             `bson:"status"`
	Currency            string             `bson:"currency"`
	AutoAllocatePercent float64            `bson:"auto_allocate_percent,omitempty"`
	Notes               string             `bson:"notes,omitempty"`
	CreatedAt           time.Time          `bson:"created_at"`
	UpdatedAt           time.Time          `bson:"updated_at"`
}

func (d *goalDoc) toDomain() *domain.Goal {
	return &domain.Goal{
		ID:                  d.ID.Hex(),
		OwnerID:             d.OwnerID,
		Name:                d.Name,
		TargetAmount:        d.TargetAmount,
		CurrentAmount:       d.CurrentAmount,
		StartDate:           d.StartDate,
		TargetDate:          d.TargetDate,
		Category:            d.Category,
		Priority:            d.Priority,
		Status:              domain.GoalStatus(d.Status),
		Currency:            d.Currency,
		AutoAllocatePercent: d.AutoAllocatePercent,
		Notes:               d.Notes,
		CreatedAt:           d.CreatedAt,
		UpdatedAt:           d.UpdatedAt,
	}
}

func (r *GoalRepository) Create(ctx context.Context, g *domain.Goal) (*domain.Goal, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := goalDoc{
		ID:                  primitive.NewObjectID(),
		OwnerID:             g.OwnerID,
		Name:                g.Name,
		TargetAmount:        g.TargetAmount,
		CurrentAmount:       g.CurrentAmount,
		StartDate:           g.StartDate,
		TargetDate:          g.TargetDate,
		Category:            g.Category,
		Priority:            g.Priority,
		Status:              string(g.Status),
		Currency:            g.Currency,
		AutoAllocatePercent: g.AutoAllocatePercent,
		Notes:               g.Notes,
		CreatedAt:           g.CreatedAt,
		UpdatedAt:           g.UpdatedAt,
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("insert goal: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *GoalRepository) FindByID(ctx context.Context, id string) (*domain.Goal, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrGoalNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc goalDoc
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrGoalNotFound
		}
		return nil, fmt.Errorf("find goal: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *GoalRepository) ListByOwner(ctx context.Context, ownerID string) ([]*domain.Goal, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{"user_id": ownerID},
		options.Find().SetSort(bson.D{{Key: "target_date", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list goals: %w", err)
	}
	defer cursor.Close(ctx)

	var out []*domain.Goal
	for cursor.Next(ctx) {
		var doc goalDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode goal: %w", err)
		}
		out = append(out, doc.toDomain())
	}
	return out, cursor.Err()
}

func (r *GoalRepository) UpdateOwned(ctx context.Context, id, ownerID string, upd ports.GoalUpdate) (*domain.Goal, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrGoalNotFound
	}

	set := bson.M{"updated_at": time.Now().UTC()}
	if upd.Name != nil {
		set["name"] = *upd.Name
	}
	if upd.TargetAmount != nil {
		set["target_amount"] = *upd.TargetAmount
	}
	if upd.CurrentAmount != nil {
		set["current_amount"] = *upd.CurrentAmount
	}
	if upd.StartDate != nil {
		set["start_date"] = *upd.StartDate
	}
	if upd.TargetDate != nil {
		set["target_date"] = *upd.TargetDate
	}
	if upd.Category != nil {
		set["category"] = *upd.Category
	}
	if upd.Priority != nil {
		set["priority"] = *upd.Priority
	}
	if upd.Status != nil {
		set["status"] = string(*upd.Status)
	}
	if upd.Currency != nil {
		set["currency"] = *upd.Currency
	}
	if upd.AutoAllocatePercent != nil {
		set["auto_allocate_percent"] = *upd.AutoAllocatePercent
	}
	if upd.Notes != nil {
		set["notes"] = *upd.Notes
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc goalDoc
	err = r.coll.FindOneAndUpdate(
		ctx,
		bson.M{"_id": oid, "user_id": ownerID},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrGoalNotFound
		}
		return nil, fmt.Errorf("update goal: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *GoalRepository) DeleteOwned(ctx context.Context, id, ownerID string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrGoalNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid, "user_id": ownerID})
	if err != nil {
		return fmt.Errorf("delete goal: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrGoalNotFound
	}
	return nil
}

func (r *GoalRepository) DeleteByOwner(ctx context.Context, ownerID string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.coll.DeleteMany(ctx, bson.M{"user_id": ownerID}); err != nil {
		return fmt.Errorf("delete goals by owner: %w", err)
	}
	return nil
}

// EnsureIndexes creates the owner-scoped indexes used by list queries.
func (r *GoalRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "status", Value: 1}}},
		{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "target_date", Value: 1}}},
	}
	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}
