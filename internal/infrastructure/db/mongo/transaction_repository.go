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

const transactionsCollection = "transactions"

// TransactionRepository persists transactions in MongoDB. Ownership-scoped
// mutations filter on both _id and user_id in one conditional write.
type TransactionRepository struct {
	coll *mongo.Collection
}

func NewTransactionRepository(db *mongo.Database) *TransactionRepository {
	return &TransactionRepository{coll: db.Collection(transactionsCollection)}
}

type recurrenceDoc struct {
	Pattern string    `bson:"pattern"`
	EndDate time.Time `bson:"end_date"`
}

type transactionDoc struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	OwnerID      string             `bson:"user_id"`
	Type         string             `bson:"type"`
	Amount       float64            `bson:"amount"`
	Category     string             `bson:"category"`
	Description  string             `bson:"description"`
	Date         time.Time          `bson:"date"`
	Tags         []string           `bson:"tags,omitempty"`
	Recurring    *recurrenceDoc     `bson:"recurring,omitempty"`
	Currency     string             `bson:"currency"`
	ExchangeRate float64            `bson:"exchange_rate"`
	CreatedAt    time.Time          `bson:"created_at"`
	UpdatedAt    time.Time          `bson:"updated_at"`
}

func (d *transactionDoc) toDomain() *domain.Transaction {
	t := &domain.Transaction{
		ID:           d.ID.Hex(),
		OwnerID:      d.OwnerID,
		Type:         domain.TransactionType(d.Type),
		Amount:       d.Amount,
		Category:     d.Category,
		Description:  d.Description,
		Date:         d.Date,
		Tags:         d.Tags,
		Currency:     d.Currency,
		ExchangeRate: d.ExchangeRate,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
	if d.Recurring != nil {
		t.Recurring = &domain.Recurrence{Pattern: d.Recurring.Pattern, EndDate: d.Recurring.EndDate}
	}
	return t
}

func fromDomainTransaction(t *domain.Transaction) transactionDoc {
	doc := transactionDoc{
		ID:           primitive.NewObjectID(),
		OwnerID:      t.OwnerID,
		Type:         string(t.Type),
		Amount:       t.Amount,
		Category:     t.Category,
		Description:  t.Description,
		Date:         t.Date,
		Tags:         t.Tags,
		Currency:     t.Currency,
		ExchangeRate: t.ExchangeRate,
		CreatedAt:    t.CreatedAt,
		UpdatedAt:    t.UpdatedAt,
	}
	if t.Recurring != nil {
		doc.Recurring = &recurrenceDoc{Pattern: t.Recurring.Pattern, EndDate: t.Recurring.EndDate}
	}
	return doc
}

func (r *TransactionRepository) Create(ctx context.Context, t *domain.Transaction) (*domain.Transaction, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := fromDomainTransaction(t)
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("insert transaction: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *TransactionRepository) FindByID(ctx context.Context, id string) (*domain.Transaction, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrTransactionNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc transactionDoc
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrTransactionNotFound
		}
		return nil, fmt.Errorf("find transaction: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *TransactionRepository) ListByOwner(ctx context.Context, ownerID string) ([]*domain.Transaction, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{"user_id": ownerID},
		options.Find().SetSort(bson.D{{Key: "date", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer cursor.Close(ctx)

	var out []*domain.Transaction
	for cursor.Next(ctx) {
		var doc transactionDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode transaction: %w", err)
		}
		out = append(out, doc.toDomain())
	}
	return out, cursor.Err()
}

func (r *TransactionRepository) UpdateOwned(ctx context.Context, id, ownerID string, upd ports.TransactionUpdate) (*domain.Transaction, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrTransactionNotFound
	}

	set := bson.M{"updated_at": time.Now().UTC()}
	unset := bson.M{}
	if upd.Type != nil {
		set["type"] = string(*upd.Type)
	}
	if upd.Amount != nil {
		set["amount"] = *upd.Amount
	}
	if upd.Category != nil {
		set["category"] = *upd.Category
	}
	if upd.Description != nil {
		set["description"] = *upd.Description
	}
	if upd.Date != nil {
		set["date"] = *upd.Date
	}
	if upd.Tags != nil {
		set["tags"] = *upd.Tags
	}
	if upd.Currency != nil {
		set["currency"] = *upd.Currency
	}
	if upd.ExchangeRate != nil {
		set["exchange_rate"] = *upd.ExchangeRate
	}
	if upd.Recurring != nil {
		if *upd.Recurring == nil {
			unset["recurring"] = ""
		} else {
			set["recurring"] = recurrenceDoc{Pattern: (*upd.Recurring).Pattern, EndDate: (*upd.Recurring).EndDate}
		}
	}
	update := bson.M{"$set": set}
	if len(unset) > 0 {
		update["$unset"] = unset
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc transactionDoc
	err = r.coll.FindOneAndUpdate(
		ctx,
		bson.M{"_id": oid, "user_id": ownerID},
		update,
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrTransactionNotFound
		}
		return nil, fmt.Errorf("update transaction: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *TransactionRepository) DeleteOwned(ctx context.Context, id, ownerID string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrTransactionNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid, "user_id": ownerID})
	if err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrTransactionNotFound
	}
	return nil
}

func (r *TransactionRepository) DeleteByOwner(ctx context.Context, ownerID string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.coll.DeleteMany(ctx, bson.M{"user_id": ownerID}); err != nil {
		return fmt.Errorf("delete transactions by owner: %w", err)
	}
	return nil
}

type monthlyStatDoc struct {
	ID struct {
		Year  int    `bson:"year"`
		Month int    `bson:"month"`
		Type  string `bson:"type"`
	} `bson:"_id"`
	Total float64 `bson:"total"`
}

// MonthlyStats groups the owner's transactions by (year, month, type) with
// a single aggregation pass, most recent buckets first.
func (r *TransactionRepository) MonthlyStats(ctx context.Context, ownerID string) ([]ports.MonthlyStat, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"user_id": ownerID}}},
		{{Key: "$group", Value: bson.M{
			"_id": bson.M{
				"year":  bson.M{"$year": "$date"},
				"month": bson.M{"$month": "$date"},
				"type":  "$type",
			},
			"total": bson.M{"$sum": "$amount"},
		}}},
		{{Key: "$sort", Value: bson.D{
			{Key: "_id.year", Value: -1},
			{Key: "_id.month", Value: -1},
		}}},
	}

	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("aggregate monthly stats: %w", err)
	}
	defer cursor.Close(ctx)

	var stats []ports.MonthlyStat
	for cursor.Next(ctx) {
		var doc monthlyStatDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode monthly stat: %w", err)
		}
		stats = append(stats, ports.MonthlyStat{
			Year:  doc.ID.Year,
			Month: doc.ID.Month,
			Type:  domain.TransactionType(doc.ID.Type),
			Total: doc.Total,
		})
	}
	return stats, cursor.Err()
}

func (r *TransactionRepository) SumExpenses(ctx context.Context, ownerID, category string, from, to time.Time) (float64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{
			"user_id":  ownerID,
			"category": category,
			"type":     string(domain.TypeExpense),
			"date":     bson.M{"$gte": from, "$lte": to},
		}}},
		{{Key: "$group", Value: bson.M{
			"_id":   nil,
			"total": bson.M{"$sum": "$amount"},
		}}},
	}

	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, fmt.Errorf("aggregate expense sum: %w", err)
	}
	defer cursor.Close(ctx)

	var result struct {
		Total float64 `bson:"total"`
	}
	if cursor.Next(ctx) {
		if err := cursor.Decode(&result); err != nil {
			return 0, fmt.Errorf("decode expense sum: %w", err)
		}
	}
	return result.Total, cursor.Err()
}

func (r *TransactionRepository) ExpensesByCategory(ctx context.Context, ownerID string, from time.Time) ([]ports.CategoryTotal, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{
			"user_id": ownerID,
			"type":    string(domain.TypeExpense),
			"date":    bson.M{"$gte": from},
		}}},
		{{Key: "$group", Value: bson.M{
			"_id":   "$category",
			"total": bson.M{"$sum": "$amount"},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "total", Value: -1}}}},
	}

	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("aggregate category expenses: %w", err)
	}
	defer cursor.Close(ctx)

	var out []ports.CategoryTotal
	for cursor.Next(ctx) {
		var doc struct {
			Category string  `bson:"_id"`
			Total    float64 `bson:"total"`
		}
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode category expense: %w", err)
		}
		out = append(out, ports.CategoryTotal{Name: doc.Category, Value: doc.Total})
	}
	return out, cursor.Err()
}

// EnsureIndexes creates the owner-scoped indexes used by list and
// aggregation queries.
func (r *TransactionRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "date", Value: -1}}},
		{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "category", Value: 1}}},
		{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "tags", Value: 1}}},
	}
	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}
