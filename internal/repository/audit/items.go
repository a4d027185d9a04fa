// Package audit keeps the action trail of payments, appeal decisions and PDF
// downloads in MongoDB.
package audit

import (
	"context"
	"log"
	"time"

	mg "finedesk/internal/config/connections/mongo"
	"finedesk/internal/ports"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const ActionItemsCollection = "action_items"

const (
	DefaultListLimit = 50
	MaxListLimit     = 500
)

type Item struct {
	BatchID   string    `bson:"batch_id" json:"batch_id"`
	Action    string    `bson:"action" json:"action"`
	TargetID  string    `bson:"target_id" json:"target_id"`
	UserID    int64     `bson:"user_id" json:"user_id"`
	Status    string    `bson:"status" json:"status"`
	Errors    string    `bson:"errors" json:"errors"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}

func ItemFromEntry(e ports.AuditEntry) Item {
	return Item{
		BatchID:  e.BatchID,
		Action:   e.Action,
		TargetID: e.TargetID,
		UserID:   e.UserID,
		Status:   e.Status,
		Errors:   e.Errors,
	}
}

func itemDoc(item Item) bson.D {
	return bson.D{
		{Key: "batch_id", Value: item.BatchID},
		{Key: "action", Value: item.Action},
		{Key: "target_id", Value: item.TargetID},
		{Key: "user_id", Value: item.UserID},
		{Key: "status", Value: item.Status},
		{Key: "errors", Value: item.Errors},
		{Key: "created_at", Value: item.CreatedAt},
	}
}

func InsertItem(ctx context.Context, m *mg.Mongo, item Item) (*mongo.InsertOneResult, error) {
	if m == nil || m.Client == nil || m.Database == nil {
		return nil, mongo.ErrClientDisconnected
	}
	if item.CreatedAt.IsZero() {
		item.CreatedAt = time.Now().UTC()
	}
	return m.Database.Collection(ActionItemsCollection).InsertOne(ctx, itemDoc(item), options.InsertOne())
}

// Filter narrows ListItems. Zero fields match everything.
type Filter struct {
	Action string
	UserID int64
	Limit  int
}

func (f Filter) query() bson.M {
	q := bson.M{}
	if f.Action != "" {
		q["action"] = f.Action
	}
	if f.UserID != 0 {
		q["user_id"] = f.UserID
	}
	return q
}

func (f Filter) limit() int64 {
	switch {
	case f.Limit <= 0:
		return DefaultListLimit
	case f.Limit > MaxListLimit:
		return MaxListLimit
	}
	return int64(f.Limit)
}

// ListItems returns the newest items first.
func ListItems(ctx context.Context, m *mg.Mongo, f Filter) ([]Item, error) {
	if m == nil || m.Database == nil {
		return nil, mongo.ErrClientDisconnected
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(f.limit())

	cur, err := m.Database.Collection(ActionItemsCollection).Find(ctx, f.query(), opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	items := []Item{}
	if err := cur.All(ctx, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// Logger writes audit entries to Mongo. It implements ports.AuditLogger;
// write failures are logged and dropped so they never fail the action.
type Logger struct {
	Mongo *mg.Mongo
}

func NewLogger(m *mg.Mongo) *Logger { return &Logger{Mongo: m} }

func (l *Logger) Log(ctx context.Context, e ports.AuditEntry) {
	if l == nil || l.Mongo == nil || l.Mongo.Database == nil {
		return
	}
	if _, err := InsertItem(ctx, l.Mongo, ItemFromEntry(e)); err != nil {
		log.Printf("[AUDIT][MONGO][ERR] action=%s target=%s status=%s err=%v", e.Action, e.TargetID, e.Status, err)
	}
}

func (l *Logger) List(ctx context.Context, f Filter) ([]Item, error) {
	if l == nil {
		return nil, mongo.ErrClientDisconnected
	}
	return ListItems(ctx, l.Mongo, f)
}
