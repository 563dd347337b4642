package repository

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/strixcodecipher/relicsneb/internal/models"
)

// StatusMongo stores status checks in a MongoDB collection.
type StatusMongo struct {
	coll *mongo.Collection
}

func NewStatusMongo(coll *mongo.Collection) *StatusMongo {
	return &StatusMongo{coll: coll}
}

var _ StatusCheckRepo = (*StatusMongo)(nil)

// EnsureIndexes creates the unique index on id. Safe to call repeatedly.
func (r *StatusMongo) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "id", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("id_unique"),
	})
	if err != nil {
		return fmt.Errorf("create index on %s.id: %w", r.coll.Name(), err)
	}
	return nil
}

func (r *StatusMongo) Insert(ctx context.Context, doc models.StatusCheckDocument) error {
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("insert status check %q: %w", doc.ID, ErrDuplicateID)
		}
		return fmt.Errorf("insert status check %q: %w", doc.ID, err)
	}
	return nil
}

// mongoStatusCheck keeps the timestamp raw so documents written by other
// clients as a BSON date still decode.
type mongoStatusCheck struct {
	ID         string        `bson:"id"`
	ClientName string        `bson:"client_name"`
	Timestamp  bson.RawValue `bson:"timestamp"`
}

func (m mongoStatusCheck) document() (models.StatusCheckDocument, error) {
	doc := models.StatusCheckDocument{ID: m.ID, ClientName: m.ClientName}
	switch m.Timestamp.Type {
	case bsontype.String:
		doc.Timestamp = m.Timestamp.StringValue()
	case bsontype.DateTime:
		doc.Timestamp = m.Timestamp.Time().UTC().Format(models.TimestampLayout)
	default:
		return doc, fmt.Errorf("timestamp has unsupported bson type %s", m.Timestamp.Type)
	}
	return doc, nil
}

// Find returns up to limit documents in natural order; _id is not projected.
// Undecodable documents are skipped and reported in a *DecodeError.
func (r *StatusMongo) Find(ctx context.Context, limit int) ([]models.StatusCheckDocument, error) {
	opts := options.Find().
		SetLimit(int64(clampLimit(limit))).
		SetProjection(bson.D{{Key: "_id", Value: 0}})

	cur, err := r.coll.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, fmt.Errorf("find status checks: %w", err)
	}
	defer cur.Close(ctx)

	out := make([]models.StatusCheckDocument, 0, 64)
	skipped := &DecodeError{}
	for cur.Next(ctx) {
		var raw mongoStatusCheck
		if err := cur.Decode(&raw); err != nil {
			id, _ := cur.Current.Lookup("id").StringValueOK()
			skipped.skip(id, err)
			continue
		}
		doc, err := raw.document()
		if err != nil {
			skipped.skip(raw.ID, err)
			continue
		}
		out = append(out, doc)
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("iterate status checks: %w", err)
	}
	return out, skipped.errOrNil()
}
