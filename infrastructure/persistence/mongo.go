package persistence

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/teacherlog/teacherlog/domain/contribution"
)

// CollectionName is the Mongo collection holding contribution records.
const CollectionName = "contributions"

// ConnectTimeout bounds connection establishment to the store.
const ConnectTimeout = 10 * time.Second

// contributionDoc is the Mongo document shape for a contribution record.
type contributionDoc struct {
	ID               primitive.ObjectID `bson:"_id,omitempty"`
	Date             string             `bson:"date"`
	ContributionType string             `bson:"contribution_type"`
	Reference        *string            `bson:"reference"`
	TimeSpent        int                `bson:"time_spent"`
	Description      string             `bson:"description"`
	InputMode        string             `bson:"input_mode"`
	CreatedAt        time.Time          `bson:"created_at"`
}

func (d contributionDoc) toDomain() contribution.Contribution {
	var ref string
	if d.Reference != nil {
		ref = *d.Reference
	}
	return contribution.Restore(
		d.ID.Hex(),
		d.Date,
		contribution.Type(d.ContributionType),
		ref,
		d.TimeSpent,
		d.Description,
		contribution.InputMode(d.InputMode),
		d.CreatedAt,
	)
}

func toDoc(c contribution.Contribution) contributionDoc {
	var ref *string
	if c.Reference() != "" {
		r := c.Reference()
		ref = &r
	}
	return contributionDoc{
		Date:             c.Date(),
		ContributionType: string(c.ContributionType()),
		Reference:        ref,
		TimeSpent:        c.TimeSpent(),
		Description:      c.Description(),
		InputMode:        string(c.InputMode()),
		CreatedAt:        c.CreatedAt(),
	}
}

// MongoStore implements Store on a MongoDB collection.
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
	logger *slog.Logger
}

// NewMongoStore connects to the document store and returns a MongoStore
// for the contributions collection of the named database.
func NewMongoStore(ctx context.Context, url, dbName string, logger *slog.Logger) (*MongoStore, error) {
	if logger == nil {
		logger = slog.Default()
	}

	connectCtx, cancel := context.WithTimeout(ctx, ConnectTimeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().
		ApplyURI(url).
		SetConnectTimeout(ConnectTimeout))
	if err != nil {
		return nil, fmt.Errorf("connect to document store: %w", err)
	}

	return &MongoStore{
		client: client,
		coll:   client.Database(dbName).Collection(CollectionName),
		logger: logger,
	}, nil
}

// ValidateID reports ErrInvalidID when id is not a valid ObjectID hex string.
func (s *MongoStore) ValidateID(id string) error {
	if _, err := primitive.ObjectIDFromHex(id); err != nil {
		return ErrInvalidID
	}
	return nil
}

// Insert stores the record and re-fetches it by the assigned identifier.
func (s *MongoStore) Insert(ctx context.Context, c contribution.Contribution) (contribution.Contribution, error) {
	result, err := s.coll.InsertOne(ctx, toDoc(c))
	if err != nil {
		return contribution.Contribution{}, fmt.Errorf("insert contribution: %w", err)
	}

	id, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return contribution.Contribution{}, fmt.Errorf("insert contribution: unexpected inserted id type %T", result.InsertedID)
	}

	return s.findByObjectID(ctx, id)
}

// List returns up to ListLimit records sorted by date descending.
func (s *MongoStore) List(ctx context.Context) ([]contribution.Contribution, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: contribution.FieldDate, Value: -1}}).
		SetLimit(ListLimit).
		SetProjection(bson.M{
			contribution.FieldDate:             1,
			contribution.FieldContributionType: 1,
			contribution.FieldReference:        1,
			contribution.FieldTimeSpent:        1,
			contribution.FieldDescription:      1,
			"input_mode":                       1,
			"created_at":                       1,
		})

	cursor, err := s.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list contributions: %w", err)
	}
	defer func() { _ = cursor.Close(ctx) }()

	var docs []contributionDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode contributions: %w", err)
	}

	records := make([]contribution.Contribution, len(docs))
	for i, d := range docs {
		records[i] = d.toDomain()
	}
	return records, nil
}

// Get returns the record with the given identifier.
func (s *MongoStore) Get(ctx context.Context, id string) (contribution.Contribution, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return contribution.Contribution{}, ErrInvalidID
	}
	return s.findByObjectID(ctx, oid)
}

// Update applies the partial field set and returns the refreshed record.
func (s *MongoStore) Update(ctx context.Context, id string, fields map[string]any) (contribution.Contribution, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return contribution.Contribution{}, ErrInvalidID
	}

	set := bson.M{}
	for k, v := range fields {
		set[k] = v
	}

	result, err := s.coll.UpdateByID(ctx, oid, bson.M{"$set": set})
	if err != nil {
		return contribution.Contribution{}, fmt.Errorf("update contribution: %w", err)
	}
	if result.MatchedCount == 0 {
		return contribution.Contribution{}, ErrNotFound
	}

	return s.findByObjectID(ctx, oid)
}

// Delete removes the record with the given identifier.
func (s *MongoStore) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrInvalidID
	}

	result, err := s.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete contribution: %w", err)
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// EnsureIndexes creates the supporting indexes for list and filter queries.
func (s *MongoStore) EnsureIndexes(ctx context.Context) error {
	_, err := s.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: contribution.FieldDate, Value: -1}}},
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: contribution.FieldContributionType, Value: 1}}},
	})
	if err != nil {
		return fmt.Errorf("create contribution indexes: %w", err)
	}
	s.logger.Debug("contribution indexes ensured", "collection", CollectionName)
	return nil
}

// Ping verifies connectivity to the document store.
func (s *MongoStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, nil)
}

// Close disconnects from the document store.
func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

func (s *MongoStore) findByObjectID(ctx context.Context, oid primitive.ObjectID) (contribution.Contribution, error) {
	var doc contributionDoc
	err := s.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return contribution.Contribution{}, ErrNotFound
	}
	if err != nil {
		return contribution.Contribution{}, fmt.Errorf("find contribution: %w", err)
	}
	return doc.toDomain(), nil
}

var _ Store = (*MongoStore)(nil)
