package mongostore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/basura/basura-api/internal/repository"
)

const (
	usersCollection      = "users"
	propertiesCollection = "properties"
	clientsCollection    = "clients"
	attributesCollection = "garbage_attributes"
	entriesCollection    = "entries"
)

// Store is the document-store backend. Documents use the same field names as
// the JSON API. Property type-specific fields are nested under attributes and
// entry _id values are string UUIDs, so documents written by other services
// with flat properties or ObjectId keys will not decode.
type Store struct {
	client *mongo.Client
	db     *mongo.Database
}

func Connect(ctx context.Context, uri, database string) (*Store, error) {
	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	if err := client.Ping(connectCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongo: %w", err)
	}
	return &Store{client: client, db: client.Database(database)}, nil
}

func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// EnsureIndexes creates the unique and lookup indexes. It is safe to call on every start.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	indexes := map[string][]mongo.IndexModel{
		usersCollection: {
			{Keys: bson.D{{Key: "username", Value: 1}}, Options: options.Index().SetUnique(true)},
			{Keys: bson.D{{Key: "employee_id", Value: 1}}},
			{Keys: bson.D{{Key: "email", Value: 1}}},
		},
		propertiesCollection: {
			{Keys: bson.D{{Key: "property_id", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		clientsCollection: {
			{Keys: bson.D{{Key: "client_id", Value: 1}}, Options: options.Index().SetUnique(true)},
			{Keys: bson.D{{Key: "properties", Value: 1}}},
			{Keys: bson.D{{Key: "username", Value: 1}}},
		},
		attributesCollection: {
			{Keys: bson.D{{Key: "attribute_name", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		entriesCollection: {
			{Keys: bson.D{{Key: "client_id", Value: 1}, {Key: "timestamp", Value: 1}}},
			{Keys: bson.D{{Key: "created_by", Value: 1}, {Key: "timestamp", Value: 1}}},
		},
	}
	for name, models := range indexes {
		if _, err := s.db.Collection(name).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("create %s indexes: %w", name, err)
		}
	}
	return nil
}

func (s *Store) Users() *UserRepository {
	return &UserRepository{coll: s.db.Collection(usersCollection)}
}

func (s *Store) Properties() *PropertyRepository {
	return &PropertyRepository{coll: s.db.Collection(propertiesCollection)}
}

func (s *Store) Clients() *ClientRepository {
	return &ClientRepository{coll: s.db.Collection(clientsCollection)}
}

func (s *Store) Attributes() *AttributeRepository {
	return &AttributeRepository{coll: s.db.Collection(attributesCollection)}
}

func (s *Store) Entries() *EntryRepository {
	return &EntryRepository{coll: s.db.Collection(entriesCollection)}
}

func translateError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return repository.ErrNotFound
	case mongo.IsDuplicateKeyError(err):
		return repository.ErrDuplicate
	default:
		return err
	}
}

func findOptions(sortFields map[string]bool, opts repository.ListOptions) (*options.FindOptions, error) {
	sort := bson.D{}
	if opts.SortBy != "" {
		if !sortFields[opts.SortBy] {
			return nil, fmt.Errorf("unsupported sort field %q", opts.SortBy)
		}
		direction := 1
		if opts.Desc {
			direction = -1
		}
		sort = append(sort, bson.E{Key: opts.SortBy, Value: direction})
	}
	sort = append(sort, bson.E{Key: "_id", Value: 1})

	return options.Find().
		SetSort(sort).
		SetSkip(int64(opts.Offset())).
		SetLimit(int64(opts.Limit())), nil
}

func matchedOrNotFound(result *mongo.UpdateResult, err error) error {
	if err != nil {
		return translateError(err)
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func deletedOrNotFound(result *mongo.DeleteResult, err error) error {
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func distinctStrings(values []interface{}) []string {
	out := make([]string, 0, len(values))
	for _, value := range values {
		if s, ok := value.(string); ok && s != "" {
			out = append(out, s)
		}
	}
	return out
}
