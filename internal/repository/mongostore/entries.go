package mongostore

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/basura/basura-api/internal/model"
)

type EntryRepository struct {
	coll *mongo.Collection
}

func (r *EntryRepository) Create(ctx context.Context, entry *model.Entry) error {
	_, err := r.coll.InsertOne(ctx, entry)
	return translateError(err)
}

func (r *EntryRepository) List(ctx context.Context, filter model.EntryFilter) ([]model.Entry, error) {
	query := bson.M{}
	if filter.CreatedBy != "" {
		query["created_by"] = filter.CreatedBy
	}
	if filter.ClientID != "" {
		query["client_id"] = filter.ClientID
	}
	if len(filter.PropertyIDs) > 0 {
		query["property_id"] = bson.M{"$in": filter.PropertyIDs}
	}
	if filter.HasRange() {
		query["timestamp"] = bson.M{"$gte": filter.From, "$lte": filter.To}
	}

	opts := options.Find().SetSort(bson.D{{Key: "timestamp", Value: 1}, {Key: "_id", Value: 1}})
	if filter.Offset > 0 {
		opts.SetSkip(int64(filter.Offset))
	}
	if filter.Limit > 0 {
		opts.SetLimit(int64(filter.Limit))
	}

	cursor, err := r.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, err
	}
	entries := []model.Entry{}
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *EntryRepository) DeleteOne(ctx context.Context, key model.EntryKey) error {
	return deletedOrNotFound(r.coll.DeleteOne(ctx, bson.M{
		"property_id": key.PropertyID,
		"client_id":   key.ClientID,
		"timestamp":   key.Timestamp,
		"created_by":  key.CreatedBy,
	}))
}
