package mongostore

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/basura/basura-api/internal/model"
)

type AttributeRepository struct {
	coll *mongo.Collection
}

func (r *AttributeRepository) Create(ctx context.Context, attribute *model.GarbageAttribute) error {
	_, err := r.coll.InsertOne(ctx, attribute)
	return translateError(err)
}

func (r *AttributeRepository) Get(ctx context.Context, name string) (*model.GarbageAttribute, error) {
	var attribute model.GarbageAttribute
	if err := r.coll.FindOne(ctx, bson.M{"attribute_name": name}).Decode(&attribute); err != nil {
		return nil, translateError(err)
	}
	return &attribute, nil
}

func (r *AttributeRepository) List(ctx context.Context) ([]model.GarbageAttribute, error) {
	cursor, err := r.coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, err
	}
	attributes := []model.GarbageAttribute{}
	if err := cursor.All(ctx, &attributes); err != nil {
		return nil, err
	}
	return attributes, nil
}

func (r *AttributeRepository) Update(ctx context.Context, name string, patch model.GarbageAttributePatch) error {
	set := bson.M{}
	if patch.AttributeName != nil {
		set["attribute_name"] = *patch.AttributeName
	}
	if patch.Color != nil {
		set["color"] = *patch.Color
	}
	return matchedOrNotFound(r.coll.UpdateOne(ctx, bson.M{"attribute_name": name}, bson.M{"$set": set}))
}

func (r *AttributeRepository) Delete(ctx context.Context, name string) error {
	return deletedOrNotFound(r.coll.DeleteOne(ctx, bson.M{"attribute_name": name}))
}
