package mongostore

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"gorm.io/datatypes"

	"github.com/basura/basura-api/internal/model"
	"github.com/basura/basura-api/internal/repository"
)

var propertySortFields = map[string]bool{
	"property_id":           true,
	"property_manager_name": true,
	"email":                 true,
}

type PropertyRepository struct {
	coll *mongo.Collection
}

func (r *PropertyRepository) Create(ctx context.Context, property *model.Property) error {
	if property.Attributes == nil {
		property.Attributes = datatypes.JSONMap{}
	}
	_, err := r.coll.InsertOne(ctx, property)
	return translateError(err)
}

func (r *PropertyRepository) Get(ctx context.Context, propertyID string) (*model.Property, error) {
	var property model.Property
	if err := r.coll.FindOne(ctx, bson.M{"property_id": propertyID}).Decode(&property); err != nil {
		return nil, translateError(err)
	}
	return &property, nil
}

func (r *PropertyRepository) List(ctx context.Context, opts repository.ListOptions) ([]model.Property, error) {
	findOpts, err := findOptions(propertySortFields, opts)
	if err != nil {
		return nil, err
	}
	return r.find(ctx, bson.M{}, findOpts)
}

func (r *PropertyRepository) ListByIDs(ctx context.Context, propertyIDs []string) ([]model.Property, error) {
	if len(propertyIDs) == 0 {
		return []model.Property{}, nil
	}
	return r.find(ctx, bson.M{"property_id": bson.M{"$in": propertyIDs}}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
}

func (r *PropertyRepository) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]model.Property, error) {
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	properties := []model.Property{}
	if err := cursor.All(ctx, &properties); err != nil {
		return nil, err
	}
	return properties, nil
}

func (r *PropertyRepository) ListPropertyIDs(ctx context.Context) ([]string, error) {
	properties, err := r.find(ctx, bson.M{}, options.Find().
		SetProjection(bson.M{"property_id": 1}).
		SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(properties))
	for _, property := range properties {
		ids = append(ids, property.PropertyID)
	}
	return ids, nil
}

func (r *PropertyRepository) Update(ctx context.Context, propertyID string, patch model.PropertyPatch) error {
	set := bson.M{}
	if patch.PropertyType != nil {
		set["property_type"] = string(*patch.PropertyType)
	}
	if patch.PropertyManagerName != nil {
		set["property_manager_name"] = *patch.PropertyManagerName
	}
	if patch.PropertyManagerPhoneNo != nil {
		set["property_manager_phone_no"] = *patch.PropertyManagerPhoneNo
	}
	if patch.Email != nil {
		set["email"] = *patch.Email
	}
	if patch.AssignedTo != nil {
		set["assigned_to"] = *patch.AssignedTo
	}
	for key, value := range patch.Attributes {
		set["attributes."+key] = value
	}
	return matchedOrNotFound(r.coll.UpdateOne(ctx, bson.M{"property_id": propertyID}, bson.M{"$set": set}))
}

func (r *PropertyRepository) AssignTo(ctx context.Context, propertyIDs []string, clientID string) error {
	if len(propertyIDs) == 0 {
		return nil
	}
	_, err := r.coll.UpdateMany(ctx,
		bson.M{"property_id": bson.M{"$in": propertyIDs}},
		bson.M{"$set": bson.M{"assigned_to": clientID}},
	)
	return err
}

func (r *PropertyRepository) Delete(ctx context.Context, propertyID string) error {
	return deletedOrNotFound(r.coll.DeleteOne(ctx, bson.M{"property_id": propertyID}))
}
