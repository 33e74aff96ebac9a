package mongostore

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/datatypes"

	"github.com/basura/basura-api/internal/model"
	"github.com/basura/basura-api/internal/repository"
)

var clientSortFields = map[string]bool{
	"client_id":   true,
	"client_name": true,
	"email":       true,
}

type ClientRepository struct {
	coll *mongo.Collection
}

func (r *ClientRepository) Create(ctx context.Context, client *model.Client) error {
	if client.Properties == nil {
		client.Properties = datatypes.JSONSlice[string]{}
	}
	_, err := r.coll.InsertOne(ctx, client)
	return translateError(err)
}

func (r *ClientRepository) Get(ctx context.Context, clientID string) (*model.Client, error) {
	return r.findOne(ctx, bson.M{"client_id": clientID})
}

func (r *ClientRepository) GetByUsername(ctx context.Context, username string) (*model.Client, error) {
	return r.findOne(ctx, bson.M{"username": username})
}

func (r *ClientRepository) FindByProperty(ctx context.Context, propertyID string) (*model.Client, error) {
	return r.findOne(ctx, bson.M{"properties": propertyID})
}

func (r *ClientRepository) findOne(ctx context.Context, filter bson.M) (*model.Client, error) {
	var client model.Client
	if err := r.coll.FindOne(ctx, filter).Decode(&client); err != nil {
		return nil, translateError(err)
	}
	return &client, nil
}

func (r *ClientRepository) List(ctx context.Context, opts repository.ListOptions) ([]model.Client, error) {
	findOpts, err := findOptions(clientSortFields, opts)
	if err != nil {
		return nil, err
	}
	cursor, err := r.coll.Find(ctx, bson.M{}, findOpts)
	if err != nil {
		return nil, err
	}
	clients := []model.Client{}
	if err := cursor.All(ctx, &clients); err != nil {
		return nil, err
	}
	return clients, nil
}

func (r *ClientRepository) ListClientIDs(ctx context.Context) ([]string, error) {
	values, err := r.coll.Distinct(ctx, "client_id", bson.M{})
	if err != nil {
		return nil, err
	}
	return distinctStrings(values), nil
}

func (r *ClientRepository) ListAssignedPropertyIDs(ctx context.Context) ([]string, error) {
	values, err := r.coll.Distinct(ctx, "properties", bson.M{})
	if err != nil {
		return nil, err
	}
	return distinctStrings(values), nil
}

func (r *ClientRepository) Update(ctx context.Context, clientID string, patch model.ClientPatch) error {
	set := bson.M{}
	if patch.ClientName != nil {
		set["client_name"] = *patch.ClientName
	}
	if patch.ClientType != nil {
		set["client_type"] = *patch.ClientType
	}
	if patch.Phone != nil {
		set["phone"] = *patch.Phone
	}
	if patch.Email != nil {
		set["email"] = *patch.Email
	}
	if patch.Properties != nil {
		set["properties"] = *patch.Properties
	}
	if patch.Username != nil {
		set["username"] = *patch.Username
	}
	if patch.PasswordHash != nil {
		set["password"] = *patch.PasswordHash
	}
	return matchedOrNotFound(r.coll.UpdateOne(ctx, bson.M{"client_id": clientID}, bson.M{"$set": set}))
}

func (r *ClientRepository) Delete(ctx context.Context, clientID string) error {
	return deletedOrNotFound(r.coll.DeleteOne(ctx, bson.M{"client_id": clientID}))
}
