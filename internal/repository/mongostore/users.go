package mongostore

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/basura/basura-api/internal/model"
	"github.com/basura/basura-api/internal/repository"
)

var userSortFields = map[string]bool{
	"employee_id":    true,
	"name.firstname": true,
	"email":          true,
}

type UserRepository struct {
	coll *mongo.Collection
}

func (r *UserRepository) Create(ctx context.Context, user *model.User) error {
	_, err := r.coll.InsertOne(ctx, user)
	return translateError(err)
}

func (r *UserRepository) GetByEmployeeID(ctx context.Context, employeeID string) (*model.User, error) {
	return r.findOne(ctx, bson.M{"employee_id": employeeID})
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	return r.findOne(ctx, bson.M{"username": username})
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *UserRepository) findOne(ctx context.Context, filter bson.M) (*model.User, error) {
	var user model.User
	if err := r.coll.FindOne(ctx, filter).Decode(&user); err != nil {
		return nil, translateError(err)
	}
	return &user, nil
}

func (r *UserRepository) List(ctx context.Context, opts repository.ListOptions) ([]model.User, error) {
	findOpts, err := findOptions(userSortFields, opts)
	if err != nil {
		return nil, err
	}
	cursor, err := r.coll.Find(ctx, bson.M{}, findOpts)
	if err != nil {
		return nil, err
	}
	users := []model.User{}
	if err := cursor.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (r *UserRepository) ListEmployeeIDs(ctx context.Context) ([]string, error) {
	values, err := r.coll.Distinct(ctx, "employee_id", bson.M{})
	if err != nil {
		return nil, err
	}
	return distinctStrings(values), nil
}

func (r *UserRepository) Update(ctx context.Context, employeeID string, patch model.UserPatch) error {
	return matchedOrNotFound(r.coll.UpdateOne(ctx, bson.M{"employee_id": employeeID}, bson.M{"$set": userSet(patch)}))
}

func (r *UserRepository) UpdateByUsername(ctx context.Context, username string, patch model.UserPatch) error {
	return matchedOrNotFound(r.coll.UpdateOne(ctx, bson.M{"username": username}, bson.M{"$set": userSet(patch)}))
}

func (r *UserRepository) UpdatePasswordByEmail(ctx context.Context, email, passwordHash string) error {
	return matchedOrNotFound(r.coll.UpdateOne(ctx, bson.M{"email": email}, bson.M{"$set": bson.M{"password": passwordHash}}))
}

func (r *UserRepository) Delete(ctx context.Context, employeeID string) error {
	return deletedOrNotFound(r.coll.DeleteOne(ctx, bson.M{"employee_id": employeeID}))
}

func userSet(patch model.UserPatch) bson.M {
	set := bson.M{}
	if patch.EmployeeID != nil {
		set["employee_id"] = *patch.EmployeeID
	}
	if patch.Username != nil {
		set["username"] = *patch.Username
	}
	if patch.Name != nil {
		set["name"] = *patch.Name
	}
	if patch.Contact != nil {
		set["contact"] = *patch.Contact
	}
	if patch.Email != nil {
		set["email"] = *patch.Email
	}
	if patch.BankAccountNo != nil {
		set["bank_account_no"] = *patch.BankAccountNo
	}
	if patch.PasswordHash != nil {
		set["password"] = *patch.PasswordHash
	}
	if patch.Role != nil {
		set["role"] = string(*patch.Role)
	}
	if patch.IDProof != nil {
		set["id_proof"] = *patch.IDProof
	}
	if patch.ProfilePhoto != nil {
		set["profile_photo"] = *patch.ProfilePhoto
	}
	return set
}
