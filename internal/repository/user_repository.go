package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/basura/basura-api/internal/model"
)

var userSortColumns = map[string]string{
	"employee_id":    "employee_id",
	"name.firstname": "name_firstname",
	"email":          "email",
}

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, user *model.User) error {
	return translateError(r.db.WithContext(ctx).Create(user).Error)
}

func (r *UserRepository) GetByEmployeeID(ctx context.Context, employeeID string) (*model.User, error) {
	return r.first(ctx, "employee_id = ?", employeeID)
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	return r.first(ctx, "username = ?", username)
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	return r.first(ctx, "email = ?", email)
}

func (r *UserRepository) first(ctx context.Context, query string, arg string) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Where(query, arg).First(&user).Error; err != nil {
		return nil, translateError(err)
	}
	return &user, nil
}

func (r *UserRepository) List(ctx context.Context, opts ListOptions) ([]model.User, error) {
	order, err := orderClause(userSortColumns, opts)
	if err != nil {
		return nil, err
	}
	users := []model.User{}
	err = r.db.WithContext(ctx).
		Order(order).
		Offset(opts.Offset()).
		Limit(opts.Limit()).
		Find(&users).Error
	if err != nil {
		return nil, err
	}
	return users, nil
}

func (r *UserRepository) ListEmployeeIDs(ctx context.Context) ([]string, error) {
	var ids []string
	if err := r.db.WithContext(ctx).Model(&model.User{}).Where("employee_id <> ''").Pluck("employee_id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *UserRepository) Update(ctx context.Context, employeeID string, patch model.UserPatch) error {
	return r.update(ctx, "employee_id = ?", employeeID, patch)
}

func (r *UserRepository) UpdateByUsername(ctx context.Context, username string, patch model.UserPatch) error {
	return r.update(ctx, "username = ?", username, patch)
}

func (r *UserRepository) UpdatePasswordByEmail(ctx context.Context, email, passwordHash string) error {
	return r.update(ctx, "email = ?", email, model.UserPatch{PasswordHash: &passwordHash})
}

func (r *UserRepository) update(ctx context.Context, query string, arg string, patch model.UserPatch) error {
	result := r.db.WithContext(ctx).Model(&model.User{}).Where(query, arg).Updates(userUpdates(patch))
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *UserRepository) Delete(ctx context.Context, employeeID string) error {
	result := r.db.WithContext(ctx).Where("employee_id = ?", employeeID).Delete(&model.User{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func userUpdates(patch model.UserPatch) map[string]any {
	updates := map[string]any{}
	if patch.EmployeeID != nil {
		updates["employee_id"] = *patch.EmployeeID
	}
	if patch.Username != nil {
		updates["username"] = *patch.Username
	}
	if patch.Name != nil {
		updates["name_firstname"] = patch.Name.FirstName
		updates["name_middlename"] = patch.Name.MiddleName
		updates["name_lastname"] = patch.Name.LastName
	}
	if patch.Contact != nil {
		updates["contact"] = *patch.Contact
	}
	if patch.Email != nil {
		updates["email"] = *patch.Email
	}
	if patch.BankAccountNo != nil {
		updates["bank_account_no"] = *patch.BankAccountNo
	}
	if patch.PasswordHash != nil {
		updates["password"] = *patch.PasswordHash
	}
	if patch.Role != nil {
		updates["role"] = string(*patch.Role)
	}
	if patch.IDProof != nil {
		updates["id_proof"] = *patch.IDProof
	}
	if patch.ProfilePhoto != nil {
		updates["profile_photo"] = *patch.ProfilePhoto
	}
	return updates
}
