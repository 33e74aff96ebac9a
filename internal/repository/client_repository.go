package repository

import (
	"context"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/basura/basura-api/internal/model"
)

var clientSortColumns = map[string]string{
	"client_id":   "client_id",
	"client_name": "client_name",
	"email":       "email",
}

type ClientRepository struct {
	db *gorm.DB
}

func NewClientRepository(db *gorm.DB) *ClientRepository {
	return &ClientRepository{db: db}
}

func (r *ClientRepository) Create(ctx context.Context, client *model.Client) error {
	if client.Properties == nil {
		client.Properties = datatypes.JSONSlice[string]{}
	}
	return translateError(r.db.WithContext(ctx).Create(client).Error)
}

func (r *ClientRepository) Get(ctx context.Context, clientID string) (*model.Client, error) {
	return r.first(ctx, "client_id = ?", clientID)
}

func (r *ClientRepository) GetByUsername(ctx context.Context, username string) (*model.Client, error) {
	return r.first(ctx, "username = ?", username)
}

func (r *ClientRepository) first(ctx context.Context, query string, arg string) (*model.Client, error) {
	var client model.Client
	if err := r.db.WithContext(ctx).Where(query, arg).First(&client).Error; err != nil {
		return nil, translateError(err)
	}
	return &client, nil
}

// FindByProperty returns the first client whose property list contains the id.
// The list is a JSON column, so matching happens after loading.
func (r *ClientRepository) FindByProperty(ctx context.Context, propertyID string) (*model.Client, error) {
	var clients []model.Client
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&clients).Error; err != nil {
		return nil, err
	}
	for i := range clients {
		if clients[i].HasProperty(propertyID) {
			return &clients[i], nil
		}
	}
	return nil, ErrNotFound
}

func (r *ClientRepository) List(ctx context.Context, opts ListOptions) ([]model.Client, error) {
	order, err := orderClause(clientSortColumns, opts)
	if err != nil {
		return nil, err
	}
	clients := []model.Client{}
	err = r.db.WithContext(ctx).
		Order(order).
		Offset(opts.Offset()).
		Limit(opts.Limit()).
		Find(&clients).Error
	if err != nil {
		return nil, err
	}
	return clients, nil
}

func (r *ClientRepository) ListClientIDs(ctx context.Context) ([]string, error) {
	var ids []string
	if err := r.db.WithContext(ctx).Model(&model.Client{}).Pluck("client_id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

// ListAssignedPropertyIDs returns every property id listed by any client.
func (r *ClientRepository) ListAssignedPropertyIDs(ctx context.Context) ([]string, error) {
	var clients []model.Client
	if err := r.db.WithContext(ctx).Select("properties").Find(&clients).Error; err != nil {
		return nil, err
	}
	var ids []string
	for _, client := range clients {
		ids = append(ids, client.Properties...)
	}
	return ids, nil
}

func (r *ClientRepository) Update(ctx context.Context, clientID string, patch model.ClientPatch) error {
	result := r.db.WithContext(ctx).Model(&model.Client{}).Where("client_id = ?", clientID).Updates(clientUpdates(patch))
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *ClientRepository) Delete(ctx context.Context, clientID string) error {
	result := r.db.WithContext(ctx).Where("client_id = ?", clientID).Delete(&model.Client{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func clientUpdates(patch model.ClientPatch) map[string]any {
	updates := map[string]any{}
	if patch.ClientName != nil {
		updates["client_name"] = *patch.ClientName
	}
	if patch.ClientType != nil {
		updates["client_type"] = *patch.ClientType
	}
	if patch.Phone != nil {
		updates["phone"] = *patch.Phone
	}
	if patch.Email != nil {
		updates["email"] = *patch.Email
	}
	if patch.Properties != nil {
		updates["properties"] = datatypes.JSONSlice[string](*patch.Properties)
	}
	if patch.Username != nil {
		updates["username"] = *patch.Username
	}
	if patch.PasswordHash != nil {
		updates["password"] = *patch.PasswordHash
	}
	return updates
}
