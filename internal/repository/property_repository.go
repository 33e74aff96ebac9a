package repository

import (
	"context"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/basura/basura-api/internal/model"
)

var propertySortColumns = map[string]string{
	"property_id":           "property_id",
	"property_manager_name": "property_manager_name",
	"email":                 "email",
}

type PropertyRepository struct {
	db *gorm.DB
}

func NewPropertyRepository(db *gorm.DB) *PropertyRepository {
	return &PropertyRepository{db: db}
}

func (r *PropertyRepository) Create(ctx context.Context, property *model.Property) error {
	return translateError(r.db.WithContext(ctx).Create(property).Error)
}

func (r *PropertyRepository) Get(ctx context.Context, propertyID string) (*model.Property, error) {
	var property model.Property
	if err := r.db.WithContext(ctx).Where("property_id = ?", propertyID).First(&property).Error; err != nil {
		return nil, translateError(err)
	}
	return &property, nil
}

func (r *PropertyRepository) List(ctx context.Context, opts ListOptions) ([]model.Property, error) {
	order, err := orderClause(propertySortColumns, opts)
	if err != nil {
		return nil, err
	}
	properties := []model.Property{}
	err = r.db.WithContext(ctx).
		Order(order).
		Offset(opts.Offset()).
		Limit(opts.Limit()).
		Find(&properties).Error
	if err != nil {
		return nil, err
	}
	return properties, nil
}

func (r *PropertyRepository) ListByIDs(ctx context.Context, propertyIDs []string) ([]model.Property, error) {
	properties := []model.Property{}
	if len(propertyIDs) == 0 {
		return properties, nil
	}
	if err := r.db.WithContext(ctx).Where("property_id IN ?", propertyIDs).Order("id ASC").Find(&properties).Error; err != nil {
		return nil, err
	}
	return properties, nil
}

func (r *PropertyRepository) ListPropertyIDs(ctx context.Context) ([]string, error) {
	var ids []string
	if err := r.db.WithContext(ctx).Model(&model.Property{}).Order("id ASC").Pluck("property_id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

// Update merges the patch into the stored record. Attribute keys are merged
// one by one, so keys absent from the patch keep their values.
func (r *PropertyRepository) Update(ctx context.Context, propertyID string, patch model.PropertyPatch) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var property model.Property
		if err := tx.Where("property_id = ?", propertyID).First(&property).Error; err != nil {
			return translateError(err)
		}

		if patch.PropertyType != nil {
			property.PropertyType = *patch.PropertyType
		}
		if patch.PropertyManagerName != nil {
			property.PropertyManagerName = *patch.PropertyManagerName
		}
		if patch.PropertyManagerPhoneNo != nil {
			property.PropertyManagerPhoneNo = *patch.PropertyManagerPhoneNo
		}
		if patch.Email != nil {
			property.Email = *patch.Email
		}
		if patch.AssignedTo != nil {
			assigned := *patch.AssignedTo
			property.AssignedTo = &assigned
		}
		if len(patch.Attributes) > 0 {
			if property.Attributes == nil {
				property.Attributes = datatypes.JSONMap{}
			}
			for key, value := range patch.Attributes {
				property.Attributes[key] = value
			}
		}

		return translateError(tx.Save(&property).Error)
	})
}

// AssignTo marks every listed property as owned by the client. Unknown ids are skipped.
func (r *PropertyRepository) AssignTo(ctx context.Context, propertyIDs []string, clientID string) error {
	if len(propertyIDs) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Model(&model.Property{}).
		Where("property_id IN ?", propertyIDs).
		Update("assigned_to", clientID).Error
}

func (r *PropertyRepository) Delete(ctx context.Context, propertyID string) error {
	result := r.db.WithContext(ctx).Where("property_id = ?", propertyID).Delete(&model.Property{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
