package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/basura/basura-api/internal/model"
)

type AttributeRepository struct {
	db *gorm.DB
}

func NewAttributeRepository(db *gorm.DB) *AttributeRepository {
	return &AttributeRepository{db: db}
}

func (r *AttributeRepository) Create(ctx context.Context, attribute *model.GarbageAttribute) error {
	return translateError(r.db.WithContext(ctx).Create(attribute).Error)
}

func (r *AttributeRepository) Get(ctx context.Context, name string) (*model.GarbageAttribute, error) {
	var attribute model.GarbageAttribute
	if err := r.db.WithContext(ctx).Where("attribute_name = ?", name).First(&attribute).Error; err != nil {
		return nil, translateError(err)
	}
	return &attribute, nil
}

func (r *AttributeRepository) List(ctx context.Context) ([]model.GarbageAttribute, error) {
	attributes := []model.GarbageAttribute{}
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&attributes).Error; err != nil {
		return nil, err
	}
	return attributes, nil
}

func (r *AttributeRepository) Update(ctx context.Context, name string, patch model.GarbageAttributePatch) error {
	updates := map[string]any{}
	if patch.AttributeName != nil {
		updates["attribute_name"] = *patch.AttributeName
	}
	if patch.Color != nil {
		updates["color"] = *patch.Color
	}
	result := r.db.WithContext(ctx).Model(&model.GarbageAttribute{}).Where("attribute_name = ?", name).Updates(updates)
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *AttributeRepository) Delete(ctx context.Context, name string) error {
	result := r.db.WithContext(ctx).Where("attribute_name = ?", name).Delete(&model.GarbageAttribute{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
