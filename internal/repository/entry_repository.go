package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/basura/basura-api/internal/model"
)

type EntryRepository struct {
	db *gorm.DB
}

func NewEntryRepository(db *gorm.DB) *EntryRepository {
	return &EntryRepository{db: db}
}

func (r *EntryRepository) Create(ctx context.Context, entry *model.Entry) error {
	return translateError(r.db.WithContext(ctx).Create(entry).Error)
}

// List returns entries matching every populated filter field, oldest timestamp first.
func (r *EntryRepository) List(ctx context.Context, filter model.EntryFilter) ([]model.Entry, error) {
	query := r.db.WithContext(ctx).Model(&model.Entry{})
	if filter.CreatedBy != "" {
		query = query.Where("created_by = ?", filter.CreatedBy)
	}
	if filter.ClientID != "" {
		query = query.Where("client_id = ?", filter.ClientID)
	}
	if len(filter.PropertyIDs) > 0 {
		query = query.Where("property_id IN ?", filter.PropertyIDs)
	}
	if filter.HasRange() {
		query = query.Where("timestamp >= ? AND timestamp <= ?", filter.From, filter.To)
	}
	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}

	entries := []model.Entry{}
	if err := query.Order("timestamp ASC, id ASC").Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// DeleteOne removes a single entry matching the key.
func (r *EntryRepository) DeleteOne(ctx context.Context, key model.EntryKey) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var entry model.Entry
		err := tx.Where("property_id = ? AND client_id = ? AND timestamp = ? AND created_by = ?",
			key.PropertyID, key.ClientID, key.Timestamp, key.CreatedBy).
			Order("id ASC").
			First(&entry).Error
		if err != nil {
			return translateError(err)
		}
		return tx.Delete(&model.Entry{}, "id = ?", entry.ID).Error
	})
}
