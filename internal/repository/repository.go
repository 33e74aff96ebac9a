package repository

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
)

var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("record already exists")
)

const DefaultPerPage = 100

// ListOptions describes one page of a sorted listing. SortBy uses the public
// field names (for example "name.firstname"); each store maps them to its own columns.
type ListOptions struct {
	Page    int
	PerPage int
	SortBy  string
	Desc    bool
}

func (o ListOptions) Limit() int {
	if o.PerPage <= 0 {
		return DefaultPerPage
	}
	return o.PerPage
}

func (o ListOptions) Offset() int {
	if o.Page <= 1 {
		return 0
	}
	return (o.Page - 1) * o.Limit()
}

func translateError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrDuplicate
	}

	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "unique constraint") || strings.Contains(msg, "duplicate key") {
		return ErrDuplicate
	}
	return err
}

func orderClause(columns map[string]string, opts ListOptions) (string, error) {
	field := opts.SortBy
	if field == "" {
		return "id ASC", nil
	}
	column, ok := columns[field]
	if !ok {
		return "", fmt.Errorf("unsupported sort field %q", field)
	}
	direction := "ASC"
	if opts.Desc {
		direction = "DESC"
	}
	return fmt.Sprintf("%s %s, id ASC", column, direction), nil
}
