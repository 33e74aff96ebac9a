package service

import (
	"context"
	"errors"

	"github.com/basura/basura-api/internal/model"
	"github.com/basura/basura-api/internal/repository"
)

type AttributeService struct {
	attributes AttributeRepository
}

func NewAttributeService(attributes AttributeRepository) *AttributeService {
	return &AttributeService{attributes: attributes}
}

type AttributeUpdate struct {
	AttributeName *string `json:"attribute_name"`
	Color         *string `json:"color"`
}

func (s *AttributeService) List(ctx context.Context) ([]model.GarbageAttribute, error) {
	return s.attributes.List(ctx)
}

func (s *AttributeService) Create(ctx context.Context, name, color string) error {
	if err := requireFields(map[string]string{"attribute_name": name, "color": color}); err != nil {
		return err
	}
	if _, err := s.attributes.Get(ctx, name); err == nil {
		return newError(ErrConflict, "Attribute already exists")
	} else if !errors.Is(err, repository.ErrNotFound) {
		return err
	}

	err := s.attributes.Create(ctx, &model.GarbageAttribute{AttributeName: name, Color: color})
	if errors.Is(err, repository.ErrDuplicate) {
		return newError(ErrConflict, "Attribute already exists")
	}
	return err
}

func (s *AttributeService) Update(ctx context.Context, name string, update AttributeUpdate) error {
	patch := model.GarbageAttributePatch{AttributeName: update.AttributeName, Color: update.Color}
	if patch.IsEmpty() {
		return newError(ErrInvalidInput, "No fields to update")
	}
	if patch.AttributeName != nil && *patch.AttributeName == "" {
		return newError(ErrInvalidInput, "attribute_name must not be empty")
	}

	err := s.attributes.Update(ctx, name, patch)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return newError(ErrNotFound, "Attribute not found")
	case errors.Is(err, repository.ErrDuplicate):
		return newError(ErrConflict, "Attribute already exists")
	}
	return err
}

func (s *AttributeService) Delete(ctx context.Context, name string) error {
	err := s.attributes.Delete(ctx, name)
	if errors.Is(err, repository.ErrNotFound) {
		return newError(ErrNotFound, "Attribute not found")
	}
	return err
}
