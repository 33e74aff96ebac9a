package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/datatypes"

	"github.com/basura/basura-api/internal/model"
	"github.com/basura/basura-api/internal/repository"
)

type PropertyService struct {
	properties PropertyRepository
	clients    ClientRepository
}

func NewPropertyService(properties PropertyRepository, clients ClientRepository) *PropertyService {
	return &PropertyService{properties: properties, clients: clients}
}

type CreatePropertyInput struct {
	PropertyID             string
	PropertyType           string
	PropertyManagerName    string
	PropertyManagerPhoneNo string
	Email                  string
	// Fields holds every other submitted value; only keys valid for the type are kept.
	Fields map[string]any
}

func (s *PropertyService) SuggestID(ctx context.Context) (string, error) {
	ids, err := s.properties.ListPropertyIDs(ctx)
	if err != nil {
		return "", err
	}
	return SuggestNextID(ids, PropertyIDPrefix)
}

// Create stores the common fields plus the attribute keys of the property type.
// Keys of the type that were not submitted are stored as null. Unknown types
// keep only the common fields.
func (s *PropertyService) Create(ctx context.Context, input CreatePropertyInput) error {
	if err := requireFields(map[string]string{
		"property_id":               input.PropertyID,
		"property_type":             input.PropertyType,
		"property_manager_name":     input.PropertyManagerName,
		"property_manager_phone_no": input.PropertyManagerPhoneNo,
		"email":                     input.Email,
	}); err != nil {
		return err
	}

	if _, err := s.properties.Get(ctx, input.PropertyID); err == nil {
		return newError(ErrConflict, "Property ID already exists")
	} else if !errors.Is(err, repository.ErrNotFound) {
		return err
	}

	propertyType := model.PropertyType(input.PropertyType)
	attributes := datatypes.JSONMap{}
	for _, key := range model.PropertyAttributeKeys(propertyType) {
		attributes[key] = input.Fields[key]
	}

	err := s.properties.Create(ctx, &model.Property{
		PropertyID:             input.PropertyID,
		PropertyType:           propertyType,
		PropertyManagerName:    input.PropertyManagerName,
		PropertyManagerPhoneNo: input.PropertyManagerPhoneNo,
		Email:                  input.Email,
		Attributes:             attributes,
	})
	if errors.Is(err, repository.ErrDuplicate) {
		return newError(ErrConflict, "Property ID already exists")
	}
	return err
}

func (s *PropertyService) List(ctx context.Context, params ListParams) ([]model.PropertySummary, error) {
	opts, err := listOptions(params, propertySortFields)
	if err != nil {
		return nil, err
	}
	properties, err := s.properties.List(ctx, opts)
	if err != nil {
		return nil, err
	}
	summaries := make([]model.PropertySummary, 0, len(properties))
	for _, property := range properties {
		summaries = append(summaries, property.Summary())
	}
	return summaries, nil
}

func (s *PropertyService) Get(ctx context.Context, propertyID string) (*model.Property, error) {
	property, err := s.properties.Get(ctx, propertyID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, newError(ErrNotFound, "Property not found")
	}
	return property, err
}

// Update applies a merge patch. Common fields are set directly, attribute keys
// valid for the resulting property type are merged, anything else is ignored.
func (s *PropertyService) Update(ctx context.Context, propertyID string, fields map[string]any) error {
	current, err := s.Get(ctx, propertyID)
	if err != nil {
		return err
	}

	patch := model.PropertyPatch{}
	common := map[string]**string{
		"property_manager_name":     &patch.PropertyManagerName,
		"property_manager_phone_no": &patch.PropertyManagerPhoneNo,
		"email":                     &patch.Email,
		"assigned_to":               &patch.AssignedTo,
	}

	propertyType := current.PropertyType
	if raw, ok := fields["property_type"]; ok {
		value, ok := raw.(string)
		if !ok {
			return newError(ErrInvalidInput, "property_type must be a string")
		}
		propertyType = model.PropertyType(value)
		patch.PropertyType = &propertyType
	}

	for key, raw := range fields {
		if key == "property_type" || key == "property_id" {
			continue
		}
		if target, ok := common[key]; ok {
			value, ok := raw.(string)
			if !ok {
				return newError(ErrInvalidInput, "%s must be a string", key)
			}
			*target = &value
			continue
		}
		if model.IsPropertyAttribute(propertyType, key) {
			if patch.Attributes == nil {
				patch.Attributes = map[string]any{}
			}
			patch.Attributes[key] = raw
		}
	}

	if patch.IsEmpty() {
		return newError(ErrInvalidInput, "No fields to update")
	}

	err = s.properties.Update(ctx, propertyID, patch)
	if errors.Is(err, repository.ErrNotFound) {
		return newError(ErrNotFound, "Property not found")
	}
	return err
}

func (s *PropertyService) Delete(ctx context.Context, propertyID string) error {
	err := s.properties.Delete(ctx, propertyID)
	if errors.Is(err, repository.ErrNotFound) {
		return newError(ErrNotFound, "Property not found")
	}
	return err
}

// Unassigned returns the ids of properties no client lists, in storage order.
func (s *PropertyService) Unassigned(ctx context.Context) ([]string, error) {
	all, err := s.properties.ListPropertyIDs(ctx)
	if err != nil {
		return nil, err
	}
	assigned, err := s.clients.ListAssignedPropertyIDs(ctx)
	if err != nil {
		return nil, err
	}

	taken := make(map[string]struct{}, len(assigned))
	for _, id := range assigned {
		taken[id] = struct{}{}
	}
	result := make([]string, 0, len(all))
	for _, id := range all {
		if _, ok := taken[id]; !ok {
			result = append(result, id)
		}
	}
	return result, nil
}

// Details returns what a collector needs to prefill an entry for the property.
func (s *PropertyService) Details(ctx context.Context, propertyID string) (*model.PropertyDetails, error) {
	property, err := s.Get(ctx, propertyID)
	if err != nil {
		return nil, err
	}

	client, err := s.clients.FindByProperty(ctx, propertyID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, newError(ErrNotFound, "Client associated with the property not found")
		}
		return nil, fmt.Errorf("find owner of %s: %w", propertyID, err)
	}

	return &model.PropertyDetails{
		ClientID:     client.ClientID,
		ClientType:   client.ClientType,
		ClientName:   client.ClientName,
		BoroughName:  property.Attribute("borough_name"),
		StreetName:   property.Attribute("street_name"),
		ChutePresent: property.Attribute("chute_present"),
	}, nil
}
