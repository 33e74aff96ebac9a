package model

import (
	"encoding/json"

	"gorm.io/datatypes"
)

type PropertyType string

const (
	PropertyTypeResident   PropertyType = "Resident Buildings"
	PropertyTypeCommercial PropertyType = "Commercial Properties"
	PropertyTypeMunicipal  PropertyType = "Municipals"
)

// propertyAttributeKeys lists the type-specific fields accepted for each property type.
var propertyAttributeKeys = map[PropertyType][]string{
	PropertyTypeResident: {
		"owner_name", "owner_number", "property_manager_number", "email_id",
		"apartment_type", "housing_type", "borough_name", "street_name",
		"building_number", "chute_present", "number_of_floors",
		"number_of_basement_floors", "number_of_units_per_floor", "number_of_units_total",
	},
	PropertyTypeCommercial: {
		"franchise_name", "manager_name", "manager_number", "borough_name",
		"street_name", "building_number", "inside_a_mall", "mall_name", "is_event",
		"event_name", "retail_or_office", "industry_type", "chute_present",
		"number_of_floors", "number_of_basement_floors", "number_of_units_per_floor",
		"number_of_units_total",
	},
	PropertyTypeMunicipal: {
		"handling", "department", "is_bid", "area_covered", "building_type",
		"address", "school", "borough_name", "street_name", "building_number",
		"chute_present", "number_of_floors", "number_of_basement_floors",
	},
}

func PropertyAttributeKeys(t PropertyType) []string {
	return propertyAttributeKeys[t]
}

func IsPropertyAttribute(t PropertyType, key string) bool {
	for _, candidate := range propertyAttributeKeys[t] {
		if candidate == key {
			return true
		}
	}
	return false
}

type Property struct {
	ID                     uint              `gorm:"primaryKey" json:"-" bson:"-"`
	PropertyID             string            `gorm:"size:32;uniqueIndex;not null" json:"property_id" bson:"property_id"`
	PropertyType           PropertyType      `gorm:"size:64" json:"property_type" bson:"property_type"`
	PropertyManagerName    string            `gorm:"size:255" json:"property_manager_name" bson:"property_manager_name"`
	PropertyManagerPhoneNo string            `gorm:"size:64" json:"property_manager_phone_no" bson:"property_manager_phone_no"`
	Email                  string            `gorm:"size:255" json:"email" bson:"email"`
	Attributes             datatypes.JSONMap `json:"attributes" bson:"attributes"`
	AssignedTo             *string           `gorm:"size:32;index" json:"assigned_to,omitempty" bson:"assigned_to,omitempty"`
}

func (p Property) Attribute(key string) any {
	if p.Attributes == nil {
		return nil
	}
	return p.Attributes[key]
}

// MarshalJSON renders the type-specific attributes next to the common fields,
// the same flat document shape clients have always received.
func (p Property) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(p.Attributes)+6)
	for key, value := range p.Attributes {
		out[key] = value
	}
	out["property_id"] = p.PropertyID
	out["property_type"] = p.PropertyType
	out["property_manager_name"] = p.PropertyManagerName
	out["property_manager_phone_no"] = p.PropertyManagerPhoneNo
	out["email"] = p.Email
	if p.AssignedTo != nil {
		out["assigned_to"] = *p.AssignedTo
	}
	return json.Marshal(out)
}

type PropertyPatch struct {
	PropertyType           *PropertyType
	PropertyManagerName    *string
	PropertyManagerPhoneNo *string
	Email                  *string
	AssignedTo             *string
	// Attributes are merged key by key into the stored attribute map.
	Attributes map[string]any
}

func (p PropertyPatch) IsEmpty() bool {
	return p.PropertyType == nil && p.PropertyManagerName == nil && p.PropertyManagerPhoneNo == nil &&
		p.Email == nil && p.AssignedTo == nil && len(p.Attributes) == 0
}

type PropertySummary struct {
	PropertyID             string       `json:"property_id"`
	PropertyManagerName    string       `json:"property_manager_name"`
	PropertyManagerPhoneNo string       `json:"property_manager_phone_no"`
	Email                  string       `json:"email"`
	PropertyType           PropertyType `json:"property_type"`
}

func (p Property) Summary() PropertySummary {
	return PropertySummary{
		PropertyID:             p.PropertyID,
		PropertyManagerName:    p.PropertyManagerName,
		PropertyManagerPhoneNo: p.PropertyManagerPhoneNo,
		Email:                  p.Email,
		PropertyType:           p.PropertyType,
	}
}

// PropertyDetails prefills a collection entry for a property and its owning client.
type PropertyDetails struct {
	ClientID     string `json:"client_id"`
	ClientType   string `json:"client_type"`
	ClientName   string `json:"client_name"`
	BoroughName  any    `json:"borough_name"`
	StreetName   any    `json:"street_name"`
	ChutePresent any    `json:"chute_present"`
}
