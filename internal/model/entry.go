package model

import "gorm.io/datatypes"

// Entry is one waste-collection record. Timestamp is whatever the collector's
// device sent; range queries compare it as a string. ChutePresent keeps the
// JSON type the collector sent.
type Entry struct {
	ID                string            `gorm:"primaryKey;size:36" json:"id" bson:"_id"`
	PropertyID        string            `gorm:"size:32;index" json:"property_id" bson:"property_id"`
	ClientID          string            `gorm:"size:32;index" json:"client_id" bson:"client_id"`
	ClientType        string            `gorm:"size:64" json:"client_type" bson:"client_type"`
	ClientName        string            `gorm:"size:255" json:"client_name" bson:"client_name"`
	BoroughName       string            `gorm:"size:128" json:"borough_name" bson:"borough_name"`
	StreetName        string            `gorm:"size:255" json:"street_name" bson:"street_name"`
	ChutePresent      any               `gorm:"serializer:json;type:text" json:"chute_present" bson:"chute_present"`
	Timestamp         string            `gorm:"size:64;index" json:"timestamp" bson:"timestamp"`
	GarbageAttributes datatypes.JSONMap `json:"garbage_attributes" bson:"garbage_attributes"`
	CreatedBy         string            `gorm:"size:128;index" json:"created_by" bson:"created_by"`
}

// EntryFilter narrows an entry listing. From/To are applied only when both are set.
type EntryFilter struct {
	CreatedBy   string
	ClientID    string
	PropertyIDs []string
	From        string
	To          string
	Offset      int
	Limit       int
}

func (f EntryFilter) HasRange() bool {
	return f.From != "" && f.To != ""
}

// EntryKey identifies an entry the way collectors see it.
type EntryKey struct {
	PropertyID string `json:"property_id"`
	ClientID   string `json:"client_id"`
	Timestamp  string `json:"timestamp"`
	CreatedBy  string `json:"created_by"`
}
