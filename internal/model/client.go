package model

import "gorm.io/datatypes"

type Client struct {
	ID           uint                        `gorm:"primaryKey" json:"-" bson:"-"`
	ClientID     string                      `gorm:"size:32;uniqueIndex;not null" json:"client_id" bson:"client_id"`
	ClientName   string                      `gorm:"size:255" json:"client_name" bson:"client_name"`
	ClientType   string                      `gorm:"size:64" json:"client_type" bson:"client_type"`
	Phone        string                      `gorm:"size:64" json:"phone" bson:"phone"`
	Email        string                      `gorm:"size:255" json:"email" bson:"email"`
	Properties   datatypes.JSONSlice[string] `json:"properties" bson:"properties"`
	Username     string                      `gorm:"size:128;index" json:"username" bson:"username"`
	PasswordHash string                      `gorm:"column:password" json:"-" bson:"password"`
}

func (c Client) HasProperty(propertyID string) bool {
	for _, id := range c.Properties {
		if id == propertyID {
			return true
		}
	}
	return false
}

type ClientPatch struct {
	ClientName   *string
	ClientType   *string
	Phone        *string
	Email        *string
	Properties   *[]string
	Username     *string
	PasswordHash *string
}

func (p ClientPatch) IsEmpty() bool {
	return p.ClientName == nil && p.ClientType == nil && p.Phone == nil && p.Email == nil &&
		p.Properties == nil && p.Username == nil && p.PasswordHash == nil
}

type ClientSummary struct {
	ClientID   string `json:"client_id"`
	ClientName string `json:"client_name"`
	Phone      string `json:"phone"`
	Email      string `json:"email"`
}

func (c Client) Summary() ClientSummary {
	return ClientSummary{
		ClientID:   c.ClientID,
		ClientName: c.ClientName,
		Phone:      c.Phone,
		Email:      c.Email,
	}
}
