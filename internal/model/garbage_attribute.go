package model

type GarbageAttribute struct {
	ID            uint   `gorm:"primaryKey" json:"-" bson:"-"`
	AttributeName string `gorm:"size:128;uniqueIndex;not null" json:"attribute_name" bson:"attribute_name"`
	Color         string `gorm:"size:32" json:"color" bson:"color"`
}

type GarbageAttributePatch struct {
	AttributeName *string
	Color         *string
}

func (p GarbageAttributePatch) IsEmpty() bool {
	return p.AttributeName == nil && p.Color == nil
}
