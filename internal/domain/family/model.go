package family

import "time"

const (
	RelationshipSelf    = "self"
	RelationshipSpouse  = "spouse"
	RelationshipChild   = "child"
	RelationshipParent  = "parent"
	RelationshipSibling = "sibling"
	RelationshipOther   = "other"
)

type Member struct {
	ID           string     `gorm:"type:uuid;primaryKey"`
	UserID       string     `gorm:"type:uuid;index;not null"`
	Name         string     `gorm:"not null"`
	Relationship string     `gorm:"type:varchar(16);not null"`
	DateOfBirth  *time.Time `gorm:"type:date"`
	CreatedAt    time.Time  `gorm:"autoCreateTime"`
	UpdatedAt    time.Time  `gorm:"autoUpdateTime"`
}

func (Member) TableName() string { return "family_members" }

type CreateMemberInput struct {
	UserID       string
	Name         string
	Relationship string
	DateOfBirth  *time.Time
}

type UpdateMemberInput struct {
	ID           string
	UserID       string
	Name         string
	Relationship string
	DateOfBirth  *time.Time
}
