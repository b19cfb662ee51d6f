package models

// Project groups tasks under an owner plus invited members.
type Project struct {
	ID          string `gorm:"primaryKey;type:uuid" json:"id"`
	Name        string `gorm:"not null" json:"name"`
	Slug        string `gorm:"uniqueIndex;not null" json:"slug"`
	Description string `json:"description"`

	OwnerID string `gorm:"index;not null" json:"owner_id"`
	Owner   *User  `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
	Members []User `gorm:"many2many:project_members" json:"members,omitempty"`

	Tasks []Task `gorm:"foreignKey:ProjectID" json:"tasks,omitempty"`

	Timestamps
}
