package models

type Comment struct {
	ID      string `gorm:"primaryKey;type:uuid" json:"id"`
	Content string `gorm:"not null" json:"content"`

	TaskID   string `gorm:"index;not null" json:"task_id"`
	AuthorID string `gorm:"index;not null" json:"author_id"`
	Author   *User  `gorm:"foreignKey:AuthorID" json:"author,omitempty"`

	Timestamps
}
