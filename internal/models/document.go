package models

import (
	"time"
)

// StoredDocument is the row layout of the postgres document store. The
// filesystem store keeps the same data as plain files.
type StoredDocument struct {
	Filename  string    `gorm:"type:text;primaryKey" json:"filename"`
	Content   []byte    `gorm:"type:bytea;not null" json:"-"`
	Size      int64     `gorm:"not null" json:"size"`
	CreatedAt time.Time `gorm:"type:timestamp;default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"type:timestamp;default:now()" json:"updated_at"`
}

func (d *StoredDocument) TableName() string {
	return "cv_documents"
}
