package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is a salon customer. Phone is the primary contact and must be unique;
// email is optional but unique when present.
type User struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	Name      string    `json:"nombre" gorm:"column:nombre;not null"`
	Phone     string    `json:"telefono" gorm:"column:telefono;uniqueIndex;not null"`
	Email     *string   `json:"email,omitempty" gorm:"column:email"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (User) TableName() string { return "usuarios" }

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}
