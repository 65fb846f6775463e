package entity

import (
	"time"

	"github.com/google/uuid"
)

// Blacklist bars a user from cancellation/booking actions while today falls
// within [StartDate, EndDate]. Multiple entries per user may coexist.
type Blacklist struct {
	ID          int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID      uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	Reason      string    `gorm:"type:varchar(500);not null" json:"reason"`
	StartDate   time.Time `gorm:"type:date;not null" json:"start_date"`
	EndDate     time.Time `gorm:"type:date;not null" json:"end_date"`
	CreatedByID uuid.UUID `gorm:"type:uuid;not null" json:"created_by_id"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`

	// Relationships
	User      User `gorm:"foreignKey:UserID" json:"user,omitempty"`
	CreatedBy User `gorm:"foreignKey:CreatedByID" json:"created_by,omitempty"`
}

func (Blacklist) TableName() string {
	return "blacklist"
}
