package entity

import (
	"time"

	"github.com/google/uuid"
)

// CancellationRecord is an immutable audit row written once per
// cancellation. HoursBeforeSurgery is the whole-hour lead time at the
// moment of cancellation and feeds the blacklist policy.
type CancellationRecord struct {
	ID                 int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID             uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	AppointmentID      uuid.UUID `gorm:"type:uuid;not null;index" json:"appointment_id"`
	CancellationDate   time.Time `gorm:"type:date;not null;index" json:"cancellation_date"`
	CancellationTime   time.Time `gorm:"not null" json:"cancellation_time"`
	HoursBeforeSurgery int       `gorm:"not null" json:"hours_before_surgery"`
	Reason             string    `gorm:"type:text" json:"reason,omitempty"`

	// Relationships
	User User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (CancellationRecord) TableName() string {
	return "cancellation_records"
}
