package repository

import (
	"time"

	"surgery-reservation-system/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BlacklistRepository interface {
	Create(db *gorm.DB, entry *entity.Blacklist) error

	// IsBlacklisted reports whether onDate falls within any of the user's
	// [start_date, end_date] windows.
	IsBlacklisted(db *gorm.DB, userID uuid.UUID, onDate time.Time) (bool, error)

	FindActiveByUser(db *gorm.DB, userID uuid.UUID, onDate time.Time) ([]entity.Blacklist, error)
}
