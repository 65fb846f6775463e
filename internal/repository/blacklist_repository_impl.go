package repository

import (
	"time"

	"surgery-reservation-system/internal/domain/entity"
	domainRepo "surgery-reservation-system/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type blacklistRepository struct{}

func NewBlacklistRepository() domainRepo.BlacklistRepository {
	return &blacklistRepository{}
}

func (r *blacklistRepository) Create(db *gorm.DB, entry *entity.Blacklist) error {
	return db.Create(entry).Error
}

func (r *blacklistRepository) IsBlacklisted(db *gorm.DB, userID uuid.UUID, onDate time.Time) (bool, error) {
	var count int64
	err := db.Model(&entity.Blacklist{}).
		Where("user_id = ? AND start_date <= ? AND end_date >= ?",
			userID, onDate.Format("2006-01-02"), onDate.Format("2006-01-02")).
		Count(&count).Error
	return count > 0, err
}

func (r *blacklistRepository) FindActiveByUser(db *gorm.DB, userID uuid.UUID, onDate time.Time) ([]entity.Blacklist, error) {
	var entries []entity.Blacklist
	err := db.Where("user_id = ? AND start_date <= ? AND end_date >= ?",
		userID, onDate.Format("2006-01-02"), onDate.Format("2006-01-02")).
		Order("end_date DESC").
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}
