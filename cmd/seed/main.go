package main

import (
	"fmt"
	"time"

	"surgery-reservation-system/config"
	"surgery-reservation-system/internal/domain/entity"
	"surgery-reservation-system/internal/infrastructure/database"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Seeds demo accounts and operating room inventory. Safe to rerun: rows
// keyed by email or room number are skipped when they already exist.
func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}

	if err := database.RunMigrations(cfg.DB); err != nil {
		logrus.Fatalf("Failed to migrate database: %v", err)
	}

	db, err := database.NewPostgresConnection(cfg.DB)
	if err != nil {
		logrus.Fatalf("Failed to connect to database: %v", err)
	}

	gofakeit.Seed(time.Now().UnixNano())

	if err := seedUsers(db); err != nil {
		logrus.Fatalf("Failed to seed users: %v", err)
	}
	if err := seedRooms(db); err != nil {
		logrus.Fatalf("Failed to seed rooms: %v", err)
	}

	logrus.Info("Seed complete")
}

func seedUsers(db *gorm.DB) error {
	password, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	active := true

	type account struct {
		email  string
		name   string
		roleID int
	}

	accounts := []account{
		{"admin@hospital.local", "系统管理员", entity.RoleIDAdmin},
	}
	for i := 1; i <= 5; i++ {
		accounts = append(accounts, account{
			email:  fmt.Sprintf("doctor%d@hospital.local", i),
			name:   gofakeit.Name(),
			roleID: entity.RoleIDDoctor,
		})
	}
	for i := 1; i <= 8; i++ {
		accounts = append(accounts, account{
			email:  fmt.Sprintf("nurse%d@hospital.local", i),
			name:   gofakeit.Name(),
			roleID: entity.RoleIDNurse,
		})
	}
	for i := 1; i <= 4; i++ {
		accounts = append(accounts, account{
			email:  fmt.Sprintf("anesthesiologist%d@hospital.local", i),
			name:   gofakeit.Name(),
			roleID: entity.RoleIDAnesthesiologist,
		})
	}

	for _, acc := range accounts {
		var count int64
		if err := db.Model(&entity.User{}).Where("email = ?", acc.email).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			continue
		}

		user := entity.User{
			RoleID:   acc.roleID,
			Email:    acc.email,
			Password: string(password),
			FullName: acc.name,
			IsActive: &active,
		}
		if err := db.Create(&user).Error; err != nil {
			return err
		}
		logrus.Infof("Seeded user %s (%s)", acc.email, entity.RoleName(acc.roleID))
	}

	return nil
}

func seedRooms(db *gorm.DB) error {
	bedTypes := []string{"STANDARD", "ICU", "RECOVERY"}

	for i := 1; i <= 6; i++ {
		roomNumber := fmt.Sprintf("OR-%02d", i)

		var count int64
		if err := db.Model(&entity.OperatingRoom{}).Where("room_number = ?", roomNumber).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			continue
		}

		room := entity.OperatingRoom{
			RoomNumber:    roomNumber,
			RoomName:      fmt.Sprintf("%d号手术室", i),
			FloorNumber:   gofakeit.Number(2, 5),
			EquipmentList: gofakeit.Sentence(6),
			Status:        entity.ResourceStatusAvailable,
		}
		if err := db.Create(&room).Error; err != nil {
			return err
		}

		bedCount := gofakeit.Number(1, 3)
		for b := 1; b <= bedCount; b++ {
			bed := entity.OperatingBed{
				RoomID:    room.ID,
				BedNumber: fmt.Sprintf("%s-B%d", roomNumber, b),
				BedType:   bedTypes[gofakeit.Number(0, len(bedTypes)-1)],
				Status:    entity.ResourceStatusAvailable,
			}
			if err := db.Create(&bed).Error; err != nil {
				return err
			}
		}

		logrus.Infof("Seeded room %s with %d beds", roomNumber, bedCount)
	}

	return nil
}
