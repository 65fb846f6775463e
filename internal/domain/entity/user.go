package entity

import (
	"time"

	"github.com/google/uuid"
)

// User represents the centralized authentication table. Doctors, nurses,
// anesthesiologists and admins are plain users distinguished by role;
// patients additionally own a Patient record.
type User struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	RoleID    int       `gorm:"not null;index" json:"role_id"`
	Email     string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Password  string    `gorm:"type:text;not null" json:"-"`
	FullName  string    `gorm:"type:varchar(255);not null" json:"full_name"`
	IsActive  *bool     `gorm:"not null;default:true;index" json:"is_active"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Role    Role     `gorm:"foreignKey:RoleID" json:"role,omitempty"`
	Patient *Patient `gorm:"foreignKey:UserID" json:"patient,omitempty"`
}

func (User) TableName() string {
	return "users"
}

// IsAdmin reports whether the user holds the admin role.
func (u *User) IsAdmin() bool {
	return u.RoleID == RoleIDAdmin
}

// IsDoctor reports whether the user holds the doctor role.
func (u *User) IsDoctor() bool {
	return u.RoleID == RoleIDDoctor
}

// IsPatient reports whether the user holds the patient role.
func (u *User) IsPatient() bool {
	return u.RoleID == RoleIDPatient
}
