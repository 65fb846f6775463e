package dto

import (
	"time"

	"github.com/google/uuid"
)

type RegisterPatientRequest struct {
	Email              string `json:"email" validate:"required,email"`
	Password           string `json:"password" validate:"required,min=8"`
	FullName           string `json:"full_name" validate:"required,min=2,max=255"`
	IDCard             string `json:"id_card" validate:"omitempty,len=18"`
	EmergencyContact   string `json:"emergency_contact" validate:"omitempty,max=100"`
	EmergencyPhone     string `json:"emergency_phone" validate:"omitempty,max=20"`
	MedicalHistory     string `json:"medical_history"`
	Allergies          string `json:"allergies"`
	CurrentMedications string `json:"current_medications"`
	DiseaseDescription string `json:"disease_description" validate:"required"`
	SeverityLevel      string `json:"severity_level" validate:"omitempty,oneof=EMERGENCY URGENT NORMAL LOW"`
}

type RegisterStaffRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	FullName string `json:"full_name" validate:"required,min=2,max=255"`
	RoleID   int    `json:"role_id" validate:"required,oneof=2 4 5"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
}

type UserResponse struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	FullName  string    `json:"full_name"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
