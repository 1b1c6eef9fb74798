package model

import (
	"github.com/google/uuid"
)

type MedicalHistory struct {
	ID            uuid.UUID `json:"id" db:"id"`
	UserID        int64     `json:"user" db:"user_id"`
	PastDiagnoses *string   `json:"past_diagnoses" db:"past_diagnoses"`
	Allergies     *string   `json:"allergies" db:"allergies"`
	Medications   *string   `json:"medications" db:"medications"`
	Immunizations *string   `json:"immunizations" db:"immunizations"`
	Timestamps
}

type EmergencyContact struct {
	ID           uuid.UUID `json:"id" db:"id"`
	UserID       int64     `json:"user" db:"user_id"`
	Name         string    `json:"name" db:"name"`
	PhoneNumber  string    `json:"phone_number" db:"phone_number"`
	Relationship *string   `json:"relationship" db:"relationship"`
	Timestamps
}

type CreateMedicalHistoryRequest struct {
	User          *int64  `json:"user" binding:"required"`
	PastDiagnoses *string `json:"past_diagnoses"`
	Allergies     *string `json:"allergies"`
	Medications   *string `json:"medications"`
	Immunizations *string `json:"immunizations"`
}

type CreateEmergencyContactRequest struct {
	User         *int64  `json:"user" binding:"required"`
	Name         string  `json:"name" binding:"required,max=255"`
	PhoneNumber  string  `json:"phone_number" binding:"required,max=20"`
	Relationship *string `json:"relationship" binding:"omitempty,max=50"`
}

// MedicalFilter narrows medics listings; a nil UserID lists everything.
type MedicalFilter struct {
	UserID *int64 `form:"user"`
}
