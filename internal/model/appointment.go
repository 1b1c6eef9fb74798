package model

import (
	"github.com/google/uuid"
)

const (
	AppointmentStatusPending   = "Pending"
	AppointmentStatusConfirmed = "Confirmed"
	AppointmentStatusCompleted = "Completed"
	AppointmentStatusCanceled  = "Canceled"
)

const (
	DefaultSymptomType        = "General"
	DefaultSymptomDescription = "How Exactly do you feel"
)

type Appointment struct {
	ID                 uuid.UUID `json:"appointment_id" db:"appointment_id"`
	SymptomType        string    `json:"symptom_type" db:"symptom_type"`
	SymptomDescription string    `json:"symptom_description" db:"symptom_description"`
	Date               Date      `json:"date" db:"date"`
	Time               Clock     `json:"time" db:"time"`
	Status             string    `json:"status" db:"status"`
	SpecialistID       int64     `json:"specialist" db:"specialist_id"`
	PatientID          int64     `json:"patient" db:"patient_id"`
}

// CreateAppointmentRequest books a patient with a specialist.
type CreateAppointmentRequest struct {
	Patient            *int64  `json:"patient" binding:"required"`
	Specialist         *int64  `json:"specialist" binding:"required"`
	SymptomType        *string `json:"symptom_type" binding:"omitempty,notblank,max=255"`
	SymptomDescription *string `json:"symptom_description"`
	Date               string  `json:"date" binding:"required,datetime=2006-01-02"`
	Time               string  `json:"time" binding:"required,clocktime"`
	Status             *string `json:"status" binding:"omitempty,oneof=Pending Confirmed Completed Canceled"`
}
