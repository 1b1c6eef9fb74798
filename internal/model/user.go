package model

import (
	"time"
)

// User type constants
const (
	UserTypePatient    = "Patient"
	UserTypeSpecialist = "Specialist"
)

const (
	GenderMale   = "Male"
	GenderFemale = "Female"
)

// User represents an account holder; every user is either a patient or a specialist
type User struct {
	ID            int64      `json:"id" db:"id"`
	Email         string     `json:"email" db:"email"`
	PasswordHash  string     `json:"-" db:"password_hash"`
	FirstName     string     `json:"first_name" db:"first_name"`
	LastName      string     `json:"last_name" db:"last_name"`
	DateOfBirth   Date       `json:"date_of_birth" db:"date_of_birth"`
	Gender        string     `json:"gender" db:"gender"`
	PhoneNumber   string     `json:"phone_number" db:"phone_number"`
	StreetAddress *string    `json:"street_address" db:"street_address"`
	City          *string    `json:"city" db:"city"`
	Country       *string    `json:"country" db:"country"`
	UserType      string     `json:"user_type" db:"user_type"`
	IsActive      bool       `json:"is_active" db:"is_active"`
	LastLogin     *time.Time `json:"last_login" db:"last_login"`
	CreatedOn     Date       `json:"created_on" db:"created_on"`
	Timestamps
}

// CreateUserRequest is the payload for registering a user.
type CreateUserRequest struct {
	Email         string  `json:"email" binding:"required,email,max=254"`
	Password      string  `json:"password" binding:"required,max=72"`
	FirstName     string  `json:"first_name" binding:"required,max=255"`
	LastName      string  `json:"last_name" binding:"required,max=255"`
	DateOfBirth   string  `json:"date_of_birth" binding:"required,datetime=2006-01-02"`
	Gender        string  `json:"gender" binding:"required,oneof=Male Female"`
	PhoneNumber   string  `json:"phone_number" binding:"required,max=255"`
	StreetAddress *string `json:"street_address" binding:"omitempty,max=255"`
	City          *string `json:"city" binding:"omitempty,max=255"`
	Country       *string `json:"country" binding:"omitempty,max=255"`
	UserType      string  `json:"user_type" binding:"required,oneof=Patient Specialist"`
	IsActive      *bool   `json:"is_active"`
}

// UpdateUserRequest carries a partial update; nil fields are left unchanged.
type UpdateUserRequest struct {
	Email         *string `json:"email" binding:"omitempty,email,max=254"`
	Password      *string `json:"password" binding:"omitempty,max=72"`
	FirstName     *string `json:"first_name" binding:"omitempty,notblank,max=255"`
	LastName      *string `json:"last_name" binding:"omitempty,notblank,max=255"`
	DateOfBirth   *string `json:"date_of_birth" binding:"omitempty,datetime=2006-01-02"`
	Gender        *string `json:"gender" binding:"omitempty,oneof=Male Female"`
	PhoneNumber   *string `json:"phone_number" binding:"omitempty,notblank,max=255"`
	StreetAddress *string `json:"street_address" binding:"omitempty,max=255"`
	City          *string `json:"city" binding:"omitempty,max=255"`
	Country       *string `json:"country" binding:"omitempty,max=255"`
	UserType      *string `json:"user_type" binding:"omitempty,oneof=Patient Specialist"`
	IsActive      *bool   `json:"is_active"`
}

// LoginRequest is read leniently: missing fields simply fail the lookup.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	UserType string `json:"user_type"`
}

type LoginResponse struct {
	UserInfo UserInfo `json:"user_info"`
}

type UserInfo struct {
	ID int64 `json:"id"`
}

// Patient is the profile row of a user registered as a patient.
type Patient struct {
	UserID int64 `json:"user" db:"user_id"`
	Timestamps
}

// Specialist is the profile row of a user registered as a specialist.
type Specialist struct {
	UserID int64 `json:"user" db:"user_id"`
	Timestamps
}

type Specialization struct {
	ID           int64  `json:"id" db:"id"`
	Title        string `json:"title" db:"title"`
	Description  string `json:"description" db:"description"`
	SpecialistID int64  `json:"specialist" db:"specialist_id"`
	Timestamps
}
