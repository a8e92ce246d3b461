package model

import (
	"strings"
	"time"
)

// Gender is an informational tag on the patient profile.
type Gender string

// Valid gender tags.
const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderOther  Gender = "other"
)

// EmergencyContact is the person to reach when the patient cannot respond.
type EmergencyContact struct {
	Name         string `json:"name"`
	Phone        string `json:"phone"`
	Relationship string `json:"relationship"`
}

// Patient is the profile of the single active patient. It is a singleton:
// registering a new patient replaces the stored one, and logging out clears
// it together with all medicines and dose logs.
type Patient struct {
	Key              string           `json:"key"`
	ID               string           `json:"id"`
	FirstName        string           `json:"first_name" validate:"required,max=64"`
	LastName         string           `json:"last_name" validate:"required,max=64"`
	Email            string           `json:"email,omitempty"`
	Phone            string           `json:"phone,omitempty"`
	DateOfBirth      string           `json:"date_of_birth"` // "YYYY-MM-DD"
	Gender           Gender           `json:"gender"`
	EmergencyContact EmergencyContact `json:"emergency_contact"`
	Conditions       []string         `json:"conditions,omitempty"`
	Allergies        []string         `json:"allergies,omitempty"`
	CreatedAt        time.Time        `json:"created_at"`
}

// SetKey sets the database key for this patient.
func (p *Patient) SetKey(key string) {
	p.Key = key
}

// GetKey returns the database key for this patient.
func (p *Patient) GetKey() string {
	return p.Key
}

// FullName returns the patient's display name.
func (p *Patient) FullName() string {
	return strings.TrimSpace(p.FirstName + " " + p.LastName)
}

// Age returns the patient's age in whole years at the given date, or -1
// when the date of birth is missing or malformed.
func (p *Patient) Age(now time.Time) int {
	dob, err := time.ParseInLocation("2006-01-02", p.DateOfBirth, now.Location())
	if err != nil {
		return -1
	}
	years := now.Year() - dob.Year()
	if now.YearDay() < dob.YearDay() {
		years--
	}
	return years
}

// ValidGenders returns the valid gender tags.
func ValidGenders() []Gender {
	return []Gender{GenderMale, GenderFemale, GenderOther}
}

// IsValidGender checks if a gender tag is valid.
func IsValidGender(g Gender) bool {
	for _, valid := range ValidGenders() {
		if g == valid {
			return true
		}
	}
	return false
}
