package output

import (
	"time"

	"github.com/dosewatch/dosewatch/internal/model"
	"github.com/dosewatch/dosewatch/internal/storage"
)

// JSONFormatter provides JSON-specific formatting.
type JSONFormatter struct {
	*Formatter
}

// NewJSONFormatter creates a new JSON formatter.
func NewJSONFormatter(f *Formatter) *JSONFormatter {
	return &JSONFormatter{Formatter: f}
}

// MedicineOutput represents a medicine in JSON output.
type MedicineOutput struct {
	Key          string   `json:"key"`
	ShortID      string   `json:"short_id"`
	Name         string   `json:"name"`
	Dosage       string   `json:"dosage,omitempty"`
	Frequency    string   `json:"frequency"`
	Times        []string `json:"times"`
	StartDate    string   `json:"start_date,omitempty"`
	EndDate      string   `json:"end_date,omitempty"`
	Instructions string   `json:"instructions,omitempty"`
	Color        string   `json:"color,omitempty"`
	CreatedAt    string   `json:"created_at"`
}

// NewMedicineOutput creates a MedicineOutput from a Medicine.
func NewMedicineOutput(m *model.Medicine) *MedicineOutput {
	return &MedicineOutput{
		Key:          m.Key,
		ShortID:      m.ShortID(),
		Name:         m.Name,
		Dosage:       m.Dosage,
		Frequency:    string(m.Frequency),
		Times:        m.Times,
		StartDate:    m.StartDate,
		EndDate:      m.EndDate,
		Instructions: m.Instructions,
		Color:        m.Color,
		CreatedAt:    m.CreatedAt.Format(time.RFC3339),
	}
}

// DoseLogOutput represents a dose log in JSON output.
type DoseLogOutput struct {
	ID          string `json:"id"`
	MedicineKey string `json:"medicine_key"`
	Date        string `json:"date"`
	Time        string `json:"time"`
	Taken       bool   `json:"taken"`
	Timestamp   string `json:"timestamp"`
}

// NewDoseLogOutput creates a DoseLogOutput from a DoseLog.
func NewDoseLogOutput(l *model.DoseLog) *DoseLogOutput {
	return &DoseLogOutput{
		ID:          l.ID,
		MedicineKey: l.MedicineKey,
		Date:        l.Date,
		Time:        l.Time,
		Taken:       l.Taken,
		Timestamp:   l.Timestamp.Format(time.RFC3339),
	}
}

// ScheduledDoseOutput represents one schedule row in JSON output.
type ScheduledDoseOutput struct {
	MedicineKey  string         `json:"medicine_key"`
	MedicineName string         `json:"medicine_name"`
	Dosage       string         `json:"dosage,omitempty"`
	Time         string         `json:"time"`
	Status       string         `json:"status"`
	Log          *DoseLogOutput `json:"log,omitempty"`
}

// ScheduleResponse represents a day's schedule in JSON.
type ScheduleResponse struct {
	Date  string                 `json:"date"`
	Doses []*ScheduledDoseOutput `json:"doses"`
}

// NewScheduleResponse creates a ScheduleResponse from schedule rows.
func NewScheduleResponse(date string, doses []storage.ScheduledDose) *ScheduleResponse {
	outputs := make([]*ScheduledDoseOutput, len(doses))
	for i, d := range doses {
		out := &ScheduledDoseOutput{
			MedicineKey:  d.Medicine.Key,
			MedicineName: d.Medicine.Name,
			Dosage:       d.Medicine.Dosage,
			Time:         d.Time,
			Status:       string(d.Status),
		}
		if d.Log != nil {
			out.Log = NewDoseLogOutput(d.Log)
		}
		outputs[i] = out
	}
	return &ScheduleResponse{Date: date, Doses: outputs}
}

// DoseResponse represents a take/skip result in JSON.
type DoseResponse struct {
	Status   string          `json:"status"`
	Medicine *MedicineOutput `json:"medicine"`
	Log      *DoseLogOutput  `json:"log"`
}

// MedicinesResponse represents the medicine list in JSON.
type MedicinesResponse struct {
	Medicines []*MedicineOutput `json:"medicines"`
	Count     int               `json:"count"`
}

// NewMedicinesResponse creates a MedicinesResponse.
func NewMedicinesResponse(medicines []*model.Medicine) *MedicinesResponse {
	outputs := make([]*MedicineOutput, len(medicines))
	for i, m := range medicines {
		outputs[i] = NewMedicineOutput(m)
	}
	return &MedicinesResponse{Medicines: outputs, Count: len(outputs)}
}

// AdherenceOutput represents an adherence summary in JSON.
type AdherenceOutput struct {
	Logged  int     `json:"logged"`
	Taken   int     `json:"taken"`
	Skipped int     `json:"skipped"`
	Rate    float64 `json:"rate"`
}

// NewAdherenceOutput creates an AdherenceOutput from a summary.
func NewAdherenceOutput(s storage.AdherenceSummary) *AdherenceOutput {
	return &AdherenceOutput{
		Logged:  s.Logged,
		Taken:   s.Taken,
		Skipped: s.Skipped,
		Rate:    s.Rate(),
	}
}

// StatsResponse represents adherence statistics in JSON.
type StatsResponse struct {
	From       string                      `json:"from"`
	To         string                      `json:"to"`
	Overall    *AdherenceOutput            `json:"overall"`
	ByMedicine map[string]*AdherenceOutput `json:"by_medicine,omitempty"`
}

// PatientOutput represents the patient in JSON output.
type PatientOutput struct {
	ID               string                  `json:"id"`
	Name             string                  `json:"name"`
	Email            string                  `json:"email,omitempty"`
	Phone            string                  `json:"phone,omitempty"`
	DateOfBirth      string                  `json:"date_of_birth,omitempty"`
	Age              int                     `json:"age,omitempty"`
	Gender           string                  `json:"gender,omitempty"`
	EmergencyContact *model.EmergencyContact `json:"emergency_contact,omitempty"`
	Conditions       []string                `json:"conditions,omitempty"`
	Allergies        []string                `json:"allergies,omitempty"`
}

// NewPatientOutput creates a PatientOutput from a Patient.
func NewPatientOutput(p *model.Patient, now time.Time) *PatientOutput {
	out := &PatientOutput{
		ID:          p.ID,
		Name:        p.FullName(),
		Email:       p.Email,
		Phone:       p.Phone,
		DateOfBirth: p.DateOfBirth,
		Gender:      string(p.Gender),
		Conditions:  p.Conditions,
		Allergies:   p.Allergies,
	}
	if age := p.Age(now); age >= 0 {
		out.Age = age
	}
	if ec := p.EmergencyContact; ec.Name != "" || ec.Phone != "" {
		out.EmergencyContact = &model.EmergencyContact{
			Name:         ec.Name,
			Phone:        ec.Phone,
			Relationship: ec.Relationship,
		}
	}
	return out
}

// WebhookOutput represents a webhook in JSON output.
type WebhookOutput struct {
	Name      string `json:"name"`
	Type      string `json:"type"`
	URL       string `json:"url"`
	Enabled   bool   `json:"enabled"`
	LastUsed  string `json:"last_used,omitempty"`
	LastError string `json:"last_error,omitempty"`
}

// NewWebhookOutput creates a WebhookOutput. The URL is masked.
func NewWebhookOutput(w *model.Webhook) *WebhookOutput {
	out := &WebhookOutput{
		Name:      w.Name,
		Type:      w.Type,
		URL:       w.MaskedURL(),
		Enabled:   w.Enabled,
		LastError: w.LastError,
	}
	if !w.LastUsed.IsZero() {
		out.LastUsed = w.LastUsed.Format(time.RFC3339)
	}
	return out
}

// ErrorResponse represents an error in JSON.
type ErrorResponse struct {
	Status  string `json:"status"`
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// PrintError outputs an error in JSON format.
func (j *JSONFormatter) PrintError(status, errMsg, message string) error {
	return j.JSON(ErrorResponse{
		Status:  status,
		Error:   errMsg,
		Message: message,
	})
}
