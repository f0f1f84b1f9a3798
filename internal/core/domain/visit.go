package domain

import "time"

// VisitDateLayout is the wire format of a visit date.
const VisitDateLayout = "2006-01-02"

// Vitals are recorded as entered by the clinician.
type Vitals struct {
	Temperature     string `json:"temperature" bson:"temperature"`
	BloodPressure   string `json:"bp" bson:"bp"`
	HeartRate       string `json:"heart_rate" bson:"heart_rate"`
	RespiratoryRate string `json:"respiratory_rate" bson:"respiratory_rate"`
}

// Visit is an append-only clinical encounter note.
type Visit struct {
	ID            string    `json:"id" bson:"_id"`
	PatientID     string    `json:"patient_id" bson:"patient_id"`
	DoctorID      string    `json:"doctor_id" bson:"doctor_id"`
	VisitDate     time.Time `json:"visit_date" bson:"visit_date"`
	Vitals        Vitals    `json:"vitals" bson:"vitals"`
	Symptoms      string    `json:"symptoms" bson:"symptoms"`
	Diagnosis     string    `json:"diagnosis" bson:"diagnosis"`
	TreatmentPlan string    `json:"treatment_plan" bson:"treatment_plan"`
	Notes         string    `json:"notes,omitempty" bson:"notes,omitempty"`
	CreatedAt     time.Time `json:"created_at" bson:"created_at"`
}

// ParseVisitDate parses a YYYY-MM-DD date as UTC midnight.
func ParseVisitDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation(VisitDateLayout, s, time.UTC)
	if err != nil {
		return time.Time{}, ErrInvalidVisitDate
	}
	return t, nil
}
