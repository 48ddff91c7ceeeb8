package entities

// Severity represents the severity of an accident
type Severity string

const (
	SeverityMinor    Severity = "minor"
	SeverityModerate Severity = "moderate"
	SeverityCritical Severity = "critical"
)

// Valid reports whether the severity is a known value
func (s Severity) Valid() bool {
	switch s {
	case SeverityMinor, SeverityModerate, SeverityCritical:
		return true
	}
	return false
}

// CareType is the externally supplied care-type label of a request.
// Labels are case-sensitive; unrecognized labels resolve to the general
// bed category downstream.
type CareType string

const (
	CareTypeER        CareType = "ER"
	CareTypeICU       CareType = "ICU"
	CareTypeTrauma    CareType = "trauma"
	CareTypeGeneral   CareType = "general"
	CareTypePediatric CareType = "pediatric"
)

// Valid reports whether the care type is a known label
func (c CareType) Valid() bool {
	switch c {
	case CareTypeER, CareTypeICU, CareTypeTrauma, CareTypeGeneral, CareTypePediatric:
		return true
	}
	return false
}

// Accident represents a single emergency accident report. It lives only for
// the duration of one routing decision and is never persisted.
type Accident struct {
	ID           string      `json:"id"`
	Location     string      `json:"location"`
	Severity     Severity    `json:"severity"`
	CareType     CareType    `json:"care_type"`
	PatientCount int         `json:"patient_count"`
	Coordinates  Coordinates `json:"coordinates"`
}
