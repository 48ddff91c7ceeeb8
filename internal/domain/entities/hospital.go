package entities

import (
	"math"
	"time"
)

// Coordinates represents geographical coordinates
type Coordinates struct {
	Latitude  float64 `json:"latitude" db:"latitude"`
	Longitude float64 `json:"longitude" db:"longitude"`
}

// BedCategory identifies a canonical bed department within a hospital
type BedCategory string

const (
	BedCategoryICU       BedCategory = "icu"
	BedCategoryTrauma    BedCategory = "trauma"
	BedCategoryGeneral   BedCategory = "general"
	BedCategoryPediatric BedCategory = "pediatric"
)

// AllBedCategories lists every canonical bed category
var AllBedCategories = []BedCategory{
	BedCategoryICU,
	BedCategoryTrauma,
	BedCategoryGeneral,
	BedCategoryPediatric,
}

// Valid reports whether the category is one of the canonical four
func (c BedCategory) Valid() bool {
	switch c {
	case BedCategoryICU, BedCategoryTrauma, BedCategoryGeneral, BedCategoryPediatric:
		return true
	}
	return false
}

// BedDepartment represents one bed department of a hospital.
// Occupied and OccupancyRate are always derived from Total and Available;
// available + occupied == total holds at all times.
type BedDepartment struct {
	Name          string `json:"name" db:"name"`
	Total         int    `json:"total" db:"total"`
	Available     int    `json:"available" db:"available"`
	Occupied      int    `json:"occupied" db:"-"`
	OccupancyRate int    `json:"occupancy_rate" db:"-"`
}

// NewBedDepartment builds a department with derived fields populated.
// Available is clamped into [0, total].
func NewBedDepartment(name string, total, available int) BedDepartment {
	if total < 0 {
		total = 0
	}
	d := BedDepartment{Name: name, Total: total}
	d.SetAvailable(available)
	return d
}

// SetAvailable updates the free bed count and re-derives occupancy
func (d *BedDepartment) SetAvailable(available int) {
	if available < 0 {
		available = 0
	}
	if available > d.Total {
		available = d.Total
	}
	d.Available = available
	d.Occupied = d.Total - d.Available
	d.OccupancyRate = occupancyRate(d.Occupied, d.Total)
}

func occupancyRate(occupied, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(occupied) / float64(total) * 100))
}

// HospitalStatus represents the operational status of a hospital
type HospitalStatus string

const (
	HospitalStatusStable   HospitalStatus = "stable"
	HospitalStatusHighLoad HospitalStatus = "high-load"
	HospitalStatusCritical HospitalStatus = "critical"
)

// Valid reports whether the status is a known value
func (s HospitalStatus) Valid() bool {
	switch s {
	case HospitalStatusStable, HospitalStatusHighLoad, HospitalStatusCritical:
		return true
	}
	return false
}

// Hospital represents a registered hospital and its current capacity state.
// DistanceKm and TravelTime are populated transiently per dispatch request
// and are never persisted.
type Hospital struct {
	ID           string                        `json:"id" db:"id"`
	Name         string                        `json:"name" db:"name"`
	Location     string                        `json:"location" db:"location"`
	Address      string                        `json:"address" db:"address"`
	Coordinates  Coordinates                   `json:"coordinates" db:"-"`
	Phone        string                        `json:"phone" db:"phone"`
	Beds         map[BedCategory]BedDepartment `json:"beds" db:"-"`
	OxygenSupply int                           `json:"oxygen_supply" db:"oxygen_supply"`
	ERLoad       int                           `json:"er_load" db:"er_load"`
	Status       HospitalStatus                `json:"status" db:"status"`
	DistanceKm   float64                       `json:"distance,omitempty" db:"-"`
	TravelTime   int                           `json:"travel_time,omitempty" db:"-"`
	CreatedAt    time.Time                     `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time                     `json:"updated_at" db:"updated_at"`
}

// Department returns the bed department for a category, nil-safe on a
// hospital without a bed map.
func (h *Hospital) Department(category BedCategory) (BedDepartment, bool) {
	if h == nil || h.Beds == nil {
		return BedDepartment{}, false
	}
	d, ok := h.Beds[category]
	return d, ok
}
