package entities

// ScoredHospital pairs a candidate hospital with its suitability score and
// the justification strings accumulated while scoring it.
type ScoredHospital struct {
	Hospital  *Hospital `json:"hospital"`
	Score     float64   `json:"score"`
	Reasoning []string  `json:"reasoning"`
}

// OptimizationResult is the outcome of one routing decision. It is produced
// once per optimization call and is immutable.
type OptimizationResult struct {
	RecommendedHospital      *Hospital `json:"recommended_hospital"`
	Confidence               int       `json:"confidence"`
	Reasoning                []string  `json:"reasoning"`
	EstimatedArrival         int       `json:"estimated_arrival"`
	EstimatedBedAvailability int       `json:"estimated_bed_availability"`
	TimeToGoldenWindow       int       `json:"time_to_golden_window"`
}
