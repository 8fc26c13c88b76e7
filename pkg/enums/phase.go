package enums

import "fmt"

// Phase identifies one stage of the pipeline run, in execution order.
type Phase string

const (
	PhaseDataGeneration   Phase = "data_generation"
	PhaseDataIngestion    Phase = "data_ingestion"
	PhaseDataQuality      Phase = "data_quality"
	PhaseTransformation   Phase = "transformation"
	PhaseWarehouseLoading Phase = "warehouse_loading"
)

var validPhases = []Phase{
	PhaseDataGeneration,
	PhaseDataIngestion,
	PhaseDataQuality,
	PhaseTransformation,
	PhaseWarehouseLoading,
}

// Phases returns every phase in execution order.
func Phases() []Phase {
	out := make([]Phase, len(validPhases))
	copy(out, validPhases)
	return out
}

// String implements fmt.Stringer.
func (p Phase) String() string {
	return string(p)
}

// IsValid reports whether the value is a known Phase.
func (p Phase) IsValid() bool {
	for _, candidate := range validPhases {
		if candidate == p {
			return true
		}
	}
	return false
}

// ParsePhase converts raw input into a Phase.
func ParsePhase(value string) (Phase, error) {
	for _, candidate := range validPhases {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid phase %q", value)
}
