package domain

import "strings"

// Objectives holds the general objective and the ordered list of specific
// objectives of the proyecto.
type Objectives struct {
	General  string   `json:"general"`
	Specific []string `json:"specific"`
}

// NewObjectives validates and builds the objectives value object.
func NewObjectives(general string, specific []string) (Objectives, error) {
	if strings.TrimSpace(general) == "" {
		return Objectives{}, newValidation("general_objective", "general objective is required")
	}
	if len(specific) == 0 {
		return Objectives{}, newValidation("specific_objectives", "at least one specific objective is required")
	}
	out := make([]string, 0, len(specific))
	for _, s := range specific {
		if strings.TrimSpace(s) == "" {
			return Objectives{}, newValidation("specific_objectives", "specific objectives cannot be empty")
		}
		out = append(out, strings.TrimSpace(s))
	}
	return Objectives{General: strings.TrimSpace(general), Specific: out}, nil
}
