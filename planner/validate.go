package planner

import "strings"

// ValidateRequest checks that destination, days, budget and travelers are
// present. It reports all missing fields in one error and performs no other
// checks: date order, day bounds and value formats are accepted as given.
func ValidateRequest(req TripRequest) error {
	required := []struct {
		name  string
		value string
	}{
		{"destination", req.Destination},
		{"days", string(req.Days)},
		{"budget", req.Budget},
		{"travelers", req.Travelers},
	}

	var missing []string
	for _, f := range required {
		if strings.TrimSpace(f.value) == "" {
			missing = append(missing, f.name)
		}
	}
	if len(missing) > 0 {
		return &ValidationError{Missing: missing}
	}
	return nil
}
