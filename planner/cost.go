package planner

import "fmt"

// DefaultPerDiem applies to any budget tier not listed in perDiemRates.
const DefaultPerDiem = 500

var perDiemRates = map[string]int{
	"budget":       300,
	"moderate":     800,
	"luxury":       2500,
	"ultra-luxury": 5000,
}

// PerDiem returns the daily rate for a budget tier. Tier names match exactly.
func PerDiem(tier string) int {
	if rate, ok := perDiemRates[tier]; ok {
		return rate
	}
	return DefaultPerDiem
}

// TotalEstimatedCost formats PerDiem(tier)*days as "$<n>" without separators.
// The product is not checked for overflow; callers bound days (the HTTP API
// caps it with MAX_DAYS).
func TotalEstimatedCost(tier string, days int) string {
	return fmt.Sprintf("$%d", PerDiem(tier)*days)
}
