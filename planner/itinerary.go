package planner

import "fmt"

// DefaultDays is used when the requested day count is unparsable or not positive.
const DefaultDays = 3

var dayThemes = [...]string{
	"City Highlights & Landmarks",
	"Culture & History",
	"Local Life & Cuisine",
	"Nature & Outdoor Adventures",
	"Hidden Gems & Relaxation",
}

var dayHighlights = [...]string{
	"Top-rated attractions",
	"Authentic local flavors",
	"Insider-recommended spots",
}

// activityTemplate is one canonical slot of a day. Only the title varies with
// the request.
type activityTemplate struct {
	time        string
	titleFormat string // destination, day number
	description string
	kind        ActivityType
	cost        string
	duration    string
	booking     bool
}

var dailyActivities = [...]activityTemplate{
	{
		time:        "9:00 AM",
		titleFormat: "Morning exploration of %s (Day %d)",
		description: "Start your day with a visit to the city's most iconic landmarks and attractions.",
		kind:        Sightseeing,
		cost:        "$25",
		duration:    "3 hours",
	},
	{
		time:        "1:00 PM",
		titleFormat: "Local cuisine experience in %s (Day %d)",
		description: "Enjoy authentic local dishes at a highly-rated restaurant recommended by locals.",
		kind:        Dining,
		cost:        "$40",
		duration:    "2 hours",
		booking:     true,
	},
	{
		time:        "4:00 PM",
		titleFormat: "Cultural immersion in %s (Day %d)",
		description: "Visit museums, galleries, or cultural sites that showcase the local heritage.",
		kind:        Culture,
		cost:        "$20",
		duration:    "2 hours",
	},
	{
		time:        "7:30 PM",
		titleFormat: "Evening entertainment in %s (Day %d)",
		description: "Experience the nightlife or attend a local performance.",
		kind:        Entertainment,
		cost:        "$35",
		duration:    "3 hours",
		booking:     true,
	},
}

// Theme returns the theme of the zero-based day index; themes repeat every five days.
func Theme(index int) string {
	return dayThemes[index%len(dayThemes)]
}

// DayCost is the per-day estimate: $80 on the first day, rising $20 a day.
// It does not depend on the budget tier and is not reconciled with
// TotalEstimatedCost.
func DayCost(index int) string {
	return fmt.Sprintf("$%d", 80+20*index)
}

// WalkingDistance maps r in [0,1) onto a 2.0–5.0 km estimate.
func WalkingDistance(r float64) string {
	return fmt.Sprintf("%.1f km", 2+r*3)
}

func itinerary(destination string, days int, src Source) []DayPlan {
	plan := make([]DayPlan, 0, days)
	for i := 0; i < days; i++ {
		day := i + 1
		plan = append(plan, DayPlan{
			Day:             day,
			Title:           fmt.Sprintf("Day %d in %s", day, destination),
			Theme:           Theme(i),
			Activities:      activities(destination, day),
			EstimatedCost:   DayCost(i),
			WalkingDistance: WalkingDistance(src.Float64()),
			Highlights:      append([]string(nil), dayHighlights[:]...),
		})
	}
	return plan
}

func activities(destination string, day int) []Activity {
	out := make([]Activity, 0, len(dailyActivities))
	for _, t := range dailyActivities {
		out = append(out, Activity{
			Time:            t.time,
			Title:           fmt.Sprintf(t.titleFormat, destination, day),
			Description:     t.description,
			Type:            t.kind,
			EstimatedCost:   t.cost,
			Duration:        t.duration,
			Difficulty:      "Easy",
			BookingRequired: t.booking,
		})
	}
	return out
}
