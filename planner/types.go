package planner

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// ─── Request ──────────────────────────────────────────────────────────────────

// TripRequest is the form submission the engine plans from.
type TripRequest struct {
	Destination       string   `json:"destination"`
	Days              DayCount `json:"days"`
	StartDate         string   `json:"startDate,omitempty"`
	EndDate           string   `json:"endDate,omitempty"`
	Budget            string   `json:"budget"`
	Travelers         string   `json:"travelers"`
	Interests         string   `json:"interests,omitempty"`
	TravelStyle       string   `json:"travelStyle,omitempty"`
	AccommodationType string   `json:"accommodationType,omitempty"`
}

// DayCount holds the raw "days" form value. Clients send it either as a
// select value ("3") or as a JSON number (3); both decode to the same text.
type DayCount string

func (d *DayCount) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*d = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*d = DayCount(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("days must be a number or string: %w", err)
	}
	*d = DayCount(n.String())
	return nil
}

// Int returns the number of days to plan. Parsing follows form semantics:
// the leading integer prefix counts ("5 days" is 5, "2.5" is 2) and anything
// unparsable or not positive yields DefaultDays.
func (d DayCount) Int() int {
	n, ok := leadingInt(string(d))
	if !ok || n <= 0 {
		return DefaultDays
	}
	return n
}

func leadingInt(s string) (int, bool) {
	i := 0
	for i < len(s) && (s[i] == ' ' || s[i] == '\t' || s[i] == '\n' || s[i] == '\r') {
		i++
	}
	start := i
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	digits := i
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	if i == digits {
		return 0, false
	}
	n, err := strconv.Atoi(s[start:i])
	if err != nil {
		return 0, false
	}
	return n, true
}

// ─── Plan ─────────────────────────────────────────────────────────────────────

type TripPlan struct {
	Destination        string            `json:"destination"`
	Duration           string            `json:"duration"`
	Budget             string            `json:"budget"`
	Travelers          string            `json:"travelers"`
	Dates              string            `json:"dates"`
	TravelStyle        string            `json:"travelStyle"`
	TotalEstimatedCost string            `json:"totalEstimatedCost"`
	Itinerary          []DayPlan         `json:"itinerary"`
	Hotels             []Hotel           `json:"hotels"`
	Restaurants        []Restaurant      `json:"restaurants"`
	Transportation     []TransportOption `json:"transportation"`
	LocalTips          []string          `json:"localTips"`
	Weather            WeatherInfo       `json:"weather"`
	PackingList        []string          `json:"packingList"`
}

type DayPlan struct {
	Day             int        `json:"day"`
	Title           string     `json:"title"`
	Theme           string     `json:"theme"`
	Activities      []Activity `json:"activities"`
	EstimatedCost   string     `json:"estimatedCost"`
	WalkingDistance string     `json:"walkingDistance"`
	Highlights      []string   `json:"highlights"`
}

type ActivityType string

const (
	Sightseeing   ActivityType = "sightseeing"
	Dining        ActivityType = "dining"
	Culture       ActivityType = "culture"
	Entertainment ActivityType = "entertainment"
)

type Activity struct {
	Time            string       `json:"time"`
	Title           string       `json:"title"`
	Description     string       `json:"description"`
	Type            ActivityType `json:"type"`
	EstimatedCost   string       `json:"estimatedCost"`
	Duration        string       `json:"duration"`
	Difficulty      string       `json:"difficulty"`
	BookingRequired bool         `json:"bookingRequired"`
}

type Hotel struct {
	Name          string   `json:"name"`
	Rating        float64  `json:"rating"`
	PricePerNight string   `json:"pricePerNight"`
	Amenities     []string `json:"amenities"`
	Location      string   `json:"location"`
	Description   string   `json:"description"`
	ReviewCount   int      `json:"reviewCount"`
	Images        []string `json:"images"`
}

type Restaurant struct {
	Name        string   `json:"name"`
	Cuisine     string   `json:"cuisine"`
	Rating      float64  `json:"rating"`
	PriceRange  string   `json:"priceRange"`
	Specialties []string `json:"specialties"`
	Location    string   `json:"location"`
}

type TransportOption struct {
	Type        string `json:"type"`
	Cost        string `json:"cost"`
	Description string `json:"description"`
}

type WeatherInfo struct {
	Temperature    string `json:"temperature"`
	Conditions     string `json:"conditions"`
	Recommendation string `json:"recommendation"`
	UVIndex        string `json:"uvIndex"`
}
