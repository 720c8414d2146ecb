package planner

import (
	"fmt"
	"strings"
)

// The generators below are keyed only on the request fields they read.
// Budget, travelers, style and accommodation never change their output.

func hotels(destination string) []Hotel {
	return []Hotel{
		{
			Name:          "Luxury Stay " + destination,
			Rating:        4.5,
			PricePerNight: "$150",
			Amenities:     []string{"WiFi", "Pool", "Spa", "Restaurant"},
			Location:      "City Center",
			Description:   "A perfect blend of comfort and luxury in the heart of the city.",
			ReviewCount:   1247,
			Images:        []string{"/placeholder.svg", "/placeholder.svg"},
		},
		{
			Name:          "Boutique Hotel " + destination,
			Rating:        4.2,
			PricePerNight: "$120",
			Amenities:     []string{"WiFi", "Breakfast", "Gym", "Bar"},
			Location:      "Historic District",
			Description:   "Charming boutique hotel with unique character and excellent service.",
			ReviewCount:   892,
			Images:        []string{"/placeholder.svg", "/placeholder.svg"},
		},
		{
			Name:          "Modern Suites " + destination,
			Rating:        4.0,
			PricePerNight: "$95",
			Amenities:     []string{"WiFi", "Kitchen", "Parking", "Workspace"},
			Location:      "Business District",
			Description:   "Contemporary suites with self-catering kitchens, ideal for longer stays.",
			ReviewCount:   634,
			Images:        []string{"/placeholder.svg", "/placeholder.svg"},
		},
	}
}

func restaurants(destination string) []Restaurant {
	return []Restaurant{
		{
			Name:        destination + " Bistro",
			Cuisine:     "Local Cuisine",
			Rating:      4.6,
			PriceRange:  "$$",
			Specialties: []string{"Traditional dishes", "Seasonal menu", "Local wines"},
			Location:    "Old Town",
		},
		{
			Name:        "The Garden Terrace " + destination,
			Cuisine:     "International",
			Rating:      4.4,
			PriceRange:  "$$$",
			Specialties: []string{"Chef's tasting menu", "Rooftop views", "Craft cocktails"},
			Location:    "Waterfront",
		},
	}
}

func transportation() []TransportOption {
	return []TransportOption{
		{Type: "Public Transit", Cost: "$2-5 per ride", Description: "Metro, buses and trams cover most neighborhoods; day passes save money."},
		{Type: "Taxi/Rideshare", Cost: "$10-30 per ride", Description: "Convenient for late evenings and airport transfers."},
		{Type: "Bike Rental", Cost: "$15 per day", Description: "A flexible way to explore at your own pace."},
		{Type: "Walking", Cost: "Free", Description: "The best way to discover the city center and hidden corners."},
	}
}

func localTips(destination string) []string {
	return []string{
		fmt.Sprintf("Learn a few basic phrases in the local language spoken in %s.", destination),
		fmt.Sprintf("Download offline maps of %s before you arrive.", destination),
		"Check opening hours for museums and attractions in advance.",
		"Carry some local currency for small vendors and tips.",
		"Keep digital and paper copies of your travel documents.",
	}
}

func weather() WeatherInfo {
	return WeatherInfo{
		Temperature:    "18°C - 25°C",
		Conditions:     "Partly cloudy with occasional sunshine",
		Recommendation: "Pack layers and a light rain jacket for changing conditions.",
		UVIndex:        "Moderate UV index - sunscreen recommended",
	}
}

var basePacking = [...]string{
	"Comfortable walking shoes",
	"Weather-appropriate clothing",
	"Universal travel adapter",
	"Portable phone charger",
	"Reusable water bottle",
	"Travel documents & copies",
	"Basic first-aid kit",
	"Sunscreen",
}

var adventurePacking = [...]string{
	"Hiking boots",
	"Quick-dry clothing",
	"Daypack",
}

func packingList(interests string) []string {
	items := append([]string(nil), basePacking[:]...)
	if strings.Contains(strings.ToLower(interests), "adventure") {
		items = append(items, adventurePacking[:]...)
	}
	return items
}
