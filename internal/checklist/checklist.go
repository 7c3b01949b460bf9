package checklist

import (
	"strings"
	"time"

	"github.com/dharmasatrya/tripplanner/internal/models"
)

type Season string

const (
	Spring Season = "spring"
	Summer Season = "summer"
	Fall   Season = "fall"
	Winter Season = "winter"
)

// LongTripDays is the duration after which laundry items are added.
const LongTripDays = 7

var (
	documents     = []string{"Passport/ID", "Travel insurance", "Flight/train tickets", "Hotel reservations", "Emergency contacts"}
	electronics   = []string{"Phone and charger", "Power bank", "Adapter/converter", "Camera (if needed)"}
	toiletries    = []string{"Toothbrush and toothpaste", "Deodorant", "Shampoo and conditioner", "Sunscreen", "Basic first aid kit"}
	miscellaneous = []string{"Water bottle", "Snacks", "Travel pillow", "Earplugs", "Eye mask"}

	lightClothing = []string{"Light clothing", "Sunglasses", "Hat", "Swimsuit", "Sandals"}
	warmClothing  = []string{"Warm clothing", "Jacket", "Gloves", "Scarf", "Boots"}

	hikingItems  = []string{"Hiking shoes", "Backpack", "Waterproof jacket", "Map/compass"}
	beachItems   = []string{"Beach towel", "Sunglasses", "Beach bag", "Waterproof phone case"}
	laundryItems = []string{"Laundry detergent", "Extra toiletries"}
)

// Generate builds the packing list. Categories are always returned in the
// same order; Clothing stays empty when the season is unknown.
func Generate(destination string, duration int, activities []string, season Season) []models.ChecklistCategory {
	var clothing []string
	switch season {
	case Summer, Spring:
		clothing = clone(lightClothing)
	case Winter, Fall:
		clothing = clone(warmClothing)
	default:
		clothing = []string{}
	}

	misc := clone(miscellaneous)
	if hasActivity(activities, "hiking") {
		misc = append(misc, hikingItems...)
	}
	if hasActivity(activities, "beach") {
		misc = append(misc, beachItems...)
	}

	toilet := clone(toiletries)
	if duration > LongTripDays {
		toilet = append(toilet, laundryItems...)
	}

	return []models.ChecklistCategory{
		{Name: "Documents", Items: clone(documents)},
		{Name: "Electronics", Items: clone(electronics)},
		{Name: "Clothing", Items: clothing},
		{Name: "Toiletries", Items: toilet},
		{Name: "Miscellaneous", Items: misc},
	}
}

// ParseSeason accepts the four season names in any case, plus "autumn".
func ParseSeason(s string) (Season, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "spring":
		return Spring, true
	case "summer":
		return Summer, true
	case "fall", "autumn":
		return Fall, true
	case "winter":
		return Winter, true
	}
	return "", false
}

// SeasonOf maps a date to its meteorological season in the northern hemisphere.
func SeasonOf(t time.Time) Season {
	switch t.Month() {
	case time.March, time.April, time.May:
		return Spring
	case time.June, time.July, time.August:
		return Summer
	case time.September, time.October, time.November:
		return Fall
	default:
		return Winter
	}
}

func hasActivity(activities []string, want string) bool {
	for _, a := range activities {
		if strings.EqualFold(strings.TrimSpace(a), want) {
			return true
		}
	}
	return false
}

func clone(items []string) []string {
	return append([]string(nil), items...)
}
