package entity

import (
	"fmt"
	"strings"
)

const (
	AvailabilityWeekday = "weekday"
	AvailabilityWeekend = "weekend"
	AvailabilityMorning = "morning"
	AvailabilityNight   = "night"
	AvailabilityAnytime = "anytime"
)

var canonicalAvailability = map[string]string{
	AvailabilityWeekday: AvailabilityWeekday,
	AvailabilityWeekend: AvailabilityWeekend,
	AvailabilityMorning: AvailabilityMorning,
	AvailabilityNight:   AvailabilityNight,
	AvailabilityAnytime: AvailabilityAnytime,

	// older registration forms
	"weekdays": AvailabilityWeekday,
	"weekends": AvailabilityWeekend,
	"nights":   AvailabilityNight,
}

// CanonicalAvailability lower-cases tags, maps legacy spellings onto the
// canonical vocabulary and drops duplicates. Unknown tags are an error.
func CanonicalAvailability(tags []string) ([]string, error) {
	seen := make(map[string]struct{}, len(tags))
	result := make([]string, 0, len(tags))
	for _, tag := range tags {
		normalized := strings.ToLower(strings.TrimSpace(tag))
		canonical, ok := canonicalAvailability[normalized]
		if !ok {
			return nil, fmt.Errorf("unknown availability tag %q", tag)
		}
		if _, dup := seen[canonical]; dup {
			continue
		}
		seen[canonical] = struct{}{}
		result = append(result, canonical)
	}
	return result, nil
}
