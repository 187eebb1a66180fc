package service

import (
	"context"
	"strings"
	"time"

	"petadopt/internal/entity"
	"petadopt/internal/repository"
)

// EligibleVolunteers returns the volunteers whose availability tags cover
// now. A volunteer matches on the day bucket (weekday or weekend), the time
// bucket (morning 06:00-12:00, night 18:00-24:00) or the anytime tag.
// Volunteers without tags never match.
func EligibleVolunteers(now time.Time, volunteers []*entity.Volunteer) []*entity.Volunteer {
	eligible := make([]*entity.Volunteer, 0, len(volunteers))
	for _, volunteer := range volunteers {
		if volunteer != nil && IsAvailable(now, volunteer.Availability) {
			eligible = append(eligible, volunteer)
		}
	}
	return eligible
}

func IsAvailable(now time.Time, tags []string) bool {
	if len(tags) == 0 {
		return false
	}
	day, slot := buckets(now)
	for _, tag := range tags {
		switch strings.ToLower(tag) {
		case entity.AvailabilityAnytime, day:
			return true
		case slot:
			if slot != "" {
				return true
			}
		}
	}
	return false
}

func buckets(now time.Time) (day string, slot string) {
	day = entity.AvailabilityWeekday
	if weekday := now.Weekday(); weekday == time.Saturday || weekday == time.Sunday {
		day = entity.AvailabilityWeekend
	}
	switch hour := now.Hour(); {
	case hour >= 6 && hour < 12:
		slot = entity.AvailabilityMorning
	case hour >= 18:
		slot = entity.AvailabilityNight
	}
	return day, slot
}

type VolunteerService struct {
	volunteers repository.Directory[*entity.Volunteer]
	clock      Clock
	location   *time.Location
}

func NewVolunteerService(volunteers repository.Directory[*entity.Volunteer], clock Clock, location *time.Location) *VolunteerService {
	if clock == nil {
		clock = RealClock{}
	}
	if location == nil {
		location = time.Local
	}
	return &VolunteerService{volunteers: volunteers, clock: clock, location: location}
}

// Available evaluates the matcher against a fresh directory snapshot.
func (s *VolunteerService) Available(ctx context.Context) ([]entity.User, error) {
	volunteers, err := s.volunteers.List(ctx)
	if err != nil {
		return nil, persistenceError("list volunteers", err)
	}
	eligible := EligibleVolunteers(s.clock.Now().In(s.location), volunteers)
	users := make([]entity.User, 0, len(eligible))
	for _, volunteer := range eligible {
		users = append(users, volunteer.Sanitized())
	}
	return users, nil
}
