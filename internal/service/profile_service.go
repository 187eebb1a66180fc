package service

import (
	"context"
	"encoding/json"
	"slices"
	"strings"

	"petadopt/internal/entity"
	"petadopt/internal/repository"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"
)

// ProfileUpdate carries a partial profile. Nil fields are left unchanged.
// Role is accepted so callers can send whole records, but it is never
// written.
type ProfileUpdate struct {
	FirstName       *string
	LastName        *string
	Phone           *string
	LivingSituation *string
	PetExperience   []string
	Availability    []string
	Activities      []string
	Role            *string
}

type ProfileService struct {
	directories  Directories
	securityLogs repository.SecurityLogRepository
	logger       logrus.FieldLogger
}

func NewProfileService(
	directories Directories,
	securityLogs repository.SecurityLogRepository,
	logger logrus.FieldLogger,
) *ProfileService {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &ProfileService{directories: directories, securityLogs: securityLogs, logger: logger}
}

func (s *ProfileService) Get(ctx context.Context, kind entity.UserKind, id uuid.UUID) (entity.User, error) {
	store, ok := s.directories.Store(kind)
	if !ok {
		return nil, validationError("unknown user type %q", kind)
	}
	user, err := store.FindAccountByID(ctx, id)
	if err != nil {
		return nil, persistenceError("find "+string(kind)+" by id", err)
	}
	if user == nil {
		return nil, notFoundError("User not found.")
	}
	return user.Sanitized(), nil
}

func (s *ProfileService) Update(ctx context.Context, kind entity.UserKind, id uuid.UUID, update ProfileUpdate) (entity.User, error) {
	store, ok := s.directories.Store(kind)
	if !ok {
		return nil, validationError("unknown user type %q", kind)
	}
	if update.Role != nil {
		s.logger.WithFields(logrus.Fields{"user_id": id, "kind": kind}).Debug("ignoring role in profile update")
	}

	fields, err := update.columns(kind)
	if err != nil {
		return nil, err
	}
	user, err := store.UpdateFields(ctx, id, fields)
	if err != nil {
		return nil, persistenceError("update "+string(kind), err)
	}
	if user == nil {
		return nil, notFoundError(titleKind(kind) + " not found.")
	}
	s.logUpdate(ctx, id, kind, fields)
	return user.Sanitized(), nil
}

// SetStaffStatus activates or deactivates a staff account. Self-registered
// staff stay inactive until this is called by an active staff member.
func (s *ProfileService) SetStaffStatus(ctx context.Context, id uuid.UUID, status string, actor uuid.UUID) (entity.User, error) {
	parsed, ok := entity.ParseStaffStatus(status)
	if !ok {
		return nil, validationError("status must be one of active, inactive")
	}
	if id == actor {
		return nil, &Error{Kind: ErrForbidden, Message: "Staff cannot change their own status."}
	}
	fields := map[string]any{"status": parsed}
	user, err := s.directories.Staff.UpdateFields(ctx, id, fields)
	if err != nil {
		return nil, persistenceError("update staff status", err)
	}
	if user == nil {
		return nil, notFoundError("Staff not found.")
	}
	s.logUpdate(ctx, id, entity.KindStaff, fields)
	return user.Sanitized(), nil
}

func (s *ProfileService) logUpdate(ctx context.Context, id uuid.UUID, kind entity.UserKind, fields map[string]any) {
	if s.securityLogs == nil {
		return
	}
	columns := make([]string, 0, len(fields))
	for column := range fields {
		columns = append(columns, column)
	}
	slices.Sort(columns)
	metadata, err := json.Marshal(map[string]any{"fields": columns})
	if err != nil {
		return
	}
	err = s.securityLogs.Log(ctx, &entity.SecurityLog{
		UserID:   &id,
		UserKind: kind,
		Action:   entity.ProfileUpdated,
		Metadata: datatypes.JSON(metadata),
	})
	if err != nil {
		s.logger.WithError(err).Warn("security log write failed")
	}
}

func (u ProfileUpdate) columns(kind entity.UserKind) (map[string]any, error) {
	fields := map[string]any{}
	setString := func(column string, value *string) error {
		if value == nil {
			return nil
		}
		trimmed := strings.TrimSpace(*value)
		if trimmed == "" {
			return validationError("%s cannot be empty", column)
		}
		fields[column] = trimmed
		return nil
	}

	if err := setString("first_name", u.FirstName); err != nil {
		return nil, err
	}
	if err := setString("last_name", u.LastName); err != nil {
		return nil, err
	}
	if u.Phone != nil {
		fields["phone"] = optional(*u.Phone)
	}

	switch kind {
	case entity.KindAdopter:
		if err := setString("living_situation", u.LivingSituation); err != nil {
			return nil, err
		}
		if u.PetExperience != nil {
			fields["pet_experience"] = pq.StringArray(u.PetExperience)
		}
	case entity.KindVolunteer:
		if u.Availability != nil {
			availability, err := entity.CanonicalAvailability(u.Availability)
			if err != nil {
				return nil, &Error{Kind: ErrValidation, Message: err.Error()}
			}
			fields["availability"] = pq.StringArray(availability)
		}
		if u.Activities != nil {
			fields["activities"] = pq.StringArray(u.Activities)
		}
	}
	return fields, nil
}

func titleKind(kind entity.UserKind) string {
	value := string(kind)
	if value == "" {
		return value
	}
	return strings.ToUpper(value[:1]) + value[1:]
}
