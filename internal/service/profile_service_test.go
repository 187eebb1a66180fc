package service

import (
	"context"
	"testing"

	"petadopt/internal/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProfileFixture(t *testing.T) (*ProfileService, *authFixture) {
	t.Helper()
	f := newAuthFixture(t)
	return NewProfileService(Directories{Adopters: f.adopters, Volunteers: f.volunteers, Staff: f.staff}, f.logs, nil), f
}

func strPtr(value string) *string { return &value }

func TestProfileService_GetSanitized(t *testing.T) {
	profiles, f := newProfileFixture(t)
	ctx := context.Background()

	registered, err := f.service.RegisterAdopter(ctx, adopterInput("a@x.com", "secret123"))
	require.NoError(t, err)

	user, err := profiles.Get(ctx, entity.KindAdopter, registered.Base().ID)
	require.NoError(t, err)
	assert.Empty(t, user.Base().PasswordHash)
	assert.Nil(t, user.Base().PasswordResetToken)

	_, err = profiles.Get(ctx, entity.KindVolunteer, registered.Base().ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestProfileService_UpdateMergesAndKeepsRole(t *testing.T) {
	profiles, f := newProfileFixture(t)
	ctx := context.Background()

	registered, err := f.service.RegisterAdopter(ctx, adopterInput("a@x.com", "secret123"))
	require.NoError(t, err)

	updated, err := profiles.Update(ctx, entity.KindAdopter, registered.Base().ID, ProfileUpdate{
		Phone:         strPtr("555-0100"),
		PetExperience: []string{"dogs", "cats"},
		Role:          strPtr("staff"),
	})
	require.NoError(t, err)

	adopter := updated.(*entity.Adopter)
	assert.Equal(t, "John", adopter.FirstName)
	assert.Equal(t, "owns_house", adopter.LivingSituation)
	require.NotNil(t, adopter.Phone)
	assert.Equal(t, "555-0100", *adopter.Phone)
	assert.Equal(t, []string{"dogs", "cats"}, []string(adopter.PetExperience))
	assert.Equal(t, entity.KindAdopter, adopter.Role)
	assert.Equal(t, entity.KindAdopter, f.adopters.Stored("a@x.com").Role)
	assert.Contains(t, f.logs.actions(), entity.ProfileUpdated)
}

func TestProfileService_UpdateVolunteerAvailability(t *testing.T) {
	profiles, f := newProfileFixture(t)
	ctx := context.Background()

	registered, err := f.service.RegisterVolunteer(ctx, VolunteerRegistration{
		RegisterInput: RegisterInput{FirstName: "B", LastName: "W", Email: "v@x.com", Password: "password123"},
		Availability:  []string{"weekday"},
	})
	require.NoError(t, err)

	updated, err := profiles.Update(ctx, entity.KindVolunteer, registered.Base().ID, ProfileUpdate{
		Availability: []string{"weekends", "Morning"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"weekend", "morning"}, []string(updated.(*entity.Volunteer).Availability))

	_, err = profiles.Update(ctx, entity.KindVolunteer, registered.Base().ID, ProfileUpdate{
		Availability: []string{"sometimes"},
	})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestProfileService_UpdateValidation(t *testing.T) {
	profiles, f := newProfileFixture(t)
	ctx := context.Background()

	registered, err := f.service.RegisterAdopter(ctx, adopterInput("a@x.com", "secret123"))
	require.NoError(t, err)

	_, err = profiles.Update(ctx, entity.KindAdopter, registered.Base().ID, ProfileUpdate{FirstName: strPtr("  ")})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = profiles.Update(ctx, entity.UserKind("admin"), registered.Base().ID, ProfileUpdate{})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestProfileService_UpdateMissing(t *testing.T) {
	profiles, _ := newProfileFixture(t)

	_, err := profiles.Update(context.Background(), entity.KindStaff, uuid.New(), ProfileUpdate{FirstName: strPtr("Jane")})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, "Staff not found.", err.Error())
}

func TestProfileService_SetStaffStatus(t *testing.T) {
	profiles, f := newProfileFixture(t)
	ctx := context.Background()

	admin, err := f.service.RegisterStaff(ctx, StaffRegistration{RegisterInput: RegisterInput{
		FirstName: "Ada", LastName: "Admin", Email: "admin@x.com", Password: "password123",
	}})
	require.NoError(t, err)
	f.staff.Stored("admin@x.com").Status = entity.StaffActive

	pending, err := f.service.RegisterStaff(ctx, StaffRegistration{RegisterInput: RegisterInput{
		FirstName: "Jane", LastName: "Smith", Email: "staff@x.com", Password: "password123",
	}})
	require.NoError(t, err)

	activated, err := profiles.SetStaffStatus(ctx, pending.Base().ID, "Active", admin.Base().ID)
	require.NoError(t, err)
	assert.Equal(t, entity.StaffActive, activated.(*entity.Staff).Status)
	assert.Empty(t, activated.Base().PasswordHash)
	assert.Contains(t, f.logs.actions(), entity.ProfileUpdated)

	_, err = f.service.Login(ctx, LoginInput{Email: "staff@x.com", Password: "password123", Role: "staff"})
	require.NoError(t, err)

	_, err = profiles.SetStaffStatus(ctx, admin.Base().ID, "inactive", admin.Base().ID)
	assert.ErrorIs(t, err, ErrForbidden)
	assert.True(t, f.staff.Stored("admin@x.com").IsActive())

	_, err = profiles.SetStaffStatus(ctx, pending.Base().ID, "retired", admin.Base().ID)
	assert.ErrorIs(t, err, ErrValidation)

	_, err = profiles.SetStaffStatus(ctx, uuid.New(), "active", admin.Base().ID)
	assert.ErrorIs(t, err, ErrNotFound)
}
