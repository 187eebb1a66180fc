package service

import (
	"context"
	"testing"

	"petadopt/internal/entity"
	"petadopt/internal/repository/repotest"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplicationService_Lifecycle(t *testing.T) {
	ctx := context.Background()
	adopters := repotest.NewMemoryDirectory[entity.Adopter]()
	adopter := &entity.Adopter{Account: entity.Account{Email: "a@x.com", Role: entity.KindAdopter}, LivingSituation: "apartment"}
	require.NoError(t, adopters.Create(ctx, adopter))
	service := NewApplicationService(&fakeApplicationRepo{}, adopters)

	submitted, err := service.Submit(ctx, adopter.ID, SubmitApplicationInput{PetName: " Rex ", Reason: "Big yard"})
	require.NoError(t, err)
	assert.Equal(t, "Rex", submitted.PetName)
	assert.Equal(t, entity.ApplicationPending, submitted.Status)

	got, err := service.Get(ctx, submitted.ID)
	require.NoError(t, err)
	assert.Equal(t, submitted.ID, got.ID)

	mine, err := service.ListForAdopter(ctx, adopter.ID)
	require.NoError(t, err)
	assert.Len(t, mine, 1)

	reviewer := uuid.New()
	approved, err := service.UpdateStatus(ctx, submitted.ID, "approved", reviewer)
	require.NoError(t, err)
	assert.Equal(t, entity.ApplicationApproved, approved.Status)
	require.NotNil(t, approved.ReviewedBy)
	assert.Equal(t, reviewer, *approved.ReviewedBy)

	pending, err := service.List(ctx, "Pending")
	require.NoError(t, err)
	assert.Empty(t, pending)

	all, err := service.List(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestApplicationService_Errors(t *testing.T) {
	ctx := context.Background()
	service := NewApplicationService(&fakeApplicationRepo{}, repotest.NewMemoryDirectory[entity.Adopter]())

	_, err := service.Submit(ctx, uuid.New(), SubmitApplicationInput{})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = service.Submit(ctx, uuid.New(), SubmitApplicationInput{PetName: "Rex"})
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = service.Get(ctx, uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = service.List(ctx, "maybe")
	assert.ErrorIs(t, err, ErrValidation)

	_, err = service.UpdateStatus(ctx, uuid.New(), "approved", uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = service.UpdateStatus(ctx, uuid.New(), "archived", uuid.New())
	assert.ErrorIs(t, err, ErrValidation)
}
