package spaces

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-StudyRoomsService/internal/domain"
	"github.com/m04kA/SMC-StudyRoomsService/internal/infra/storage/memory"
	"github.com/m04kA/SMC-StudyRoomsService/internal/service/spaces/models"
	"github.com/m04kA/SMC-StudyRoomsService/pkg/logger"
	"github.com/m04kA/SMC-StudyRoomsService/pkg/ptr"
)

func newTestService() *Service {
	return NewService(memory.NewStore().Spaces(), logger.Nop())
}

func TestService_CreateAndList(t *testing.T) {
	ctx := context.Background()
	s := newTestService()

	_, err := s.Create(ctx, &models.CreateSpaceRequest{Name: "Silent Room", Capacity: 4, OpenTime: "08:00", CloseTime: "22:00"})
	require.NoError(t, err)
	full, err := s.Create(ctx, &models.CreateSpaceRequest{Name: "Atrium", Capacity: 40, FullDay: true, OpenTime: "10:00"})
	require.NoError(t, err)
	assert.True(t, full.FullDay)
	assert.Nil(t, full.OpenTime)

	list, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, list.Spaces, 2)
	assert.Equal(t, "Atrium", list.Spaces[0].Name)
	assert.Equal(t, "Silent Room", list.Spaces[1].Name)
	require.NotNil(t, list.Spaces[1].OpenTime)
	assert.Equal(t, "08:00", *list.Spaces[1].OpenTime)
}

func TestService_CreateValidation(t *testing.T) {
	ctx := context.Background()
	s := newTestService()

	tests := []struct {
		name string
		req  models.CreateSpaceRequest
	}{
		{name: "empty name", req: models.CreateSpaceRequest{Name: "  ", Capacity: 1, FullDay: true}},
		{name: "zero capacity", req: models.CreateSpaceRequest{Name: "Lab", Capacity: 0, FullDay: true}},
		{name: "close before open", req: models.CreateSpaceRequest{Name: "Lab", Capacity: 2, OpenTime: "18:00", CloseTime: "09:00"}},
		{name: "close equals open", req: models.CreateSpaceRequest{Name: "Lab", Capacity: 2, OpenTime: "09:00", CloseTime: "09:00"}},
		{name: "missing hours", req: models.CreateSpaceRequest{Name: "Lab", Capacity: 2}},
		{name: "malformed hours", req: models.CreateSpaceRequest{Name: "Lab", Capacity: 2, OpenTime: "9am", CloseTime: "18:00"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.Create(ctx, &tt.req)
			assert.ErrorIs(t, err, domain.ErrInvalidConfiguration)
		})
	}
}

func TestService_Update(t *testing.T) {
	ctx := context.Background()
	s := newTestService()

	created, err := s.Create(ctx, &models.CreateSpaceRequest{Name: "Group Room", Capacity: 6, OpenTime: "09:00", CloseTime: "17:00"})
	require.NoError(t, err)

	updated, err := s.Update(ctx, created.ID, &models.UpdateSpaceRequest{Capacity: ptr.Ptr(8), CloseTime: ptr.Ptr("19:00")})
	require.NoError(t, err)
	assert.Equal(t, 8, updated.Capacity)
	assert.Equal(t, "Group Room", updated.Name)
	require.NotNil(t, updated.CloseTime)
	assert.Equal(t, "19:00", *updated.CloseTime)

	_, err = s.Update(ctx, created.ID, &models.UpdateSpaceRequest{Capacity: ptr.Ptr(-1)})
	assert.ErrorIs(t, err, domain.ErrInvalidConfiguration)

	got, err := s.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, 8, got.Capacity)

	_, err = s.Update(ctx, 404, &models.UpdateSpaceRequest{Name: ptr.Ptr("x")})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestService_Delete(t *testing.T) {
	ctx := context.Background()
	s := newTestService()

	created, err := s.Create(ctx, &models.CreateSpaceRequest{Name: "Booth", Capacity: 1, FullDay: true})
	require.NoError(t, err)

	require.NoError(t, s.Delete(ctx, created.ID))

	_, err = s.GetByID(ctx, created.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	assert.ErrorIs(t, s.Delete(ctx, created.ID), domain.ErrNotFound)
}
