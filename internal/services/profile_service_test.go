package services_test

import (
	"context"
	"fmt"
	"testing"

	"referral-network-api/config"
	"referral-network-api/internal/mocks"
	"referral-network-api/internal/models"
	"referral-network-api/internal/services"
	"referral-network-api/internal/storage"
	"referral-network-api/internal/transport/dto"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestProfileService_CreateProfile(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		repo := new(mocks.MockProfileRepository)
		svc := services.NewProfileService(repo)
		actor := services.Actor{ID: uuid.New(), Email: "New@Example.com"}

		repo.On("Create", ctx, mock.MatchedBy(func(p *models.Profile) bool {
			return p.ID == actor.ID && p.Email == "new@example.com" && p.Role == models.RoleCandidate
		})).Return(&models.Profile{ID: actor.ID, Role: models.RoleCandidate}, nil).Once()

		p, err := svc.CreateProfile(ctx, actor, &dto.CreateProfileRequest{FullName: "New User", Role: models.RoleCandidate})

		require.NoError(t, err)
		assert.Equal(t, models.RoleCandidate, p.Role)
	})

	t.Run("Circle roles cannot be self-assigned", func(t *testing.T) {
		repo := new(mocks.MockProfileRepository)
		svc := services.NewProfileService(repo)

		_, err := svc.CreateProfile(ctx, services.Actor{ID: uuid.New()}, &dto.CreateProfileRequest{FullName: "X", Role: models.RoleFoundingCircle})

		assert.ErrorIs(t, err, services.ErrValidation)
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Existing profile conflicts", func(t *testing.T) {
		repo := new(mocks.MockProfileRepository)
		svc := services.NewProfileService(repo)
		repo.On("Create", ctx, mock.Anything).Return(nil, fmt.Errorf("%w: duplicate key", storage.ErrConflict)).Once()

		_, err := svc.CreateProfile(ctx, services.Actor{ID: uuid.New()}, &dto.CreateProfileRequest{FullName: "X", Role: models.RoleClient})

		assert.ErrorIs(t, err, services.ErrConflict)
	})
}

func TestDevService(t *testing.T) {
	ctx := context.Background()
	dev := config.DevConfig{SuperuserEmail: "admin@example.com"}
	admin := services.Actor{ID: uuid.New(), Email: "Admin@example.com"}

	t.Run("Superuser switches role outside production", func(t *testing.T) {
		repo := new(mocks.MockProfileRepository)
		svc := services.NewDevService(repo, config.ServerConfig{Environment: "development"}, dev)
		repo.On("UpdateRole", ctx, admin.ID, models.RoleSelectCircle).
			Return(&models.Profile{ID: admin.ID, Role: models.RoleSelectCircle}, nil).Once()

		p, err := svc.SwitchRole(ctx, admin, models.RoleSelectCircle)

		require.NoError(t, err)
		assert.Equal(t, models.RoleSelectCircle, p.Role)
	})

	t.Run("Hidden in production", func(t *testing.T) {
		repo := new(mocks.MockProfileRepository)
		svc := services.NewDevService(repo, config.ServerConfig{Environment: "production"}, dev)

		_, err := svc.SwitchRole(ctx, admin, models.RoleClient)

		assert.ErrorIs(t, err, services.ErrNotFound)
		repo.AssertNotCalled(t, "UpdateRole", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Hidden from other users", func(t *testing.T) {
		repo := new(mocks.MockProfileRepository)
		svc := services.NewDevService(repo, config.ServerConfig{Environment: "development"}, dev)

		_, err := svc.SeedTestUsers(ctx, services.Actor{ID: uuid.New(), Email: "someone@example.com"})

		assert.ErrorIs(t, err, services.ErrNotFound)
	})

	t.Run("Seeds one profile per role", func(t *testing.T) {
		repo := new(mocks.MockProfileRepository)
		svc := services.NewDevService(repo, config.ServerConfig{Environment: "development"}, dev)
		seen := map[uuid.UUID]bool{}
		repo.On("Upsert", ctx, mock.Anything).Run(func(args mock.Arguments) {
			seen[args.Get(1).(*models.Profile).ID] = true
		}).Return(&models.Profile{}, nil).Times(len(models.AllRoles))

		seeded, err := svc.SeedTestUsers(ctx, admin)
		require.NoError(t, err)
		assert.Len(t, seeded, len(models.AllRoles))
		assert.Len(t, seen, len(models.AllRoles))
		repo.AssertExpectations(t)
	})
}
