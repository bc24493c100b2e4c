package services

import (
	"context"
	"fmt"
	"log"
	"strings"

	"referral-network-api/config"
	"referral-network-api/internal/models"
	"referral-network-api/internal/storage"
	"referral-network-api/internal/transport/dto"

	"github.com/google/uuid"
)

type profileService struct {
	profileRepo storage.ProfileRepository
}

// NewProfileService creates a new instance of ProfileService.
func NewProfileService(profileRepo storage.ProfileRepository) ProfileService {
	return &profileService{profileRepo: profileRepo}
}

func (s *profileService) GetProfile(ctx context.Context, userID uuid.UUID) (*models.Profile, error) {
	p, err := s.profileRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, MapRepoError(err, "getting profile")
	}
	return p, nil
}

// CreateProfile creates the caller's profile. Signup may only pick the client
// or candidate role; circle membership is granted administratively.
func (s *profileService) CreateProfile(ctx context.Context, actor Actor, req *dto.CreateProfileRequest) (*models.Profile, error) {
	if req.Role != models.RoleClient && req.Role != models.RoleCandidate {
		return nil, newValidationError(map[string]string{"role": "Role must be client or candidate"})
	}
	p, err := s.profileRepo.Create(ctx, &models.Profile{
		ID:              actor.ID,
		Email:           models.NormalizeEmail(actor.Email),
		Role:            req.Role,
		FullName:        strings.TrimSpace(req.FullName),
		Company:         req.Company,
		Headline:        req.Headline,
		Skills:          req.Skills,
		YearsExperience: req.YearsExperience,
	})
	if err != nil {
		log.Printf("ProfileService: Error creating profile for %s: %v", actor.ID, err)
		return nil, MapRepoError(err, "creating profile")
	}
	return p, nil
}

func (s *profileService) UpdateProfile(ctx context.Context, userID uuid.UUID, req *dto.UpdateProfileRequest) (*models.Profile, error) {
	upd := &storage.ProfileUpdate{
		ID:              userID,
		FullName:        req.FullName,
		Company:         req.Company,
		Headline:        req.Headline,
		Skills:          req.Skills,
		YearsExperience: req.YearsExperience,
	}
	p, err := s.profileRepo.Update(ctx, upd)
	if err != nil {
		log.Printf("ProfileService: Error updating profile %s: %v", userID, err)
		return nil, MapRepoError(err, "updating profile")
	}
	return p, nil
}

type devService struct {
	profileRepo    storage.ProfileRepository
	enabled        bool
	superuserEmail string
}

// NewDevService creates the dev tooling service. It refuses every call in
// production or when no superuser email is configured.
func NewDevService(profileRepo storage.ProfileRepository, server config.ServerConfig, dev config.DevConfig) DevService {
	return &devService{
		profileRepo:    profileRepo,
		enabled:        !server.IsProduction(),
		superuserEmail: models.NormalizeEmail(dev.SuperuserEmail),
	}
}

// allowed hides the tooling entirely; callers see ErrNotFound.
func (s *devService) allowed(actor Actor) error {
	if !s.enabled || s.superuserEmail == "" || models.NormalizeEmail(actor.Email) != s.superuserEmail {
		return fmt.Errorf("%w: dev tooling", ErrNotFound)
	}
	return nil
}

func (s *devService) SwitchRole(ctx context.Context, actor Actor, role models.Role) (*models.Profile, error) {
	if err := s.allowed(actor); err != nil {
		return nil, err
	}
	if !role.Valid() {
		return nil, newValidationError(map[string]string{"role": "Unknown role"})
	}
	p, err := s.profileRepo.UpdateRole(ctx, actor.ID, role)
	if err != nil {
		return nil, MapRepoError(err, "switching role")
	}
	log.Printf("DevService: %s switched role to %s", actor.ID, role)
	return p, nil
}

// testUserID is stable per role so reseeding updates instead of duplicating.
func testUserID(role models.Role) uuid.UUID {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte("referral-network/test-user/"+string(role)))
}

func (s *devService) SeedTestUsers(ctx context.Context, actor Actor) ([]models.Profile, error) {
	if err := s.allowed(actor); err != nil {
		return nil, err
	}
	out := make([]models.Profile, 0, len(models.AllRoles))
	for _, role := range models.AllRoles {
		p, err := s.profileRepo.Upsert(ctx, &models.Profile{
			ID:       testUserID(role),
			Email:    fmt.Sprintf("test-%s@example.com", strings.ReplaceAll(string(role), "_", "-")),
			Role:     role,
			FullName: "Test " + strings.ReplaceAll(string(role), "_", " "),
			Skills:   []string{"Go", "PostgreSQL"},
		})
		if err != nil {
			return nil, MapRepoError(err, "seeding test users")
		}
		out = append(out, *p)
	}
	return out, nil
}
