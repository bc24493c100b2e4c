package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"referral-network-api/internal/cache"
	"referral-network-api/internal/models"
	"referral-network-api/internal/realtime"
	"referral-network-api/internal/referralform"
	"referral-network-api/internal/storage"
	"referral-network-api/internal/transport/dto"

	"github.com/google/uuid"
)

type referralService struct {
	referralRepo storage.ReferralRepository
	jobRepo      storage.JobRepository
	uploadRepo   storage.ResumeUploadRepository
	cache        cache.Cache
	notifier     Notifier
	now          func() time.Time
}

// NewReferralService creates a new instance of ReferralService.
func NewReferralService(
	referralRepo storage.ReferralRepository,
	jobRepo storage.JobRepository,
	uploadRepo storage.ResumeUploadRepository,
	c cache.Cache,
	notifier Notifier,
) ReferralService {
	return &referralService{
		referralRepo: referralRepo,
		jobRepo:      jobRepo,
		uploadRepo:   uploadRepo,
		cache:        c,
		notifier:     notifierOrNoop(notifier),
		now:          time.Now,
	}
}

func trimmedOrNil(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	if t == "" {
		return nil
	}
	return &t
}

// CreateReferral stores a referral on behalf of req.ReferrerID. Consent is
// checked before anything touches the database.
func (s *referralService) CreateReferral(ctx context.Context, req *dto.CreateReferralRequest) (*models.Referral, error) {
	if !req.ConsentGiven {
		return nil, ErrConsentRequired
	}
	if errs := referralform.Validate(referralform.Form{
		CandidateName:  req.CandidateName,
		CandidateEmail: req.CandidateEmail,
		ConsentGiven:   req.ConsentGiven,
	}); len(errs) > 0 {
		return nil, newValidationError(errs)
	}

	job, err := s.jobRepo.GetByID(ctx, req.JobID)
	if err != nil {
		log.Printf("ReferralService: Error fetching job %s: %v", req.JobID, err)
		return nil, MapRepoError(err, "fetching job for referral")
	}

	resumePath := trimmedOrNil(req.ResumeStoragePath)
	if resumePath != nil {
		if err := s.checkResume(ctx, req.ReferrerID, *resumePath); err != nil {
			return nil, err
		}
	}

	referral := &models.Referral{
		JobID:             job.ID,
		ReferrerID:        req.ReferrerID,
		CandidateName:     strings.TrimSpace(req.CandidateName),
		CandidateEmail:    strings.TrimSpace(req.CandidateEmail),
		CandidatePhone:    trimmedOrNil(req.CandidatePhone),
		CandidateLinkedIn: trimmedOrNil(req.CandidateLinkedIn),
		ResumeStoragePath: resumePath,
		ReferrerNotes:     trimmedOrNil(req.ReferrerNotes),
		ExpectedSalary:    req.ExpectedSalary,
		Availability:      req.Availability,
		ConsentGiven:      true,
		ConsentTimestamp:  s.now().UTC(),
	}

	created, err := s.referralRepo.Create(ctx, referral)
	if err != nil {
		log.Printf("ReferralService: Error creating referral for job %s: %v", job.ID, err)
		return nil, err
	}

	if err := s.cache.Delete(ctx, dashboardCacheKey(req.ReferrerID), dashboardCacheKey(job.ClientID)); err != nil {
		log.Printf("ReferralService: Failed to invalidate dashboards: %v", err)
	}
	s.notifier.Notify(job.ClientID, realtime.Event{
		Type:  realtime.EventReferralCreated,
		JobID: job.ID,
		Payload: map[string]interface{}{
			"referral_id":    created.ID,
			"candidate_name": created.CandidateName,
		},
	})
	return created, nil
}

// checkResume requires path to be a completed upload owned by the referrer.
func (s *referralService) checkResume(ctx context.Context, ownerID uuid.UUID, path string) error {
	upload, err := s.uploadRepo.GetByPath(ctx, path)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("%w: unknown resume", ErrUploadRejected)
		}
		return MapRepoError(err, "checking resume upload")
	}
	if upload.OwnerID != ownerID {
		return fmt.Errorf("%w: resume belongs to another user", ErrUploadRejected)
	}
	if upload.Status != models.UploadComplete {
		return fmt.Errorf("%w: resume upload not finished", ErrUploadRejected)
	}
	return nil
}

// ListReferrals scopes the listing by role: clients see referrals on their
// jobs, network members see what they submitted.
func (s *referralService) ListReferrals(ctx context.Context, actor Actor, req *dto.ListReferralsRequest) (*dto.ReferralListResponse, error) {
	req.Normalize()
	filter := storage.ReferralFilter{Offset: req.Offset(), Limit: req.Limit}
	switch {
	case actor.Role == models.RoleClient:
		filter.ClientID = &actor.ID
	case actor.Role.IsNetworkMember():
		filter.ReferrerID = &actor.ID
	default:
		return nil, ErrForbidden
	}
	if req.JobID != "" {
		jobID, err := uuid.Parse(req.JobID)
		if err != nil {
			return nil, newValidationError(map[string]string{"job_id": "must be a valid UUID"})
		}
		filter.JobID = &jobID
	}

	referrals, total, err := s.referralRepo.List(ctx, filter)
	if err != nil {
		log.Printf("ReferralService: Error listing referrals for %s: %v", actor.ID, err)
		return nil, err
	}
	out := make([]dto.ReferralResponse, 0, len(referrals))
	for i := range referrals {
		out = append(out, dto.NewReferralResponse(&referrals[i]))
	}
	return &dto.ReferralListResponse{Referrals: out, Page: req.Page, Limit: req.Limit, Total: total}, nil
}
