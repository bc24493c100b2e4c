package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync/atomic"

	"referral-network-api/internal/ai"
	"referral-network-api/internal/models"
	"referral-network-api/internal/storage"
	"referral-network-api/internal/transport/dto"

	"github.com/google/uuid"
)

type matchService struct {
	jobRepo      storage.JobRepository
	analysisRepo storage.MatchAnalysisRepository
	completer    ai.Completer

	storeFailures atomic.Int64
}

// NewMatchService creates a new instance of MatchService.
func NewMatchService(jobRepo storage.JobRepository, analysisRepo storage.MatchAnalysisRepository, completer ai.Completer) MatchService {
	return &matchService{jobRepo: jobRepo, analysisRepo: analysisRepo, completer: completer}
}

// jobForActor loads a job and applies the owner check shared by the AI routes.
// Any lookup failure is reported as not found.
func jobForActor(ctx context.Context, jobs storage.JobRepository, actor Actor, jobID uuid.UUID) (*models.Job, error) {
	job, err := jobs.GetByID(ctx, jobID)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			log.Printf("AI: job lookup %s failed: %v", jobID, err)
		}
		return nil, fmt.Errorf("%w: fetching job: %v", ErrNotFound, err)
	}
	if !canAccessJob(actor, job) {
		return nil, ErrForbidden
	}
	return job, nil
}

// Analyze scores a resume against a job. The analysis is returned even when
// storing it fails; Stored reports whether the write succeeded.
func (s *matchService) Analyze(ctx context.Context, actor Actor, req *dto.MatchRequest) (*dto.MatchResponse, error) {
	job, err := jobForActor(ctx, s.jobRepo, actor, req.JobID)
	if err != nil {
		return nil, err
	}

	reply, err := s.completer.Complete(ctx, ai.CompletionRequest{
		System:      ai.SystemJSONOnly,
		Prompt:      ai.BuildMatchPrompt(job, req.CandidateResume),
		Temperature: ai.MatchTemperature,
		MaxTokens:   ai.MatchMaxTokens,
	})
	if err != nil {
		log.Printf("MatchService: Model call failed for job %s: %v", job.ID, err)
		return nil, fmt.Errorf("%w: %v", ErrModelUnavailable, err)
	}

	result, err := ai.ParseMatchResult(reply)
	if err != nil {
		log.Printf("MatchService: Unparseable model reply for job %s: %v", job.ID, err)
		return nil, fmt.Errorf("%w: %v", ErrMalformedModelOutput, err)
	}

	var email *string
	if req.CandidateEmail != nil && strings.TrimSpace(*req.CandidateEmail) != "" {
		e := models.NormalizeEmail(*req.CandidateEmail)
		email = &e
	}
	analysis := &models.MatchAnalysis{
		JobID:             job.ID,
		CandidateEmail:    email,
		OverallScore:      result.OverallScore,
		SkillsMatch:       result.SkillsMatch,
		ExperienceMatch:   result.ExperienceMatch,
		EducationMatch:    result.EducationMatch,
		KeyStrengths:      result.KeyStrengths,
		PotentialConcerns: result.PotentialConcerns,
		Reasoning:         result.Reasoning,
		AnalyzedBy:        actor.ID,
	}

	stored, err := s.analysisRepo.Create(ctx, analysis)
	if err != nil {
		n := s.storeFailures.Add(1)
		log.Printf("MatchService: Failed to store analysis for job %s (failures=%d): %v", job.ID, n, err)
		return &dto.MatchResponse{Analysis: analysis, Stored: false}, nil
	}
	return &dto.MatchResponse{Analysis: stored, Stored: true}, nil
}

func (s *matchService) ListAnalyses(ctx context.Context, actor Actor, jobID uuid.UUID, minScore int) ([]models.MatchAnalysis, error) {
	if _, err := jobForActor(ctx, s.jobRepo, actor, jobID); err != nil {
		return nil, err
	}
	analyses, err := s.analysisRepo.ListByJob(ctx, jobID, minScore)
	if err != nil {
		log.Printf("MatchService: Error listing analyses for job %s: %v", jobID, err)
		return nil, fmt.Errorf("internal error listing analyses: %w", err)
	}
	if analyses == nil {
		analyses = []models.MatchAnalysis{}
	}
	return analyses, nil
}
