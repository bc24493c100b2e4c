package handlers_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"referral-network-api/internal/api/handlers"
	"referral-network-api/internal/mocks"
	"referral-network-api/internal/models"
	"referral-network-api/internal/services"
	"referral-network-api/internal/transport/dto"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func setupReferralHandler(t *testing.T, role models.Role) (*testEnv, *mocks.MockReferralService) {
	env := newTestEnv(t, role)
	svc := new(mocks.MockReferralService)
	h := handlers.NewReferralHandler(svc, env.validate)
	env.router.POST("/referrals", h.CreateReferral)
	env.router.GET("/referrals", h.ListReferrals)
	return env, svc
}

func referralBody(jobID uuid.UUID, consent bool) string {
	return fmt.Sprintf(`{
		"job_id": %q,
		"candidate_name": "Ada Lovelace",
		"candidate_email": "ada@example.com",
		"availability": "two_weeks",
		"consent_given": %t,
		"referrer_id": %q
	}`, jobID, consent, uuid.NewString())
}

func TestReferralHandler_CreateReferral(t *testing.T) {
	jobID := uuid.New()

	t.Run("Success", func(t *testing.T) {
		env, svc := setupReferralHandler(t, models.RoleFoundingCircle)
		consentAt := time.Date(2024, 5, 1, 12, 30, 45, 123456789, time.UTC)
		svc.On("CreateReferral", mock.Anything, mock.MatchedBy(func(r *dto.CreateReferralRequest) bool {
			return r.ReferrerID == env.userID && r.JobID == jobID && r.ConsentGiven
		})).Return(&models.Referral{
			ID:               uuid.New(),
			JobID:            jobID,
			ReferrerID:       env.userID,
			CandidateName:    "Ada Lovelace",
			CandidateEmail:   "ada@example.com",
			ConsentGiven:     true,
			ConsentTimestamp: consentAt,
			CreatedAt:        consentAt,
		}, nil).Once()

		rec := env.do(http.MethodPost, "/referrals", referralBody(jobID, true))

		assert.Equal(t, http.StatusCreated, rec.Code)
		var resp dto.ReferralResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "2024-05-01T12:30:45.123Z", resp.ConsentTimestamp)
		assert.Equal(t, env.userID, resp.ReferrerID)
		svc.AssertExpectations(t)
	})

	t.Run("Consent not given", func(t *testing.T) {
		env, svc := setupReferralHandler(t, models.RoleSelectCircle)
		svc.On("CreateReferral", mock.Anything, mock.Anything).Return(nil, services.ErrConsentRequired).Once()

		rec := env.do(http.MethodPost, "/referrals", referralBody(jobID, false))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.JSONEq(t, `{"error":"Consent is required"}`, rec.Body.String())
	})

	t.Run("Bad availability never reaches the service", func(t *testing.T) {
		env, svc := setupReferralHandler(t, models.RoleSelectCircle)

		rec := env.do(http.MethodPost, "/referrals", `{"job_id":"`+jobID.String()+`","candidate_name":"A","candidate_email":"a@example.com","availability":"someday","consent_given":true}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "Availability")
		svc.AssertNotCalled(t, "CreateReferral", mock.Anything, mock.Anything)
	})

	t.Run("Invalid candidate email", func(t *testing.T) {
		env, svc := setupReferralHandler(t, models.RoleSelectCircle)
		svc.On("CreateReferral", mock.Anything, mock.Anything).
			Return(nil, &services.ValidationError{Fields: map[string]string{"candidate_email": "Please enter a valid email"}}).Once()

		rec := env.do(http.MethodPost, "/referrals", referralBody(jobID, true))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "Please enter a valid email")
	})

	t.Run("Job missing", func(t *testing.T) {
		env, svc := setupReferralHandler(t, models.RoleFoundingCircle)
		svc.On("CreateReferral", mock.Anything, mock.Anything).Return(nil, fmt.Errorf("%w: job", services.ErrNotFound)).Once()

		rec := env.do(http.MethodPost, "/referrals", referralBody(jobID, true))

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.JSONEq(t, `{"error":"Job not found"}`, rec.Body.String())
	})

	t.Run("Insert failure surfaces the message", func(t *testing.T) {
		env, svc := setupReferralHandler(t, models.RoleFoundingCircle)
		svc.On("CreateReferral", mock.Anything, mock.Anything).Return(nil, errors.New("value too long for type character varying(200)")).Once()

		rec := env.do(http.MethodPost, "/referrals", referralBody(jobID, true))

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.JSONEq(t, `{"error":"value too long for type character varying(200)"}`, rec.Body.String())
	})
}

func TestReferralHandler_ListReferrals(t *testing.T) {
	t.Run("Defaults passed through", func(t *testing.T) {
		env, svc := setupReferralHandler(t, models.RoleClient)
		svc.On("ListReferrals", mock.Anything, mock.Anything, mock.MatchedBy(func(r *dto.ListReferralsRequest) bool {
			return r.Page == 0 && r.Limit == 0 && r.JobID == ""
		})).Return(&dto.ReferralListResponse{Referrals: []dto.ReferralResponse{}, Page: 1, Limit: 20}, nil).Once()

		rec := env.do(http.MethodGet, "/referrals", "")

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"referrals":[],"page":1,"limit":20,"total":0}`, rec.Body.String())
	})

	t.Run("Invalid job filter", func(t *testing.T) {
		env, _ := setupReferralHandler(t, models.RoleClient)

		rec := env.do(http.MethodGet, "/referrals?job_id=abc", "")

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("Query failure", func(t *testing.T) {
		env, svc := setupReferralHandler(t, models.RoleFoundingCircle)
		svc.On("ListReferrals", mock.Anything, mock.Anything, mock.Anything).Return(nil, errors.New("timeout")).Once()

		rec := env.do(http.MethodGet, "/referrals", "")

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})
}
