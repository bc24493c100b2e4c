package handlers_test

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"referral-network-api/internal/api/handlers"
	"referral-network-api/internal/mocks"
	"referral-network-api/internal/models"
	"referral-network-api/internal/services"
	"referral-network-api/internal/transport/dto"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestResumeHandler_CreateUpload(t *testing.T) {
	setup := func(t *testing.T) (*testEnv, *mocks.MockResumeService) {
		env := newTestEnv(t, models.RoleFoundingCircle)
		svc := new(mocks.MockResumeService)
		env.router.POST("/storage/resumes", handlers.NewResumeHandler(svc, env.validate).CreateUpload)
		return env, svc
	}

	t.Run("Signed URL issued", func(t *testing.T) {
		env, svc := setup(t)
		svc.On("CreateUpload", mock.Anything, mock.Anything, mock.MatchedBy(func(r *dto.CreateUploadRequest) bool {
			return r.FileName == "cv.pdf" && r.SizeBytes == 1024
		})).Return(&dto.CreateUploadResponse{
			UploadURL:   "http://localhost:8080/api/storage/resumes/upload?token=abc",
			StoragePath: env.userID.String() + "/x.pdf",
			ExpiresAt:   time.Now().Add(10 * time.Minute),
		}, nil).Once()

		rec := env.do(http.MethodPost, "/storage/resumes", `{"file_name":"cv.pdf","content_type":"application/pdf","size_bytes":1024}`)

		assert.Equal(t, http.StatusCreated, rec.Code)
		assert.Contains(t, rec.Body.String(), "token=abc")
	})

	t.Run("Rejected file type", func(t *testing.T) {
		env, svc := setup(t)
		svc.On("CreateUpload", mock.Anything, mock.Anything, mock.Anything).
			Return(nil, fmt.Errorf("%w: Please upload a PDF or Word document", services.ErrUploadRejected)).Once()

		rec := env.do(http.MethodPost, "/storage/resumes", `{"file_name":"cv.exe","content_type":"application/octet-stream","size_bytes":10}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "PDF or Word")
	})

	t.Run("Zero size", func(t *testing.T) {
		env, _ := setup(t)

		rec := env.do(http.MethodPost, "/storage/resumes", `{"file_name":"cv.pdf","content_type":"application/pdf","size_bytes":0}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestResumeHandler_Upload(t *testing.T) {
	gin.SetMode(gin.TestMode)

	do := func(svc *mocks.MockResumeService, target string) *httptest.ResponseRecorder {
		router := gin.New()
		router.PUT("/upload", handlers.NewResumeHandler(svc, nil).Upload)
		recorder := httptest.NewRecorder()
		request, _ := http.NewRequest(http.MethodPut, target, strings.NewReader("%PDF-1.7"))
		request.Header.Set("Content-Type", "application/pdf")
		router.ServeHTTP(recorder, request)
		return recorder
	}

	tests := []struct {
		name     string
		err      error
		wantCode int
	}{
		{"Stored", nil, http.StatusOK},
		{"Expired token", fmt.Errorf("%w: invalid upload token", services.ErrForbidden), http.StatusForbidden},
		{"Already uploaded", fmt.Errorf("%w: resume already uploaded", services.ErrConflict), http.StatusConflict},
		{"Too large", fmt.Errorf("%w: too large", services.ErrUploadRejected), http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(mocks.MockResumeService)
			call := svc.On("Upload", mock.Anything, "tok", "application/pdf")
			if tt.err != nil {
				call.Return(nil, tt.err).Once()
			} else {
				call.Return(&dto.UploadCompleteResponse{StoragePath: "a/b.pdf", SizeBytes: 8}, nil).Once()
			}

			rec := do(svc, "/upload?token=tok")

			assert.Equal(t, tt.wantCode, rec.Code)
			svc.AssertExpectations(t)
		})
	}

	t.Run("Missing token", func(t *testing.T) {
		svc := new(mocks.MockResumeService)

		rec := do(svc, "/upload")

		assert.Equal(t, http.StatusForbidden, rec.Code)
		svc.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestDashboardHandler(t *testing.T) {
	env := newTestEnv(t, models.RoleSelectCircle)
	svc := new(mocks.MockDashboardService)
	env.router.GET("/dashboard", handlers.NewDashboardHandler(svc).GetDashboard)
	svc.On("GetDashboard", mock.Anything, mock.MatchedBy(func(a services.Actor) bool {
		return a.ID == env.userID && a.Role == models.RoleSelectCircle
	})).Return(&models.Dashboard{
		Role:     models.RoleSelectCircle,
		Referrer: &models.ReferrerDashboard{ReferralsSubmitted: 3, ActiveJobs: 7},
	}, nil).Once()

	rec := env.do(http.MethodGet, "/dashboard", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"referrals_submitted":3`)
	assert.NotContains(t, rec.Body.String(), `"client"`)
}
