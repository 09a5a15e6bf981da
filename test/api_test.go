package test

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/ishan-kshirsagar0-7/GlycoSight-AI/internal"
	"github.com/ishan-kshirsagar0-7/GlycoSight-AI/internal/api"
	"github.com/ishan-kshirsagar0-7/GlycoSight-AI/internal/auth"
	"github.com/ishan-kshirsagar0-7/GlycoSight-AI/internal/diagnosis"
	"github.com/ishan-kshirsagar0-7/GlycoSight-AI/internal/storage"
)

type fixture struct {
	router   *gin.Engine
	profiles storage.ProfileRepository
}

// setupRouter builds the full app against a stubbed diagnosis endpoint. The
// stub plays the remote service's role, including the server-side profile
// write that the portal later re-reads.
func setupRouter(t *testing.T, remote http.HandlerFunc) *fixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	logger := internal.NewZapLogger(zap.NewNop().Sugar())

	profilesFile := filepath.Join(t.TempDir(), "profiles.json")
	profiles, err := storage.NewFileStorage(profilesFile, logger)
	assert.NoError(t, err)
	t.Cleanup(profiles.Shutdown)

	ts := httptest.NewServer(remote)
	t.Cleanup(ts.Close)

	provider := auth.NewLocalAuthProvider("test-secret", logger)
	svc := diagnosis.NewService(diagnosis.NewClient(ts.URL, logger), profiles, diagnosis.NewStatusBoard(), logger)
	app := api.NewApp(logger, provider, profiles, svc)

	return &fixture{router: api.NewRouter(app), profiles: profiles}
}

func signUp(t *testing.T, f *fixture, email string) string {
	t.Helper()
	body := `{"email":"` + email + `","password":"hunter22","confirm_password":"hunter22"}`
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/auth/signup", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	f.router.ServeHTTP(w, req)
	assert.Equal(t, 200, w.Code)

	var resp struct {
		Data internal.Session `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Data.AccessToken)
	return resp.Data.AccessToken
}

func multipartUpload(t *testing.T, filename string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", filename)
	assert.NoError(t, err)
	_, err = part.Write(content)
	assert.NoError(t, err)
	assert.NoError(t, writer.Close())
	return &buf, writer.FormDataContentType()
}

func noRemoteCall(t *testing.T) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		t.Error("diagnosis endpoint should not be called")
		w.WriteHeader(500)
	}
}

func TestDiagnose_EndToEndSuccess(t *testing.T) {
	var f *fixture
	remote := func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, r.ParseMultipartForm(32<<20))
		assert.Equal(t, "image", r.FormValue("input_type"))
		userID := r.FormValue("user_id")
		assert.NotEmpty(t, userID)

		// the remote service writes the profile record; the portal re-reads it
		err := f.profiles.UpsertProfile(context.Background(), &internal.HealthProfile{
			ID: userID,
			LatestDiagnosticResponse: &internal.DiagnosticResponse{
				Summary:         "Patient summary",
				FinalDiagnosis:  "Prediabetic trend",
				ConfidenceScore: internal.ConfidenceScore{Score: 81, Justification: "lab values"},
				AlertColor:      internal.AlertYellow,
				Analysis: []internal.ParameterAnalysis{
					{ParameterName: "HbA1c", AnalysisText: "See [1] for detail"},
				},
				Citations: []internal.Citation{{ID: 1, Reference: "A", URL: "ADA"}},
			},
			UpdatedAt: time.Now(),
		})
		assert.NoError(t, err)
		w.WriteHeader(200)
		w.Write([]byte(`{}`))
	}
	f = setupRouter(t, remote)
	token := signUp(t, f, "e2e@example.com")

	// no profile yet: dashboard shows the uploader
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/dashboard", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	f.router.ServeHTTP(w, req)
	assert.Equal(t, 200, w.Code)
	assert.Contains(t, w.Body.String(), `"state":"uploader"`)

	// upload a 3 MiB png
	buf, contentType := multipartUpload(t, "scan.png", bytes.Repeat([]byte("x"), 3*1024*1024))
	w = httptest.NewRecorder()
	req, _ = http.NewRequest("POST", "/dashboard/diagnose", buf)
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", contentType)
	f.router.ServeHTTP(w, req)
	assert.Equal(t, 200, w.Code)

	var resp struct {
		Data api.DashboardState `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "results", resp.Data.State)
	assert.Equal(t, "Prediabetic", resp.Data.Results.Alert.Label)
	assert.Equal(t, 81, resp.Data.Results.GaugePercent)
	assert.Len(t, resp.Data.Results.Bibliography, 1)
	assert.True(t, resp.Data.Results.Bibliography[0].HasURL)
}

func TestDiagnose_RemoteFailureSurfacesDetail(t *testing.T) {
	f := setupRouter(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(500)
		w.Write([]byte(`{"detail":"model unavailable"}`))
	})
	token := signUp(t, f, "fail@example.com")

	buf, contentType := multipartUpload(t, "scan.png", []byte("pixels"))
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/dashboard/diagnose", buf)
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", contentType)
	f.router.ServeHTTP(w, req)

	assert.Equal(t, 502, w.Code)
	assert.Contains(t, w.Body.String(), "model unavailable")

	// uploader state is intact afterwards
	w = httptest.NewRecorder()
	req, _ = http.NewRequest("GET", "/dashboard", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	f.router.ServeHTTP(w, req)
	assert.Equal(t, 200, w.Code)
	assert.Contains(t, w.Body.String(), `"state":"uploader"`)
}

func TestDiagnose_RejectsInvalidUploads(t *testing.T) {
	f := setupRouter(t, noRemoteCall(t))
	token := signUp(t, f, "reject@example.com")

	// wrong extension
	buf, contentType := multipartUpload(t, "notes.txt", []byte("hello"))
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/dashboard/diagnose", buf)
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", contentType)
	f.router.ServeHTTP(w, req)
	assert.Equal(t, 400, w.Code)
	assert.Contains(t, w.Body.String(), "file type must be one of")

	// oversized
	buf, contentType = multipartUpload(t, "scan.png", bytes.Repeat([]byte("x"), int(4.5*1024*1024)+1))
	w = httptest.NewRecorder()
	req, _ = http.NewRequest("POST", "/dashboard/diagnose", buf)
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", contentType)
	f.router.ServeHTTP(w, req)
	assert.Equal(t, 400, w.Code)
	assert.Contains(t, w.Body.String(), "larger than 4.5MB")
}

func TestSignUp_PasswordMismatch(t *testing.T) {
	f := setupRouter(t, noRemoteCall(t))
	body := `{"email":"a@b.com","password":"hunter22","confirm_password":"other"}`
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/auth/signup", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	f.router.ServeHTTP(w, req)
	assert.Equal(t, 400, w.Code)
	assert.Contains(t, w.Body.String(), "passwords do not match")
}

func TestLoginAndLogout(t *testing.T) {
	f := setupRouter(t, noRemoteCall(t))
	_ = signUp(t, f, "roundtrip@example.com")

	body := `{"email":"roundtrip@example.com","password":"hunter22"}`
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/auth/login", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	f.router.ServeHTTP(w, req)
	assert.Equal(t, 200, w.Code)

	var resp struct {
		Data internal.Session `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	token := resp.Data.AccessToken

	w = httptest.NewRecorder()
	req, _ = http.NewRequest("POST", "/auth/logout", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	f.router.ServeHTTP(w, req)
	assert.Equal(t, 200, w.Code)

	// the revoked token no longer opens the dashboard
	w = httptest.NewRecorder()
	req, _ = http.NewRequest("GET", "/dashboard", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	f.router.ServeHTTP(w, req)
	assert.Equal(t, 401, w.Code)
}

func TestLogin_BadPassword(t *testing.T) {
	f := setupRouter(t, noRemoteCall(t))
	_ = signUp(t, f, "badpw@example.com")

	body := `{"email":"badpw@example.com","password":"wrong"}`
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/auth/login", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	f.router.ServeHTTP(w, req)
	assert.Equal(t, 401, w.Code)
}
