package diagnosis

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/ishan-kshirsagar0-7/GlycoSight-AI/internal"
)

func testLogger() internal.Logger {
	return internal.NewZapLogger(zap.NewNop().Sugar())
}

func TestClient_Diagnose_SendsMultipartFields(t *testing.T) {
	var gotUserID, gotInputType, gotFilename, gotBody string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "POST", r.Method)
		assert.Equal(t, "/diagnose", r.URL.Path)
		assert.NoError(t, r.ParseMultipartForm(32<<20))
		gotUserID = r.FormValue("user_id")
		gotInputType = r.FormValue("input_type")
		file, header, err := r.FormFile("file")
		assert.NoError(t, err)
		defer file.Close()
		gotFilename = header.Filename
		buf := make([]byte, header.Size)
		n, _ := file.Read(buf)
		gotBody = string(buf[:n])
		w.WriteHeader(200)
		w.Write([]byte(`{"summary":"ignored"}`))
	}))
	defer ts.Close()

	client := NewClient(ts.URL, testLogger())
	err := client.Diagnose(context.Background(), "u1", internal.InputTypeImage, "scan.png", strings.NewReader("pixels"))
	assert.NoError(t, err)
	assert.Equal(t, "u1", gotUserID)
	assert.Equal(t, "image", gotInputType)
	assert.Equal(t, "scan.png", gotFilename)
	assert.Equal(t, "pixels", gotBody)
}

func TestClient_Diagnose_SurfacesDetailOnFailure(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(500)
		w.Write([]byte(`{"detail":"model unavailable"}`))
	}))
	defer ts.Close()

	client := NewClient(ts.URL, testLogger())
	err := client.Diagnose(context.Background(), "u1", internal.InputTypePDF, "report.pdf", strings.NewReader("x"))
	assert.Error(t, err)

	apiErr, ok := err.(*APIError)
	assert.True(t, ok)
	assert.Equal(t, 500, apiErr.StatusCode)
	assert.Equal(t, "model unavailable", apiErr.Error())
}

func TestClient_Diagnose_GenericMessageWithoutDetail(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(502)
	}))
	defer ts.Close()

	client := NewClient(ts.URL, testLogger())
	err := client.Diagnose(context.Background(), "u1", internal.InputTypeUnknown, "mystery.bin", strings.NewReader("x"))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "502")
}
