package hfinference

import (
	"context"
	"image"
	"image/color"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func testFrame() image.Image {
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for i := 0; i < 8; i++ {
		img.Set(i, i, color.RGBA{R: 255, A: 255})
	}
	return img
}

func TestClassify_ParsesAndSortsLabels(t *testing.T) {
	var gotAuth, gotContentType, gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotContentType = r.Header.Get("Content-Type")
		gotPath = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[
			{"label": "sad", "score": 0.1},
			{"label": "happy", "score": 0.8},
			{"label": "", "score": 0.5},
			{"label": "neutral", "score": 0.1}
		]`))
	}))
	defer srv.Close()

	a := New("hf-test-key", "some/model", srv.URL)
	out, err := a.Classify(context.Background(), testFrame())
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}

	if gotAuth != "Bearer hf-test-key" {
		t.Fatalf("Authorization = %q", gotAuth)
	}
	if gotContentType != "image/jpeg" {
		t.Fatalf("Content-Type = %q", gotContentType)
	}
	if gotPath != "/models/some/model" {
		t.Fatalf("path = %q", gotPath)
	}

	if len(out) != 3 {
		t.Fatalf("expected 3 labels (blank dropped), got %v", out)
	}
	if out[0].Label != "happy" || out[0].Score != 0.8 {
		t.Fatalf("labels must sort by descending score, got %v", out)
	}
}

func TestClassify_ErrorRedactsKey(t *testing.T) {
	const key = "hf-super-secret"
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error": "bad token ` + key + `"}`))
	}))
	defer srv.Close()

	a := New(key, "", srv.URL)
	_, err := a.Classify(context.Background(), testFrame())
	if err == nil {
		t.Fatal("expected error on 401")
	}
	if strings.Contains(err.Error(), key) {
		t.Fatalf("API key leaked into error: %v", err)
	}
	if !strings.Contains(err.Error(), "status 401") {
		t.Fatalf("error must carry the status: %v", err)
	}
}

func TestNew_Defaults(t *testing.T) {
	a := New("k", "", "")
	if a.model != defaultModel {
		t.Fatalf("model = %q, want default", a.model)
	}
	if a.baseURL != defaultBaseURL {
		t.Fatalf("baseURL = %q, want default", a.baseURL)
	}
}

func TestRedactSecrets(t *testing.T) {
	apiKey := "hf-super-secret"
	in := `status 401; Authorization: Bearer hf-super-secret; api_key=hf-super-secret`
	got := redactSecrets(in, apiKey)

	if strings.Contains(got, apiKey) {
		t.Fatalf("expected API key to be redacted, got: %q", got)
	}
	if !strings.Contains(got, "Authorization: [REDACTED]") {
		t.Fatalf("expected authorization header to be redacted, got: %q", got)
	}
	if !strings.Contains(got, "api_key=[REDACTED]") {
		t.Fatalf("expected api_key field to be redacted, got: %q", got)
	}
}
