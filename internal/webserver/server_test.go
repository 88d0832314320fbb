package webserver

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func get(t *testing.T, path string) (int, string, string) {
	t.Helper()
	srv, err := New("http://localhost:8080")
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	resp, err := srv.app.Test(httptest.NewRequest(http.MethodGet, path, nil), -1)
	if err != nil {
		t.Fatalf("GET %s: %v", path, err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, resp.Header.Get("Content-Type"), string(body)
}

func TestServesIndex(t *testing.T) {
	for _, path := range []string{"/", "/index.html", "/no/such/page"} {
		status, ct, body := get(t, path)
		if status != http.StatusOK || !strings.HasPrefix(ct, "text/html") {
			t.Fatalf("%s: got %d %s", path, status, ct)
		}
		if !strings.Contains(body, `id="board"`) {
			t.Fatalf("%s: index.html without board element", path)
		}
	}
}

func TestServesAssets(t *testing.T) {
	status, ct, _ := get(t, "/app.js")
	if status != http.StatusOK || !strings.Contains(ct, "javascript") {
		t.Fatalf("app.js: got %d %s", status, ct)
	}
	status, ct, _ = get(t, "/style.css")
	if status != http.StatusOK || !strings.HasPrefix(ct, "text/css") {
		t.Fatalf("style.css: got %d %s", status, ct)
	}
}

func TestConfigEndpoint(t *testing.T) {
	status, _, body := get(t, "/config")
	if status != http.StatusOK || !strings.Contains(body, `"apiUrl":"http://localhost:8080"`) {
		t.Fatalf("unexpected config response %d %s", status, body)
	}
}
