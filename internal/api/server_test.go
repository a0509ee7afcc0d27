package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"goalline/internal/config"
	"goalline/internal/engine"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	svc := engine.NewServiceSeeded(nil, 99)
	srv := New(config.APIConfig{Addr: ":0"}, nil, svc)
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func postJSON(t *testing.T, url string, body any) *http.Response {
	t.Helper()
	raw, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	resp, err := http.Post(url, "application/json", bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("post %s: %v", url, err)
	}
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, out any) {
	t.Helper()
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
}

func createCareer(t *testing.T, ts *httptest.Server) map[string]any {
	t.Helper()
	var academies struct {
		Academies []struct {
			ID string `json:"id"`
		} `json:"academies"`
	}
	resp, err := http.Get(ts.URL + "/v1/academies?count=1")
	if err != nil {
		t.Fatalf("academies: %v", err)
	}
	decodeBody(t, resp, &academies)
	if len(academies.Academies) == 0 {
		t.Fatalf("no academies returned")
	}

	resp = postJSON(t, ts.URL+"/v1/careers", map[string]any{
		"name":       "Test Player",
		"position":   "striker",
		"academy_id": academies.Academies[0].ID,
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create status = %d", resp.StatusCode)
	}
	var view map[string]any
	decodeBody(t, resp, &view)
	return view
}

func TestHealthz(t *testing.T) {
	ts := newTestServer(t)
	resp, err := http.Get(ts.URL + "/healthz")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
}

func TestCreateCareerAndView(t *testing.T) {
	ts := newTestServer(t)
	view := createCareer(t, ts)
	id, _ := view["id"].(string)
	if id == "" {
		t.Fatalf("created career has no id: %v", view)
	}
	if view["event"] == nil {
		t.Fatalf("created career has no pending event")
	}

	resp, err := http.Get(ts.URL + "/v1/careers/" + id)
	if err != nil {
		t.Fatalf("view: %v", err)
	}
	var got map[string]any
	decodeBody(t, resp, &got)
	if got["id"] != id {
		t.Fatalf("view returned id %v, want %v", got["id"], id)
	}
}

func TestCreateCareerValidation(t *testing.T) {
	ts := newTestServer(t)
	resp := postJSON(t, ts.URL+"/v1/careers", map[string]any{
		"name":       "",
		"position":   "striker",
		"academy_id": "academy_fc_nantes",
	})
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("blank name status = %d, want 400", resp.StatusCode)
	}
}

func TestUnknownCareerIs404(t *testing.T) {
	ts := newTestServer(t)
	resp, err := http.Get(ts.URL + "/v1/careers/not-a-real-id")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", resp.StatusCode)
	}
}

func TestActionDispatchAndUnknownKind(t *testing.T) {
	ts := newTestServer(t)
	view := createCareer(t, ts)
	id := view["id"].(string)
	url := fmt.Sprintf("%s/v1/careers/%s/actions", ts.URL, id)

	resp := postJSON(t, url, map[string]any{"kind": "warp_to_finals"})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("unknown kind status = %d", resp.StatusCode)
	}
	var eff struct {
		Ignored bool `json:"ignored"`
	}
	decodeBody(t, resp, &eff)
	if !eff.Ignored {
		t.Fatalf("unknown action kind was not ignored")
	}

	// Retiring a 16 year old must come back as a refusal, not an error.
	resp = postJSON(t, url, map[string]any{"kind": "retire"})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("retire status = %d", resp.StatusCode)
	}
	var refused struct {
		Refusal string `json:"refusal"`
	}
	decodeBody(t, resp, &refused)
	if refused.Refusal == "" {
		t.Fatalf("teenage retirement was not refused")
	}
}

func TestAdvanceAndExport(t *testing.T) {
	ts := newTestServer(t)
	view := createCareer(t, ts)
	id := view["id"].(string)

	resp := postJSON(t, fmt.Sprintf("%s/v1/careers/%s/advance", ts.URL, id), nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("advance status = %d", resp.StatusCode)
	}
	var eff struct {
		Summary map[string]any `json:"summary"`
	}
	decodeBody(t, resp, &eff)
	if eff.Summary == nil {
		t.Fatalf("advance returned no season summary")
	}

	resp, err := http.Get(fmt.Sprintf("%s/v1/careers/%s/export", ts.URL, id))
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	var payload struct {
		CSV   string `json:"csv"`
		Sheet string `json:"sheet"`
	}
	decodeBody(t, resp, &payload)
	if !strings.Contains(payload.CSV, "Player Career Summary") || payload.Sheet == "" {
		t.Fatalf("export payload incomplete")
	}
}

func TestCloseCareerRoute(t *testing.T) {
	ts := newTestServer(t)
	view := createCareer(t, ts)
	id := view["id"].(string)

	req, err := http.NewRequest(http.MethodDelete, ts.URL+"/v1/careers/"+id, nil)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("delete status = %d", resp.StatusCode)
	}

	resp, err = http.Get(ts.URL + "/v1/careers/" + id)
	if err != nil {
		t.Fatalf("view after delete: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("closed career still served: status = %d", resp.StatusCode)
	}
}
