package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/matzehuels/blockfill/pkg/core/board"
	"github.com/matzehuels/blockfill/pkg/core/shape"
	bferrors "github.com/matzehuels/blockfill/pkg/errors"
	"github.com/matzehuels/blockfill/pkg/game"
	"github.com/matzehuels/blockfill/pkg/session"
)

type sessionBody struct {
	ID      string      `json:"id"`
	Size    int         `json:"size"`
	Level   int         `json:"level"`
	Score   int         `json:"score"`
	Elapsed int         `json:"elapsed"`
	Seed    uint64      `json:"seed"`
	Current shape.Shape `json:"current"`
	Next    shape.Shape `json:"next"`
}

func newTestServer(t *testing.T, limit int) (*Server, *httptest.Server) {
	t.Helper()
	srv := New(session.NewMemoryStore(time.Minute, limit), game.Options{}, nil)
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return srv, ts
}

func do(t *testing.T, method, url, body string) *http.Response {
	t.Helper()
	req, err := http.NewRequest(method, url, strings.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var v T
	if err := json.NewDecoder(resp.Body).Decode(&v); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return v
}

func createSession(t *testing.T, ts *httptest.Server, body string) sessionBody {
	t.Helper()
	resp := do(t, http.MethodPost, ts.URL+"/api/sessions", body)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create status = %d, want 201", resp.StatusCode)
	}
	return decode[sessionBody](t, resp)
}

func TestHealthAndPieces(t *testing.T) {
	_, ts := newTestServer(t, 10)

	resp := do(t, http.MethodGet, ts.URL+"/healthz", "")
	if resp.StatusCode != http.StatusOK {
		t.Errorf("healthz status = %d", resp.StatusCode)
	}

	resp = do(t, http.MethodGet, ts.URL+"/api/pieces", "")
	pieces := decode[struct {
		Pieces []shape.Shape `json:"pieces"`
	}](t, resp)
	if len(pieces.Pieces) != len(shape.Catalog()) {
		t.Errorf("pieces = %d, want %d", len(pieces.Pieces), len(shape.Catalog()))
	}
}

func TestCreateAndGet(t *testing.T) {
	_, ts := newTestServer(t, 10)

	created := createSession(t, ts, `{"size": 6, "seed": 11}`)
	if created.ID == "" || created.Size != 6 || created.Level != 1 || created.Seed != 11 {
		t.Fatalf("created = %+v", created)
	}
	if created.Current.IsZero() || created.Next.IsZero() {
		t.Error("new session should have pieces")
	}

	got := decode[sessionBody](t, do(t, http.MethodGet, ts.URL+"/api/sessions/"+created.ID, ""))
	if got.ID != created.ID || !got.Current.Equal(created.Current) {
		t.Errorf("get = %+v, want %+v", got, created)
	}

	// Empty body uses defaults.
	def := createSession(t, ts, "")
	if def.Size != 8 {
		t.Errorf("default size = %d, want 8", def.Size)
	}
}

func TestCreateTargetProbability(t *testing.T) {
	_, ts := newTestServer(t, 10)

	tests := []struct {
		name        string
		body        string
		wantTargets bool
	}{
		{"explicit zero", `{"target_probability": 0, "seed": 5}`, false},
		{"one", `{"target_probability": 1, "seed": 5}`, true},
		{"omitted uses default", `{"seed": 5}`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := do(t, http.MethodPost, ts.URL+"/api/sessions", tt.body)
			if resp.StatusCode != http.StatusCreated {
				t.Fatalf("status = %d, want 201", resp.StatusCode)
			}
			got := decode[struct {
				Cells [][]board.Cell `json:"cells"`
			}](t, resp)
			targets := 0
			for _, row := range got.Cells {
				for _, c := range row {
					if c.Target {
						targets++
					}
				}
			}
			if (targets > 0) != tt.wantTargets {
				t.Errorf("targets = %d, want any = %v", targets, tt.wantTargets)
			}
		})
	}
}

func TestCreateInvalid(t *testing.T) {
	_, ts := newTestServer(t, 10)

	tests := []struct {
		name string
		body string
	}{
		{"zero size", `{"size": 0}`},
		{"huge size", `{"size": 1000}`},
		{"probability", `{"target_probability": 3}`},
		{"unknown field", `{"colour": "red"}`},
		{"malformed", `{"size":`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := do(t, http.MethodPost, ts.URL+"/api/sessions", tt.body)
			if resp.StatusCode != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", resp.StatusCode)
			}
			e := decode[errorResponse](t, resp)
			if e.Code != string(bferrors.ErrCodeInvalidInput) {
				t.Errorf("code = %q, want INVALID_INPUT", e.Code)
			}
		})
	}
}

func TestPlace(t *testing.T) {
	_, ts := newTestServer(t, 10)
	s := createSession(t, ts, `{"size": 8, "seed": 5}`)
	url := ts.URL + "/api/sessions/" + s.ID + "/place"

	resp := do(t, http.MethodPost, url, `{"row": 100, "col": 100}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("rejected place status = %d, want 200", resp.StatusCode)
	}
	if res := decode[game.PlacementResult](t, resp); res.Placed {
		t.Error("placement off the board should be rejected")
	}

	resp = do(t, http.MethodPost, url, `{"row": 0, "col": 0}`)
	res := decode[game.PlacementResult](t, resp)
	if !res.Placed || len(res.Cells) != s.Current.Size() || res.Score < 10 {
		t.Errorf("place = %+v, want placed with %d cells", res, s.Current.Size())
	}

	after := decode[sessionBody](t, do(t, http.MethodGet, ts.URL+"/api/sessions/"+s.ID, ""))
	if !after.Current.Equal(s.Next) {
		t.Errorf("current after place = %s, want previous next %s", after.Current.Name(), s.Next.Name())
	}
}

func TestPlaceInvalidBody(t *testing.T) {
	_, ts := newTestServer(t, 10)
	s := createSession(t, ts, `{"seed": 1}`)
	url := ts.URL + "/api/sessions/" + s.ID + "/place"

	for _, body := range []string{`{"row": 1}`, ``, `not json`} {
		resp := do(t, http.MethodPost, url, body)
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("body %q: status = %d, want 400", body, resp.StatusCode)
		}
	}
}

func TestRotateResetHint(t *testing.T) {
	_, ts := newTestServer(t, 10)
	s := createSession(t, ts, `{"size": 6, "seed": 9}`)
	base := ts.URL + "/api/sessions/" + s.ID

	rot := decode[game.RotateResult](t, do(t, http.MethodPost, base+"/rotate", ""))
	if !rot.Current.Equal(shape.RotateClockwise(s.Current)) {
		t.Errorf("rotate = %s, want clockwise %s", rot.Current, s.Current)
	}

	_ = do(t, http.MethodPost, base+"/place", `{"row": 0, "col": 0}`)
	reset := decode[sessionBody](t, do(t, http.MethodPost, base+"/reset", ""))
	if reset.Level != 1 || reset.Score != 0 || reset.Elapsed != 0 {
		t.Errorf("reset = %+v", reset)
	}

	resp := do(t, http.MethodPost, base+"/hint", "")
	if resp.StatusCode != http.StatusOK {
		t.Errorf("hint status = %d", resp.StatusCode)
	}
	var raw map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		t.Fatal(err)
	}
	if _, ok := raw["found"]; !ok {
		t.Errorf("hint response missing found: %v", raw)
	}
}

func TestSessionNotFound(t *testing.T) {
	_, ts := newTestServer(t, 10)

	for _, path := range []string{"/api/sessions/missing", "/api/sessions/missing/hint"} {
		method := http.MethodGet
		if strings.HasSuffix(path, "hint") {
			method = http.MethodPost
		}
		resp := do(t, method, ts.URL+path, "")
		if resp.StatusCode != http.StatusNotFound {
			t.Errorf("%s status = %d, want 404", path, resp.StatusCode)
		}
		if e := decode[errorResponse](t, resp); e.Code != string(bferrors.ErrCodeSessionNotFound) {
			t.Errorf("%s code = %q", path, e.Code)
		}
	}
}

func TestDelete(t *testing.T) {
	_, ts := newTestServer(t, 10)
	s := createSession(t, ts, "")
	url := ts.URL + "/api/sessions/" + s.ID

	if resp := do(t, http.MethodDelete, url, ""); resp.StatusCode != http.StatusNoContent {
		t.Fatalf("delete status = %d, want 204", resp.StatusCode)
	}
	if resp := do(t, http.MethodGet, url, ""); resp.StatusCode != http.StatusNotFound {
		t.Errorf("get after delete status = %d, want 404", resp.StatusCode)
	}
}

func TestTooManySessions(t *testing.T) {
	_, ts := newTestServer(t, 1)
	createSession(t, ts, "")
	resp := do(t, http.MethodPost, ts.URL+"/api/sessions", "")
	if resp.StatusCode != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", resp.StatusCode)
	}
}

func TestUnknownRoute(t *testing.T) {
	_, ts := newTestServer(t, 10)
	resp := do(t, http.MethodGet, ts.URL+"/nope", "")
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want 404", resp.StatusCode)
	}
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		code bferrors.Code
		want int
	}{
		{bferrors.ErrCodeSessionNotFound, http.StatusNotFound},
		{bferrors.ErrCodeInvalidInput, http.StatusBadRequest},
		{bferrors.ErrCodeInvalidConfig, http.StatusBadRequest},
		{bferrors.ErrCodeInvalidShape, http.StatusBadRequest},
		{bferrors.ErrCodeTooManySessions, http.StatusServiceUnavailable},
		{bferrors.ErrCodeNoPendingPiece, http.StatusInternalServerError},
		{bferrors.ErrCodeInternal, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		if got := statusFor(tt.code); got != tt.want {
			t.Errorf("statusFor(%s) = %d, want %d", tt.code, got, tt.want)
		}
	}
}

func TestRunClockTicksSessions(t *testing.T) {
	srv, ts := newTestServer(t, 10)
	s := createSession(t, ts, "")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go srv.RunClock(ctx, time.Millisecond)

	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		got := decode[sessionBody](t, do(t, http.MethodGet, ts.URL+"/api/sessions/"+s.ID, ""))
		if got.Elapsed > 0 {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Error("elapsed never advanced")
}
