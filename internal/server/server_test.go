package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"lpubmeta/internal/ldraw"
	"lpubmeta/internal/meta"
	"lpubmeta/internal/version"
)

const trainMPD = `0 FILE train.ldr
0 Train
0 Name: train.ldr
0 Author: Tester
1 4 0 0 0 1 0 0 0 1 0 0 0 1 coach.ldr
0 STEP
1 4 0 0 80 1 0 0 0 1 0 0 0 1 coach.ldr
0 STEP
0 NOFILE
0 FILE coach.ldr
0 Coach
1 1 0 0 0 1 0 0 0 1 0 0 0 1 3001.dat
0 STEP
0 NOFILE
`

func newTestServer(t *testing.T) (*Handler, http.Handler) {
	t.Helper()
	h := NewHandler(ldraw.New())
	return h, New(h)
}

func do(t *testing.T, srv http.Handler, method, target string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		req = httptest.NewRequest(method, target, bytes.NewReader(data))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	return rec
}

func loadTrain(t *testing.T, srv http.Handler) {
	t.Helper()
	rec := do(t, srv, http.MethodPost, "/api/load", map[string]string{"name": "train.mpd", "document": trainMPD})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
}

func TestHandleHealth(t *testing.T) {
	_, srv := newTestServer(t)
	rec := do(t, srv, http.MethodGet, "/api/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok","version":"`+version.GetBaseVersion()+`"}`, rec.Body.String())
}

func TestHandleParse(t *testing.T) {
	tests := []struct {
		name         string
		body         interface{}
		wantStatus   int
		wantFailures int
		wantRcs      []meta.Rc
	}{
		{
			name: "lines",
			body: map[string]interface{}{
				"model": "main.ldr",
				"lines": []string{"0 !LPUB ASSEM MODEL_SCALE 2", "0 STEP", "0 !LPUB ASSEM MODEL_SCALE abc"},
			},
			wantStatus:   http.StatusOK,
			wantFailures: 1,
			wantRcs:      []meta.Rc{meta.RcOk, meta.RcStep, meta.RcFailure},
		},
		{
			name:       "text block",
			body:       map[string]string{"text": "0 !LPUB CALLOUT BEGIN\r\n0 !LPUB CALLOUT END"},
			wantStatus: http.StatusOK,
			wantRcs:    []meta.Rc{meta.RcCalloutBegin, meta.RcCalloutEnd},
		},
		{
			name:       "empty",
			body:       map[string]string{},
			wantStatus: http.StatusBadRequest,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, srv := newTestServer(t)
			rec := do(t, srv, http.MethodPost, "/api/parse", tt.body)
			require.Equal(t, tt.wantStatus, rec.Code, rec.Body.String())
			if tt.wantStatus != http.StatusOK {
				return
			}

			var resp parseResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, tt.wantFailures, resp.Failures)
			var rcs []meta.Rc
			for _, r := range resp.Results {
				rcs = append(rcs, r.Rc)
			}
			assert.Equal(t, tt.wantRcs, rcs)
		})
	}
}

func TestHandleParse_Settings(t *testing.T) {
	_, srv := newTestServer(t)
	rec := do(t, srv, http.MethodPost, "/api/parse", map[string]interface{}{
		"model": "main.ldr",
		"lines": []string{"0 Title", "0 !LPUB ASSEM MODEL_SCALE 2"},
	})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"rc":"Ok"`)

	var resp parseResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Settings, 1)
	assert.Equal(t, "0 !LPUB ASSEM MODEL_SCALE 2.0000", resp.Settings[0].Line)
	assert.Equal(t, meta.Where{ModelName: "main.ldr", LineNumber: 1}, resp.Settings[0].Where)
	assert.Equal(t, []string{"0 !LPUB ASSEM MODEL_SCALE 2.0000"}, resp.Results[1].Set)
}

func TestHandleModels(t *testing.T) {
	_, srv := newTestServer(t)

	rec := do(t, srv, http.MethodGet, "/api/models", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"models":[]`)

	loadTrain(t, srv)
	rec = do(t, srv, http.MethodGet, "/api/models", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp modelsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.MPD)
	assert.Equal(t, "Tester", resp.Document.Author)
	assert.Equal(t, []modelSummary{
		{Name: "train.ldr", Lines: 7, Level: 0, Submodel: true},
		{Name: "coach.ldr", Lines: 3, Level: 1, Submodel: true},
	}, resp.Models)
}

func TestHandleModel(t *testing.T) {
	_, srv := newTestServer(t)
	loadTrain(t, srv)

	rec := do(t, srv, http.MethodGet, "/api/models/Coach.ldr", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var f ldraw.SubFile
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &f))
	assert.Equal(t, "coach.ldr", f.Name)
	assert.Equal(t, "0 Coach", f.Contents[0])

	rec = do(t, srv, http.MethodGet, "/api/models/ghost.ldr", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandleCount(t *testing.T) {
	t.Run("served document", func(t *testing.T) {
		h, srv := newTestServer(t)
		loadTrain(t, srv)

		rec := do(t, srv, http.MethodPost, "/api/count", nil)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		var rep ldraw.CountReport
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &rep))
		require.Len(t, rep.Models, 2)
		assert.Equal(t, ldraw.ModelCount{Name: "coach.ldr", Instances: 2, NumSteps: 1, Level: 1, Submodel: true}, rep.Models[1])
		assert.Equal(t, 2, h.registry.Instances("coach.ldr", false))
	})

	t.Run("posted document leaves served state alone", func(t *testing.T) {
		h, srv := newTestServer(t)
		rec := do(t, srv, http.MethodPost, "/api/count?format=yaml", map[string]string{
			"name":     "train.mpd",
			"document": trainMPD,
		})
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		assert.Equal(t, "application/yaml", rec.Header().Get("Content-Type"))

		var rep ldraw.CountReport
		require.NoError(t, yaml.Unmarshal(rec.Body.Bytes(), &rep))
		assert.Equal(t, "train.ldr", rep.Document.FileName)
		assert.Empty(t, h.registry.TopLevelFile())
	})

	t.Run("nothing loaded", func(t *testing.T) {
		_, srv := newTestServer(t)
		rec := do(t, srv, http.MethodPost, "/api/count", nil)
		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("bad format", func(t *testing.T) {
		_, srv := newTestServer(t)
		loadTrain(t, srv)
		rec := do(t, srv, http.MethodPost, "/api/count?format=xml", nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestHandleLoad_Invalid(t *testing.T) {
	_, srv := newTestServer(t)
	rec := do(t, srv, http.MethodPost, "/api/load", map[string]string{"name": "x.ldr"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	req := httptest.NewRequest(http.MethodPost, "/api/load", strings.NewReader("{"))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	srv.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestHandleSnapshot(t *testing.T) {
	_, srv := newTestServer(t)
	loadTrain(t, srv)

	rec := do(t, srv, http.MethodGet, "/api/snapshot", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/msgpack", rec.Header().Get("Content-Type"))

	snap, err := ldraw.ReadSnapshot(rec.Body)
	require.NoError(t, err)
	assert.Len(t, snap.Files, 2)
	assert.ElementsMatch(t, []string{"train.ldr", "coach.ldr"}, snap.Changed)
}

func TestServe_Shutdown(t *testing.T) {
	h := NewHandler(ldraw.New())
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- Serve(ctx, New(h), "127.0.0.1:0")
	}()

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("server did not shut down")
	}
}
