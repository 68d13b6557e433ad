package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"smartoffice/internal/assets/repository"
	"smartoffice/internal/assets/service"
	"smartoffice/internal/assets/validator"
	"smartoffice/pkg/config"
	apperrors "smartoffice/pkg/errors"
	httputil "smartoffice/pkg/http"
	"smartoffice/pkg/logger"
	"smartoffice/pkg/metrics"
	"smartoffice/pkg/middleware"
	"smartoffice/pkg/model"
	"testing"
	"time"

	"github.com/julienschmidt/httprouter"
)

var (
	memberU1 = model.Principal{SubjectID: "u1", Role: model.RoleMember, DisplayName: "User One"}
	memberU4 = model.Principal{SubjectID: "u4", Role: model.RoleMember, DisplayName: "User Four"}
	adminP   = model.Principal{SubjectID: "admin-1", Role: model.RoleAdmin, DisplayName: "Office Admin"}
)

type testServer struct {
	router *httprouter.Router
	repo   repository.AssetRepository
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	cfg := &config.Config{
		Log:          logger.Discard(),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 5 * time.Second,
	}
	repo := repository.NewMemoryAssetRepository()
	svc := service.NewAssetService(repo, validator.NewAssetValidator(cfg.Log), metrics.NewRecorder(), cfg)

	router := httprouter.New()
	NewAssetHandler(svc, cfg.Log).RegisterRoutes(router)
	return &testServer{router: router, repo: repo}
}

func (s *testServer) do(t *testing.T, method, path string, body any, principal *model.Principal) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if principal != nil {
		req = req.WithContext(middleware.WithPrincipal(req.Context(), *principal))
	}

	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func (s *testServer) seed(t *testing.T, asset model.Asset) string {
	t.Helper()
	if err := s.repo.Create(context.Background(), &asset); err != nil {
		t.Fatalf("seed: %v", err)
	}
	return asset.ID
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) httputil.ErrorResponse {
	t.Helper()
	var body httputil.ErrorResponse
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	return body
}

func TestUpdate_StatusMapping(t *testing.T) {
	srv := newTestServer(t)
	free := srv.seed(t, model.Asset{Name: "Desk", Type: "Desk", IsAvailable: true})
	heldByU1 := srv.seed(t, model.Asset{Name: "Room", Type: "Room", IsAvailable: false, BookedBy: "u1"})
	manual := srv.seed(t, model.Asset{Name: "Lab", Type: "Lab", IsAvailable: false, BookedBy: model.ManualHolder})

	tests := []struct {
		name       string
		id         string
		body       any
		principal  *model.Principal
		wantStatus int
		wantCode   string
	}{
		{"book", free, map[string]any{"isAvailable": false}, &memberU1, http.StatusNoContent, ""},
		{"second member books held asset", free, map[string]any{"isAvailable": false}, &memberU4, http.StatusConflict, apperrors.CodeConflict},
		{"other member releases", heldByU1, map[string]any{"isAvailable": true}, &memberU4, http.StatusForbidden, apperrors.CodeForbidden},
		{"member releases manual hold", manual, map[string]any{"isAvailable": true}, &memberU4, http.StatusForbidden, apperrors.CodeForbidden},
		{"holder releases", heldByU1, map[string]any{"isAvailable": true}, &memberU1, http.StatusNoContent, ""},
		{"unknown id", "1b4e28ba-2fa1-11d2-883f-0016d3cca427", map[string]any{"isAvailable": false}, &memberU1, http.StatusNotFound, apperrors.CodeNotFound},
		{"malformed id", "nope", map[string]any{"isAvailable": false}, &memberU1, http.StatusBadRequest, apperrors.CodeInvalidInput},
		{"invalid body", free, "not-an-object", &memberU1, http.StatusBadRequest, apperrors.CodeInvalidInput},
		{"no principal", free, map[string]any{"isAvailable": true}, nil, http.StatusUnauthorized, apperrors.CodeUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := srv.do(t, http.MethodPut, "/api/v1/assets/id/"+tt.id, tt.body, tt.principal)
			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d (%s)", rec.Code, tt.wantStatus, rec.Body.String())
			}
			if tt.wantCode != "" {
				if body := decodeError(t, rec); body.Code != tt.wantCode {
					t.Errorf("code = %s, want %s", body.Code, tt.wantCode)
				}
			}
		})
	}
}

func TestUpdate_StaleReleaseAfterHolderChanged(t *testing.T) {
	srv := newTestServer(t)
	id := srv.seed(t, model.Asset{Name: "Desk", Type: "Desk", IsAvailable: false, BookedBy: "u1"})

	// u1's booking was released and u2 booked the asset before u1 retried.
	if ok, err := srv.repo.TryRelease(context.Background(), id, ""); err != nil || !ok {
		t.Fatalf("setup release: ok=%v err=%v", ok, err)
	}
	if ok, err := srv.repo.TryBook(context.Background(), id, "u2", "User Two"); err != nil || !ok {
		t.Fatalf("setup book: ok=%v err=%v", ok, err)
	}

	rec := srv.do(t, http.MethodPut, "/api/v1/assets/id/"+id, map[string]any{"isAvailable": true}, &memberU1)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403 once the holder changed", rec.Code)
	}
}

func TestCreateAndDelete(t *testing.T) {
	srv := newTestServer(t)
	body := map[string]any{"name": "Phone booth", "type": "booth"}

	if rec := srv.do(t, http.MethodPost, "/api/v1/assets", body, &memberU1); rec.Code != http.StatusForbidden {
		t.Fatalf("member create status = %d, want 403", rec.Code)
	}

	rec := srv.do(t, http.MethodPost, "/api/v1/assets", body, &adminP)
	if rec.Code != http.StatusCreated {
		t.Fatalf("admin create status = %d (%s)", rec.Code, rec.Body.String())
	}

	var created struct {
		Data model.Asset `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&created); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if created.Data.ID == "" || created.Data.Type != "Booth" || !created.Data.IsAvailable {
		t.Errorf("unexpected created asset: %+v", created.Data)
	}

	if rec := srv.do(t, http.MethodDelete, "/api/v1/assets/id/"+created.Data.ID, nil, &memberU1); rec.Code != http.StatusForbidden {
		t.Errorf("member delete status = %d, want 403", rec.Code)
	}
	if rec := srv.do(t, http.MethodDelete, "/api/v1/assets/id/"+created.Data.ID, nil, &adminP); rec.Code != http.StatusNoContent {
		t.Errorf("admin delete status = %d, want 204", rec.Code)
	}
	if rec := srv.do(t, http.MethodGet, "/api/v1/assets/id/"+created.Data.ID, nil, &adminP); rec.Code != http.StatusNotFound {
		t.Errorf("get after delete status = %d, want 404", rec.Code)
	}
}

func TestGetAll_AndStats(t *testing.T) {
	srv := newTestServer(t)
	srv.seed(t, model.Asset{Name: "Desk 1", Type: "Desk", IsAvailable: true})
	srv.seed(t, model.Asset{Name: "Desk 2", Type: "Desk", IsAvailable: false, BookedBy: "u1"})
	srv.seed(t, model.Asset{Name: "Room 1", Type: "Room", IsAvailable: true})

	rec := srv.do(t, http.MethodGet, "/api/v1/assets?type=desk&available=true&limit=5", nil, &memberU1)
	if rec.Code != http.StatusOK {
		t.Fatalf("list status = %d", rec.Code)
	}
	var page struct {
		Data       []model.Asset `json:"data"`
		TotalCount int64         `json:"total_count"`
		Limit      int           `json:"limit"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&page); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if page.TotalCount != 1 || len(page.Data) != 1 || page.Data[0].Name != "Desk 1" || page.Limit != 5 {
		t.Errorf("unexpected page: %+v", page)
	}

	if rec := srv.do(t, http.MethodGet, "/api/v1/assets?limit=x", nil, &memberU1); rec.Code != http.StatusBadRequest {
		t.Errorf("bad limit status = %d, want 400", rec.Code)
	}

	rec = srv.do(t, http.MethodGet, "/api/v1/assets/stats", nil, &memberU1)
	if rec.Code != http.StatusOK {
		t.Fatalf("stats status = %d", rec.Code)
	}
	var stats struct {
		Data model.AssetStats `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&stats); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if stats.Data.Total != 3 || stats.Data.InUse != 1 {
		t.Errorf("unexpected stats: %+v", stats.Data)
	}
}

func TestHealth_MemoryBackend(t *testing.T) {
	router := httprouter.New()
	NewHealthHandler(nil, logger.Discard()).RegisterRoutes(router)

	for _, path := range []string{"/health", "/ready"} {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		if rec.Code != http.StatusOK {
			t.Errorf("%s status = %d, want 200", path, rec.Code)
		}
	}
}
