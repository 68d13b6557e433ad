package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/julienschmidt/httprouter"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestObserveTransition(t *testing.T) {
	r := NewRecorder()

	r.ObserveTransition(TransitionBook, OutcomeSuccess)
	r.ObserveTransition(TransitionBook, OutcomeSuccess)
	r.ObserveTransition(TransitionBook, OutcomeConflict)

	if got := testutil.ToFloat64(r.Counter(TransitionBook, OutcomeSuccess)); got != 2 {
		t.Errorf("book/success = %v, want 2", got)
	}
	if got := testutil.ToFloat64(r.Counter(TransitionBook, OutcomeConflict)); got != 1 {
		t.Errorf("book/conflict = %v, want 1", got)
	}
}

func TestNilRecorder(t *testing.T) {
	var r *Recorder
	r.ObserveTransition(TransitionRelease, OutcomeForbidden)
}

func TestMetricsEndpoint(t *testing.T) {
	r := NewRecorder()
	r.ObserveTransition(TransitionRelease, OutcomeSuccess)

	router := httprouter.New()
	r.RegisterRoutes(router)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, `smartoffice_assets_transitions_total{outcome="success",transition="release"} 1`) {
		t.Errorf("metrics output missing transition counter:\n%s", body)
	}
}
