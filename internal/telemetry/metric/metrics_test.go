package metric

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/yndnr/treetable-go/pkg/treetable"
)

// Compile-time check that Registry satisfies the observer contract.
var _ treetable.Observer = (*Registry)(nil)

func TestObserveOpCountsByStatus(t *testing.T) {
	r := NewRegistry()

	r.ObserveOp("get", nil, time.Microsecond)
	r.ObserveOp("get", nil, time.Microsecond)
	r.ObserveOp("get", errors.New("boom"), time.Microsecond)

	body := scrape(t, r)
	if !strings.Contains(body, `treetable_ops_total{op="get",status="ok"} 2`) {
		t.Errorf("ok counter missing or wrong:\n%s", body)
	}
	if !strings.Contains(body, `treetable_ops_total{op="get",status="error"} 1`) {
		t.Errorf("error counter missing or wrong:\n%s", body)
	}
}

func TestObserveTableGauges(t *testing.T) {
	r := NewRegistry()

	r.ObserveTable(42, 64)

	body := scrape(t, r)
	if !strings.Contains(body, "treetable_entries 42") {
		t.Errorf("entries gauge missing:\n%s", body)
	}
	if !strings.Contains(body, "treetable_buckets 64") {
		t.Errorf("buckets gauge missing:\n%s", body)
	}
}

func TestObserveGrowth(t *testing.T) {
	r := NewRegistry()

	r.ObserveGrowth()
	r.ObserveGrowth()

	if !strings.Contains(scrape(t, r), "treetable_growths_total 2") {
		t.Error("growths counter missing or wrong")
	}
}

func TestWiredIntoMap(t *testing.T) {
	r := NewRegistry()

	m, err := treetable.New[int, int](2)
	if err != nil {
		t.Fatal(err)
	}
	m.Observe(r)

	m.Set(1, 1)
	m.Set(2, 2)
	m.Set(3, 3) // triggers growth
	m.Get(1)

	body := scrape(t, r)
	if !strings.Contains(body, "treetable_growths_total 1") {
		t.Errorf("growth not observed through Map:\n%s", body)
	}
	if !strings.Contains(body, "treetable_entries 3") {
		t.Errorf("size not observed through Map:\n%s", body)
	}
}

func scrape(t *testing.T, r *Registry) string {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("/metrics status = %d", rec.Code)
	}
	return rec.Body.String()
}
