package router_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"shelter-services/internal/router"
)

func TestHTTP_EndToEnd_AnimalLifecycle(t *testing.T) {
	ts := httptest.NewServer(router.NewShelterRouter(router.Options{}))
	defer ts.Close()

	// 1) Alta de animal
	id := createRecord(t, ts.URL, "/zivotinje", map[string]any{
		"name": "Rex",
		"sex":  "M",
		"age":  3,
	})
	if id != "1" {
		t.Fatalf("expected first id 1, got %s", id)
	}

	// 2) Se lee con los mismos campos + id
	{
		st, body := doReq(t, ts.URL, "GET", "/zivotinje/1", nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 get animal, got %d body=%s", st, string(body))
		}
		var got map[string]any
		_ = json.Unmarshal(body, &got)
		if got["id"] != float64(1) || got["name"] != "Rex" || got["sex"] != "M" || got["age"] != float64(3) {
			t.Fatalf("unexpected animal %s", string(body))
		}
		if _, ok := got["adopted"]; ok {
			t.Fatalf("adopted must be absent until set, got %s", string(body))
		}
	}

	// 3) PATCH adopted
	{
		st, body := doReq(t, ts.URL, "PATCH", "/zivotinje/1", map[string]any{"adopted": true})
		if st != http.StatusOK {
			t.Fatalf("expected 200 patch, got %d body=%s", st, string(body))
		}
		var got map[string]any
		_ = json.Unmarshal(body, &got)
		if got["adopted"] != true || got["name"] != "Rex" {
			t.Fatalf("expected adopted=true with other fields kept, got %s", string(body))
		}
	}

	// 4) DELETE y luego 404
	{
		st, body := doReq(t, ts.URL, "DELETE", "/zivotinje/1", nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 delete, got %d body=%s", st, string(body))
		}
	}
	{
		st, _ := doReq(t, ts.URL, "GET", "/zivotinje/1", nil)
		if st != http.StatusNotFound {
			t.Fatalf("expected 404 after delete, got %d", st)
		}
	}
	{
		st, _ := doReq(t, ts.URL, "DELETE", "/zivotinje/1", nil)
		if st != http.StatusNotFound {
			t.Fatalf("expected 404 on second delete, got %d", st)
		}
	}

	// 5) El contador no retrocede
	next := createRecord(t, ts.URL, "/zivotinje", map[string]any{"name": "Max", "sex": "F", "age": 1})
	if next != "2" {
		t.Fatalf("expected id 2 after delete, got %s", next)
	}
}

func TestHTTP_Animal_Validation(t *testing.T) {
	ts := httptest.NewServer(router.NewShelterRouter(router.Options{}))
	defer ts.Close()

	cases := []struct {
		name string
		body map[string]any
	}{
		{"missing sex", map[string]any{"name": "Rex", "age": 3}},
		{"zero age", map[string]any{"name": "Rex", "sex": "M", "age": 0}},
		{"bad photo url", map[string]any{"name": "Rex", "sex": "M", "age": 3, "photoUrl": "ftp://x/y.png"}},
		{"bad checkup date", map[string]any{"name": "Rex", "sex": "M", "age": 3, "lastCheckupDate": "yesterday"}},
	}
	for _, tc := range cases {
		st, body := doReq(t, ts.URL, "POST", "/zivotinje", tc.body)
		if st != http.StatusBadRequest {
			t.Fatalf("%s: expected 400, got %d body=%s", tc.name, st, string(body))
		}
	}

	// Ningún id consumido por los rechazos
	if id := createRecord(t, ts.URL, "/zivotinje", map[string]any{
		"name":            "Rex",
		"sex":             "M",
		"age":             3,
		"photoUrl":        "https://example.com/rex.jpg",
		"lastCheckupDate": "2024-05-01",
	}); id != "1" {
		t.Fatalf("expected id 1 after rejected creates, got %s", id)
	}
}

func TestHTTP_Animal_PatchRequiresAdopted(t *testing.T) {
	ts := httptest.NewServer(router.NewShelterRouter(router.Options{}))
	defer ts.Close()

	createRecord(t, ts.URL, "/zivotinje", map[string]any{"name": "Rex", "sex": "M", "age": 3})

	if st, _ := doReq(t, ts.URL, "PATCH", "/zivotinje/1", map[string]any{}); st != http.StatusBadRequest {
		t.Fatalf("expected 400 without adopted, got %d", st)
	}
	if st, _ := doReq(t, ts.URL, "PATCH", "/zivotinje/1", map[string]any{"adopted": "yes"}); st != http.StatusBadRequest {
		t.Fatalf("expected 400 for non boolean adopted, got %d", st)
	}
	if st, _ := doReq(t, ts.URL, "PATCH", "/zivotinje/99", map[string]any{"adopted": true}); st != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown animal, got %d", st)
	}
}

func TestHTTP_Donations_MissingTypeAndPut(t *testing.T) {
	ts := httptest.NewServer(router.NewShelterRouter(router.Options{}))
	defer ts.Close()

	if st, body := doReq(t, ts.URL, "POST", "/donacije", map[string]any{"category": "food"}); st != http.StatusBadRequest {
		t.Fatalf("expected 400 without type, got %d body=%s", st, string(body))
	}
	if n := countRecords(t, ts.URL, "/donacije"); n != 0 {
		t.Fatalf("expected no donations, got %d", n)
	}

	id := createRecord(t, ts.URL, "/donacije", map[string]any{"type": "money", "amount": 50, "category": "food"})

	st, body := doReq(t, ts.URL, "PUT", "/donacije/"+id, map[string]any{"description": "monthly"})
	if st != http.StatusOK {
		t.Fatalf("expected 200 put, got %d body=%s", st, string(body))
	}
	var got map[string]any
	_ = json.Unmarshal(body, &got)
	if got["description"] != "monthly" || got["type"] != "money" || got["amount"] != float64(50) {
		t.Fatalf("expected merged donation, got %s", string(body))
	}

	if st, _ := doReq(t, ts.URL, "PUT", "/donacije/404", map[string]any{"type": "x"}); st != http.StatusNotFound {
		t.Fatalf("expected 404 put unknown, got %d", st)
	}
}

func TestHTTP_Announcements_RoundTrip(t *testing.T) {
	ts := httptest.NewServer(router.NewShelterRouter(router.Options{}))
	defer ts.Close()

	id := createRecord(t, ts.URL, "/obavijesti", map[string]any{
		"title":     "Open day",
		"date":      "2024-06-01T10:00:00Z",
		"text":      "Come visit",
		"important": true,
	})

	st, body := doReq(t, ts.URL, "GET", "/obavijesti/"+id, nil)
	if st != http.StatusOK {
		t.Fatalf("expected 200, got %d", st)
	}
	var got map[string]any
	_ = json.Unmarshal(body, &got)
	if got["title"] != "Open day" || got["date"] != "2024-06-01T10:00:00Z" || got["important"] != true {
		t.Fatalf("unexpected announcement %s", string(body))
	}
}

func TestHTTP_Reservations_MissingEmail(t *testing.T) {
	ts := httptest.NewServer(router.NewBookingRouter(router.Options{}))
	defer ts.Close()

	st, body := doReq(t, ts.URL, "POST", "/reservations", map[string]any{
		"name":    "Ana",
		"surname": "Horvat",
		"class":   "A1",
	})
	if st != http.StatusBadRequest {
		t.Fatalf("expected 400 without email, got %d body=%s", st, string(body))
	}
	if !strings.Contains(string(body), "email") {
		t.Fatalf("expected message naming email, got %q", string(body))
	}
	if n := countRecords(t, ts.URL, "/reservations"); n != 0 {
		t.Fatalf("expected no reservations, got %d", n)
	}

	if st, _ := doReq(t, ts.URL, "POST", "/reservations", map[string]any{"email": "not-an-email"}); st != http.StatusBadRequest {
		t.Fatalf("expected 400 for malformed email, got %d", st)
	}

	id := createRecord(t, ts.URL, "/reservations", map[string]any{
		"name":      "Ana",
		"email":     "ana@example.com",
		"startDate": "2024-07-01",
		"endDate":   "2024-07-10",
	})
	if id != "1" {
		t.Fatalf("expected first reservation id 1, got %s", id)
	}
}

func TestHTTP_Booking_CountersArePerResource(t *testing.T) {
	ts := httptest.NewServer(router.NewBookingRouter(router.Options{}))
	defer ts.Close()

	if id := createRecord(t, ts.URL, "/cities", map[string]any{"name": "Zagreb", "country": "HR"}); id != "1" {
		t.Fatalf("expected city id 1, got %s", id)
	}
	if id := createRecord(t, ts.URL, "/classes", map[string]any{"name": "Beginners"}); id != "1" {
		t.Fatalf("expected class id 1, got %s", id)
	}
	if id := createRecord(t, ts.URL, "/cities", map[string]any{"name": "Split"}); id != "2" {
		t.Fatalf("expected city id 2, got %s", id)
	}
	if st, _ := doReq(t, ts.URL, "POST", "/classes", map[string]any{}); st != http.StatusBadRequest {
		t.Fatalf("expected 400 for class without name, got %d", st)
	}
}

func TestHTTP_ConcurrentCreatesGetDistinctIDs(t *testing.T) {
	ts := httptest.NewServer(router.NewBookingRouter(router.Options{}))
	defer ts.Close()

	const n = 30
	var (
		wg  sync.WaitGroup
		mu  sync.Mutex
		ids = map[string]bool{}
	)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			b, _ := json.Marshal(map[string]any{"name": fmt.Sprintf("city-%d", i)})
			res, err := http.Post(ts.URL+"/cities", "application/json", bytes.NewReader(b))
			if err != nil {
				t.Errorf("post: %v", err)
				return
			}
			defer res.Body.Close()
			loc := res.Header.Get("Location")
			mu.Lock()
			defer mu.Unlock()
			if ids[loc] {
				t.Errorf("duplicate id %s", loc)
			}
			ids[loc] = true
		}(i)
	}
	wg.Wait()

	if len(ids) != n || countRecords(t, ts.URL, "/cities") != n {
		t.Fatalf("expected %d distinct cities, got %d", n, len(ids))
	}
}

func TestHTTP_Platform(t *testing.T) {
	ts := httptest.NewServer(router.NewShelterRouter(router.Options{}))
	defer ts.Close()

	if st, body := doReq(t, ts.URL, "GET", "/health", nil); st != http.StatusOK || string(body) != "ok" {
		t.Fatalf("health: %d %s", st, string(body))
	}
	if st, body := doReq(t, ts.URL, "GET", "/metrics", nil); st != http.StatusOK || !strings.Contains(string(body), "shelter_http_requests_total") {
		t.Fatalf("metrics: %d", st)
	}
	if st, body := doReq(t, ts.URL, "GET", "/swagger/doc.json", nil); st != http.StatusOK || !strings.Contains(string(body), "/zivotinje/{id}") {
		t.Fatalf("swagger doc: %d", st)
	}

	req, _ := http.NewRequest(http.MethodGet, ts.URL+"/zivotinje", nil)
	req.Header.Set("Origin", "http://frontend.test")
	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	res.Body.Close()
	if res.Header.Get("Access-Control-Allow-Origin") != "*" {
		t.Fatalf("expected CORS header, got %q", res.Header.Get("Access-Control-Allow-Origin"))
	}
}

func createRecord(t *testing.T, baseURL, path string, payload map[string]any) string {
	t.Helper()

	b, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("json marshal: %v", err)
	}
	res, err := http.Post(baseURL+path, "application/json", bytes.NewReader(b))
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer res.Body.Close()

	body, _ := io.ReadAll(res.Body)
	if res.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 create %s, got %d body=%s", path, res.StatusCode, string(body))
	}

	loc := res.Header.Get("Location")
	if !strings.HasPrefix(loc, path+"/") {
		t.Fatalf("create %s: unexpected Location %q", path, loc)
	}
	return strings.TrimPrefix(loc, path+"/")
}

func countRecords(t *testing.T, baseURL, path string) int {
	t.Helper()

	st, body := doReq(t, baseURL, "GET", path, nil)
	if st != http.StatusOK {
		t.Fatalf("expected 200 list %s, got %d", path, st)
	}
	var items []map[string]any
	if err := json.Unmarshal(body, &items); err != nil {
		t.Fatalf("list %s: %v body=%s", path, err, string(body))
	}
	return len(items)
}

func doReq(t *testing.T, baseURL, method, path string, body any) (int, []byte) {
	t.Helper()

	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("json marshal: %v", err)
		}
		rdr = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, baseURL+path, rdr)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer res.Body.Close()

	respBody, _ := io.ReadAll(res.Body)
	return res.StatusCode, respBody
}
