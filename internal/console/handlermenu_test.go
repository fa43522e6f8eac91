package console

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/ecoeats/seller-console/internal/gateway"
)

type menuPageResponse struct {
	Data menuListResponse `json:"data"`
}

func TestListMenuPaginates(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		items := make([]string, 0, 12)
		for i := 1; i <= 12; i++ {
			items = append(items, fmt.Sprintf(`{"menuNo":%d,"name":"Dish %d","price":%d}`, i, i, i*1000))
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"status":200,"menuList":[%s]}`, strings.Join(items, ","))
	}))
	defer backend.Close()

	h := newTestHandler(backend.URL)
	router := newTestRouter(h)
	_, cookie := signIn(h)

	req := httptest.NewRequest(http.MethodGet, "/menu/?page=3", nil)
	req.AddCookie(cookie)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	var resp menuPageResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("cannot decode response: %v", err)
	}
	if resp.Data.TotalPages != 3 {
		t.Errorf("totalPages = %d, want 3", resp.Data.TotalPages)
	}
	if len(resp.Data.Menu) != 2 {
		t.Errorf("page 3 length = %d, want 2", len(resp.Data.Menu))
	}
	// Newest entries come first, so page 3 holds the two oldest.
	if resp.Data.Menu[0].MenuNo != 2 || resp.Data.Menu[1].MenuNo != 1 {
		t.Errorf("page 3 = %+v, want menu 2 then 1", resp.Data.Menu)
	}
}

func TestListMenuConcurrentRequestsSameSession(t *testing.T) {
	// The backend alternates between a one-item and a twelve-item catalog, so
	// interleaved requests sharing the session's pager exercise mismatched
	// counts. Every response must still slice its own fetch result.
	var calls int64
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := 1
		if atomic.AddInt64(&calls, 1)%2 == 0 {
			n = 12
		}
		items := make([]string, 0, n)
		for i := 1; i <= n; i++ {
			items = append(items, fmt.Sprintf(`{"menuNo":%d,"name":"Dish %d","price":%d}`, i, i, i*1000))
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"status":200,"menuList":[%s]}`, strings.Join(items, ","))
	}))
	defer backend.Close()

	h := newTestHandler(backend.URL)
	router := newTestRouter(h)
	_, cookie := signIn(h)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			req := httptest.NewRequest(http.MethodGet, "/menu/?page=3", nil)
			req.AddCookie(cookie)
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			if rec.Code != http.StatusOK {
				t.Errorf("status = %d, body %s", rec.Code, rec.Body.String())
				return
			}

			var resp menuPageResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Errorf("cannot decode response: %v", err)
				return
			}
			switch resp.Data.TotalPages {
			case 1:
				if len(resp.Data.Menu) != 1 {
					t.Errorf("one-item catalog returned %d items, want 1", len(resp.Data.Menu))
				}
			case 3:
				if len(resp.Data.Menu) != 2 {
					t.Errorf("page 3 of twelve returned %d items, want 2", len(resp.Data.Menu))
				}
			default:
				t.Errorf("totalPages = %d, want 1 or 3", resp.Data.TotalPages)
			}
		}()
	}
	wg.Wait()
}

func TestAddMenuValidatesInput(t *testing.T) {
	h := newTestHandler("http://backend.invalid")
	router := newTestRouter(h)
	_, cookie := signIn(h)

	tests := []struct {
		name string
		body string
	}{
		{name: "missingName", body: `{"price":1000}`},
		{name: "zeroPrice", body: `{"name":"Bread"}`},
		{name: "negativePrice", body: `{"name":"Bread","price":-10}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/menu/", strings.NewReader(tt.body))
			req.AddCookie(cookie)
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
			}
		})
	}
}

func TestUpdateDailyMenuForwardsUpdates(t *testing.T) {
	var got []gateway.DailyMenuUpdate
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/menu/daily/update" {
			t.Errorf("Path = %s, want /api/menu/daily/update", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Fatalf("cannot decode backend payload: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":200}`))
	}))
	defer backend.Close()

	h := newTestHandler(backend.URL)
	router := newTestRouter(h)
	_, cookie := signIn(h)

	body := strings.NewReader(`[{"dailymenuNo":7,"price":2500,"qty":4}]`)
	req := httptest.NewRequest(http.MethodPut, "/daily-menu/", body)
	req.AddCookie(cookie)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	if len(got) != 1 || got[0].DailyMenuNo != 7 || got[0].Price != 2500 || got[0].Quantity != 4 {
		t.Errorf("backend payload = %+v, want the submitted update", got)
	}
}
