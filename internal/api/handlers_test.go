package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"github.com/in-nis/academy-grid/internal/config"
	"github.com/in-nis/academy-grid/internal/db"
	"github.com/in-nis/academy-grid/internal/grid"
)

var testCfg = &config.Config{JWT_SECRET: "test-secret"}

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Silent),
	})
	if err != nil {
		t.Fatal(err)
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		t.Fatal(err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })
	if err := db.Migrate(gdb); err != nil {
		t.Fatal(err)
	}

	svc := grid.NewService(db.NewGridStore(gdb))
	return SetupRouter(testCfg, svc, sqlDB.Ping)
}

func bearer(t *testing.T) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "staff-1",
		"exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte(testCfg.JWT_SECRET))
	if err != nil {
		t.Fatal(err)
	}
	return "Bearer " + token
}

func do(t *testing.T, r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatal(err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", bearer(t))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	r := newTestRouter(t)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
}

func TestHealth_PingFailure(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := SetupRouter(testCfg, grid.NewService(nil), func() error { return errors.New("down") })
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	if w.Code != http.StatusInternalServerError {
		t.Errorf("expected 500, got %d", w.Code)
	}
}

func TestGridRoutesRequireToken(t *testing.T) {
	r := newTestRouter(t)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/academies/a1/schedule/grid", nil))
	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
}

func TestUnknownTable(t *testing.T) {
	r := newTestRouter(t)
	w := do(t, r, http.MethodGet, "/api/v1/academies/a1/lunch/times", nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
}

func TestTimesLifecycle(t *testing.T) {
	r := newTestRouter(t)
	base := "/api/v1/academies/a1/schedule/times"

	for _, label := range []string{"9:00", "07:30", "13:00"} {
		if w := do(t, r, http.MethodPost, base, RegisterTimeRequest{Time: label}); w.Code != http.StatusCreated {
			t.Fatalf("register %s: %d %s", label, w.Code, w.Body.String())
		}
	}

	w := do(t, r, http.MethodGet, base, nil)
	var got TimesResponse
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatal(err)
	}
	want := []string{"09:00", "13:00", "07:30"}
	if len(got.Times) != len(want) {
		t.Fatalf("times = %v, want %v", got.Times, want)
	}
	for i := range want {
		if got.Times[i] != want[i] {
			t.Errorf("times = %v, want %v", got.Times, want)
			break
		}
	}

	if w := do(t, r, http.MethodDelete, base+"/13:00", nil); w.Code != http.StatusOK {
		t.Fatalf("remove: %d %s", w.Code, w.Body.String())
	}
	w = do(t, r, http.MethodGet, base, nil)
	got = TimesResponse{}
	json.Unmarshal(w.Body.Bytes(), &got)
	if len(got.Times) != 2 {
		t.Errorf("expected 2 times after removal, got %v", got.Times)
	}
}

func TestRegisterTime_Invalid(t *testing.T) {
	r := newTestRouter(t)
	tests := []struct {
		name string
		body any
	}{
		{name: "missing time", body: map[string]string{}},
		{name: "malformed time", body: RegisterTimeRequest{Time: "25:99"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(t, r, http.MethodPost, "/api/v1/academies/a1/schedule/times", tt.body)
			if w.Code != http.StatusBadRequest {
				t.Errorf("expected 400, got %d", w.Code)
			}
			var resp ErrorResponse
			json.Unmarshal(w.Body.Bytes(), &resp)
			if resp.Code != "validation_failed" {
				t.Errorf("expected validation_failed, got %q", resp.Code)
			}
		})
	}
}

func TestUpsertCell_Outcomes(t *testing.T) {
	r := newTestRouter(t)
	path := "/api/v1/academies/a1/schedule/cells"
	day := 0

	steps := []struct {
		content string
		want    grid.Outcome
	}{
		{"math", grid.OutcomeInserted},
		{"physics", grid.OutcomeUpdated},
		{"", grid.OutcomeDeleted},
	}
	for _, step := range steps {
		w := do(t, r, http.MethodPut, path, UpsertCellRequest{Time: "09:00", Day: &day, Category: "D", Content: step.content})
		if w.Code != http.StatusOK {
			t.Fatalf("upsert %q: %d %s", step.content, w.Code, w.Body.String())
		}
		var resp UpsertCellResponse
		json.Unmarshal(w.Body.Bytes(), &resp)
		if resp.Outcome != step.want {
			t.Errorf("upsert %q = %s, want %s", step.content, resp.Outcome, step.want)
		}
	}
}

func TestUpsertCell_Invalid(t *testing.T) {
	r := newTestRouter(t)
	path := "/api/v1/academies/a1/schedule/cells"
	badDay := 7
	day := 1

	tests := []struct {
		name string
		body any
	}{
		{name: "missing day", body: map[string]any{"time": "09:00", "category": "D", "content": "x"}},
		{name: "day out of range", body: UpsertCellRequest{Time: "09:00", Day: &badDay, Category: "D", Content: "x"}},
		{name: "unknown category", body: UpsertCellRequest{Time: "09:00", Day: &day, Category: "X", Content: "x"}},
		{name: "bad time", body: UpsertCellRequest{Time: "noon", Day: &day, Category: "D", Content: "x"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if w := do(t, r, http.MethodPut, path, tt.body); w.Code != http.StatusBadRequest {
				t.Errorf("expected 400, got %d: %s", w.Code, w.Body.String())
			}
		})
	}
}

func TestGetGrid_PickupIgnoresCategory(t *testing.T) {
	r := newTestRouter(t)
	day := 2
	w := do(t, r, http.MethodPut, "/api/v1/academies/a1/pickup/cells",
		UpsertCellRequest{Time: "15:00", Day: &day, Category: "D", Content: "van"})
	if w.Code != http.StatusOK {
		t.Fatalf("upsert: %d %s", w.Code, w.Body.String())
	}

	w = do(t, r, http.MethodGet, "/api/v1/academies/a1/pickup/grid", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("grid: %d", w.Code)
	}
	var g grid.Grid
	if err := json.Unmarshal(w.Body.Bytes(), &g); err != nil {
		t.Fatal(err)
	}
	if got := g.At("15:00", 2, ""); got != "van" {
		t.Errorf("expected van at 15:00 Wed, got %q", got)
	}

	w = do(t, r, http.MethodGet, "/api/v1/academies/a2/pickup/grid", nil)
	g = grid.Grid{}
	json.Unmarshal(w.Body.Bytes(), &g)
	if len(g.Rows) != 0 {
		t.Errorf("other academy must see an empty grid, got %d rows", len(g.Rows))
	}
}

func TestExportImportRoundTrip(t *testing.T) {
	r := newTestRouter(t)
	day := 3
	do(t, r, http.MethodPost, "/api/v1/academies/a1/schedule/times", RegisterTimeRequest{Time: "08:00"})
	do(t, r, http.MethodPut, "/api/v1/academies/a1/schedule/cells",
		UpsertCellRequest{Time: "10:00", Day: &day, Category: "S", Content: "chess"})

	w := do(t, r, http.MethodGet, "/api/v1/academies/a1/schedule/grid/export", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("export: %d %s", w.Code, w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); ct != xlsxContentType {
		t.Errorf("unexpected content type %q", ct)
	}

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", "a1-schedule.xlsx")
	if err != nil {
		t.Fatal(err)
	}
	part.Write(w.Body.Bytes())
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/academies/a2/schedule/grid/import", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", bearer(t))
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("import: %d %s", w.Code, w.Body.String())
	}
	var resp ImportResponse
	json.Unmarshal(w.Body.Bytes(), &resp)
	if resp.Rows != 2 || resp.Cells != 1 {
		t.Errorf("expected 2 rows and 1 cell, got %+v", resp)
	}

	w = do(t, r, http.MethodGet, "/api/v1/academies/a2/schedule/grid", nil)
	var g grid.Grid
	json.Unmarshal(w.Body.Bytes(), &g)
	if got := g.At("10:00", 3, "S"); got != "chess" {
		t.Errorf("expected imported cell, got %q", got)
	}
}

func TestImportGrid_MissingFile(t *testing.T) {
	r := newTestRouter(t)
	w := do(t, r, http.MethodPost, "/api/v1/academies/a1/schedule/grid/import", nil)
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}
