package router

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"mensa/internal/auth"
	"mensa/internal/config"
	"mensa/internal/coordinator"
	"mensa/internal/schedule"
	"mensa/internal/sensor"

	"github.com/gin-gonic/gin"
)

func testRouter(t *testing.T) (*gin.Engine, *auth.Service) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	authService := auth.NewService(auth.NewInMemoryUserRepository())
	cfgService := config.NewService(config.NewInMemoryRepository(), nil)
	coord := coordinator.New(cfgService)
	cfgService.OnChange(coord.Refresh)

	r := New(Deps{
		Auth:     auth.NewHandler(authService),
		Config:   config.NewHandler(cfgService),
		Schedule: schedule.NewHandler(cfgService),
		Sensors:  sensor.NewHandler(coord),
	})
	return r, authService
}

func TestHealthCheck(t *testing.T) {
	r, _ := testRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
}

func TestConfigRoutesRequireAdmin(t *testing.T) {
	r, _ := testRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/setup", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401 without a token, got %d", w.Code)
	}
}

func TestSetupAndQueryFlow(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret-key-for-testing-only")
	r, authService := testRouter(t)

	if err := authService.EnsureAdmin("admin@school.test", "Secret@123"); err != nil {
		t.Fatalf("failed to seed admin: %v", err)
	}

	// Login
	body, _ := json.Marshal(map[string]string{
		"email":    "admin@school.test",
		"password": "Secret@123",
	})
	req := httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("login failed with status %d: %s", w.Code, w.Body.String())
	}

	var loginResp struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &loginResp); err != nil {
		t.Fatalf("failed to decode login response: %v", err)
	}

	// Setup (2024-09-02 is a Monday)
	body, _ = json.Marshal(map[string]any{
		"start_date": "2024-09-02",
		"start_week": 1,
		"menu_name":  "School Year",
		"menu_csv": "week_number,week_day,main_course,second_course,side,fruit\n" +
			"1,1,Pasta,Chicken,Salad,Apple\n" +
			"1,4,Rice,Fish,Carrots,Banana\n" +
			"2,4,Soup,Beef,Potatoes,Orange\n",
	})
	req = httptest.NewRequest(http.MethodPost, "/setup", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+loginResp.Token)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusCreated {
		t.Fatalf("setup failed with status %d: %s", w.Code, w.Body.String())
	}

	// Ten days after the start: week 2, Thursday.
	req = httptest.NewRequest(http.MethodGet, "/day/2024-09-12", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("day query failed with status %d: %s", w.Code, w.Body.String())
	}

	var dayResp struct {
		Week       int  `json:"week"`
		DayNumber  int  `json:"day_number"`
		IsClosed   bool `json:"is_closed"`
		HasEntry   bool `json:"has_entry"`
		MainCourse struct {
			Value string `json:"value"`
		} `json:"main_course"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &dayResp); err != nil {
		t.Fatalf("failed to decode day response: %v", err)
	}
	if dayResp.Week != 2 || dayResp.DayNumber != 4 {
		t.Fatalf("expected week 2 Thursday, got week %d day %d", dayResp.Week, dayResp.DayNumber)
	}
	if !dayResp.HasEntry || dayResp.MainCourse.Value != "Soup" {
		t.Fatalf("unexpected meal payload: %+v", dayResp)
	}

	// Sensors were refreshed by the configuration change.
	req = httptest.NewRequest(http.MethodGet, "/sensors", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("sensors query failed with status %d: %s", w.Code, w.Body.String())
	}
}
