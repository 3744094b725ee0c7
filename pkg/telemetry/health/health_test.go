package health

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"esfpc/fpcheck/pkg/rules/engine"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		timeout time.Duration
		want    time.Duration
	}{
		{"default timeout", 0, 5 * time.Second},
		{"negative timeout", -time.Second, 5 * time.Second},
		{"custom timeout", 10 * time.Second, 10 * time.Second},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New(tt.timeout)
			if c.checkTimeout != tt.want {
				t.Errorf("timeout = %v, want %v", c.checkTimeout, tt.want)
			}
		})
	}
}

func TestRegisterAndList(t *testing.T) {
	c := New(time.Second)
	c.RegisterCheck("b", func(context.Context) error { return nil })
	c.RegisterCheck("a", func(context.Context) error { return nil })
	c.RegisterCheck("a", func(context.Context) error { return nil })

	got := c.ListChecks()
	if len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Fatalf("ListChecks() = %v, want [a b]", got)
	}

	c.UnregisterCheck("a")
	if got := c.ListChecks(); len(got) != 1 {
		t.Fatalf("ListChecks() after unregister = %v", got)
	}
}

func TestCheckReadiness(t *testing.T) {
	tests := []struct {
		name   string
		checks map[string]CheckFunc
		want   string
	}{
		{"no checks", nil, StatusReady},
		{
			"all pass",
			map[string]CheckFunc{
				"a": func(context.Context) error { return nil },
				"b": func(context.Context) error { return nil },
			},
			StatusReady,
		},
		{
			"one fails",
			map[string]CheckFunc{
				"a": func(context.Context) error { return nil },
				"b": func(context.Context) error { return errors.New("down") },
			},
			StatusNotReady,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New(time.Second)
			for name, fn := range tt.checks {
				c.RegisterCheck(name, fn)
			}
			got := c.CheckReadiness(context.Background())
			if got.Status != tt.want {
				t.Errorf("status = %q, want %q", got.Status, tt.want)
			}
			if len(got.Checks) != len(tt.checks) {
				t.Errorf("got %d results, want %d", len(got.Checks), len(tt.checks))
			}
		})
	}
}

func TestCheckTimeout(t *testing.T) {
	c := New(20 * time.Millisecond)
	c.RegisterCheck("slow", func(ctx context.Context) error {
		<-ctx.Done()
		time.Sleep(50 * time.Millisecond)
		return nil
	})

	got := c.CheckReadiness(context.Background())
	res := got.Checks["slow"]
	if res.Status != StatusUnhealthy || res.Message != ErrCheckTimeout.Error() {
		t.Fatalf("slow check = %+v, want timeout", res)
	}
}

func TestRuleSetCheck(t *testing.T) {
	eng, err := engine.New(nil)
	if err != nil {
		t.Fatalf("engine.New() error = %v", err)
	}
	check := RuleSetCheck(eng)

	if err := check(context.Background()); !errors.Is(err, ErrNoRuleSet) {
		t.Fatalf("before load: err = %v, want ErrNoRuleSet", err)
	}
	if _, err := eng.Swap(engine.NewRuleSet()); err != nil {
		t.Fatalf("Swap() error = %v", err)
	}
	if err := check(context.Background()); err != nil {
		t.Fatalf("after load: err = %v", err)
	}
}

func TestHandlers(t *testing.T) {
	eng, err := engine.New(nil)
	if err != nil {
		t.Fatalf("engine.New() error = %v", err)
	}
	c := New(time.Second)
	c.RegisterCheck("rules", RuleSetCheck(eng))
	mux := http.NewServeMux()
	Register(mux, c, "1.2.3", "abc", "today")

	get := func(path string) *httptest.ResponseRecorder {
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		return rec
	}

	if rec := get("/health"); rec.Code != http.StatusOK {
		t.Errorf("/health = %d, want 200", rec.Code)
	}

	rec := get("/ready")
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("/ready before load = %d, want 503", rec.Code)
	}
	var status HealthStatus
	if err := json.NewDecoder(rec.Body).Decode(&status); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if status.Checks["rules"].Message != ErrNoRuleSet.Error() {
		t.Errorf("rules check message = %q", status.Checks["rules"].Message)
	}

	if _, err := eng.Swap(engine.NewRuleSet()); err != nil {
		t.Fatalf("Swap() error = %v", err)
	}
	if rec := get("/ready"); rec.Code != http.StatusOK {
		t.Errorf("/ready after load = %d, want 200", rec.Code)
	}

	rec = get("/version")
	var info VersionInfo
	if err := json.NewDecoder(rec.Body).Decode(&info); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if info.Version != "1.2.3" || info.Commit != "abc" {
		t.Errorf("version = %+v", info)
	}

	post := httptest.NewRecorder()
	mux.ServeHTTP(post, httptest.NewRequest(http.MethodPost, "/health", nil))
	if post.Code != http.StatusMethodNotAllowed {
		t.Errorf("POST /health = %d, want 405", post.Code)
	}
}
