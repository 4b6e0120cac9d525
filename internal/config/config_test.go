package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	cfg := Load()
	if cfg.HTTPAddr == "" || cfg.PostgresDSN == "" || cfg.ServiceName == "" {
		t.Fatalf("defaults missing: %+v", cfg)
	}
	if len(cfg.KafkaBrokers) == 0 {
		t.Fatal("expected at least one default broker")
	}
}

func TestSplitCSV(t *testing.T) {
	cases := []struct {
		in   string
		want int
	}{
		{"a:9092", 1},
		{"a:9092,b:9092", 2},
		{"a:9092, b:9092 , ", 2},
		{"", 0},
	}
	for _, c := range cases {
		if got := splitCSV(c.in); len(got) != c.want {
			t.Errorf("splitCSV(%q) = %v, want %d entries", c.in, got, c.want)
		}
	}
}

func TestGetenvDefault(t *testing.T) {
	t.Setenv("RICEMILL_TEST_KEY", "set")
	if v := getenv("RICEMILL_TEST_KEY", "def"); v != "set" {
		t.Fatalf("getenv = %q, want set", v)
	}
	if v := getenv("RICEMILL_TEST_KEY_MISSING", "def"); v != "def" {
		t.Fatalf("getenv = %q, want def", v)
	}
}
