package country

import (
	"encoding/json"
	"testing"
	"time"
)

func TestNew(t *testing.T) {
	c := New("Testland")
	if c.Name != "Testland" || c.NameKey != "testland" {
		t.Fatalf("unexpected entity: %+v", c)
	}

	c = New("")
	if c.Name != PlaceholderName || c.NameKey != "unknown" {
		t.Fatalf("empty name should use placeholder, got %+v", c)
	}
}

func TestKey(t *testing.T) {
	cases := map[string]string{
		"Testland":      "testland",
		"TESTLAND":      "testland",
		"Côte d'Ivoire": "côte d'ivoire",
		"":              "",
	}
	for in, want := range cases {
		if got := Key(in); got != want {
			t.Fatalf("Key(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestToView_NullableFields(t *testing.T) {
	c := New("Erewhon")
	c.Population = 500

	data, err := json.Marshal(c.ToView())
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	for _, field := range []string{"capital", "region", "currency_code", "exchange_rate", "estimated_gdp", "flag_url", "last_refreshed_at"} {
		v, ok := raw[field]
		if !ok {
			t.Fatalf("field %q missing from view", field)
		}
		if v != nil {
			t.Fatalf("field %q should serialize as null, got %v", field, v)
		}
	}
}

func TestToView_Timestamp(t *testing.T) {
	loc := time.FixedZone("UTC+2", 2*3600)
	ts := time.Date(2025, 6, 1, 14, 0, 0, 0, loc)

	c := New("Testland")
	c.LastRefreshedAt = &ts

	v := c.ToView()
	if v.LastRefreshedAt == nil || *v.LastRefreshedAt != "2025-06-01T12:00:00Z" {
		t.Fatalf("expected UTC RFC3339 timestamp, got %v", v.LastRefreshedAt)
	}
}

func TestViews_EmptyIsNonNil(t *testing.T) {
	views := Views(nil)
	if views == nil {
		t.Fatal("expected non-nil slice for empty input")
	}
	if len(views) != 0 {
		t.Fatalf("expected empty slice, got %d entries", len(views))
	}
}
