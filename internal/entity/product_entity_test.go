package entity

import (
	"encoding/json"
	"testing"
)

func TestProductIDUnmarshal(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantID  ProductID
		wantKey string
		wantErr bool
	}{
		{"number", `{"id": 12, "name": "Cleanser"}`, "12", "12", false},
		{"string", `{"id": "abc", "name": "Cleanser"}`, "abc", "abc", false},
		{"missing", `{"name": "Cleanser"}`, "", "Cleanser", false},
		{"null", `{"id": null, "name": "Cleanser"}`, "", "Cleanser", false},
		{"numeric zero falls back to name", `{"id": 0, "name": "Cleanser"}`, "", "Cleanser", false},
		{"numeric zero float falls back to name", `{"id": 0.0, "name": "Cleanser"}`, "", "Cleanser", false},
		{"string zero is an id", `{"id": "0", "name": "Cleanser"}`, "0", "0", false},
		{"empty string falls back to name", `{"id": "", "name": "Cleanser"}`, "", "Cleanser", false},
		{"object rejected", `{"id": {}, "name": "Cleanser"}`, "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var p Product
			err := json.Unmarshal([]byte(tt.raw), &p)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if p.ID != tt.wantID {
				t.Errorf("ID = %q, want %q", p.ID, tt.wantID)
			}
			if got := p.DerivedKey(); got != tt.wantKey {
				t.Errorf("DerivedKey() = %q, want %q", got, tt.wantKey)
			}
		})
	}
}

func TestWithKeyKeepsExistingKey(t *testing.T) {
	p := Product{ID: "1", Name: "Cleanser", Key: "legacy"}
	if got := p.WithKey().Key; got != "legacy" {
		t.Errorf("WithKey().Key = %q, want legacy", got)
	}
	if got := (Product{ID: "1", Name: "Cleanser"}).WithKey().Key; got != "1" {
		t.Errorf("WithKey().Key = %q, want 1", got)
	}
}
