package domain

import (
	"encoding/json"
	"testing"
)

func TestEnvelope(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		ok      bool
		hasData bool
	}{
		{"success with data", `{"code":200,"message":"ok","data":"tok123"}`, true, true},
		{"success without data", `{"code":200,"message":"ok","data":null}`, true, false},
		{"success missing data", `{"code":200,"message":"ok"}`, true, false},
		{"unauthorized", `{"code":401,"message":"bad credentials"}`, false, false},
		{"server error with data", `{"code":500,"message":"boom","data":{}}`, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var env Envelope
			if err := json.Unmarshal([]byte(tt.raw), &env); err != nil {
				t.Fatalf("Unmarshal() error: %v", err)
			}
			if got := env.OK(); got != tt.ok {
				t.Errorf("OK() = %v, want %v", got, tt.ok)
			}
			if got := env.HasData(); got != tt.hasData {
				t.Errorf("HasData() = %v, want %v", got, tt.hasData)
			}
		})
	}
}

func TestTimestampLayouts(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		zero    bool
		wantErr bool
	}{
		{"rfc3339", `"2024-05-01T10:00:00Z"`, false, false},
		{"zone-less", `"2024-05-01T10:00:00"`, false, false},
		{"fractional", `"2024-05-01T10:00:00.123"`, false, false},
		{"space separated", `"2024-05-01 10:00:00"`, false, false},
		{"date only", `"2024-05-01"`, false, false},
		{"null", `null`, true, false},
		{"empty", `""`, true, false},
		{"garbage", `"yesterday"`, false, true},
		{"number", `12`, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var ts Timestamp
			err := json.Unmarshal([]byte(tt.raw), &ts)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Unmarshal(%s) error = %v, wantErr %v", tt.raw, err, tt.wantErr)
			}
			if err == nil && ts.IsZero() != tt.zero {
				t.Errorf("IsZero() = %v, want %v", ts.IsZero(), tt.zero)
			}
		})
	}
}

func TestUserProfileDisplayName(t *testing.T) {
	if got := (UserProfile{Username: "ada", Nickname: "Ada L."}).DisplayName(); got != "Ada L." {
		t.Errorf("DisplayName() = %q, want %q", got, "Ada L.")
	}
	if got := (UserProfile{Username: "ada"}).DisplayName(); got != "ada" {
		t.Errorf("DisplayName() = %q, want %q", got, "ada")
	}
}
