package config

import (
	"testing"
	"time"

	"github.com/xvierd/pomotui/internal/domain"
)

func TestDuration_UnmarshalText(t *testing.T) {
	tests := []struct {
		input   string
		want    time.Duration
		wantErr bool
	}{
		{"25m", 25 * time.Minute, false},
		{"1h30m", 90 * time.Minute, false},
		{"45s", 45 * time.Second, false},
		{"", 0, true},
		{"25 minutes", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			var d Duration
			err := d.UnmarshalText([]byte(tt.input))
			if tt.wantErr {
				if err == nil {
					t.Errorf("UnmarshalText(%q) expected error", tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("UnmarshalText(%q) error = %v", tt.input, err)
			}
			if time.Duration(d) != tt.want {
				t.Errorf("UnmarshalText(%q) = %v, want %v", tt.input, time.Duration(d), tt.want)
			}
		})
	}
}

func TestDuration_RoundTrip(t *testing.T) {
	d := Duration(25 * time.Minute)
	text, err := d.MarshalText()
	if err != nil {
		t.Fatalf("MarshalText() error = %v", err)
	}

	var parsed Duration
	if err := parsed.UnmarshalText(text); err != nil {
		t.Fatalf("UnmarshalText(%q) error = %v", text, err)
	}
	if parsed != d {
		t.Errorf("round trip = %v, want %v", parsed, d)
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if !cfg.FirstRun {
		t.Error("DefaultConfig() FirstRun = false, want true")
	}
	if !cfg.Notifications.Enabled {
		t.Error("DefaultConfig() notifications disabled")
	}

	tc := cfg.ToTimerConfig()
	if err := tc.Validate(); err != nil {
		t.Errorf("default timer config invalid: %v", err)
	}
	if tc != domain.DefaultTimerConfig() {
		t.Errorf("ToTimerConfig() = %+v, want domain defaults", tc)
	}
}

func TestToTimerConfig_InvalidValuesFailValidation(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Timer.WorkDuration = Duration(0)

	if err := cfg.ToTimerConfig().Validate(); err != domain.ErrInvalidDuration {
		t.Errorf("Validate() error = %v, want ErrInvalidDuration", err)
	}

	cfg = DefaultConfig()
	cfg.Timer.SessionsBeforeLong = 0
	if err := cfg.ToTimerConfig().Validate(); err != domain.ErrInvalidInterval {
		t.Errorf("Validate() error = %v, want ErrInvalidInterval", err)
	}
}
