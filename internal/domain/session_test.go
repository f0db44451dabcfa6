package domain

import (
	"testing"
	"time"
)

func TestSessionType_IsBreak(t *testing.T) {
	tests := []struct {
		sessionType SessionType
		want        bool
	}{
		{SessionTypeWork, false},
		{SessionTypeShortBreak, true},
		{SessionTypeLongBreak, true},
	}

	for _, tt := range tests {
		if got := tt.sessionType.IsBreak(); got != tt.want {
			t.Errorf("%s.IsBreak() = %v, want %v", tt.sessionType, got, tt.want)
		}
	}
}

func TestSession_ActualDuration(t *testing.T) {
	start := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)

	t.Run("in progress falls back to planned", func(t *testing.T) {
		s := &Session{StartTime: start, Duration: 1500, SessionType: SessionTypeWork}
		if got := s.ActualDuration(); got != 1500 {
			t.Errorf("ActualDuration() = %d, want 1500 for open session", got)
		}
	})

	t.Run("finished", func(t *testing.T) {
		end := start.Add(20 * time.Minute)
		s := &Session{StartTime: start, EndTime: &end, Duration: 1500, SessionType: SessionTypeWork}
		if got := s.ActualDuration(); got != 1200 {
			t.Errorf("ActualDuration() = %d, want 1200", got)
		}
	})
}

func TestTimerConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     TimerConfig
		wantErr error
	}{
		{
			name:    "defaults are valid",
			cfg:     DefaultTimerConfig(),
			wantErr: nil,
		},
		{
			name: "zero work duration",
			cfg: TimerConfig{
				WorkDuration:       0,
				ShortBreakDuration: 5 * time.Minute,
				LongBreakDuration:  15 * time.Minute,
				SessionsBeforeLong: 4,
			},
			wantErr: ErrInvalidDuration,
		},
		{
			name: "negative break duration",
			cfg: TimerConfig{
				WorkDuration:       25 * time.Minute,
				ShortBreakDuration: -time.Minute,
				LongBreakDuration:  15 * time.Minute,
				SessionsBeforeLong: 4,
			},
			wantErr: ErrInvalidDuration,
		},
		{
			name: "zero interval",
			cfg: TimerConfig{
				WorkDuration:       25 * time.Minute,
				ShortBreakDuration: 5 * time.Minute,
				LongBreakDuration:  15 * time.Minute,
				SessionsBeforeLong: 0,
			},
			wantErr: ErrInvalidInterval,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("Validate() unexpected error = %v", err)
				}
				return
			}
			if err != tt.wantErr {
				t.Errorf("Validate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
