package logger

import (
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in     string
		want   zapcore.Level
		wantOK bool
	}{
		{"debug", zapcore.DebugLevel, true},
		{" WARN ", zapcore.WarnLevel, true},
		{"error", zapcore.ErrorLevel, true},
		{"", zapcore.InfoLevel, false},
		{"verbose", zapcore.InfoLevel, false},
	}

	for _, tt := range tests {
		got, ok := parseLevel(tt.in)
		if ok != tt.wantOK || got != tt.want {
			t.Errorf("parseLevel(%q) = %v, %v; want %v, %v", tt.in, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestGetInitializesLazily(t *testing.T) {
	if Get() == nil {
		t.Fatal("expected a logger")
	}
	if Named("test") == nil {
		t.Fatal("expected a named logger")
	}
}
