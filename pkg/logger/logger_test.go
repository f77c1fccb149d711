package logger

import (
	"context"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestNewLevels(t *testing.T) {
	tests := []struct {
		name  string
		env   string
		level string
		want  zapcore.Level
	}{
		{"default", "production", "", zapcore.InfoLevel},
		{"debug", "production", "DEBUG", zapcore.DebugLevel},
		{"invalid falls back", "production", "loud", zapcore.InfoLevel},
		{"local console", "local", "warn", zapcore.WarnLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, err := New(tt.env, tt.level)
			if err != nil {
				t.Fatalf("New: %v", err)
			}
			if !l.Core().Enabled(tt.want) {
				t.Errorf("expected level %s enabled", tt.want)
			}
			if tt.want > zapcore.DebugLevel && l.Core().Enabled(tt.want-1) {
				t.Errorf("expected level %s disabled", tt.want-1)
			}
		})
	}
}

func TestFromContext(t *testing.T) {
	base := zap.NewExample()
	if got := FromContext(context.Background(), base); got != base {
		t.Error("expected fallback logger")
	}
	if got := FromContext(context.Background(), nil); got == nil {
		t.Error("expected no-op logger, got nil")
	}

	scoped := base.With(zap.String("request_id", "abc"))
	ctx := WithContext(context.Background(), scoped)
	if got := FromContext(ctx, base); got != scoped {
		t.Error("expected scoped logger from context")
	}
}
