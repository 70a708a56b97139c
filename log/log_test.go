package log

import (
	"context"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func observe(t *testing.T, level zapcore.Level) *observer.ObservedLogs {
	t.Helper()
	core, logs := observer.New(level)
	ReplaceGlobal(zap.New(core))
	t.Cleanup(func() {
		ReplaceGlobal(nil)
	})
	return logs
}

func TestLevel(t *testing.T) {
	for _, c := range []struct {
		level Level
		zap   zapcore.Level
		valid bool
	}{
		{level: DebugLevel, zap: zapcore.DebugLevel, valid: true},
		{level: InfoLevel, zap: zapcore.InfoLevel, valid: true},
		{level: WarnLevel, zap: zapcore.WarnLevel, valid: true},
		{level: ErrorLevel, zap: zapcore.ErrorLevel, valid: true},
		{level: FatalLevel, zap: zapcore.FatalLevel, valid: true},
		{level: NopLevel, zap: ZapNopLevel, valid: true},
		{level: "DEBUG", zap: ZapNopLevel, valid: false},
		{level: "", zap: ZapNopLevel, valid: false},
	} {
		t.Run(string(c.level), func(t *testing.T) {
			if got := c.level.ToZapLevel(); got != c.zap {
				t.Errorf("ToZapLevel got %v, want %v", got, c.zap)
			}
			if got := c.level.Valid(); got != c.valid {
				t.Errorf("Valid got %v, want %v", got, c.valid)
			}
		})
	}
}

func TestReplaceGlobal(t *testing.T) {
	logs := observe(t, zapcore.InfoLevel)

	Debugw("dropped")
	Infow("kept", "key", "value")
	Errorf("formatted %d", 42)

	entries := logs.AllUntimed()
	if len(entries) != 2 {
		t.Fatalf("Expected 2 entries, got %d: %#v", len(entries), entries)
	}
	if entries[0].Message != "kept" {
		t.Errorf("first message got %q, want %q", entries[0].Message, "kept")
	}
	if got := entries[0].ContextMap()["key"]; got != "value" {
		t.Errorf("key got %v, want %q", got, "value")
	}
	if entries[1].Message != "formatted 42" {
		t.Errorf("second message got %q, want %q", entries[1].Message, "formatted 42")
	}
}

func TestWrappers(t *testing.T) {
	logs := observe(t, zapcore.DebugLevel)

	ZapWrapper(zapcore.WarnLevel)("warned")
	ZapWrapper(ZapNopLevel)("never")
	var nilWrapper Wrapper
	nilWrapper.Log("nil-safe")

	entries := logs.AllUntimed()
	if len(entries) != 1 {
		t.Fatalf("Expected 1 entry, got %d: %#v", len(entries), entries)
	}
	if entries[0].Level != zapcore.WarnLevel {
		t.Errorf("level got %v, want %v", entries[0].Level, zapcore.WarnLevel)
	}
}

func TestAttach(t *testing.T) {
	logs := observe(t, zapcore.DebugLevel)

	ctx := Attach(context.Background(), AttachArgs{
		AdditionalPairs: map[string]interface{}{
			"vault": "https://example.vault.azure.net",
		},
	})
	C(ctx).Info("attached")
	C(context.Background()).Info("global")
	ContextWrapper(ctx, zapcore.ErrorLevel)("wrapped")

	entries := logs.AllUntimed()
	if len(entries) != 3 {
		t.Fatalf("Expected 3 entries, got %d", len(entries))
	}
	if entries[2].Level != zapcore.ErrorLevel {
		t.Errorf("wrapped level got %v, want %v", entries[2].Level, zapcore.ErrorLevel)
	}
	if got := entries[2].ContextMap()["vault"]; got != "https://example.vault.azure.net" {
		t.Errorf("wrapped vault got %v", got)
	}
	if got := entries[0].ContextMap()["vault"]; got != "https://example.vault.azure.net" {
		t.Errorf("vault got %v", got)
	}
	if _, ok := entries[1].ContextMap()["vault"]; ok {
		t.Error("global logger should not carry attached pairs")
	}
}
