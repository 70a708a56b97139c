package log

import (
	"strings"
	"testing"
	"time"

	"go.uber.org/zap/zapcore"
)

func TestConsoleEncoder(t *testing.T) {
	ts := time.Date(2024, time.March, 5, 7, 8, 9, 123456000, time.UTC)
	entry := zapcore.Entry{
		Level:      zapcore.WarnLevel,
		Time:       ts,
		LoggerName: "standard",
		Message:    "hello",
	}

	for _, c := range []struct {
		label  string
		modify func(*zapcore.EncoderConfig)
		want   []string
	}{
		{
			label: "default",
			want: []string{
				"ts=2024-03-05T07:08:09.123456Z",
				"level=WARN",
				"logger=standard",
				"hello",
			},
		},
		{
			label: "layout",
			modify: func(cfg *zapcore.EncoderConfig) {
				cfg.EncodeTime = LayoutTimeEncoder("2006-01-02 15:04:05")
			},
			want: []string{"ts=" + ts.Local().Format("2006-01-02 15:04:05")},
		},
	} {
		t.Run(c.label, func(t *testing.T) {
			cfg := NewConsoleEncoderConfig()
			if c.modify != nil {
				c.modify(&cfg)
			}
			buf, err := zapcore.NewConsoleEncoder(cfg).EncodeEntry(entry, nil)
			if err != nil {
				t.Fatalf("EncodeEntry returned error: %v", err)
			}
			defer buf.Free()
			line := buf.String()
			for _, want := range c.want {
				if !strings.Contains(line, want) {
					t.Errorf("%q does not contain %q", line, want)
				}
			}
		})
	}
}
