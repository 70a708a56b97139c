package configbp_test

import (
	"math"
	"strconv"
	"strings"
	"testing"

	"gopkg.in/yaml.v2"

	"github.com/reddit/automate.go/configbp"
)

func TestInt64String(t *testing.T) {
	type config struct {
		I64 configbp.Int64String `yaml:"i64"`
	}

	for _, c := range []struct {
		input   string
		want    int64
		wantErr bool
	}{
		{input: `i64: "0"`, want: 0},
		{input: `i64: 10485760`, want: 10485760},
		{input: `i64: "` + strconv.FormatInt(math.MaxInt64, 10) + `"`, want: math.MaxInt64},
		{input: `i64: "` + strconv.FormatInt(math.MinInt64, 10) + `"`, want: math.MinInt64},
		{input: `i64: "10MB"`, want: 10 << 20},
		{input: `i64: 2KB`, want: 2048},
		{input: `i64: "1 GB"`, want: 1 << 30},
		{input: `i64: "` + strconv.FormatInt(math.MaxInt64, 10) + `KB"`, wantErr: true},
		{input: `i64: "MB"`, wantErr: true},
		{input: `i64: "not int64"`, wantErr: true},
		{input: `i64: ""`, wantErr: true},
	} {
		t.Run(c.input, func(t *testing.T) {
			var cfg config
			decoder := yaml.NewDecoder(strings.NewReader(c.input))
			decoder.SetStrict(true)
			err := decoder.Decode(&cfg)
			if c.wantErr {
				if err == nil {
					t.Errorf("Expected error, got %d", cfg.I64)
				}
				return
			}
			if err != nil {
				t.Fatalf("Failed to unmarshal yaml: %v", err)
			}
			if int64(cfg.I64) != c.want {
				t.Errorf("got %d, want %d", cfg.I64, c.want)
			}
		})
	}
}
