package configbp

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"gopkg.in/yaml.v2"
)

// Int64String is an int64 that can be yaml deserialized from either a number
// or a string, the latter avoiding the precision loss of large numbers passed
// through helm (https://github.com/helm/helm/issues/11045).
//
// Strings may end with a KB, MB or GB suffix (powers of 1024),
// so byte sizes like maxBytes can be written as "10MB".
type Int64String int64

var _ yaml.Unmarshaler = (*Int64String)(nil)

var byteSuffixes = []struct {
	suffix string
	factor int64
}{
	{"GB", 1 << 30},
	{"MB", 1 << 20},
	{"KB", 1 << 10},
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (i *Int64String) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	s = strings.TrimSpace(s)
	factor := int64(1)
	for _, b := range byteSuffixes {
		if trimmed, ok := strings.CutSuffix(s, b.suffix); ok {
			s, factor = strings.TrimSpace(trimmed), b.factor
			break
		}
	}
	i64, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return fmt.Errorf("configbp: cannot parse %q as int64: %w", s, err)
	}
	if factor > 1 && (i64 > math.MaxInt64/factor || i64 < math.MinInt64/factor) {
		return fmt.Errorf("configbp: %d%s overflows int64", i64, suffixOf(factor))
	}
	*i = Int64String(i64 * factor)
	return nil
}

func suffixOf(factor int64) string {
	for _, b := range byteSuffixes {
		if b.factor == factor {
			return b.suffix
		}
	}
	return ""
}
