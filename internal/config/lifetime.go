package config

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/xhit/go-str2duration/v2"
)

// ParseLifetime accepts a duration with day or week units ("7d", "2w",
// "36h") or a bare number of seconds ("3600").
func ParseLifetime(raw string) (time.Duration, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, fmt.Errorf("empty lifetime")
	}

	if n, err := strconv.ParseInt(raw, 10, 64); err == nil {
		if n > math.MaxInt64/int64(time.Second) {
			return 0, fmt.Errorf("lifetime %q is too large", raw)
		}
		return positive(time.Duration(n)*time.Second, raw)
	}

	d, err := str2duration.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid lifetime %q: %w", raw, err)
	}
	return positive(d, raw)
}

func positive(d time.Duration, raw string) (time.Duration, error) {
	if d <= 0 {
		return 0, fmt.Errorf("lifetime %q must be positive", raw)
	}
	return d, nil
}
