package cache

import (
	"testing"
	"time"
)

func TestJSONCacheKey(t *testing.T) {
	c := NewJSONCache(summaryPrefix, time.Minute)
	if got, want := c.key("t-1"), "trip:summary:t-1"; got != want {
		t.Errorf("key = %q, want %q", got, want)
	}
}
