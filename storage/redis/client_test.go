package redis

import (
	"testing"

	"TripPlanner/config"
)

func TestKey(t *testing.T) {
	prev := config.Cfg.RedisPrefix
	defer func() { config.Cfg.RedisPrefix = prev }()

	config.Cfg.RedisPrefix = "trip"
	if got := Key("summary", "", "abc"); got != "trip:summary:abc" {
		t.Errorf("Key = %q, want trip:summary:abc", got)
	}

	config.Cfg.RedisPrefix = ""
	if got := Key("lock"); got != "trip:lock" {
		t.Errorf("Key with empty prefix = %q, want trip:lock", got)
	}
}
