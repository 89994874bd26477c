package redis

import (
	"reflect"
	"strings"
	"testing"
)

func TestExtractKeys(t *testing.T) {
	got := extractKeys([]interface{}{"set", "trip:summary:abc", "{}", "ex", 600})
	want := []string{"trip:summary:abc", "{}", "ex"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("extractKeys = %v, want %v", got, want)
	}

	if keys := extractKeys([]interface{}{"ping"}); keys != nil {
		t.Errorf("extractKeys(ping) = %v, want nil", keys)
	}

	long := strings.Repeat("k", 150)
	if keys := extractKeys([]interface{}{"get", long}); len(keys[0]) != 103 {
		t.Errorf("long key length = %d, want 103", len(keys[0]))
	}
}
