package snowflake

import (
	"strings"
	"testing"
)

func TestGenerate(t *testing.T) {
	if err := Init(1, 1); err != nil {
		t.Fatalf("Init: %v", err)
	}

	a, err := NextID()
	if err != nil {
		t.Fatalf("NextID: %v", err)
	}
	b, _ := NextID()
	if b <= a {
		t.Errorf("ids not increasing: %d then %d", a, b)
	}

	msgID, err := NextMessageID("evt")
	if err != nil {
		t.Fatalf("NextMessageID: %v", err)
	}
	if !strings.HasPrefix(msgID, "evt_") {
		t.Errorf("message id = %q, want evt_ prefix", msgID)
	}
}
