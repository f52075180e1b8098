package helpers

import (
	"testing"
	"time"
)

func TestNullableString(t *testing.T) {
	if got := NullableString(""); got != nil {
		t.Errorf("NullableString(\"\") = %v, want nil", got)
	}

	got := NullableString("x@y.com")
	if got == nil || *got != "x@y.com" {
		t.Errorf("NullableString(\"x@y.com\") = %v", got)
	}
}

func TestStringValue(t *testing.T) {
	if got := StringValue(nil); got != "" {
		t.Errorf("StringValue(nil) = %q, want empty", got)
	}

	s := "hello"
	if got := StringValue(&s); got != "hello" {
		t.Errorf("StringValue(&s) = %q, want hello", got)
	}
}

func TestParseDuration(t *testing.T) {
	if got := ParseDuration("30m", time.Hour); got != 30*time.Minute {
		t.Errorf("ParseDuration(30m) = %v, want 30m", got)
	}
	if got := ParseDuration("bogus", time.Hour); got != time.Hour {
		t.Errorf("ParseDuration(bogus) = %v, want default 1h", got)
	}
	if got := ParseDuration("", 24*time.Hour); got != 24*time.Hour {
		t.Errorf("ParseDuration(\"\") = %v, want default 24h", got)
	}
}
