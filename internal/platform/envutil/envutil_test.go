package envutil

import (
	"reflect"
	"testing"
	"time"
)

func TestReaders(t *testing.T) {
	t.Setenv("EU_STR", "  hello ")
	t.Setenv("EU_INT", "42")
	t.Setenv("EU_BAD_INT", "x")
	t.Setenv("EU_FLOAT", "0.25")
	t.Setenv("EU_BOOL", "off")
	t.Setenv("EU_SECS", "90")
	t.Setenv("EU_LIST", " a, ,b ")

	if got := String("EU_STR", "d"); got != "hello" {
		t.Fatalf("String=%q", got)
	}
	if got := String("EU_MISSING", "d"); got != "d" {
		t.Fatalf("String default=%q", got)
	}
	if got := Int("EU_INT", 1); got != 42 {
		t.Fatalf("Int=%d", got)
	}
	if got := Int("EU_BAD_INT", 7); got != 7 {
		t.Fatalf("Int on garbage=%d", got)
	}
	if got := Float("EU_FLOAT", 1); got != 0.25 {
		t.Fatalf("Float=%v", got)
	}
	if got := Bool("EU_BOOL", true); got {
		t.Fatalf("Bool should read off as false")
	}
	if got := Bool("EU_MISSING", true); !got {
		t.Fatalf("Bool default lost")
	}
	if got := Seconds("EU_SECS", time.Second); got != 90*time.Second {
		t.Fatalf("Seconds=%v", got)
	}
	if got := List("EU_LIST", nil); !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Fatalf("List=%v", got)
	}
	if got := List("EU_MISSING", []string{"z"}); !reflect.DeepEqual(got, []string{"z"}) {
		t.Fatalf("List default=%v", got)
	}
}
