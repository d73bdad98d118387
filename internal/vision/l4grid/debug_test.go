package l4grid

import (
	"bytes"
	"strings"
	"testing"
)

func TestSetLogWriters_Streams(t *testing.T) {
	var ops, diag, trace bytes.Buffer
	SetLogWriters(&ops, &diag, &trace)
	defer SetLogWriters(nil, nil, nil)

	opsf("ops %d", 1)
	diagf("diag %s", "two")
	tracef("trace %v", 3.5)

	for name, tc := range map[string]struct {
		buf  *bytes.Buffer
		want string
	}{
		"ops":   {&ops, "ops 1"},
		"diag":  {&diag, "diag two"},
		"trace": {&trace, "trace 3.5"},
	} {
		out := tc.buf.String()
		if !strings.Contains(out, tc.want) {
			t.Errorf("%s stream: expected %q in %q", name, tc.want, out)
		}
		if !strings.Contains(out, "[l4grid]") {
			t.Errorf("%s stream: expected '[l4grid]' prefix, got %q", name, out)
		}
	}
}

func TestSetLogWriters_Disable(t *testing.T) {
	var buf bytes.Buffer
	SetLogWriters(&buf, nil, nil)
	SetLogWriters(nil, nil, nil)

	// Should not panic and should not write.
	opsf("discarded %d", 1)
	diagf("discarded")
	tracef("discarded")
	if buf.Len() != 0 {
		t.Errorf("expected no output after disabling, got %q", buf.String())
	}
}
