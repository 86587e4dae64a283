package logging

import (
	"bytes"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestSetLevel(t *testing.T) {
	t.Cleanup(func() { level = DefaultLevel })

	tests := []struct {
		in      string
		want    log.Level
		wantErr bool
	}{
		{"", DefaultLevel, false},
		{"debug", log.DebugLevel, false},
		{" WARN ", log.WarnLevel, false},
		{"loud", log.WarnLevel, true},
	}
	for _, tc := range tests {
		err := SetLevel(tc.in)
		if (err != nil) != tc.wantErr {
			t.Errorf("SetLevel(%q) error = %v", tc.in, err)
		}
		if Level() != tc.want {
			t.Errorf("after SetLevel(%q) level = %v, expected %v", tc.in, Level(), tc.want)
		}
	}
}

func TestNewWriterPrefixAndLevel(t *testing.T) {
	t.Cleanup(func() { level = DefaultLevel })
	if err := SetLevel("info"); err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	logger := NewWriter(&buf, "arcade-test")
	logger.Debug("hidden")
	logger.Info("shown", "mode", "chase")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("debug line written at info level: %q", out)
	}
	if !strings.Contains(out, "arcade-test") || !strings.Contains(out, "mode=chase") {
		t.Errorf("unexpected output %q", out)
	}
}
