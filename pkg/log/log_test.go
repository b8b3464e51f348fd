package log

import (
	"bytes"
	"os"
	"strings"
	"testing"
)

func TestLevels(t *testing.T) {
	var buf bytes.Buffer
	SetSink(&buf)
	defer SetSink(os.Stderr)
	defer SetLevel(CurrentLevel())

	logger := New("test")

	SetLevel(Notice)
	logger.Infof("hidden %d", 1)
	logger.Noticef("shown %d", 2)
	if strings.Contains(buf.String(), "hidden") {
		t.Errorf("Info message logged at Notice level: %q", buf.String())
	}
	if !strings.Contains(buf.String(), "shown 2") || !strings.Contains(buf.String(), "[test]") {
		t.Errorf("Expected notice with module name, got %q", buf.String())
	}

	buf.Reset()
	SetLevel(Debug)
	logger.Debugf("details")
	if !strings.Contains(buf.String(), "details") {
		t.Errorf("Expected debug output, got %q", buf.String())
	}
}

func TestSetSinkKeepsLevel(t *testing.T) {
	defer SetSink(os.Stderr)
	defer SetLevel(CurrentLevel())

	SetLevel(Error)
	var buf bytes.Buffer
	SetSink(&buf)
	New("sink").Warningf("suppressed")
	if buf.Len() != 0 {
		t.Errorf("Expected warnings suppressed at Error level, got %q", buf.String())
	}
}

func TestLevelForVerbosity(t *testing.T) {
	tests := []struct {
		count int
		want  Level
	}{
		{0, Notice},
		{1, Info},
		{2, Debug},
		{5, Debug},
	}
	for _, tt := range tests {
		if got := LevelForVerbosity(tt.count); got != tt.want {
			t.Errorf("LevelForVerbosity(%d) = %d, want %d", tt.count, got, tt.want)
		}
	}
}
