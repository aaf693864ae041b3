package hexview

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

func TestNewLogger(t *testing.T) {
	l, err := NewLogger(LogConfig{Level: "warn", JSON: true})
	if err != nil {
		t.Fatalf("NewLogger: %v", err)
	}
	if l.GetLevel() != logrus.WarnLevel {
		t.Errorf("level = %v, want warn", l.GetLevel())
	}
	if _, ok := l.Formatter.(*logrus.JSONFormatter); !ok {
		t.Errorf("formatter = %T, want JSON", l.Formatter)
	}
	if l.Out != os.Stderr {
		t.Error("output is not stderr")
	}

	if _, err := NewLogger(LogConfig{Level: "chatty"}); err == nil {
		t.Error("invalid level accepted")
	}
}

func TestNewLoggerRotatesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hexview.log")
	l, err := NewLogger(LogConfig{Level: "info", File: path, MaxSizeMB: 1, MaxBackups: 2})
	if err != nil {
		t.Fatalf("NewLogger: %v", err)
	}
	lj, ok := l.Out.(*lumberjack.Logger)
	if !ok {
		t.Fatalf("output = %T, want lumberjack", l.Out)
	}
	defer lj.Close()
	if lj.Filename != path || lj.MaxSize != 1 || lj.MaxBackups != 2 {
		t.Errorf("rotation = %+v", lj)
	}

	componentLogger(l).Info("frame drawn")
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if s := string(data); !strings.Contains(s, "frame drawn") || !strings.Contains(s, "component=hexview") {
		t.Errorf("log file = %q", s)
	}
}
