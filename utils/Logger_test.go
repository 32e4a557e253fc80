package utils

import (
	"os"
	"testing"

	"gopkg.in/natefinch/lumberjack.v2"
)

func TestLogOutputByMode(t *testing.T) {
	if out := logOutput("debug"); out != os.Stdout {
		t.Fatalf("expected stdout outside release mode, got %T", out)
	}

	t.Setenv("LOG_FILE", "club-test.log")
	out, ok := logOutput("release").(*lumberjack.Logger)
	if !ok {
		t.Fatalf("expected a rotating file in release mode, got %T", logOutput("release"))
	}
	if out.Filename != "club-test.log" {
		t.Fatalf("expected LOG_FILE to be used, got %q", out.Filename)
	}
}
