package logging

import (
	"bytes"
	"strings"
	"testing"
)

func TestNew_InfoByDefault(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, Options{})

	l.Debug("hidden")
	l.Info("shown", "list", "1")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("debug line should be filtered, got %q", out)
	}
	if !strings.Contains(out, "shown") || !strings.Contains(out, "list=1") {
		t.Errorf("expected info line with fields, got %q", out)
	}
	if !strings.Contains(out, Prefix) {
		t.Errorf("expected prefix %q, got %q", Prefix, out)
	}
}

func TestNew_Debug(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, Options{Debug: true})

	l.Debug("request", "method", "GET")
	if !strings.Contains(buf.String(), "method=GET") {
		t.Errorf("expected debug line, got %q", buf.String())
	}
}

func TestOrDiscard(t *testing.T) {
	l := OrDiscard(nil)
	if l == nil {
		t.Fatal("expected logger")
	}
	// Must not panic.
	l.Error("dropped")
}
