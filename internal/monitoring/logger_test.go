package monitoring

import (
	"bytes"
	"strings"
	"testing"
)

func TestSetLogger(t *testing.T) {
	original := Logf
	defer func() { Logf = original }()

	called := false
	SetLogger(func(format string, v ...interface{}) {
		called = true
	})
	Logf("loaded dataset %s", "0005")
	if !called {
		t.Error("custom logger was not called")
	}

	// nil installs a no-op that must not call the previous logger
	called = false
	SetLogger(nil)
	Logf("loaded dataset %s", "0005")
	if called {
		t.Error("no-op logger should not have triggered the previous callback")
	}
}

func TestSetOutput(t *testing.T) {
	original := Logf
	defer func() { Logf = original }()

	var buf bytes.Buffer
	SetOutput(&buf, "[agnite] ")
	Logf("session %s angle=%d", "abc", 42)

	got := buf.String()
	if !strings.HasPrefix(got, "[agnite] ") {
		t.Errorf("output %q missing prefix", got)
	}
	if !strings.Contains(got, "session abc angle=42") {
		t.Errorf("output %q missing message", got)
	}
}

func TestLogf_Default(t *testing.T) {
	if Logf == nil {
		t.Fatal("Logf should not be nil by default")
	}
	defer func() {
		if r := recover(); r != nil {
			t.Errorf("Logf panicked: %v", r)
		}
	}()
	Logf("test message: %s", "value")
}
