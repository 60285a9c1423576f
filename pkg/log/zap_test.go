package log

import "testing"

func TestNewZapLoggerAcceptsKnownLevelsAndFormats(t *testing.T) {
	for _, level := range AllLogLevels {
		for _, format := range AllLogFormats {
			if _, err := NewZapLogger(level, format); err != nil {
				t.Fatalf("NewZapLogger(%q, %q) unexpected error: %s", level, format, err)
			}
		}
	}
}

func TestNewZapLoggerRejectsUnknownLevel(t *testing.T) {
	if _, err := NewZapLogger("verbose", FormatJSON); err == nil {
		t.Fatal("expected error for unknown level")
	}
}

func TestNewZapLoggerRejectsUnknownFormat(t *testing.T) {
	if _, err := NewZapLogger(InfoLevel, "xml"); err == nil {
		t.Fatal("expected error for unknown format")
	}
}

func TestNewDefaultDoesNotPanic(t *testing.T) {
	_ = NewDefault()
}

func TestFormatFlagValue(t *testing.T) {
	var f Format
	if err := f.Set("json"); err != nil {
		t.Fatal(err)
	}
	if f.String() != string(FormatJSON) {
		t.Fatalf("got %q", f.String())
	}
	if err := f.Set("bogus"); err == nil {
		t.Fatal("expected error for bogus format")
	}
}

func TestLogLevelFlagValue(t *testing.T) {
	var l LogLevel
	if err := l.Set("debug"); err != nil {
		t.Fatal(err)
	}
	if l.String() != string(DebugLevel) {
		t.Fatalf("got %q", l.String())
	}
	if err := l.Set("bogus"); err == nil {
		t.Fatal("expected error for bogus level")
	}
}
