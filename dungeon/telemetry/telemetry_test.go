package telemetry

import (
	"log/slog"
	"testing"
)

func TestLoggerFallsBackToDefault(t *testing.T) {
	if Logger(nil) != slog.Default() {
		t.Fatal("expected nil logger to fall back to slog.Default()")
	}
	custom := slog.Default()
	if Logger(custom) != custom {
		t.Fatal("expected non-nil logger to be returned unchanged")
	}
}

func TestFingerprintDeterministic(t *testing.T) {
	a := Fingerprint(1, 2, 3, 256, 256)
	b := Fingerprint(1, 2, 3, 256, 256)
	if a != b {
		t.Fatalf("fingerprint not deterministic: %d vs %d", a, b)
	}
}

func TestFingerprintSensitiveToInputs(t *testing.T) {
	base := Fingerprint(1, 2, 3, 256, 256)
	variants := []uint64{
		Fingerprint(2, 2, 3, 256, 256),
		Fingerprint(1, 3, 3, 256, 256),
		Fingerprint(1, 2, 4, 256, 256),
		Fingerprint(1, 2, 3, 512, 256),
		Fingerprint(1, 2, 3, 256, 512),
	}
	for i, v := range variants {
		if v == base {
			t.Fatalf("variant %d collided with base fingerprint", i)
		}
	}
}

func TestRunIDNotNil(t *testing.T) {
	id := RunID()
	if id.String() == "" {
		t.Fatal("expected non-empty run identifier")
	}
}
