package replay

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/repwise/form-analyzer/internal/exercise"
)

func writeFixture(t *testing.T, f Fixture) string {
	t.Helper()
	data, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		t.Fatalf("marshal fixture: %v", err)
	}
	path := filepath.Join(t.TempDir(), "fixture.json")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return path
}

func TestLoadFixture_RoundTrip(t *testing.T) {
	path := writeFixture(t, Fixture{
		Description:      "one pullup cycle",
		Exercise:         exercise.Pullups,
		Frames:           pullupStream(),
		ExpectedReps:     []int{8},
		ExpectedRepCount: 1,
	})

	f, err := LoadFixture(path)
	if err != nil {
		t.Fatalf("LoadFixture: %v", err)
	}
	if f.Exercise != exercise.Pullups || len(f.Frames) != 10 {
		t.Fatalf("fixture = %s/%d frames, want pullups/10", f.Exercise, len(f.Frames))
	}
}

func TestLoadFixture_MissingFile(t *testing.T) {
	if _, err := LoadFixture(filepath.Join(t.TempDir(), "absent.json")); err == nil {
		t.Error("expected error for missing fixture")
	}
}

func TestFixtureVerify_Pass(t *testing.T) {
	f := Fixture{
		Exercise:         exercise.Pullups,
		Frames:           pullupStream(),
		ExpectedReps:     []int{8},
		ExpectedRepCount: 1,
	}

	outcomes, problems := f.Verify()
	if len(problems) != 0 {
		t.Fatalf("problems = %v, want none", problems)
	}
	if len(outcomes) != len(f.Frames) {
		t.Fatalf("outcomes = %d, want %d", len(outcomes), len(f.Frames))
	}
}

func TestFixtureVerify_Mismatch(t *testing.T) {
	f := Fixture{
		Exercise:         exercise.Pullups,
		Frames:           pullupStream(),
		ExpectedReps:     []int{3},
		ExpectedRepCount: 2,
	}

	_, problems := f.Verify()
	if len(problems) != 2 {
		t.Fatalf("problems = %v, want rep count and rep frame mismatches", problems)
	}
}

func TestFixtureConfig_ZeroFallsBackToDefaults(t *testing.T) {
	cfg := FixtureConfig{}.ToSessionConfig()
	if cfg.StartScore != 100 || cfg.CooldownFrames != 10 {
		t.Errorf("config = %+v, want defaults", cfg)
	}
}
