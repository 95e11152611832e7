package store

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/repwise/form-analyzer/internal/exercise"
	_ "modernc.org/sqlite"
)

func tempDB(t *testing.T) *Store {
	t.Helper()
	dir := t.TempDir()
	s, err := NewStore(filepath.Join(dir, "test.db"))
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestCreateAndGetSession(t *testing.T) {
	s := tempDB(t)
	started := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	if err := s.CreateSession("sess-1", exercise.Pushups, started); err != nil {
		t.Fatalf("CreateSession: %v", err)
	}

	rec, err := s.GetSession("sess-1")
	if err != nil {
		t.Fatalf("GetSession: %v", err)
	}
	if rec.Exercise != exercise.Pushups {
		t.Errorf("exercise = %s, want pushups", rec.Exercise)
	}
	if !rec.StartedAt.Equal(started) {
		t.Errorf("started_at = %v, want %v", rec.StartedAt, started)
	}
	if !rec.EndedAt.IsZero() {
		t.Errorf("ended_at should be zero for an open session, got %v", rec.EndedAt)
	}
}

func TestFinishSession(t *testing.T) {
	s := tempDB(t)
	started := time.Now().UTC()
	if err := s.CreateSession("sess-1", exercise.Situps, started); err != nil {
		t.Fatalf("CreateSession: %v", err)
	}

	ended := started.Add(90 * time.Second)
	if err := s.FinishSession("sess-1", ended, 2700, 24, 87.5); err != nil {
		t.Fatalf("FinishSession: %v", err)
	}

	rec, err := s.GetSession("sess-1")
	if err != nil {
		t.Fatalf("GetSession: %v", err)
	}
	if rec.RepCount != 24 || rec.Frames != 2700 {
		t.Errorf("totals = %d reps / %d frames, want 24 / 2700", rec.RepCount, rec.Frames)
	}
	if rec.FormScore != 87.5 {
		t.Errorf("form score = %f, want 87.5", rec.FormScore)
	}
	if rec.EndedAt.IsZero() {
		t.Error("ended_at should be set")
	}
}

func TestFinishSession_Unknown(t *testing.T) {
	s := tempDB(t)
	if err := s.FinishSession("nope", time.Now(), 0, 0, 0); err == nil {
		t.Error("expected error for unknown session")
	}
}

func TestRecordAndListReps(t *testing.T) {
	s := tempDB(t)
	started := time.Now().UTC()
	if err := s.CreateSession("sess-1", exercise.Pullups, started); err != nil {
		t.Fatalf("CreateSession: %v", err)
	}

	for i := 1; i <= 3; i++ {
		err := s.RecordRep(RepRecord{
			SessionID:  "sess-1",
			RepNum:     i,
			FrameIndex: i * 40,
			Metric:     55.5,
			ValidForm:  i != 2,
		})
		if err != nil {
			t.Fatalf("RecordRep %d: %v", i, err)
		}
	}

	reps, err := s.SessionReps("sess-1")
	if err != nil {
		t.Fatalf("SessionReps: %v", err)
	}
	if len(reps) != 3 {
		t.Fatalf("rep count = %d, want 3", len(reps))
	}
	if reps[1].ValidForm {
		t.Error("rep 2 should be recorded as invalid form")
	}
	if reps[2].RepNum != 3 || reps[2].FrameIndex != 120 {
		t.Errorf("rep 3 = %+v, want rep_num 3 at frame 120", reps[2])
	}
}

func TestListSessions(t *testing.T) {
	s := tempDB(t)
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	for i, ex := range []exercise.Type{exercise.Pushups, exercise.Pullups, exercise.Situps} {
		id := string(rune('a' + i))
		if err := s.CreateSession(id, ex, base.Add(time.Duration(i)*time.Hour)); err != nil {
			t.Fatalf("CreateSession %s: %v", id, err)
		}
	}

	recs, err := s.ListSessions(2)
	if err != nil {
		t.Fatalf("ListSessions: %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("got %d sessions, want 2", len(recs))
	}
	// Most recent first.
	if recs[0].Exercise != exercise.Situps {
		t.Errorf("newest session = %s, want situps", recs[0].Exercise)
	}
}
