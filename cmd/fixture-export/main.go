package main

import (
	"database/sql"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/repwise/form-analyzer/internal/logging"
	"github.com/repwise/form-analyzer/internal/pose"
	"github.com/repwise/form-analyzer/internal/replay"
	"github.com/repwise/form-analyzer/internal/store"
	_ "modernc.org/sqlite"
)

// #region main

func main() {
	dbPath := flag.String("db", "", "path to form_analyzer.db")
	sessionID := flag.String("session", "", "session to export")
	outPath := flag.String("out", "", "output fixture JSON path")
	flag.Parse()

	if *dbPath == "" || *sessionID == "" || *outPath == "" {
		fmt.Fprintln(os.Stderr, "usage: fixture-export --db path/to/db --session id --out path/to/fixture.json")
		os.Exit(2)
	}

	if err := run(*dbPath, *sessionID, *outPath); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// #endregion main

// #region extract

func run(dbPath, sessionID, outPath string) error {
	st, err := store.NewStore(dbPath)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer st.Close()

	rec, err := st.GetSession(sessionID)
	if err != nil {
		return err
	}

	frames, repFrames, err := loadSessionFrames(st.DB(), sessionID)
	if err != nil {
		return err
	}
	if len(frames) == 0 {
		return fmt.Errorf("no frame events with pose payloads for session %s", sessionID)
	}

	fmt.Printf("Found %d frames, %d reps\n", len(frames), len(repFrames))

	fixture := replay.Fixture{
		Description:      fmt.Sprintf("Session export: %d %s frames from recorded session %s", len(frames), rec.Exercise, sessionID),
		Exercise:         rec.Exercise,
		Frames:           frames,
		ExpectedReps:     repFrames,
		ExpectedRepCount: len(repFrames),
	}

	return writeFixture(fixture, outPath)
}

// loadSessionFrames reads a session's logged poses in frame order and the
// frame indices on which reps were counted.
func loadSessionFrames(db *sql.DB, sessionID string) ([]pose.Pose, []int, error) {
	rows, err := db.Query(
		`SELECT frame_index, event_type, detail_json FROM frame_events
		 WHERE session_id = ? AND detail_json IS NOT NULL
		 ORDER BY frame_index ASC`, sessionID,
	)
	if err != nil {
		return nil, nil, fmt.Errorf("query frame_events: %w", err)
	}
	defer rows.Close()

	var frames []pose.Pose
	var repFrames []int
	for rows.Next() {
		var frameIndex int
		var eventType, detail string
		if err := rows.Scan(&frameIndex, &eventType, &detail); err != nil {
			return nil, nil, fmt.Errorf("scan row: %w", err)
		}

		var p pose.Pose
		if err := json.Unmarshal([]byte(detail), &p); err != nil {
			continue // payload is not a pose
		}
		frames = append(frames, p)
		if eventType == logging.EventRep {
			repFrames = append(repFrames, frameIndex)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("iterate rows: %w", err)
	}
	return frames, repFrames, nil
}

// #endregion extract

// #region output

func writeFixture(fixture replay.Fixture, outPath string) error {
	data, err := json.MarshalIndent(fixture, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal fixture: %w", err)
	}

	if err := os.WriteFile(outPath, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", outPath, err)
	}

	fmt.Printf("Wrote fixture to %s (%d bytes, %d frames)\n", outPath, len(data), len(fixture.Frames))
	return nil
}

// #endregion output
