package main

import (
	"database/sql"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/repwise/form-analyzer/internal/pose"
	"github.com/repwise/form-analyzer/internal/replay"
	"github.com/repwise/form-analyzer/internal/session"
	"github.com/repwise/form-analyzer/internal/store"
	_ "modernc.org/sqlite"
)

// #region main

func main() {
	dbPath := flag.String("db", "", "path to form_analyzer.db (DB mode)")
	sessionID := flag.String("session", "", "session to replay (DB mode)")
	fixturePath := flag.String("fixture", "", "path to fixture JSON (fixture mode)")
	flag.Parse()

	if (*dbPath == "" && *fixturePath == "") || (*dbPath != "" && *fixturePath != "") {
		fmt.Fprintln(os.Stderr, "usage: replay --db path/to/form_analyzer.db --session id")
		fmt.Fprintln(os.Stderr, "       replay --fixture path/to/fixture.json")
		os.Exit(2)
	}

	var exitCode int
	if *fixturePath != "" {
		exitCode = runFixtureMode(*fixturePath)
	} else {
		if *sessionID == "" {
			fmt.Fprintln(os.Stderr, "DB mode requires --session")
			os.Exit(2)
		}
		exitCode = runDBMode(*dbPath, *sessionID)
	}
	os.Exit(exitCode)
}

// #endregion main

// #region fixture-mode

func runFixtureMode(path string) int {
	f, err := replay.LoadFixture(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load fixture: %v\n", err)
		return 2
	}

	outcomes, problems := f.Verify()
	sum := replay.Summarize(outcomes)

	if f.Description != "" {
		fmt.Printf("Fixture: %s\n", f.Description)
	}
	fmt.Printf("Exercise: %s | %d frames, %d reps, score %.1f\n",
		f.Exercise, sum.TotalFrames, sum.Reps, sum.FinalScore)

	if len(problems) == 0 {
		fmt.Println("PASS")
		return 0
	}
	for _, p := range problems {
		fmt.Printf("FAIL: %s\n", p)
	}
	return 1
}

// #endregion fixture-mode

// #region db-mode

// trailRow is one frame_events row: the recorded action plus the pose
// payload the analyzer logged alongside it.
type trailRow struct {
	FrameIndex int
	EventType  string
	Pose       pose.Pose
}

func runDBMode(dbPath, sessionID string) int {
	st, err := store.NewStore(dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "open db: %v\n", err)
		return 2
	}
	defer st.Close()

	rec, err := st.GetSession(sessionID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "get session: %v\n", err)
		return 2
	}

	rows, err := loadTrail(st.DB(), sessionID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return 2
	}
	if len(rows) == 0 {
		fmt.Fprintf(os.Stderr, "no frame events with pose payloads for session %s\n", sessionID)
		return 2
	}

	frames := make([]pose.Pose, len(rows))
	recorded := make([]string, len(rows))
	for i, r := range rows {
		frames[i] = r.Pose
		recorded[i] = r.EventType
	}

	outcomes := replay.Replay(rec.Exercise, frames, session.DefaultConfig())
	return printComparison(outcomes, recorded)
}

// loadTrail reads a session's frame trail in frame order, skipping rows
// without a pose payload.
func loadTrail(db *sql.DB, sessionID string) ([]trailRow, error) {
	rows, err := db.Query(
		`SELECT frame_index, event_type, detail_json FROM frame_events
		 WHERE session_id = ? AND detail_json IS NOT NULL
		 ORDER BY frame_index ASC`, sessionID,
	)
	if err != nil {
		return nil, fmt.Errorf("query frame_events: %w", err)
	}
	defer rows.Close()

	var trail []trailRow
	for rows.Next() {
		var r trailRow
		var detail string
		if err := rows.Scan(&r.FrameIndex, &r.EventType, &detail); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		if err := json.Unmarshal([]byte(detail), &r.Pose); err != nil {
			continue // payload is not a pose
		}
		trail = append(trail, r)
	}
	return trail, rows.Err()
}

// #endregion db-mode

// #region output

// printComparison outputs recorded vs replayed actions and returns the
// exit code: 0 when every frame matches, 1 otherwise.
func printComparison(outcomes []replay.FrameOutcome, recorded []string) int {
	fmt.Printf("%-8s| %-15s| %-15s| %s\n", "Frame", "Recorded", "Replayed", "Match")
	fmt.Printf("%-8s+%-16s+%-16s+%s\n", "--------", "----------------", "----------------", "------")

	matches := 0
	total := len(outcomes)
	if len(recorded) < total {
		total = len(recorded)
	}

	for i := 0; i < total; i++ {
		match := "DIFF"
		if recorded[i] == outcomes[i].Action {
			match = "OK"
			matches++
		}
		fmt.Printf("%-8d| %-15s| %-15s| %s\n", outcomes[i].FrameIndex, recorded[i], outcomes[i].Action, match)
	}

	diverge := total - matches
	fmt.Printf("\nSummary: %d total, %d match, %d diverge\n", total, matches, diverge)

	if diverge > 0 {
		return 1
	}
	return 0
}

// #endregion output
