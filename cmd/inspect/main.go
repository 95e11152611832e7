package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/repwise/form-analyzer/internal/logging"
	"github.com/repwise/form-analyzer/internal/store"
	_ "modernc.org/sqlite"
)

// #region main

func main() {
	dbPath := flag.String("db", "", "path to form_analyzer.db")
	last := flag.Int("last", 20, "show N most recent sessions")
	sessionID := flag.String("session", "", "show single session detail")
	events := flag.Int("events", 10, "number of recent frame events in detail view")
	jsonOut := flag.Bool("json", false, "output as JSON instead of table")
	flag.Parse()

	if *dbPath == "" {
		fmt.Fprintln(os.Stderr, "usage: inspect --db path/to/form_analyzer.db [--last N] [--session id] [--events N] [--json]")
		os.Exit(2)
	}

	st, err := store.NewStore(*dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "open db: %v\n", err)
		os.Exit(1)
	}
	defer st.Close()

	if *sessionID != "" {
		if err := runDetailMode(st, *sessionID, *events, *jsonOut); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
	} else {
		if err := runListMode(st, *last, *jsonOut); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
	}
}

// #endregion main

// #region list-mode

type listRow struct {
	SessionID string  `json:"session_id"`
	Exercise  string  `json:"exercise"`
	StartedAt string  `json:"started_at"`
	EndedAt   string  `json:"ended_at,omitempty"`
	Frames    int     `json:"frames"`
	RepCount  int     `json:"rep_count"`
	FormScore float64 `json:"form_score"`
}

func runListMode(st *store.Store, last int, jsonOut bool) error {
	sessions, err := st.ListSessions(last)
	if err != nil {
		return err
	}
	if len(sessions) == 0 {
		fmt.Fprintln(os.Stderr, "no sessions found")
		return nil
	}

	rows := make([]listRow, len(sessions))
	for i, rec := range sessions {
		rows[i] = toListRow(rec)
	}

	if jsonOut {
		return printJSON(rows)
	}

	fmt.Printf("%-12s  %-10s  %7s  %5s  %6s  %s\n",
		"Session", "Exercise", "Frames", "Reps", "Score", "Started")
	fmt.Printf("%-12s+-%-10s+-%7s+-%5s+-%6s+-%s\n",
		"------------", "----------", "-------", "-----", "------", "--------------------")
	for _, r := range rows {
		fmt.Printf("%-12s  %-10s  %7d  %5d  %6.1f  %s\n",
			shortID(r.SessionID), r.Exercise, r.Frames, r.RepCount, r.FormScore, r.StartedAt)
	}
	return nil
}

func toListRow(rec store.SessionRecord) listRow {
	r := listRow{
		SessionID: rec.SessionID,
		Exercise:  string(rec.Exercise),
		StartedAt: rec.StartedAt.Format("2006-01-02T15:04:05Z"),
		Frames:    rec.Frames,
		RepCount:  rec.RepCount,
		FormScore: rec.FormScore,
	}
	if !rec.EndedAt.IsZero() {
		r.EndedAt = rec.EndedAt.Format("2006-01-02T15:04:05Z")
	}
	return r
}

// #endregion list-mode

// #region detail-mode

type repRow struct {
	RepNum     int     `json:"rep_num"`
	FrameIndex int     `json:"frame_index"`
	Metric     float64 `json:"metric"`
	ValidForm  bool    `json:"valid_form"`
}

type eventRow struct {
	FrameIndex int    `json:"frame_index"`
	EventType  string `json:"event_type"`
	Issue      string `json:"issue,omitempty"`
	Severity   string `json:"severity,omitempty"`
}

type detailOutput struct {
	Session listRow    `json:"session"`
	Reps    []repRow   `json:"reps"`
	Events  []eventRow `json:"recent_events"`
}

func runDetailMode(st *store.Store, sessionID string, eventLimit int, jsonOut bool) error {
	rec, err := st.GetSession(sessionID)
	if err != nil {
		return err
	}

	reps, err := st.SessionReps(sessionID)
	if err != nil {
		return err
	}

	events, err := logging.RecentEvents(st.DB(), sessionID, eventLimit)
	if err != nil {
		return err
	}

	out := detailOutput{Session: toListRow(rec)}
	for _, rep := range reps {
		out.Reps = append(out.Reps, repRow{
			RepNum:     rep.RepNum,
			FrameIndex: rep.FrameIndex,
			Metric:     rep.Metric,
			ValidForm:  rep.ValidForm,
		})
	}
	for _, ev := range events {
		out.Events = append(out.Events, eventRow{
			FrameIndex: ev.FrameIndex,
			EventType:  ev.EventType,
			Issue:      ev.Issue,
			Severity:   ev.Severity,
		})
	}

	if jsonOut {
		return printJSON(out)
	}

	fmt.Printf("Session:   %s\n", rec.SessionID)
	fmt.Printf("Exercise:  %s\n", rec.Exercise)
	fmt.Printf("Started:   %s\n", out.Session.StartedAt)
	if out.Session.EndedAt != "" {
		fmt.Printf("Ended:     %s (%s)\n", out.Session.EndedAt, rec.EndedAt.Sub(rec.StartedAt).Round(time.Second))
	}
	fmt.Printf("Frames:    %d\n", rec.Frames)
	fmt.Printf("Reps:      %d\n", rec.RepCount)
	fmt.Printf("Score:     %.1f\n", rec.FormScore)

	if len(out.Reps) > 0 {
		fmt.Printf("\nReps:\n")
		fmt.Printf("  %-5s  %-7s  %-8s  %s\n", "Rep", "Frame", "Metric", "Valid")
		for _, r := range out.Reps {
			fmt.Printf("  %-5d  %-7d  %-8.1f  %v\n", r.RepNum, r.FrameIndex, r.Metric, r.ValidForm)
		}
	}

	if len(out.Events) > 0 {
		fmt.Printf("\nRecent events (newest first):\n")
		for _, ev := range out.Events {
			line := fmt.Sprintf("  frame %-6d %-15s", ev.FrameIndex, ev.EventType)
			if ev.Issue != "" {
				line += fmt.Sprintf("  %s [%s]", ev.Issue, ev.Severity)
			}
			fmt.Println(line)
		}
	}

	return nil
}

// #endregion detail-mode

// #region output

func printJSON(v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}
	fmt.Println(string(data))
	return nil
}

func shortID(id string) string {
	if len(id) > 12 {
		return id[:12]
	}
	return id
}

// #endregion output
