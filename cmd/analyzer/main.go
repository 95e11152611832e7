package main

import (
	"encoding/json"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/repwise/form-analyzer/internal/config"
	"github.com/repwise/form-analyzer/internal/estimator"
	"github.com/repwise/form-analyzer/internal/form"
	"github.com/repwise/form-analyzer/internal/logging"
	"github.com/repwise/form-analyzer/internal/rep"
	"github.com/repwise/form-analyzer/internal/session"
	"github.com/repwise/form-analyzer/internal/store"
)

// #region main
func main() {
	cfg := config.Load()

	// Initialize result store
	st, err := store.NewStore(cfg.DBPath)
	if err != nil {
		log.Fatalf("failed to open store: %v", err)
	}
	defer st.Close()

	// Connect to the pose estimation broker
	client, err := estimator.NewClient(estimator.ClientConfig{
		Broker:   cfg.MQTTBroker,
		ClientID: cfg.MQTTClientID,
		Username: cfg.MQTTUsername,
		Password: cfg.MQTTPassword,
	})
	if err != nil {
		log.Fatalf("failed to connect to broker at %s: %v", cfg.MQTTBroker, err)
	}
	defer client.Close()

	frames := make(chan estimator.Frame, 64)
	if err := client.Subscribe(cfg.MQTTPoseTopic, frames); err != nil {
		log.Fatalf("failed to subscribe: %v", err)
	}

	log.Println("Form analyzer ready.")
	log.Printf("  DB: %s | Broker: %s | Topic: %s", cfg.DBPath, cfg.MQTTBroker, cfg.MQTTPoseTopic)

	sessionConfig := session.DefaultConfig()
	sessionConfig.CooldownFrames = cfg.CooldownFrames
	sessionConfig.ScoreDecay = cfg.ScoreDecay
	sessionConfig.RepBonus = cfg.RepBonus

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)

	// Trackers are keyed by the estimator's session ID, one per exerciser.
	trackers := make(map[string]*session.Tracker)

	for {
		select {
		case frame := <-frames:
			processFrame(st, trackers, sessionConfig, frame)
		case sig := <-sigs:
			log.Printf("received %v, finishing %d open session(s)", sig, len(trackers))
			finishAll(st, trackers)
			return
		}
	}
}

// #endregion main

// #region pipeline

// processFrame runs one incoming frame through its session's tracker and
// persists the outcome.
func processFrame(st *store.Store, trackers map[string]*session.Tracker, cfg session.Config, frame estimator.Frame) {
	tracker, ok := trackers[frame.SessionID]
	if !ok {
		tracker = session.NewTracker(frame.Exercise, cfg)
		trackers[frame.SessionID] = tracker
		if err := st.CreateSession(frame.SessionID, frame.Exercise, time.Now().UTC()); err != nil {
			log.Printf("create session %s: %v", frame.SessionID, err)
		}
		log.Printf("session %s started (%s)", frame.SessionID, frame.Exercise)
	}

	res := tracker.ProcessFrame(frame.Pose)

	if res.RepCounted {
		metric, _ := rep.Metric(frame.Exercise, frame.Pose)
		err := st.RecordRep(store.RepRecord{
			SessionID:  frame.SessionID,
			RepNum:     res.RepCount,
			FrameIndex: res.FrameIndex,
			Metric:     metric,
			ValidForm:  res.Validation.IsValidRep,
		})
		if err != nil {
			log.Printf("record rep: %v", err)
		}
		log.Printf("[%s] rep %d at frame %d (score %.1f)",
			frame.SessionID, res.RepCount, res.FrameIndex, res.FormScore)
	}

	// Every frame gets a trail row; the pose payload rides along so
	// sessions can be replayed and exported later.
	event := logging.FrameEvent{
		SessionID:  frame.SessionID,
		FrameIndex: res.FrameIndex,
		EventType:  eventType(res),
	}
	if res.HasFeedback {
		event.Issue = res.Surfaced.Issue
		event.Severity = string(res.Surfaced.Severity)
	}
	if poseJSON, err := json.Marshal(frame.Pose); err == nil {
		event.DetailJSON = string(poseJSON)
	}
	if err := logging.LogEvent(st.DB(), event); err != nil {
		log.Printf("log event: %v", err)
	}
}

func eventType(res session.FrameResult) string {
	switch {
	case res.RepCounted:
		return logging.EventRep
	case res.Surfaced.Issue == form.IssueLowVisibility:
		return logging.EventLowConfidence
	case !res.Validation.IsValidRep:
		return logging.EventInvalidForm
	default:
		return logging.EventOK
	}
}

// finishAll closes every open session with its final totals.
func finishAll(st *store.Store, trackers map[string]*session.Tracker) {
	now := time.Now().UTC()
	for sessionID, tracker := range trackers {
		sum := tracker.Summary()
		if err := st.FinishSession(sessionID, now, sum.Frames, sum.RepCount, sum.FormScore); err != nil {
			log.Printf("finish session %s: %v", sessionID, err)
			continue
		}
		log.Printf("session %s finished: %d frames, %d reps, score %.1f",
			sessionID, sum.Frames, sum.RepCount, sum.FormScore)
	}
}

// #endregion pipeline
