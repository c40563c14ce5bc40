package stream

import "backend-shottracker/internal/shot"

const (
	EventShotSaved   = "shot.saved"
	EventGoalChanged = "goal.changed"
)

// Event is the JSON frame pushed to websocket clients.
type Event struct {
	Type    string `json:"type"`
	Payload any    `json:"payload"`
}

func ShotSaved(rec shot.Record) Event {
	return Event{Type: EventShotSaved, Payload: rec}
}

func GoalChanged(goal *int) Event {
	return Event{Type: EventGoalChanged, Payload: map[string]*int{"goalPct": goal}}
}
