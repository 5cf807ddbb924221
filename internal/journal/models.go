package journal

import "time"

type Action string

const (
	ActionPush   Action = "push"
	ActionCache  Action = "cache"
	ActionRecall Action = "recall"
	ActionClear  Action = "clear"
	ActionPrune  Action = "prune"
)

type Event struct {
	ID     string    `json:"id"`
	At     time.Time `json:"at"`
	Action Action    `json:"action"`
	Entry  string    `json:"entry"`
	Bytes  int64     `json:"bytes"`
	Count  int       `json:"count"`
}
