package models

import "time"

// OperationRecord is one journal entry: a completed insert, search or reset
// against one strategy's table.
type OperationRecord struct {
	ID         int64      `json:"id"`
	Strategy   string     `json:"method"`
	Operation  string     `json:"operation"`
	Key        int        `json:"value"`
	Success    bool       `json:"success"`
	Index      int        `json:"index"`
	Collisions int        `json:"collisions"`
	Capacity   int        `json:"size"`
	Steps      []StepView `json:"steps,omitempty"`
	Error      string     `json:"error,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}
