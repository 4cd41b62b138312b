// Package engine implements the exam session itself: drawing questions
// from a pool, grading answers, driving the clock and producing the final
// session record. Sessions are self-contained values; nothing lives in
// package state, so independent sessions can run side by side.
package engine

import "time"

// Mode filters the question pool by answer style before sampling.
type Mode string

const (
	ModeMultiple Mode = "multiple"
	ModeText     Mode = "text"
	ModeMixed    Mode = "mixed"
)

// Quantity selects how many questions a session draws from the filtered
// pool. The zero value means "all".
type Quantity struct {
	all bool
	n   int
}

// QuantityAll draws the whole filtered pool.
func QuantityAll() Quantity { return Quantity{all: true} }

// QuantityOf draws n questions; n is clamped to [1, pool size] at
// selection time.
func QuantityOf(n int) Quantity { return Quantity{n: n} }

// SessionConfig is the user's choice on the configuration screen, scoped
// to a single run.
type SessionConfig struct {
	Simulado      string
	SimuladoLabel string
	// ExamCode is one exam subset, or "mixed" for the whole bank.
	ExamCode string
	Mode     Mode
	Quantity Quantity
	// TimeLimit of 0 means untimed.
	TimeLimit time.Duration
}
