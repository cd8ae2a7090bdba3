package worker

import (
	"errors"
	"fmt"
)

// Stage names the step at which a card was dropped
type Stage string

const (
	StageCard   Stage = "card"
	StageDetail Stage = "detail"
	StagePanic  Stage = "panic"
)

var (
	ErrNoDetailLink    = errors.New("card has no match link")
	ErrNoScorecardLink = errors.New("match page has no scorecard link")
)

// CardError explains why one listing card produced no record
type CardError struct {
	Index int
	Stage Stage
	Err   error
}

func (e *CardError) Error() string {
	return fmt.Sprintf("card %d (%s): %v", e.Index, e.Stage, e.Err)
}

func (e *CardError) Unwrap() error {
	return e.Err
}
