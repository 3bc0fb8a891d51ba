package model

import "fmt"

// Warning is a non-fatal, record-local problem collected during a run.
// Warnings never abort the pipeline; they are reported with the output.
type Warning struct {
	Stage   string // "prep", "segment", "forecast", "roi"
	Ref     string // row number, customer id, or series id
	Message string
}

func (w Warning) String() string {
	if w.Ref != "" {
		return fmt.Sprintf("[%s] %s: %s", w.Stage, w.Ref, w.Message)
	}
	return fmt.Sprintf("[%s] %s", w.Stage, w.Message)
}
