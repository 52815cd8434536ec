package session

import (
	"time"

	"github.com/alphabetz/alphabetz/internal/questiongen"
)

// batchLoadedMsg carries the generated batch for fetch token Token.
type batchLoadedMsg struct {
	Token     int
	Questions []questiongen.Question
	Err       error
}

// timerTickMsg is sent every second while a timed question is open. Gen
// identifies the tick loop so a loop from a previous question dies out.
type timerTickMsg struct {
	Gen int
}

// spinnerTickMsg animates the loading indicator.
type spinnerTickMsg time.Time

// autoAdvanceMsg fires FeedbackDelay after a timeout on question Index.
type autoAdvanceMsg struct {
	Index int
}
