package analysis

import "github.com/pkg/errors"

// ErrEmptyOrUnreadable means the score has no decodable notes.
var ErrEmptyOrUnreadable = errors.New("empty or unreadable score")

// Reason explains why the advanced stage gave up. It never leaves Extract.
type Reason string

const (
	ReasonNoTimeBase        Reason = "score has no ticks per beat"
	ReasonUnorderedTempoMap Reason = "tempo map is not tick ordered"
)

func (r Reason) Error() string {
	return string(r)
}
