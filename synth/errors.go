package synth

import "github.com/pkg/errors"

var (
	ErrEmptyScore            = errors.New("score has no notes")
	ErrNoMelodyFound         = errors.New("no melody line to harmonize")
	ErrUnsupportedInstrument = errors.New("unsupported instrument")
)
