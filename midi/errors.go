package midi

import "github.com/pkg/errors"

var (
	ErrBadHeader         = errors.New("bad header")
	ErrTruncatedTrack    = errors.New("truncated track")
	ErrUnsupportedFormat = errors.New("unsupported format")
	ErrEncode            = errors.New("encode failed")
)

// IsParseError reports whether err came from decoding malformed input.
func IsParseError(err error) bool {
	return errors.Is(err, ErrBadHeader) ||
		errors.Is(err, ErrTruncatedTrack) ||
		errors.Is(err, ErrUnsupportedFormat)
}
