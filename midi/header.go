package midi

import (
	"encoding/binary"

	"github.com/pkg/errors"
)

const (
	headerID = "MThd"
	trackID  = "MTrk"
)

type header struct {
	format       uint16
	numTracks    uint16
	ticksPerBeat uint16
	// size of the header chunk including its 8 byte prefix
	size int
}

func readHeader(data []byte) (header, error) {
	var h header
	if len(data) < 14 || string(data[0:4]) != headerID {
		return h, errors.Wrap(ErrBadHeader, "missing MThd chunk")
	}
	length := binary.BigEndian.Uint32(data[4:8])
	if length < 6 || uint64(length)+8 > uint64(len(data)) {
		return h, errors.Wrapf(ErrBadHeader, "header chunk length %d", length)
	}
	h.size = int(length) + 8
	h.format = binary.BigEndian.Uint16(data[8:10])
	h.numTracks = binary.BigEndian.Uint16(data[10:12])
	division := binary.BigEndian.Uint16(data[12:14])

	if h.format > 1 {
		return h, errors.Wrapf(ErrUnsupportedFormat, "format %d", h.format)
	}
	if division&0x8000 != 0 {
		return h, errors.Wrap(ErrUnsupportedFormat, "SMPTE time division")
	}
	if division == 0 {
		return h, errors.Wrap(ErrBadHeader, "zero ticks per beat")
	}
	h.ticksPerBeat = division
	return h, nil
}

// checkTrackChunks walks the chunk framing and makes sure every declared
// track chunk is present in full. Unknown chunk types are skipped.
func checkTrackChunks(data []byte, h header) error {
	pos := h.size
	var found int
	for found < int(h.numTracks) {
		if pos+8 > len(data) {
			return errors.Wrapf(ErrTruncatedTrack, "track %d: missing chunk header", found)
		}
		id := string(data[pos : pos+4])
		length := binary.BigEndian.Uint32(data[pos+4 : pos+8])
		pos += 8
		if uint64(pos)+uint64(length) > uint64(len(data)) {
			return errors.Wrapf(ErrTruncatedTrack, "track %d: chunk declares %d bytes, %d available",
				found, length, len(data)-pos)
		}
		if id == trackID {
			found++
		}
		pos += int(length)
	}
	return nil
}

func emptyContainer(ticksPerBeat uint16) []byte {
	buf := make([]byte, 14)
	copy(buf[0:4], headerID)
	binary.BigEndian.PutUint32(buf[4:8], 6)
	binary.BigEndian.PutUint16(buf[8:10], 1)
	binary.BigEndian.PutUint16(buf[10:12], 0)
	binary.BigEndian.PutUint16(buf[12:14], ticksPerBeat)
	return buf
}
