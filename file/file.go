package file

import (
	"os"

	"github.com/pkg/errors"
)

// FileNumToMidiPath numbers the files of a scan in the order they were found.
type FileNumToMidiPath map[uint32]string

func CreateFileNumMap(paths []string) FileNumToMidiPath {
	res := make(FileNumToMidiPath)
	for i, v := range paths {
		res[uint32(i)] = v
	}
	return res
}

// ReadAll reads a MIDI upload or file, refusing anything above limit bytes.
// limit 0 means no limit.
func ReadAll(path string, limit int64) ([]byte, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, errors.Wrapf(err, "stat %s", path)
	}
	if info.IsDir() {
		return nil, errors.Errorf("%s is a directory", path)
	}
	if limit > 0 && info.Size() > limit {
		return nil, errors.Errorf("%s is %d bytes, limit is %d", path, info.Size(), limit)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s", path)
	}
	return data, nil
}
