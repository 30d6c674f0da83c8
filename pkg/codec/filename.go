package codec

import "strings"

const (
	DataFileSuffix = ".dat"
	// MaxPathLength is the path buffer size of the original data files,
	// terminator excluded.
	MaxPathLength = 255
)

// DataFile appends DataFileSuffix to base unless it is already there. The
// base is truncated when the combined name would not fit MaxPathLength.
func DataFile(base string) string {
	if strings.HasSuffix(base, DataFileSuffix) {
		if len(base) > MaxPathLength {
			return base[:MaxPathLength]
		}
		return base
	}
	if len(base)+len(DataFileSuffix) > MaxPathLength {
		base = base[:MaxPathLength-len(DataFileSuffix)]
	}
	return base + DataFileSuffix
}
