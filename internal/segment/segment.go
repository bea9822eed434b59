// Package segment locates and names the append-only log files that make up
// an Ignite data directory.
//
// Filename format: <generation>.log
//
// Where generation is an unsigned, monotonically increasing integer assigned
// in the order the segment was created. Unlike the zero-padded,
// prefixed, timestamped scheme this package is adapted from, generation
// numbers carry no padding and no prefix: segment identity (and therefore
// compaction's ability to rewrite a store created by another implementation
// of this protocol) depends on the file being named with exactly the decimal
// generation number followed by ".log", nothing else.
package segment

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	ignerrors "github.com/iamNilotpal/ignite/pkg/errors"
)

const extension = ".log"

// Path builds the on-disk path of the segment file for generation within dataDir.
func Path(dataDir string, generation uint64) string {
	return filepath.Join(dataDir, fmt.Sprintf("%d%s", generation, extension))
}

// List returns the generation numbers of every segment file found in
// dataDir, sorted ascending. A missing directory is reported as an empty
// list, matching the bootstrap case where an Ignite instance has never
// written a segment.
func List(dataDir string) ([]uint64, error) {
	entries, err := os.ReadDir(dataDir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, ignerrors.NewStorageError(err, ignerrors.ErrorCodeIO, "failed to read data directory").
			WithPath(dataDir)
	}

	var generations []uint64
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		name := entry.Name()
		if !strings.HasSuffix(name, extension) {
			continue
		}

		id, err := ParseGeneration(name)
		if err != nil {
			continue
		}
		generations = append(generations, id)
	}

	slices.Sort(generations)
	return generations, nil
}

// ParseGeneration extracts the generation number from a segment filename
// (the base name, not a full path).
func ParseGeneration(name string) (uint64, error) {
	trimmed := strings.TrimSuffix(name, extension)
	if trimmed == name {
		return 0, fmt.Errorf("segment file %s is missing the %s extension", name, extension)
	}

	id, err := strconv.ParseUint(trimmed, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("segment file %s does not encode a valid generation: %w", name, err)
	}

	return id, nil
}

// NextGeneration returns the generation number a newly created segment
// should use, given the generations already present on disk.
func NextGeneration(existing []uint64) uint64 {
	if len(existing) == 0 {
		return 1
	}
	return existing[len(existing)-1] + 1
}
