package input

import (
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"
	"golang.org/x/exp/mmap"
)

// shouldUseMmap determines if memory-mapped I/O should be used for the given file.
// It returns false if:
// - mmap is disabled via config
// - the file is below the threshold size
// - the file cannot be stat'd
// - the file is not a regular file (e.g., pipe, device)
func shouldUseMmap(path string, cfg Config) bool {
	if cfg.DisableMmap {
		return false
	}

	info, err := os.Stat(path)
	if err != nil {
		return false
	}

	if !info.Mode().IsRegular() {
		return false
	}

	threshold := cfg.MmapThreshold
	if threshold <= 0 {
		threshold = DefaultMmapThreshold
	}
	return info.Size() >= threshold
}

// readMmap reads the lines of path through golang.org/x/exp/mmap.
func readMmap(path string, cfg Config) ([]string, error) {
	reader, err := mmap.Open(path)
	if err != nil {
		return nil, fmt.Errorf("error memory-mapping file: %w", err)
	}
	defer func() {
		if closeErr := reader.Close(); closeErr != nil {
			cfg.logger().Warn("error closing mmap reader", zap.String("path", path), zap.Error(closeErr))
		}
	}()

	data := make([]byte, reader.Len())
	n, err := reader.ReadAt(data, 0)
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("error reading memory-mapped file: %w", err)
	}

	return SplitLines(data[:n], cfg.SkipBlank), nil
}
