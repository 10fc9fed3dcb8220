// Package input reads URL lists from files and standard input.
package input

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/hashicorp/go-multierror"
	"go.uber.org/zap"
)

// DefaultMmapThreshold is the file size from which ReadFile memory-maps
// instead of reading through a buffer.
const DefaultMmapThreshold = 1 << 20

// ErrNoInput is returned when no URL lines could be read at all.
var ErrNoInput = errors.New("no input")

// Config holds the configuration for reading URL lists
type Config struct {
	SkipBlank     bool  // Drop lines that are empty after trimming
	DisableMmap   bool  // Always use buffered I/O
	MmapThreshold int64 // Minimum file size for memory-mapped reads
	Logger        *zap.Logger
}

func (c Config) logger() *zap.Logger {
	if c.Logger == nil {
		return zap.NewNop()
	}
	return c.Logger
}

// ReadLines reads r fully and splits it into lines.
func ReadLines(r io.Reader, cfg Config) ([]string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("error reading input: %w", err)
	}
	return SplitLines(data, cfg.SkipBlank), nil
}

// SplitLines splits data on "\n", "\r\n" or "\r". A trailing line break does
// not produce an extra empty line.
func SplitLines(data []byte, skipBlank bool) []string {
	var lines []string
	for len(data) > 0 {
		i := bytes.IndexAny(data, "\r\n")
		if i < 0 {
			lines = appendLine(lines, data, skipBlank)
			break
		}

		lines = appendLine(lines, data[:i], skipBlank)
		if data[i] == '\r' && i+1 < len(data) && data[i+1] == '\n' {
			i++
		}
		data = data[i+1:]
	}
	return lines
}

func appendLine(lines []string, line []byte, skipBlank bool) []string {
	if skipBlank && len(bytes.TrimSpace(line)) == 0 {
		return lines
	}
	return append(lines, string(line))
}

// ReadAll reads every path in order and concatenates their lines. An empty
// path list or the path "-" reads stdin. Files that fail to open are
// reported together; lines from the remaining files are still returned.
func ReadAll(paths []string, stdin io.Reader, cfg Config) ([]string, error) {
	if len(paths) == 0 {
		paths = []string{"-"}
	}

	var (
		lines  []string
		result *multierror.Error
	)
	for _, path := range paths {
		var (
			got []string
			err error
		)
		if path == "-" {
			got, err = ReadLines(stdin, cfg)
		} else {
			got, err = ReadFile(path, cfg)
		}
		if err != nil {
			result = multierror.Append(result, fmt.Errorf("%s: %w", displayName(path), err))
			continue
		}

		cfg.logger().Debug("read url list",
			zap.String("source", displayName(path)),
			zap.Int("lines", len(got)),
		)
		lines = append(lines, got...)
	}

	if err := result.ErrorOrNil(); err != nil {
		return lines, err
	}
	if len(lines) == 0 {
		return nil, ErrNoInput
	}
	return lines, nil
}

func displayName(path string) string {
	if path == "-" {
		return "<stdin>"
	}
	return path
}

// ReadFile reads the lines of a single file, memory-mapping it when it is a
// regular file of at least MmapThreshold bytes.
func ReadFile(path string, cfg Config) ([]string, error) {
	if shouldUseMmap(path, cfg) {
		lines, err := readMmap(path, cfg)
		if err == nil {
			return lines, nil
		}
		cfg.logger().Debug("mmap failed, falling back to buffered read",
			zap.String("path", path),
			zap.Error(err),
		)
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			cfg.logger().Warn("error closing file", zap.String("path", path), zap.Error(closeErr))
		}
	}()

	return ReadLines(file, cfg)
}
