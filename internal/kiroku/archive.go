package kiroku

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/klauspost/compress/zstd"
	"github.com/klauspost/pgzip"
	"github.com/ulikunitz/xz"
)

// traceInfo describes one archived build trace.
type traceInfo struct {
	Name     string
	Path     string
	Size     int64
	Modified time.Time
}

// archiveTrace writes the raw build trace into the cache as a
// zstd-compressed log and returns its path. One archive per run; the
// timestamped name keeps repeated runs from clobbering each other.
func archiveTrace(raw []byte) (string, error) {
	if err := os.MkdirAll(tracesDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create traces dir %s: %w", tracesDir, err)
	}

	name := fmt.Sprintf("trace-%d.log.zst", time.Now().Unix())
	path := filepath.Join(tracesDir, name)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create trace archive: %w", err)
	}
	defer f.Close()

	zw, err := zstd.NewWriter(f)
	if err != nil {
		return "", fmt.Errorf("failed to create zstd writer: %w", err)
	}
	if _, err := zw.Write(raw); err != nil {
		zw.Close()
		return "", fmt.Errorf("failed to write trace archive: %w", err)
	}
	if err := zw.Close(); err != nil {
		return "", fmt.Errorf("failed to finalize trace archive: %w", err)
	}

	return path, nil
}

// readTrace reads a build trace from path ("-" means stdin), transparently
// decompressing by file extension.
func readTrace(path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(os.Stdin)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	// Determine the compression type based on file extension
	var r io.Reader = f
	switch {
	case strings.HasSuffix(path, ".gz"):
		gz, err := pgzip.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("failed to create gzip reader for %s: %w", path, err)
		}
		defer gz.Close()
		r = gz
	case strings.HasSuffix(path, ".zst"):
		zr, err := zstd.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("failed to create zstd reader for %s: %w", path, err)
		}
		defer zr.Close()
		r = zr
	case strings.HasSuffix(path, ".xz"):
		xr, err := xz.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("failed to create xz reader for %s: %w", path, err)
		}
		r = xr
	}

	return io.ReadAll(r)
}

// listTraces returns the archived traces, newest first.
func listTraces() ([]traceInfo, error) {
	entries, err := os.ReadDir(tracesDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var traces []traceInfo
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		traces = append(traces, traceInfo{
			Name:     e.Name(),
			Path:     filepath.Join(tracesDir, e.Name()),
			Size:     info.Size(),
			Modified: info.ModTime(),
		})
	}

	sort.Slice(traces, func(i, j int) bool {
		return traces[i].Modified.After(traces[j].Modified)
	})
	return traces, nil
}

// newestTrace returns the most recently archived trace.
func newestTrace() (traceInfo, error) {
	traces, err := listTraces()
	if err != nil {
		return traceInfo{}, err
	}
	if len(traces) == 0 {
		return traceInfo{}, fmt.Errorf("no archived traces in %s", tracesDir)
	}
	return traces[0], nil
}
