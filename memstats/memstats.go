// SPDX-License-Identifier: MIT
// Package: vemap/memstats

package memstats

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Sentinel errors.
var (
	// ErrUnsupported is returned on platforms without sysinfo(2) and procfs.
	ErrUnsupported = errors.New("memstats: unsupported platform")

	// ErrStatusField is returned when a /proc/self/status field is missing or malformed.
	ErrStatusField = errors.New("memstats: bad status field")
)

// File names written by WriteDiagnostics.
const (
	MapsCopyFile = "proc_self_maps_copy.txt"
	SnapshotFile = "memstats.txt"
)

// Snapshot holds memory figures in bytes. Virtual figures include swap.
type Snapshot struct {
	VirtualTotal   int64
	VirtualUsed    int64
	VirtualProcess int64
	PhysTotal      int64
	PhysUsed       int64
	PhysProcess    int64
}

// LogValue renders the snapshot as a slog group.
func (s Snapshot) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int64("virtual_total", s.VirtualTotal),
		slog.Int64("virtual_used", s.VirtualUsed),
		slog.Int64("virtual_process", s.VirtualProcess),
		slog.Int64("phys_total", s.PhysTotal),
		slog.Int64("phys_used", s.PhysUsed),
		slog.Int64("phys_process", s.PhysProcess),
	)
}

// WriteTo prints one "name (bytes): n" and one "name (GB): g" line per figure.
func (s Snapshot) WriteTo(w io.Writer) (int64, error) {
	rows := []struct {
		name string
		v    int64
	}{
		{"Virtual Memory", s.VirtualTotal},
		{"Virtual Memory Used", s.VirtualUsed},
		{"Virtual Memory Used By Process", s.VirtualProcess},
		{"Physical Memory", s.PhysTotal},
		{"Physical Memory Used", s.PhysUsed},
		{"Physical Memory Used By Process", s.PhysProcess},
	}
	var total int64
	for _, r := range rows {
		n, err := fmt.Fprintf(w, "%s (bytes): %d\n%s (GB): %g\n", r.name, r.v, r.name, float64(r.v)*1e-9)
		total += int64(n)
		if err != nil {
			return total, err
		}
	}

	return total, nil
}

// statusKB returns the value of a "Name:   1234 kB" line of a
// /proc/<pid>/status style stream, in bytes.
func statusKB(r io.Reader, field string) (int64, error) {
	sc := bufio.NewScanner(r)
	prefix := field + ":"
	for sc.Scan() {
		line := sc.Text()
		if !strings.HasPrefix(line, prefix) {
			continue
		}
		parts := strings.Fields(strings.TrimPrefix(line, prefix))
		if len(parts) == 0 {
			break
		}
		kb, err := strconv.ParseInt(parts[0], 10, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %s: %v", ErrStatusField, field, err)
		}

		return kb * 1024, nil
	}
	if err := sc.Err(); err != nil {
		return 0, err
	}

	return 0, fmt.Errorf("%w: %s not found", ErrStatusField, field)
}

// WriteDiagnostics writes a copy of /proc/self/maps and a memory snapshot
// into dir (created if needed) and returns the paths written. Each file is
// best effort: the first error is returned alongside whatever was written.
func WriteDiagnostics(dir string) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("memstats: %w", err)
	}

	var written []string
	var first error
	keep := func(err error) {
		if first == nil {
			first = err
		}
	}

	if maps, err := os.ReadFile("/proc/self/maps"); err != nil {
		keep(fmt.Errorf("memstats: read maps: %w", err))
	} else {
		p := filepath.Join(dir, MapsCopyFile)
		if err := os.WriteFile(p, maps, 0o644); err != nil {
			keep(fmt.Errorf("memstats: %w", err))
		} else {
			written = append(written, p)
		}
	}

	if snap, err := Read(); err != nil {
		keep(err)
	} else {
		p := filepath.Join(dir, SnapshotFile)
		var sb strings.Builder
		_, _ = snap.WriteTo(&sb)
		if err := os.WriteFile(p, []byte(sb.String()), 0o644); err != nil {
			keep(fmt.Errorf("memstats: %w", err))
		} else {
			written = append(written, p)
		}
	}

	return written, first
}
