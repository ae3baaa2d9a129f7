// SPDX-License-Identifier: MIT
// Package: vemap/memstats

//go:build linux

package memstats

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// Read gathers a Snapshot from sysinfo(2) and /proc/self/status.
func Read() (Snapshot, error) {
	var info unix.Sysinfo_t
	if err := unix.Sysinfo(&info); err != nil {
		return Snapshot{}, fmt.Errorf("memstats: sysinfo: %w", err)
	}
	unit := uint64(info.Unit)
	totalRAM, freeRAM := uint64(info.Totalram), uint64(info.Freeram)
	totalSwap, freeSwap := uint64(info.Totalswap), uint64(info.Freeswap)

	s := Snapshot{
		VirtualTotal: int64((totalRAM + totalSwap) * unit),
		VirtualUsed:  int64((totalRAM - freeRAM + totalSwap - freeSwap) * unit),
		PhysTotal:    int64(totalRAM * unit),
		PhysUsed:     int64((totalRAM - freeRAM) * unit),
	}

	var err error
	if s.VirtualProcess, err = readStatus("VmSize"); err != nil {
		return Snapshot{}, err
	}
	if s.PhysProcess, err = readStatus("VmRSS"); err != nil {
		return Snapshot{}, err
	}

	return s, nil
}

func readStatus(field string) (int64, error) {
	f, err := os.Open("/proc/self/status")
	if err != nil {
		return 0, fmt.Errorf("memstats: %w", err)
	}
	defer f.Close()

	return statusKB(f, field)
}
