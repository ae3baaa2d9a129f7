// Package memstats reports host and process memory and writes diagnostic
// dumps after a failed inference run.
//
// On Linux, Read combines sysinfo(2) (via golang.org/x/sys/unix) with the
// VmSize and VmRSS lines of /proc/self/status. Other platforms return
// ErrUnsupported.
package memstats
