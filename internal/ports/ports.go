// Package ports implements the port manager from spec.md §4.B: TCP
// availability probing, next-free-port and consecutive-free-port search,
// and the port-in-use error classifier.
package ports

import (
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/robertjbass/spindb/internal/spinerr"
)

// MaxProbes bounds the default linear scan per spec.md §4.B.
const MaxProbes = 100

// substrings the classifier matches, case-insensitive, per spec.md §4.B.
var portInUseSubstrings = []string{
	"address already in use",
	"eaddrinuse",
	"could not bind",
	"socket already in use",
}

// IsPortInUseError classifies an error message as a port-in-use failure.
// Matches any fixed substring, or the conjunction of "port" AND "in use".
func IsPortInUseError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	for _, s := range portInUseSubstrings {
		if strings.Contains(msg, s) {
			return true
		}
	}
	return strings.Contains(msg, "port") && strings.Contains(msg, "in use")
}

// IsAvailable attempts to bind a TCP listener on 127.0.0.1:port. Success
// closes it and returns true; a bind refusal classified as port-in-use
// returns false; any other error propagates.
func IsAvailable(port int) (bool, error) {
	ln, err := net.Listen("tcp", fmt.Sprintf("127.0.0.1:%d", port))
	if err != nil {
		if IsPortInUseError(err) {
			return false, nil
		}
		return false, spinerr.Wrap(spinerr.IOError, "probe port availability", err)
	}
	_ = ln.Close()
	return true, nil
}

// FindNextFree scans linearly from base (inclusive), probing at most
// maxProbes ports, and returns the first free one.
func FindNextFree(base, maxProbes int) (int, error) {
	if maxProbes <= 0 {
		maxProbes = MaxProbes
	}
	for i := 0; i < maxProbes; i++ {
		port := base + i
		ok, err := IsAvailable(port)
		if err != nil {
			return 0, err
		}
		if ok {
			return port, nil
		}
	}
	return 0, spinerr.New(spinerr.PortInUse, fmt.Sprintf("no free port found in range [%d, %d)", base, base+maxProbes))
}

// FindConsecutiveFree returns count contiguous free ports starting no
// earlier than base. If a middle port in the current candidate window is
// occupied, the scan restarts immediately after it. Fails with a
// PortInUse-classified error after probing base+100 without success, per
// spec.md §4.B.
func FindConsecutiveFree(count, base int) ([]int, error) {
	if count <= 0 {
		return nil, nil
	}

	limit := base + MaxProbes
	candidate := base
	for candidate+count-1 < limit+count {
		window := make([]int, 0, count)
		ok := true
		lastProbed := candidate

		for offset := 0; offset < count; offset++ {
			port := candidate + offset
			lastProbed = port
			free, err := IsAvailable(port)
			if err != nil {
				return nil, err
			}
			if !free {
				ok = false
				break
			}
			window = append(window, port)
		}

		if ok {
			return window, nil
		}

		if lastProbed >= limit {
			break
		}
		candidate = lastProbed + 1
	}

	return nil, spinerr.New(spinerr.PortInUse, fmt.Sprintf("no %d consecutive free ports found starting at %d", count, base))
}

// ParsePort is a small helper adapters use when reading a port back out of
// a persisted config value that round-tripped through a string field.
func ParsePort(s string) (int, error) {
	p, err := strconv.Atoi(s)
	if err != nil {
		return 0, spinerr.Wrap(spinerr.InvalidInput, "parse port", err)
	}
	return p, nil
}

// WaitAvailable polls IsAvailable until it returns true or the timeout
// elapses; used by stop-then-reuse flows that want to confirm a port has
// actually been released (e.g. after TCP TIME_WAIT on Windows, spec.md §5).
func WaitAvailable(port int, timeout time.Duration) bool {
	deadline := time.Now().Add(timeout)
	for {
		ok, err := IsAvailable(port)
		if err == nil && ok {
			return true
		}
		if time.Now().After(deadline) {
			return false
		}
		time.Sleep(100 * time.Millisecond)
	}
}
