package process

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"

	"github.com/robertjbass/spindb/internal/spinerr"
)

func testSupervisor() *Supervisor {
	return New(logrus.NewEntry(logrus.New()))
}

func echoCommand() (string, []string) {
	if runtime.GOOS == "windows" {
		return "cmd", []string{"/c", "echo", "hello"}
	}
	return "echo", []string{"hello"}
}

func TestSpawnCapturesStdout(t *testing.T) {
	s := testSupervisor()
	bin, args := echoCommand()

	result, err := s.Spawn(bin, args, SpawnOptions{})
	assert.NoError(t, err)
	assert.Equal(t, 0, result.ExitCode)
	assert.Contains(t, result.Stdout, "hello")
}

func TestSpawnClassifiesNonZeroExit(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("uses a unix-only exit-code command")
	}
	s := testSupervisor()

	_, err := s.Spawn("sh", []string{"-c", "exit 3"}, SpawnOptions{})
	assert.Error(t, err)
	assert.True(t, spinerr.Is(err, spinerr.NonZeroExit))
}

func TestSpawnClassifiesMissingBinary(t *testing.T) {
	s := testSupervisor()
	_, err := s.Spawn("definitely-not-a-real-binary-xyz", nil, SpawnOptions{})
	assert.Error(t, err)
	assert.True(t, spinerr.Is(err, spinerr.SpawnError))
}

func TestSpawnTimesOut(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("uses a unix-only sleep command")
	}
	s := testSupervisor()

	_, err := s.Spawn("sleep", []string{"5"}, SpawnOptions{Timeout: 50 * time.Millisecond})
	assert.Error(t, err)
	assert.True(t, spinerr.Is(err, spinerr.Timeout))
}

func TestPidFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "x.pid")
	assert.NoError(t, WritePidFile(path, 12345))

	pid, err := ReadPidFile(path)
	assert.NoError(t, err)
	assert.Equal(t, 12345, pid)
}

func TestReadPidFileMissing(t *testing.T) {
	_, err := ReadPidFile(filepath.Join(t.TempDir(), "missing.pid"))
	assert.Error(t, err)
}

func TestIsRunningFalseForMissingPidFile(t *testing.T) {
	s := testSupervisor()
	assert.False(t, s.IsRunning(filepath.Join(t.TempDir(), "missing.pid")))
}

func TestIsRunningTrueForCurrentProcess(t *testing.T) {
	s := testSupervisor()
	path := filepath.Join(t.TempDir(), "self.pid")
	assert.NoError(t, WritePidFile(path, os.Getpid()))
	assert.True(t, s.IsRunning(path))
}

func TestPollReadinessSucceedsOnceProbePasses(t *testing.T) {
	s := testSupervisor()
	calls := 0
	probe := func() error {
		calls++
		if calls < 3 {
			return assertError{}
		}
		return nil
	}

	ok := s.PollReadiness(context.Background(), probe, 10*time.Millisecond, time.Second)
	assert.True(t, ok)
	assert.Equal(t, 3, calls)
}

func TestPollReadinessTimesOut(t *testing.T) {
	s := testSupervisor()
	probe := func() error { return assertError{} }

	ok := s.PollReadiness(context.Background(), probe, 5*time.Millisecond, 30*time.Millisecond)
	assert.False(t, ok)
}

func TestSplitArgs(t *testing.T) {
	argv := SplitArgs("mysql -u root --host=localhost")
	assert.Equal(t, []string{"mysql", "-u", "root", "--host=localhost"}, argv)
}

type assertError struct{}

func (assertError) Error() string { return "not ready" }
