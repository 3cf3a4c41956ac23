// Package process is the engine-agnostic supervisor from spec.md §4.C:
// spawning and waiting on short-lived commands, launching detached
// servers, polling readiness, and the canonical is_running/wait_stopped
// liveness checks adapters and the container manager consult.
//
// Grounded on pkg/commands/os.go's OSCommand: exec.Command-based spawn,
// jesseduffield/kill for group-aware termination, logrus timing logs.
package process

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strconv"
	"strings"
	"syscall"
	"time"

	goerrors "github.com/go-errors/errors"
	"github.com/jesseduffield/kill"
	"github.com/mgutz/str"
	"github.com/sirupsen/logrus"

	"github.com/robertjbass/spindb/internal/spinerr"
)

// Result is what Spawn returns for a single-shot command.
type Result struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// SpawnOptions configures a single-shot or detached spawn.
type SpawnOptions struct {
	Dir     string
	Env     []string
	Stdin   string
	Timeout time.Duration
	// ShellWrap forces invocation through a shell for binaries that need
	// one to resolve (e.g. Windows batch wrappers), per spec.md §4.C.
	ShellWrap bool
}

// Supervisor is the process-agnostic spawn/poll/liveness primitive set
// every engine adapter is built on.
type Supervisor struct {
	Log      *logrus.Entry
	platform platform
	command  func(name string, args ...string) *exec.Cmd
}

type platform struct {
	os       string
	shell    string
	shellArg string
}

// New builds a Supervisor bound to the current platform's shell.
func New(log *logrus.Entry) *Supervisor {
	return &Supervisor{
		Log:      log,
		platform: currentPlatform(),
		command:  exec.Command,
	}
}

func currentPlatform() platform {
	if runtime.GOOS == "windows" {
		return platform{os: "windows", shell: "cmd", shellArg: "/c"}
	}
	return platform{os: runtime.GOOS, shell: "bash", shellArg: "-c"}
}

// SetCommandFunc swaps the command constructor; for tests only.
func (s *Supervisor) SetCommandFunc(f func(string, ...string) *exec.Cmd) {
	s.command = f
}

func (s *Supervisor) newCmd(ctx context.Context, bin string, args []string, opts SpawnOptions) *exec.Cmd {
	name, finalArgs := bin, args
	if opts.ShellWrap && s.platform.os == "windows" {
		full := quoteWindowsCommand(bin, args)
		name, finalArgs = s.platform.shell, []string{s.platform.shellArg, full}
	}

	var cmd *exec.Cmd
	if ctx != nil {
		cmd = exec.CommandContext(ctx, name, finalArgs...)
	} else {
		cmd = s.command(name, finalArgs...)
	}
	cmd.Dir = opts.Dir
	if opts.Env != nil {
		cmd.Env = opts.Env
	} else {
		cmd.Env = os.Environ()
	}
	return cmd
}

func quoteWindowsCommand(bin string, args []string) string {
	parts := make([]string, 0, len(args)+1)
	parts = append(parts, `"`+bin+`"`)
	for _, a := range args {
		parts = append(parts, `"`+strings.ReplaceAll(a, `"`, `\"`)+`"`)
	}
	return strings.Join(parts, " ")
}

// Spawn runs bin to completion, capturing stdout/stderr, and classifies
// the result per spec.md §4.C: SpawnError on launch failure, Timeout on
// deadline, NonZeroExit{code, stderr} otherwise.
func (s *Supervisor) Spawn(bin string, args []string, opts SpawnOptions) (*Result, error) {
	if opts.Timeout == 0 {
		opts.Timeout = 30 * time.Second
	}
	ctx, cancel := context.WithTimeout(context.Background(), opts.Timeout)
	defer cancel()

	cmd := s.newCmd(ctx, bin, args, opts)

	var stdout, stderr strings.Builder
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if opts.Stdin != "" {
		cmd.Stdin = strings.NewReader(opts.Stdin)
	}

	before := time.Now()
	err := cmd.Run()
	if s.Log != nil {
		s.Log.Debugf("spawn %s %v: %s", bin, args, time.Since(before))
	}

	if ctx.Err() == context.DeadlineExceeded {
		return nil, spinerr.New(spinerr.Timeout, fmt.Sprintf("%s timed out after %s", bin, opts.Timeout))
	}

	if err != nil {
		var exitErr *exec.ExitError
		if goerrors.As(err, &exitErr) {
			return &Result{Stdout: stdout.String(), Stderr: stderr.String(), ExitCode: exitErr.ExitCode()},
				spinerr.New(spinerr.NonZeroExit, fmt.Sprintf("%s exited %d: %s", bin, exitErr.ExitCode(), stderr.String()))
		}
		return nil, spinerr.Wrap(spinerr.SpawnError, "spawn "+bin, err)
	}

	return &Result{Stdout: stdout.String(), Stderr: stderr.String(), ExitCode: 0}, nil
}

// Child is a handle to a detached, long-lived process.
type Child struct {
	Cmd *exec.Cmd
	Pid int
}

// SpawnDetached launches bin as a background server, detached from the
// controlling terminal, and returns as soon as it has started (spec.md
// §4.C). It does not write a PID file; callers write it themselves
// (ServerAdapter.Start does so right after launch, before polling for
// readiness).
func (s *Supervisor) SpawnDetached(bin string, args []string, opts SpawnOptions) (*Child, error) {
	cmd := s.newCmd(nil, bin, args, opts)
	detach(cmd)

	devnull, err := os.OpenFile(os.DevNull, os.O_RDWR, 0)
	if err == nil {
		cmd.Stdin = devnull
		if cmd.Stdout == nil {
			cmd.Stdout = devnull
		}
		if cmd.Stderr == nil {
			cmd.Stderr = devnull
		}
	}

	if err := cmd.Start(); err != nil {
		return nil, spinerr.Wrap(spinerr.SpawnError, "spawn detached "+bin, err)
	}
	return &Child{Cmd: cmd, Pid: cmd.Process.Pid}, nil
}

// ReadinessProbe returns nil once the condition it checks holds.
type ReadinessProbe func() error

// PollReadiness repeatedly invokes probe, strictly sequentially, until it
// returns nil or timeout fires (spec.md §4.C). Cancelling ctx aborts the
// next wait.
func (s *Supervisor) PollReadiness(ctx context.Context, probe ReadinessProbe, interval, timeout time.Duration) bool {
	deadline := time.Now().Add(timeout)
	for {
		if probe() == nil {
			return true
		}
		if time.Now().After(deadline) {
			return false
		}
		select {
		case <-ctx.Done():
			return false
		case <-time.After(interval):
		}
	}
}

// ReadPidFile reads the decimal PID from the first line of path.
func ReadPidFile(path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	line := strings.SplitN(strings.TrimSpace(string(data)), "\n", 2)[0]
	pid, err := strconv.Atoi(strings.TrimSpace(line))
	if err != nil {
		return 0, spinerr.Wrap(spinerr.CorruptArtifact, "parse pid file "+path, err)
	}
	return pid, nil
}

// WritePidFile writes the decimal PID as the first line of path.
func WritePidFile(path string, pid int) error {
	return os.WriteFile(path, []byte(strconv.Itoa(pid)+"\n"), 0o644)
}

// IsRunning is the canonical liveness check from spec.md §4.C: reads the
// PID file and signals the recorded PID with signal 0 to test existence.
// Any failure (missing file, unparseable PID, unreachable process) yields
// false.
func (s *Supervisor) IsRunning(pidPath string) bool {
	pid, err := ReadPidFile(pidPath)
	if err != nil {
		return false
	}
	proc, err := os.FindProcess(pid)
	if err != nil {
		return false
	}
	return proc.Signal(syscall.Signal(0)) == nil
}

// WaitStopped polls IsRunning until it returns false or timeout elapses,
// then applies settle (an engine-tunable delay for platforms where file
// handles release asynchronously, spec.md §5/§9).
func (s *Supervisor) WaitStopped(pidPath string, timeout, settle time.Duration) bool {
	deadline := time.Now().Add(timeout)
	for s.IsRunning(pidPath) {
		if time.Now().After(deadline) {
			return false
		}
		time.Sleep(100 * time.Millisecond)
	}
	if settle > 0 {
		time.Sleep(settle)
	}
	return true
}

// Stop sends SIGTERM to pid, then kills it if it is still alive after 10
// seconds. Only that process is signalled, not its process group; use
// PrepareForChildren/KillGroup for group-aware termination of a *exec.Cmd.
func (s *Supervisor) Stop(pid int) error {
	proc, err := os.FindProcess(pid)
	if err != nil {
		return nil
	}
	if err := proc.Signal(syscall.SIGTERM); err != nil {
		return nil
	}
	deadline := time.Now().Add(10 * time.Second)
	for proc.Signal(syscall.Signal(0)) == nil {
		if time.Now().After(deadline) {
			return proc.Kill()
		}
		time.Sleep(100 * time.Millisecond)
	}
	return nil
}

// PrepareForChildren sets process-group semantics on cmd so KillGroup can
// later kill the whole tree rather than just the direct child.
func PrepareForChildren(cmd *exec.Cmd) {
	kill.PrepareForChildren(cmd)
}

// KillGroup kills cmd's process group if PrepareForChildren was used on
// it, else the process itself.
func KillGroup(cmd *exec.Cmd) error {
	return kill.Kill(cmd)
}

// SplitArgs splits a command-line string into argv the way native CLI
// script/query invocations need (mgutz/str), without ever invoking a
// shell, per spec.md §4.D's "no shell" requirement on run_script.
func SplitArgs(commandLine string) []string {
	return str.ToArgv(commandLine)
}
