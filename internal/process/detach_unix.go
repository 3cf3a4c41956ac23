//go:build !windows

package process

import (
	"os/exec"
	"syscall"
)

// detach gives the child its own process group so it survives the parent
// terminal closing and so the supervisor can later signal the whole group
// (spec.md §4.C: "spawned servers must detach from the controlling
// terminal").
func detach(cmd *exec.Cmd) {
	if cmd.SysProcAttr == nil {
		cmd.SysProcAttr = &syscall.SysProcAttr{}
	}
	cmd.SysProcAttr.Setsid = true
}
