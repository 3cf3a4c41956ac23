//go:build windows

package process

import (
	"os/exec"
	"syscall"
)

// detach on Windows uses CREATE_NEW_PROCESS_GROUP so the child doesn't
// receive console control events (e.g. Ctrl+C) sent to the parent.
func detach(cmd *exec.Cmd) {
	if cmd.SysProcAttr == nil {
		cmd.SysProcAttr = &syscall.SysProcAttr{}
	}
	cmd.SysProcAttr.CreationFlags |= syscall.CREATE_NEW_PROCESS_GROUP
}
