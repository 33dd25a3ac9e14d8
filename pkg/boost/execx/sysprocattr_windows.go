//go:build windows

package execx

import "syscall"

// sysProcAttr hides the console window spawned for external commands.
func sysProcAttr() *syscall.SysProcAttr {
	return &syscall.SysProcAttr{HideWindow: true}
}
