//go:build !windows

package execx

import "syscall"

func sysProcAttr() *syscall.SysProcAttr {
	return nil
}
