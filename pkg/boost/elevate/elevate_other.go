//go:build !windows

package elevate

import (
	"errors"
	"os"
)

func isElevated() bool {
	return os.Geteuid() == 0
}

func relaunch() error {
	return errors.New("elevation relaunch is only supported on Windows")
}
