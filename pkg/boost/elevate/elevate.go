// Package elevate detects administrator privileges and relaunches the
// process elevated. Power scheme changes and closing other users'
// processes need an elevated token; everything else degrades gracefully
// without one.
package elevate

// IsElevated reports whether the current process runs with
// administrator privileges. On non-Windows platforms it reports whether
// the effective user is root.
func IsElevated() bool {
	return isElevated()
}

// Relaunch restarts the current executable with an elevation prompt,
// passing the original arguments through. It returns once the prompt
// has been issued; the caller is expected to exit and let the elevated
// instance take over.
func Relaunch() error {
	return relaunch()
}
