//go:build windows

package browser

import (
	"os"

	"golang.org/x/sys/windows/registry"

	"github.com/jamesainslie/gptboost/pkg/boost/types"
)

// userChoiceKey holds the ProgId of the handler the user picked for
// http URLs.
const userChoiceKey = `Software\Microsoft\Windows\Shell\Associations\UrlAssociations\http\UserChoice`

// Detect returns the user's default browser by reading the http
// UserChoice ProgId from the registry. Unknown or unreadable values
// fall back to Edge.
func Detect() types.Browser {
	k, err := registry.OpenKey(registry.CURRENT_USER, userChoiceKey, registry.QUERY_VALUE)
	if err != nil {
		return types.BrowserEdge
	}
	defer k.Close()

	progID, _, err := k.GetStringValue("ProgId")
	if err != nil {
		return types.BrowserEdge
	}

	return browserFromProgID(progID)
}

// DefaultLocalAppData returns the user's local application data
// directory, the root under which browser caches live.
func DefaultLocalAppData() string {
	if dir := os.Getenv("LOCALAPPDATA"); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return home + `\AppData\Local`
}
