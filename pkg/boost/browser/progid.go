package browser

import (
	"strings"

	"github.com/jamesainslie/gptboost/pkg/boost/types"
)

// browserFromProgID maps a registry ProgId to a browser. Unrecognized
// values map to Edge, the Windows default handler.
func browserFromProgID(progID string) types.Browser {
	switch {
	case strings.Contains(progID, "Chrome"):
		return types.BrowserChrome
	case strings.Contains(progID, "LibreWolf"):
		return types.BrowserLibreWolf
	case strings.Contains(progID, "Firefox"):
		return types.BrowserFirefox
	default:
		return types.BrowserEdge
	}
}
