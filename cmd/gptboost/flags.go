package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"

	"github.com/jamesainslie/gptboost/pkg/boost/browser"
	"github.com/jamesainslie/gptboost/pkg/boost/types"
)

// skippableSteps are the pipeline steps the --skip flag accepts.
var skippableSteps = map[string]bool{
	types.StepPower:     true,
	types.StepProcesses: true,
	types.StepCache:     true,
	types.StepDNS:       true,
	types.StepUpdates:   true,
	types.StepMonitor:   true,
}

// parseSkipSteps validates the --skip flag values and returns them as a
// set.
func parseSkipSteps(values []string) (map[string]bool, error) {
	skip := make(map[string]bool, len(values))
	for _, v := range values {
		name := strings.ToLower(strings.TrimSpace(v))
		if name == "" {
			continue
		}
		if !skippableSteps[name] {
			return nil, fmt.Errorf("unknown step %q (valid: power, processes, cache, dns, updates, monitor)", v)
		}
		skip[name] = true
	}
	return skip, nil
}

// resolveBrowser parses the configured browser name, falling back to
// registry detection when none is set.
func resolveBrowser() (types.Browser, error) {
	b, err := types.ParseBrowser(viper.GetString("browser"))
	if err != nil {
		return "", fmt.Errorf("invalid --browser: %w (valid: %s)", err, strings.Join(types.Browsers(), ", "))
	}
	if b == "" {
		b = browser.Detect()
		printVerbose("Detected default browser: %s", b)
	}
	return b, nil
}

// promptYesNo asks the user a yes/no question on stdin.
func promptYesNo(question string) bool {
	fmt.Print(question)
	reader := bufio.NewReader(os.Stdin)
	answer, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	return strings.HasPrefix(strings.ToLower(strings.TrimSpace(answer)), "y")
}
