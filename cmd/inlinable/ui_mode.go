package main

import (
	"fmt"
	"os"
	"strings"
)

// uiMode selects the progress view of multi-file commands.
type uiMode string

const (
	uiModeAuto uiMode = "auto"
	uiModeOn   uiMode = "on"
	uiModeOff  uiMode = "off"
)

func readUIMode(value string) (uiMode, error) {
	switch uiMode(strings.TrimSpace(strings.ToLower(value))) {
	case "", uiModeAuto:
		return uiModeAuto, nil
	case uiModeOn:
		return uiModeOn, nil
	case uiModeOff:
		return uiModeOff, nil
	default:
		return "", fmt.Errorf("invalid --ui value %q (expected auto|on|off)", value)
	}
}

// shouldUseTUI решает, рисовать ли прогресс в out (обычно stderr).
func shouldUseTUI(mode uiMode, out *os.File, files int) bool {
	switch mode {
	case uiModeOn:
		return true
	case uiModeOff:
		return false
	default:
		return files > 1 && isTerminal(out)
	}
}
