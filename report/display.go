package report

import (
	"fmt"

	"github.com/pterm/pterm"
)

var (
	errorStyleBG = pterm.NewStyle(pterm.BgRed, pterm.FgWhite)
	errorColorFG = pterm.FgRed
	warnStyleBG  = pterm.NewStyle(pterm.BgYellow, pterm.FgBlack)
	warnColorFG  = pterm.FgYellow
	infoStyleBG  = pterm.NewStyle(pterm.BgLightGreen, pterm.FgBlack)
	infoColorFG  = pterm.FgLightGreen
)

// displayFatal prints a fatal-error banner. Always shown.
func displayFatal(message string) {
	errorStyleBG.Print(" fatal ")
	errorColorFG.Println(" " + message)
}

// displayICE prints an internal-error banner. Always shown.
func displayICE(message string) {
	errorStyleBG.Print(" internal error ")
	errorColorFG.Println(" " + message)
}

// displayViolation prints a contract-violation diagnostic.
func displayViolation(v *Violation) {
	errorStyleBG.Print(" " + v.Kind.String() + " ")
	if v.Where != "" {
		errorColorFG.Println(fmt.Sprintf(" %s: %s", v.Where, v.Message))
	} else {
		errorColorFG.Println(" " + v.Message)
	}
}

// DisplayWarning prints a warning-level message if the current log level
// allows it.
func DisplayWarning(tag, msg string) {
	if current().logLevel < LogLevelWarn {
		return
	}
	warnStyleBG.Print(" " + tag + " ")
	warnColorFG.Println(" " + msg)
}

// DisplayInfo prints an informational message if the current log level
// allows it.
func DisplayInfo(tag, msg string) {
	if current().logLevel < LogLevelVerbose {
		return
	}
	infoStyleBG.Print(" " + tag + " ")
	infoColorFG.Println(" " + msg)
}
