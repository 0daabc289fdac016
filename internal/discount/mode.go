package discount

import (
	"fmt"
	"strings"
)

// Mode selects how a run derives net prices from row fields
type Mode string

const (
	ModeNetOnly     Mode = "net_only"
	ModeCalculated  Mode = "calculated"
	ModePercentage  Mode = "percentage"
	ModeCodeMapping Mode = "code_mapping"
)

// Modes lists every supported pricing mode
var Modes = []Mode{ModeNetOnly, ModeCalculated, ModePercentage, ModeCodeMapping}

// ParseMode validates a pricing mode name
func ParseMode(s string) (Mode, error) {
	m := Mode(strings.ToLower(strings.TrimSpace(s)))
	switch m {
	case ModeNetOnly, ModeCalculated, ModePercentage, ModeCodeMapping:
		return m, nil
	}
	names := make([]string, len(Modes))
	for i, mode := range Modes {
		names[i] = string(mode)
	}
	return "", fmt.Errorf("unknown pricing mode %q (valid: %s)", s, strings.Join(names, ", "))
}

// RequiredStructure reports the structure type a mode cannot work without
func (m Mode) RequiredStructure() (Type, bool) {
	switch m {
	case ModeCodeMapping:
		return TypeCodeMapping, true
	case ModeNetOnly, ModeCalculated, ModePercentage:
		return "", false
	}
	return "", false
}
