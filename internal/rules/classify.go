package rules

import (
	"github.com/temirov/scanfiles/internal/types"
)

// Classify maps one filesystem entry to its disposition under the rule set.
// The decision is ordered, first match winning:
//
//  1. The scan root is always fully shown, whatever its name matches.
//  2. A file matching the always-show group is fully shown; the exemption
//     takes precedence over any hide pattern. Files have no children, so
//     full and collapsed render identically for them.
//  3. A directory matching the collapse group is shown without descent.
//     This holds even when the same name also matches a hide pattern:
//     structural visibility of dependency and build directories wins.
//  4. An entry matching the hide group is omitted entirely.
//  5. Everything else is fully shown.
//
// Classify is pure: it reads only the entry and the rule set, has no side
// effects, and never fails.
func Classify(entry types.Entry, ruleSet *RuleSet) types.Disposition {
	if entry.Depth == 0 {
		return types.DispositionShowFull
	}
	if !entry.IsDirectory() && ruleSet.alwaysShowFiles.matches(entry.Name, entry.RelativePath) {
		return types.DispositionShowFull
	}
	if entry.IsDirectory() && ruleSet.collapseDirectories.matches(entry.Name, entry.RelativePath) {
		return types.DispositionShowCollapsed
	}
	if ruleSet.alwaysHide.matches(entry.Name, entry.RelativePath) {
		return types.DispositionHide
	}
	return types.DispositionShowFull
}
