package rules

import (
	"fmt"

	"github.com/temirov/scanfiles/internal/utils"
)

const (
	// errorHideGroupFormat reports a malformed pattern in the hide group.
	errorHideGroupFormat = "hide patterns: %w"
	// errorCollapseGroupFormat reports a malformed pattern in the collapse group.
	errorCollapseGroupFormat = "collapse patterns: %w"
	// errorShowGroupFormat reports a malformed pattern in the always-show group.
	errorShowGroupFormat = "always-show patterns: %w"
)

// RuleSet is the immutable bundle of pattern groups governing
// classification. It is constructed once at startup and threaded as an
// explicit argument through classification and rendering; scans never
// mutate it.
type RuleSet struct {
	alwaysHide          ruleGroup
	collapseDirectories ruleGroup
	alwaysShowFiles     ruleGroup
}

// PatternView is a read-only snapshot of the effective pattern strings of a
// RuleSet, exposed for introspection.
type PatternView struct {
	AlwaysHide          []string `json:"alwaysHide" xml:"alwaysHide>pattern"`
	CollapseDirectories []string `json:"collapseDirectories" xml:"collapseDirectories>pattern"`
	AlwaysShowFiles     []string `json:"alwaysShowFiles" xml:"alwaysShowFiles>pattern"`
}

// NewRuleSet builds a RuleSet from the default pattern groups with the
// provided extra hide patterns unioned into the hide group. Duplicate
// patterns are dropped, first occurrence winning. A malformed pattern makes
// construction fail; classification itself never returns an error.
func NewRuleSet(extraHidePatterns []string) (*RuleSet, error) {
	hidePatterns := make([]string, 0, len(defaultAlwaysHide)+len(extraHidePatterns))
	hidePatterns = append(hidePatterns, defaultAlwaysHide...)
	hidePatterns = append(hidePatterns, extraHidePatterns...)
	hidePatterns = utils.DeduplicatePatterns(hidePatterns)

	hideGroup, hideCompileError := compileRuleGroup(hidePatterns)
	if hideCompileError != nil {
		return nil, fmt.Errorf(errorHideGroupFormat, hideCompileError)
	}
	collapseGroup, collapseCompileError := compileRuleGroup(defaultCollapseDirectories)
	if collapseCompileError != nil {
		return nil, fmt.Errorf(errorCollapseGroupFormat, collapseCompileError)
	}
	showGroup, showCompileError := compileRuleGroup(defaultAlwaysShowFiles)
	if showCompileError != nil {
		return nil, fmt.Errorf(errorShowGroupFormat, showCompileError)
	}

	return &RuleSet{
		alwaysHide:          hideGroup,
		collapseDirectories: collapseGroup,
		alwaysShowFiles:     showGroup,
	}, nil
}

// EffectivePatterns returns the merged pattern strings of every group. The
// returned slices are copies; callers cannot alter the RuleSet through them.
func (ruleSet *RuleSet) EffectivePatterns() PatternView {
	return PatternView{
		AlwaysHide:          ruleSet.alwaysHide.patterns(),
		CollapseDirectories: ruleSet.collapseDirectories.patterns(),
		AlwaysShowFiles:     ruleSet.alwaysShowFiles.patterns(),
	}
}
