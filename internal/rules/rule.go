// Package rules implements the classification policy deciding which
// filesystem entries are rendered, rendered without descent, or hidden.
package rules

import (
	"fmt"
	"strings"

	"github.com/gobwas/glob"
)

const (
	// pathSegmentSeparator separates segments of root-relative paths.
	pathSegmentSeparator = "/"
	// globMetacharacters are the characters that promote a pattern to glob matching.
	globMetacharacters = "*?[{"

	// errorEmptyPattern reports a blank pattern supplied at construction time.
	errorEmptyPattern = "empty ignore pattern"
	// errorCompilePatternFormat reports a malformed glob pattern.
	errorCompilePatternFormat = "compiling pattern %q: %w"
)

// ruleKind selects the matching strategy of one compiled rule.
type ruleKind int

const (
	// ruleKindExact matches the entry's base name verbatim.
	ruleKindExact ruleKind = iota
	// ruleKindName matches the entry's base name with glob semantics.
	ruleKindName
	// ruleKindPath matches the entry's root-relative path with glob semantics.
	ruleKindPath
)

// rule is one compiled pattern. Matching is case-sensitive and
// deterministic: a rule depends only on the entry's name or relative path,
// never on traversal order.
type rule struct {
	kind    ruleKind
	pattern string
	matcher glob.Glob
}

// compileRule normalizes a pattern string and compiles it into a rule.
// A trailing slash (the common directory-pattern spelling) is stripped.
// Malformed globs fail here, before any traversal begins.
func compileRule(pattern string) (rule, error) {
	trimmedPattern := strings.TrimSuffix(strings.TrimSpace(pattern), pathSegmentSeparator)
	if trimmedPattern == "" {
		return rule{}, fmt.Errorf(errorEmptyPattern)
	}

	switch {
	case strings.Contains(trimmedPattern, pathSegmentSeparator):
		pathMatcher, compileError := glob.Compile(trimmedPattern, '/')
		if compileError != nil {
			return rule{}, fmt.Errorf(errorCompilePatternFormat, trimmedPattern, compileError)
		}
		return rule{kind: ruleKindPath, pattern: trimmedPattern, matcher: pathMatcher}, nil
	case strings.ContainsAny(trimmedPattern, globMetacharacters):
		nameMatcher, compileError := glob.Compile(trimmedPattern)
		if compileError != nil {
			return rule{}, fmt.Errorf(errorCompilePatternFormat, trimmedPattern, compileError)
		}
		return rule{kind: ruleKindName, pattern: trimmedPattern, matcher: nameMatcher}, nil
	default:
		return rule{kind: ruleKindExact, pattern: trimmedPattern}, nil
	}
}

// matches reports whether the rule applies to an entry with the given base
// name and root-relative path.
func (currentRule rule) matches(entryName string, relativePath string) bool {
	switch currentRule.kind {
	case ruleKindExact:
		return entryName == currentRule.pattern
	case ruleKindName:
		return currentRule.matcher.Match(entryName)
	case ruleKindPath:
		return currentRule.matcher.Match(relativePath)
	default:
		return false
	}
}

// ruleGroup is an ordered collection of compiled rules.
type ruleGroup struct {
	rules []rule
}

// compileRuleGroup compiles every pattern into a group, failing on the first
// malformed pattern.
func compileRuleGroup(patterns []string) (ruleGroup, error) {
	compiledRules := make([]rule, 0, len(patterns))
	for _, pattern := range patterns {
		compiledRule, compileError := compileRule(pattern)
		if compileError != nil {
			return ruleGroup{}, compileError
		}
		compiledRules = append(compiledRules, compiledRule)
	}
	return ruleGroup{rules: compiledRules}, nil
}

// matches reports whether any rule in the group applies to the entry.
func (group ruleGroup) matches(entryName string, relativePath string) bool {
	for _, currentRule := range group.rules {
		if currentRule.matches(entryName, relativePath) {
			return true
		}
	}
	return false
}

// patterns returns the normalized pattern strings of the group in order.
func (group ruleGroup) patterns() []string {
	patternList := make([]string, 0, len(group.rules))
	for _, currentRule := range group.rules {
		patternList = append(patternList, currentRule.pattern)
	}
	return patternList
}
