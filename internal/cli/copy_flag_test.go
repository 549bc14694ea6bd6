package cli

import (
	"reflect"
	"testing"

	"github.com/spf13/pflag"
)

// TestNormalizeCopyFlagArguments verifies bare --copy forms are rewritten so
// command names and paths are not consumed as flag values.
func TestNormalizeCopyFlagArguments(testingHandle *testing.T) {
	testCases := []struct {
		name      string
		arguments []string
		expected  []string
	}{
		{
			name:      "bare copy before command",
			arguments: []string{"--copy", "scan"},
			expected:  []string{"--copy", "scan"},
		},
		{
			name:      "copy with boolean literal",
			arguments: []string{"scan", "--copy", "true"},
			expected:  []string{"scan", "--copy=true"},
		},
		{
			name:      "trailing bare copy",
			arguments: []string{"scan", "--copy"},
			expected:  []string{"scan", "--copy=true"},
		},
		{
			name:      "copy before another flag",
			arguments: []string{"scan", "--copy", "--emoji"},
			expected:  []string{"scan", "--copy=true", "--emoji"},
		},
		{
			name:      "copy before path inside command context",
			arguments: []string{"scan", "--copy", "./project"},
			expected:  []string{"scan", "--copy", "./project"},
		},
	}

	for _, testCase := range testCases {
		normalized := normalizeCopyFlagArguments(testCase.arguments)
		if !reflect.DeepEqual(normalized, testCase.expected) {
			testingHandle.Fatalf("%s: got %v want %v", testCase.name, normalized, testCase.expected)
		}
	}
}

// TestCopyFlagValueLiterals verifies accepted and rejected literal values.
func TestCopyFlagValueLiterals(testingHandle *testing.T) {
	var target bool
	flagSet := pflag.NewFlagSet("test", pflag.ContinueOnError)
	registerCopyFlag(flagSet, &target)

	if parseError := flagSet.Parse([]string{"--copy=yes"}); parseError != nil {
		testingHandle.Fatalf("parse failed: %v", parseError)
	}
	if !target {
		testingHandle.Fatalf("expected --copy=yes to enable copying")
	}

	secondFlagSet := pflag.NewFlagSet("test", pflag.ContinueOnError)
	registerCopyFlag(secondFlagSet, &target)
	if parseError := secondFlagSet.Parse([]string{"--copy=sometimes"}); parseError == nil {
		testingHandle.Fatalf("expected parse error for invalid literal")
	}
}
