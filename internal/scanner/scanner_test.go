package scanner

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/temirov/scanfiles/internal/rules"
	"github.com/temirov/scanfiles/internal/types"
)

// newTestRuleSet builds a default rule set, failing the test on error.
func newTestRuleSet(testingHandle *testing.T) *rules.RuleSet {
	testingHandle.Helper()
	ruleSet, ruleSetError := rules.NewRuleSet(nil)
	if ruleSetError != nil {
		testingHandle.Fatalf("NewRuleSet failed: %v", ruleSetError)
	}
	return ruleSet
}

// writeTestFile creates a file with placeholder content, failing the test on error.
func writeTestFile(testingHandle *testing.T, filePath string) {
	testingHandle.Helper()
	if writeError := os.WriteFile(filePath, []byte("content\n"), 0o644); writeError != nil {
		testingHandle.Fatalf("failed to write %s: %v", filePath, writeError)
	}
}

// makeTestDirectory creates a directory, failing the test on error.
func makeTestDirectory(testingHandle *testing.T, directoryPath string) {
	testingHandle.Helper()
	if makeError := os.MkdirAll(directoryPath, 0o755); makeError != nil {
		testingHandle.Fatalf("failed to create %s: %v", directoryPath, makeError)
	}
}

// lineSummary is the comparable portion of a render line used by assertions.
type lineSummary struct {
	depth       int
	name        string
	disposition types.Disposition
	note        string
}

func summarize(lines []types.RenderLine) []lineSummary {
	summaries := make([]lineSummary, 0, len(lines))
	for _, line := range lines {
		summaries = append(summaries, lineSummary{
			depth:       line.Depth,
			name:        line.Name,
			disposition: line.Disposition,
			note:        line.Note,
		})
	}
	return summaries
}

// TestCollectProjectScenario verifies the canonical project layout: sources
// recursed, node_modules collapsed with no children, config and environment
// files preserved.
func TestCollectProjectScenario(testingHandle *testing.T) {
	rootDirectory := testingHandle.TempDir()
	projectDirectory := filepath.Join(rootDirectory, "proj")
	makeTestDirectory(testingHandle, filepath.Join(projectDirectory, "src"))
	makeTestDirectory(testingHandle, filepath.Join(projectDirectory, "node_modules", "react"))
	writeTestFile(testingHandle, filepath.Join(projectDirectory, "src", "index.js"))
	writeTestFile(testingHandle, filepath.Join(projectDirectory, "node_modules", "react", "index.js"))
	writeTestFile(testingHandle, filepath.Join(projectDirectory, "package.json"))
	writeTestFile(testingHandle, filepath.Join(projectDirectory, ".env"))

	collectedLines, collectError := Collect(context.Background(), Options{
		Root:  projectDirectory,
		Rules: newTestRuleSet(testingHandle),
	})
	if collectError != nil {
		testingHandle.Fatalf("Collect failed: %v", collectError)
	}

	expectedSummaries := []lineSummary{
		{depth: 0, name: "proj", disposition: types.DispositionShowFull},
		{depth: 1, name: ".env", disposition: types.DispositionShowFull},
		{depth: 1, name: "node_modules", disposition: types.DispositionShowCollapsed},
		{depth: 1, name: "package.json", disposition: types.DispositionShowFull},
		{depth: 1, name: "src", disposition: types.DispositionShowFull},
		{depth: 2, name: "index.js", disposition: types.DispositionShowFull},
	}
	if !reflect.DeepEqual(summarize(collectedLines), expectedSummaries) {
		testingHandle.Fatalf("unexpected lines: got %v want %v", summarize(collectedLines), expectedSummaries)
	}
}

// TestCollectIsIdempotent verifies scanning an unmodified tree twice yields
// identical line sequences.
func TestCollectIsIdempotent(testingHandle *testing.T) {
	rootDirectory := testingHandle.TempDir()
	makeTestDirectory(testingHandle, filepath.Join(rootDirectory, "alpha", "beta"))
	writeTestFile(testingHandle, filepath.Join(rootDirectory, "alpha", "beta", "keep.txt"))
	writeTestFile(testingHandle, filepath.Join(rootDirectory, "skip.log"))

	options := Options{Root: rootDirectory, Rules: newTestRuleSet(testingHandle)}
	firstLines, firstError := Collect(context.Background(), options)
	if firstError != nil {
		testingHandle.Fatalf("first Collect failed: %v", firstError)
	}
	secondLines, secondError := Collect(context.Background(), options)
	if secondError != nil {
		testingHandle.Fatalf("second Collect failed: %v", secondError)
	}
	if !reflect.DeepEqual(firstLines, secondLines) {
		testingHandle.Fatalf("repeated scans differ: %v vs %v", firstLines, secondLines)
	}
}

// TestCollectHidesMatchingEntries verifies hidden entries contribute no line
// and are never descended into.
func TestCollectHidesMatchingEntries(testingHandle *testing.T) {
	rootDirectory := testingHandle.TempDir()
	makeTestDirectory(testingHandle, filepath.Join(rootDirectory, ".idea", "inspections"))
	writeTestFile(testingHandle, filepath.Join(rootDirectory, "binary.pyc"))
	writeTestFile(testingHandle, filepath.Join(rootDirectory, "main.py"))

	collectedLines, collectError := Collect(context.Background(), Options{
		Root:  rootDirectory,
		Rules: newTestRuleSet(testingHandle),
	})
	if collectError != nil {
		testingHandle.Fatalf("Collect failed: %v", collectError)
	}

	for _, line := range collectedLines {
		if line.Name == ".idea" || line.Name == "inspections" || line.Name == "binary.pyc" {
			testingHandle.Fatalf("hidden entry %s appeared in output", line.Name)
		}
	}
	if len(collectedLines) != 2 {
		testingHandle.Fatalf("expected root and main.py only, got %v", summarize(collectedLines))
	}
}

// failingLister wraps another lister and fails for one configured path.
type failingLister struct {
	inner       DirectoryLister
	failingPath string
}

func (lister failingLister) ListChildren(directoryPath string) ([]ChildEntry, error) {
	if directoryPath == lister.failingPath {
		return nil, fmt.Errorf("permission denied")
	}
	return lister.inner.ListChildren(directoryPath)
}

// TestCollectRecoversFromUnreadableDirectory verifies an unreadable
// subdirectory renders its own noted line with zero children while siblings
// continue to be scanned.
func TestCollectRecoversFromUnreadableDirectory(testingHandle *testing.T) {
	rootDirectory := testingHandle.TempDir()
	lockedDirectory := filepath.Join(rootDirectory, "locked")
	makeTestDirectory(testingHandle, lockedDirectory)
	writeTestFile(testingHandle, filepath.Join(lockedDirectory, "secret.txt"))
	writeTestFile(testingHandle, filepath.Join(rootDirectory, "visible.txt"))

	collectedLines, collectError := Collect(context.Background(), Options{
		Root:   rootDirectory,
		Rules:  newTestRuleSet(testingHandle),
		Lister: failingLister{inner: NewOSDirectoryLister(), failingPath: lockedDirectory},
	})
	if collectError != nil {
		testingHandle.Fatalf("Collect failed: %v", collectError)
	}

	expectedSummaries := []lineSummary{
		{depth: 0, name: filepath.Base(rootDirectory), disposition: types.DispositionShowFull},
		{depth: 1, name: "locked", disposition: types.DispositionShowFull, note: types.NoteUnreadable},
		{depth: 1, name: "visible.txt", disposition: types.DispositionShowFull},
	}
	if !reflect.DeepEqual(summarize(collectedLines), expectedSummaries) {
		testingHandle.Fatalf("unexpected lines: got %v want %v", summarize(collectedLines), expectedSummaries)
	}
}

// bottomlessLister reports one subdirectory inside every directory, modeling
// an endless descent such as a symlink cycle.
type bottomlessLister struct{}

func (bottomlessLister) ListChildren(string) ([]ChildEntry, error) {
	return []ChildEntry{{Name: "deeper", IsDirectory: true}}, nil
}

// TestCollectTruncatesAtMaxDepth verifies the depth guard terminates an
// endless descent with a truncation note instead of hanging.
func TestCollectTruncatesAtMaxDepth(testingHandle *testing.T) {
	const maximumDepth = 5

	collectedLines, collectError := Collect(context.Background(), Options{
		Root:     "/virtual",
		Rules:    newTestRuleSet(testingHandle),
		MaxDepth: maximumDepth,
		Lister:   bottomlessLister{},
	})
	if collectError != nil {
		testingHandle.Fatalf("Collect failed: %v", collectError)
	}

	if len(collectedLines) != maximumDepth+1 {
		testingHandle.Fatalf("expected %d lines, got %d", maximumDepth+1, len(collectedLines))
	}
	lastLine := collectedLines[len(collectedLines)-1]
	if lastLine.Depth != maximumDepth || lastLine.Note != types.NoteDepthLimit {
		testingHandle.Fatalf("expected truncation note at depth %d, got %+v", maximumDepth, lastLine)
	}
}

// TestCollectTerminatesOnSymlinkCycle verifies a filesystem symlink cycle is
// broken by the depth guard.
func TestCollectTerminatesOnSymlinkCycle(testingHandle *testing.T) {
	rootDirectory := testingHandle.TempDir()
	firstDirectory := filepath.Join(rootDirectory, "a")
	makeTestDirectory(testingHandle, firstDirectory)
	if symlinkError := os.Symlink(firstDirectory, filepath.Join(firstDirectory, "b")); symlinkError != nil {
		testingHandle.Skipf("symlinks unavailable: %v", symlinkError)
	}

	collectedLines, collectError := Collect(context.Background(), Options{
		Root:     rootDirectory,
		Rules:    newTestRuleSet(testingHandle),
		MaxDepth: 20,
	})
	if collectError != nil {
		testingHandle.Fatalf("Collect failed: %v", collectError)
	}

	truncated := false
	for _, line := range collectedLines {
		if line.Note == types.NoteDepthLimit {
			truncated = true
		}
	}
	if !truncated {
		testingHandle.Fatalf("expected a depth-limit note in output: %v", summarize(collectedLines))
	}
}

// TestStreamHonorsCancellation verifies an already-canceled context stops the
// walk with the context error.
func TestStreamHonorsCancellation(testingHandle *testing.T) {
	rootDirectory := testingHandle.TempDir()
	writeTestFile(testingHandle, filepath.Join(rootDirectory, "file.txt"))

	canceledContext, cancel := context.WithCancel(context.Background())
	cancel()

	lineChannel := make(chan types.RenderLine)
	streamError := Stream(canceledContext, Options{Root: rootDirectory, Rules: newTestRuleSet(testingHandle)}, lineChannel)
	if streamError == nil {
		testingHandle.Fatalf("expected cancellation error")
	}
}
