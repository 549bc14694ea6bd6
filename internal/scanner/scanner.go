// Package scanner walks a directory tree and streams render lines for every
// entry the rule set keeps visible.
package scanner

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/temirov/scanfiles/internal/rules"
	"github.com/temirov/scanfiles/internal/types"
	"github.com/temirov/scanfiles/internal/utils"
)

const (
	// DefaultMaxDepth bounds traversal when the caller does not choose a
	// limit. Filesystem symlink cycles are broken by this guard alone.
	DefaultMaxDepth = 32

	// errorEmptyRoot reports a scan request without a root path.
	errorEmptyRoot = "scanner: root path is empty"
	// errorNilRules reports a scan request without a rule set.
	errorNilRules = "scanner: rule set is nil"
	// errorReadDirectoryFormat reports a directory that could not be listed.
	errorReadDirectoryFormat = "reading directory %s: %w"
)

// ChildEntry is one immediate child reported by a directory listing.
type ChildEntry struct {
	Name        string
	IsDirectory bool
}

// DirectoryLister supplies the directory-listing capability consumed by the
// walk. The production implementation reads the local filesystem; tests
// inject failing or synthetic listers.
type DirectoryLister interface {
	ListChildren(directoryPath string) ([]ChildEntry, error)
}

// osDirectoryLister lists children with os.ReadDir. The directory handle is
// held only for the duration of one listing, never across recursion.
type osDirectoryLister struct{}

// ListChildren returns the immediate children of directoryPath.
func (osDirectoryLister) ListChildren(directoryPath string) ([]ChildEntry, error) {
	directoryEntries, readDirectoryError := os.ReadDir(directoryPath)
	if readDirectoryError != nil {
		return nil, fmt.Errorf(errorReadDirectoryFormat, directoryPath, readDirectoryError)
	}
	children := make([]ChildEntry, 0, len(directoryEntries))
	for _, directoryEntry := range directoryEntries {
		isDirectory := directoryEntry.IsDir()
		if directoryEntry.Type()&os.ModeSymlink != 0 {
			// A symlink to a directory is walked like a directory; the
			// depth guard bounds any cycle it introduces.
			targetInformation, statError := os.Stat(filepath.Join(directoryPath, directoryEntry.Name()))
			if statError == nil && targetInformation.IsDir() {
				isDirectory = true
			}
		}
		children = append(children, ChildEntry{
			Name:        directoryEntry.Name(),
			IsDirectory: isDirectory,
		})
	}
	return children, nil
}

// NewOSDirectoryLister returns the filesystem-backed DirectoryLister.
func NewOSDirectoryLister() DirectoryLister {
	return osDirectoryLister{}
}

// Options configures one scan.
type Options struct {
	// Root is the absolute path of the directory to scan.
	Root string
	// Rules is the rule set consulted for every entry.
	Rules *rules.RuleSet
	// MaxDepth bounds recursion; zero selects DefaultMaxDepth.
	MaxDepth int
	// Lister overrides the filesystem listing capability; nil selects the
	// os.ReadDir implementation.
	Lister DirectoryLister
}

// emitter sends render lines to the output channel while honoring context
// cancellation.
type emitter struct {
	ctx context.Context
	out chan<- types.RenderLine
}

func newEmitter(ctx context.Context, out chan<- types.RenderLine) *emitter {
	if ctx == nil {
		ctx = context.Background()
	}
	return &emitter{ctx: ctx, out: out}
}

func (lineEmitter *emitter) send(line types.RenderLine) error {
	select {
	case <-lineEmitter.ctx.Done():
		return lineEmitter.ctx.Err()
	case lineEmitter.out <- line:
		return nil
	}
}

// Stream walks the tree rooted at options.Root in deterministic pre-order
// and sends one render line per visible entry. Hidden entries produce no
// line and are never descended into; collapsed directories produce exactly
// one line. An unreadable directory is rendered with a note and treated as
// having zero children; traversal continues with its siblings. The walk is
// single-threaded and synchronous. Stream does not close the channel.
func Stream(ctx context.Context, options Options, out chan<- types.RenderLine) error {
	if options.Root == "" {
		return fmt.Errorf(errorEmptyRoot)
	}
	if options.Rules == nil {
		return fmt.Errorf(errorNilRules)
	}
	directoryLister := options.Lister
	if directoryLister == nil {
		directoryLister = osDirectoryLister{}
	}
	maximumDepth := options.MaxDepth
	if maximumDepth <= 0 {
		maximumDepth = DefaultMaxDepth
	}

	lineEmitter := newEmitter(ctx, out)
	rootEntry := types.Entry{
		Name:         filepath.Base(options.Root),
		AbsolutePath: options.Root,
		RelativePath: utils.RelativePathOrSelf(options.Root, options.Root),
		Type:         types.EntryTypeDirectory,
		Depth:        0,
	}
	return walkEntry(lineEmitter, directoryLister, options.Rules, rootEntry, maximumDepth)
}

// walkEntry renders one entry according to its disposition and recurses into
// fully shown directories.
func walkEntry(
	lineEmitter *emitter,
	directoryLister DirectoryLister,
	ruleSet *rules.RuleSet,
	entry types.Entry,
	maximumDepth int,
) error {
	disposition := rules.Classify(entry, ruleSet)
	if disposition == types.DispositionHide {
		return nil
	}

	line := types.RenderLine{
		Depth:       entry.Depth,
		Type:        entry.Type,
		Disposition: disposition,
		Name:        entry.Name,
	}

	if !entry.IsDirectory() || disposition == types.DispositionShowCollapsed {
		return lineEmitter.send(line)
	}

	if entry.Depth >= maximumDepth {
		line.Note = types.NoteDepthLimit
		return lineEmitter.send(line)
	}

	children, listError := directoryLister.ListChildren(entry.AbsolutePath)
	if listError != nil {
		line.Note = types.NoteUnreadable
		return lineEmitter.send(line)
	}
	if sendError := lineEmitter.send(line); sendError != nil {
		return sendError
	}

	sort.Slice(children, func(firstIndex, secondIndex int) bool {
		return children[firstIndex].Name < children[secondIndex].Name
	})

	for _, child := range children {
		childType := types.EntryTypeFile
		if child.IsDirectory {
			childType = types.EntryTypeDirectory
		}
		childRelativePath := child.Name
		if entry.RelativePath != "." {
			childRelativePath = entry.RelativePath + "/" + child.Name
		}
		childEntry := types.Entry{
			Name:         child.Name,
			AbsolutePath: filepath.Join(entry.AbsolutePath, child.Name),
			RelativePath: childRelativePath,
			Type:         childType,
			Depth:        entry.Depth + 1,
		}
		if walkError := walkEntry(lineEmitter, directoryLister, ruleSet, childEntry, maximumDepth); walkError != nil {
			return walkError
		}
	}
	return nil
}

// Collect runs Stream and materializes the full line sequence. Repeated
// calls on an unmodified tree yield identical slices.
func Collect(ctx context.Context, options Options) ([]types.RenderLine, error) {
	group, streamContext := errgroup.WithContext(ctx)
	lineChannel := make(chan types.RenderLine)

	group.Go(func() error {
		defer close(lineChannel)
		return Stream(streamContext, options, lineChannel)
	})

	var collectedLines []types.RenderLine
	group.Go(func() error {
		for line := range lineChannel {
			collectedLines = append(collectedLines, line)
		}
		return nil
	})

	if waitError := group.Wait(); waitError != nil {
		return nil, waitError
	}
	return collectedLines, nil
}
