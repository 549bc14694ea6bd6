// Package output turns render line sequences into raw text, JSON, or XML.
package output

import (
	"encoding/json"
	"encoding/xml"
	"fmt"
	"strings"

	"github.com/temirov/scanfiles/internal/types"
)

const (
	// headerFormat opens the raw text output with the scanned path.
	headerFormat = "File structure for: %s"
	// separatorLine divides the header from the rendered tree.
	separatorLine = "=================================================="
	// indentUnit is repeated once per depth level.
	indentUnit = "    "

	textDirectoryMarker  = "[DIR]"
	textFileMarker       = "[FILE]"
	emojiDirectoryMarker = "📁"
	emojiFileMarker      = "📄"

	unreadableSuffix = " [unreadable]"
	depthLimitSuffix = " [max depth reached]"

	// errorMarshalJSONFormat reports a JSON encoding failure.
	errorMarshalJSONFormat = "marshaling scan to JSON: %w"
	// errorMarshalXMLFormat reports an XML encoding failure.
	errorMarshalXMLFormat = "marshaling scan to XML: %w"

	jsonIndent = "  "
)

// Document bundles the scanned root with its render lines for structured
// output formats.
type Document struct {
	XMLName xml.Name           `json:"-" xml:"structure"`
	Root    string             `json:"root" xml:"root,attr"`
	Lines   []types.RenderLine `json:"lines" xml:"line"`
}

// Marker returns the glyph for an entry type under the chosen marker style.
// The style is purely presentational; it never alters which lines exist.
func Marker(entryType string, markerStyle string) string {
	if markerStyle == types.MarkerStyleEmoji {
		if entryType == types.EntryTypeDirectory {
			return emojiDirectoryMarker
		}
		return emojiFileMarker
	}
	if entryType == types.EntryTypeDirectory {
		return textDirectoryMarker
	}
	return textFileMarker
}

// FormatLine renders one physical text line: fixed-width indentation per
// depth level, the marker glyph, the display name, and a note suffix when
// traversal was cut short at the entry.
func FormatLine(line types.RenderLine, markerStyle string) string {
	var builder strings.Builder
	for depthLevel := 0; depthLevel < line.Depth; depthLevel++ {
		builder.WriteString(indentUnit)
	}
	builder.WriteString(Marker(line.Type, markerStyle))
	builder.WriteString(" ")
	builder.WriteString(line.Name)
	switch line.Note {
	case types.NoteUnreadable:
		builder.WriteString(unreadableSuffix)
	case types.NoteDepthLimit:
		builder.WriteString(depthLimitSuffix)
	}
	return builder.String()
}

// RenderText produces the complete raw text output: header, separator, a
// blank line, then one line per render line.
func RenderText(rootPath string, lines []types.RenderLine, markerStyle string) string {
	var builder strings.Builder
	builder.WriteString(fmt.Sprintf(headerFormat, rootPath))
	builder.WriteString("\n")
	builder.WriteString(separatorLine)
	builder.WriteString("\n\n")
	for _, line := range lines {
		builder.WriteString(FormatLine(line, markerStyle))
		builder.WriteString("\n")
	}
	return builder.String()
}

// RenderJSON produces the scan as an indented JSON document.
func RenderJSON(rootPath string, lines []types.RenderLine) (string, error) {
	document := Document{Root: rootPath, Lines: lines}
	encoded, marshalError := json.MarshalIndent(document, "", jsonIndent)
	if marshalError != nil {
		return "", fmt.Errorf(errorMarshalJSONFormat, marshalError)
	}
	return string(encoded), nil
}

// RenderXML produces the scan as an indented XML document.
func RenderXML(rootPath string, lines []types.RenderLine) (string, error) {
	document := Document{Root: rootPath, Lines: lines}
	encoded, marshalError := xml.MarshalIndent(document, "", jsonIndent)
	if marshalError != nil {
		return "", fmt.Errorf(errorMarshalXMLFormat, marshalError)
	}
	return string(encoded), nil
}
