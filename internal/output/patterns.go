package output

import (
	"encoding/json"
	"encoding/xml"
	"fmt"
	"strings"

	"github.com/temirov/scanfiles/internal/rules"
)

const (
	alwaysHideHeading = "Hidden patterns:"
	collapseHeading   = "Collapsed directories:"
	alwaysShowHeading = "Always shown files:"
	patternListIndent = "  - "
)

// RenderPatternsText lists the effective pattern groups of a rule set in a
// readable form, one pattern per line.
func RenderPatternsText(view rules.PatternView) string {
	var builder strings.Builder
	writePatternGroup(&builder, alwaysHideHeading, view.AlwaysHide)
	builder.WriteString("\n")
	writePatternGroup(&builder, collapseHeading, view.CollapseDirectories)
	builder.WriteString("\n")
	writePatternGroup(&builder, alwaysShowHeading, view.AlwaysShowFiles)
	return builder.String()
}

func writePatternGroup(builder *strings.Builder, heading string, patterns []string) {
	builder.WriteString(heading)
	builder.WriteString("\n")
	for _, pattern := range patterns {
		builder.WriteString(patternListIndent)
		builder.WriteString(pattern)
		builder.WriteString("\n")
	}
}

// RenderPatternsJSON encodes the effective pattern groups as indented JSON.
func RenderPatternsJSON(view rules.PatternView) (string, error) {
	encoded, marshalError := json.MarshalIndent(view, "", jsonIndent)
	if marshalError != nil {
		return "", fmt.Errorf(errorMarshalJSONFormat, marshalError)
	}
	return string(encoded), nil
}

// RenderPatternsXML encodes the effective pattern groups as indented XML.
func RenderPatternsXML(view rules.PatternView) (string, error) {
	encoded, marshalError := xml.MarshalIndent(view, "", jsonIndent)
	if marshalError != nil {
		return "", fmt.Errorf(errorMarshalXMLFormat, marshalError)
	}
	return string(encoded), nil
}
