// Package terrn parses legacy Rigs of Rods terrain scene files.
package terrn

import "strings"

// LineKind classifies a single line of a terrn scene file.
type LineKind int

const (
	LineBlank         LineKind = iota // empty or whitespace-only
	LineEndMarker                     // "//end" end-of-scene marker
	LineAuthorComment                 // "//author" or ";author" credit comment
	LineGravity                       // "gravity <value>" directive
	LineLanduse                       // "landuse-config <file>" directive
	LineCaelum                        // "caelumconfig..." sky directive
	LineContent                       // positional content consumed by the scene builder
)

// String returns a human-readable line kind name.
func (k LineKind) String() string {
	switch k {
	case LineBlank:
		return "Blank"
	case LineEndMarker:
		return "EndMarker"
	case LineAuthorComment:
		return "AuthorComment"
	case LineGravity:
		return "Gravity"
	case LineLanduse:
		return "Landuse"
	case LineCaelum:
		return "Caelum"
	case LineContent:
		return "Content"
	default:
		return "Unknown"
	}
}

// ClassifiedLine is the result of classifying one raw line.
type ClassifiedLine struct {
	Kind LineKind
	Text string // trimmed line text

	// AuthorComment captures. HasAuthor is false when the comment had too
	// few tokens to carry a credit and must be ignored.
	HasAuthor  bool
	AuthorRole string
	AuthorName string

	// Gravity/Landuse directive payload (second token, verbatim).
	Value string
}

// ClassifyLine classifies one raw scene line. Rules are checked in priority
// order; the first match wins. Directives are recognized anywhere in the
// file, not only in the header region.
func ClassifyLine(raw string) ClassifiedLine {
	line := strings.TrimSpace(raw)

	switch {
	case line == "":
		return ClassifiedLine{Kind: LineBlank, Text: line}

	case strings.HasPrefix(line, "//end"):
		return ClassifiedLine{Kind: LineEndMarker, Text: line}

	case hasPrefixFold(line, "//author") || hasPrefixFold(line, ";author"):
		cl := ClassifiedLine{Kind: LineAuthorComment, Text: line}
		cl.HasAuthor, cl.AuthorRole, cl.AuthorName = parseAuthor(line)
		return cl

	case strings.HasPrefix(line, "gravity "):
		return ClassifiedLine{Kind: LineGravity, Text: line, Value: secondToken(line)}

	case strings.HasPrefix(line, "landuse-config "):
		return ClassifiedLine{Kind: LineLanduse, Text: line, Value: secondToken(line)}

	case strings.HasPrefix(line, "caelumconfig"):
		return ClassifiedLine{Kind: LineCaelum, Text: line}

	default:
		return ClassifiedLine{Kind: LineContent, Text: line}
	}
}

// parseAuthor extracts the role and name from an author comment such as
//
//	//author terrain 42 Jane Doe jane@example.com
//
// Tokens after the prefix are split on single spaces: token 1 is the role,
// token 2 is a legacy resource ID (discarded), everything after is the
// author name. A trailing email address is dropped by truncating the name
// to its first token whenever it contains '@'. Comments with fewer than
// three tokens carry no credit and are ignored.
func parseAuthor(line string) (ok bool, role, name string) {
	rest := line
	if strings.HasPrefix(rest, "//") {
		rest = rest[2:]
	} else {
		rest = rest[1:] // ";author" form
	}

	parts := strings.Split(rest, " ")
	if len(parts) < 3 {
		return false, "", ""
	}

	role = parts[1]
	if len(parts) > 3 {
		name = strings.Join(parts[3:], " ")
	}
	if strings.Contains(name, "@") {
		name = strings.Fields(name)[0]
	}
	return true, role, name
}

// hasPrefixFold reports whether s starts with prefix, case-insensitively.
func hasPrefixFold(s, prefix string) bool {
	return len(s) >= len(prefix) && strings.EqualFold(s[:len(prefix)], prefix)
}

// secondToken returns the second space-delimited token of a directive line,
// or "" when the line has no payload.
func secondToken(line string) string {
	parts := strings.SplitN(line, " ", 3)
	if len(parts) < 2 {
		return ""
	}
	return parts[1]
}
