package terrn

import (
	"strconv"
	"strings"
)

// ObjectKind classifies a retained object-list line.
type ObjectKind int

const (
	ObjectComment ObjectKind = iota // retained "//" comment (or blank from "end")
	ObjectGrass                     // "grass ..." passthrough line
	ObjectTrees                     // "trees ..." passthrough line
	ObjectPlaced                    // placed object with position/rotation/name
)

// String returns a human-readable object kind name.
func (k ObjectKind) String() string {
	switch k {
	case ObjectComment:
		return "Comment"
	case ObjectGrass:
		return "Grass"
	case ObjectTrees:
		return "Trees"
	case ObjectPlaced:
		return "PlacedObject"
	default:
		return "Unknown"
	}
}

// ObjectLine is one renderer-visible line of the filtered object list.
// Ordering among object lines is rendering-significant and preserved
// exactly as in the source file.
type ObjectLine struct {
	Raw  string // canonical text to emit ("" preserves a blank line)
	Kind ObjectKind

	// Parsed for ObjectPlaced lines only.
	Position [3]float64
	Rotation [3]float64
	Name     string // mesh or object name (trailing fields re-joined)
}

// headerLineCount is the fixed number of raw lines making up the scene
// header region. The filter skips them by count, not by content.
const headerLineCount = 5

// FilterObjects re-scans the raw scene file and produces the filtered
// pass-through object list. This is an independent pass over the original
// line sequence, not a continuation of the scene builder.
func FilterObjects(data []byte) []ObjectLine {
	lines := strings.Split(string(data), "\n")

	var out []ObjectLine
	foundFirstObject := false

	for i, raw := range lines {
		if i < headerLineCount {
			continue
		}

		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		if strings.Contains(line, "//fileinfo") || strings.Contains(line, ";fileinfo") {
			continue
		}
		lower := strings.ToLower(line)
		if strings.Contains(lower, "//author") || strings.Contains(lower, ";author") {
			continue
		}
		if isNumberedMetadata(line) {
			continue
		}

		isComment := strings.HasPrefix(line, "//")

		// Until the first genuine placed object appears, drop the in-line
		// duplicate of the start-position record (exactly 9 comma fields)
		// and spawn-marker comments known from variant files.
		if !foundFirstObject {
			if isComment && strings.Contains(lower, "spawn") {
				continue
			}
			if strings.Contains(line, ",") {
				if len(strings.Split(line, ",")) == 9 {
					continue
				}
				foundFirstObject = true
			}
		}

		if strings.HasPrefix(line, "caelumconfig") || strings.HasPrefix(line, "landuse-config") {
			continue
		}

		// A bare "end" keyword becomes a blank line so downstream readers
		// keep the blank-line structure they expect.
		if strings.EqualFold(line, "end") {
			out = append(out, ObjectLine{Raw: "", Kind: ObjectComment})
			continue
		}

		switch {
		case isComment:
			out = append(out, ObjectLine{Raw: line, Kind: ObjectComment})
		case strings.HasPrefix(line, "grass "):
			out = append(out, ObjectLine{Raw: line, Kind: ObjectGrass})
		case strings.HasPrefix(line, "trees "):
			out = append(out, ObjectLine{Raw: line, Kind: ObjectTrees})
		default:
			if obj, ok := parsePlacedObject(line); ok {
				out = append(out, obj)
			}
			// Fewer than 7 comma fields: malformed, silently dropped.
		}
	}

	return out
}

// isNumberedMetadata reports whether a comment line is a numbered legacy
// metadata record: a "//" or ";" comment containing '=' whose portion
// before the '=' carries a digit.
func isNumberedMetadata(line string) bool {
	if !strings.HasPrefix(line, "//") && !strings.HasPrefix(line, ";") {
		return false
	}
	eq := strings.Index(line, "=")
	if eq < 0 {
		return false
	}
	return strings.ContainsAny(line[:eq], "0123456789")
}

// parsePlacedObject canonicalizes a placed-object line with at least 7
// comma-separated fields: 3 position floats, 3 rotation floats, and the
// remaining fields re-joined as the object name.
func parsePlacedObject(line string) (ObjectLine, bool) {
	fields := strings.Split(line, ",")
	if len(fields) < 7 {
		return ObjectLine{}, false
	}

	obj := ObjectLine{Kind: ObjectPlaced}
	for i := 0; i < 6; i++ {
		v, err := strconv.ParseFloat(strings.TrimSpace(fields[i]), 64)
		if err != nil {
			return ObjectLine{}, false
		}
		if i < 3 {
			obj.Position[i] = v
		} else {
			obj.Rotation[i-3] = v
		}
	}

	for i := 6; i < len(fields); i++ {
		fields[i] = strings.TrimSpace(fields[i])
	}
	obj.Name = strings.Join(fields[6:], ",")

	obj.Raw = formatPlacedObject(obj)
	return obj, true
}

// formatPlacedObject renders the canonical comma-joined record.
func formatPlacedObject(obj ObjectLine) string {
	parts := make([]string, 0, 7)
	for i := 0; i < 3; i++ {
		parts = append(parts, strconv.FormatFloat(obj.Position[i], 'g', -1, 64))
	}
	for i := 0; i < 3; i++ {
		parts = append(parts, strconv.FormatFloat(obj.Rotation[i], 'g', -1, 64))
	}
	parts = append(parts, obj.Name)
	return strings.Join(parts, ", ")
}
