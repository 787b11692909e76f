// Package material resolves Ogre material scripts into renderer-ready
// texture layer sets. Only the two known terrain authoring dialects are
// understood; anything else yields an empty result rather than an error.
package material

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

// Material script errors.
var (
	ErrMaterialNotFound = errors.New("material not found in script")
)

// Dialect identifies the authoring convention of a material block.
type Dialect int

const (
	DialectUnsupported Dialect = iota
	DialectETTerrainMultiPass
	DialectAlphaSplatAliased
)

// String returns a human-readable dialect name.
func (d Dialect) String() string {
	switch d {
	case DialectETTerrainMultiPass:
		return "ETTerrainMultiPass"
	case DialectAlphaSplatAliased:
		return "AlphaSplatAliased"
	default:
		return "Unsupported"
	}
}

// FindBlock locates the named material block inside a material script.
// The lookup is case-insensitive on both the material keyword and the name.
// The block extends from the start of the declaration to the start of the
// next material declaration, or end of script.
func FindBlock(script, name string) (string, error) {
	lower := strings.ToLower(script)
	needle := "material " + strings.ToLower(name)

	start := strings.Index(lower, needle)
	if start < 0 {
		return "", fmt.Errorf("%w: %q", ErrMaterialNotFound, name)
	}

	rest := script[start:]
	if end := strings.Index(rest, "\nmaterial "); end >= 0 {
		rest = rest[:end]
	}
	return rest, nil
}

// DetectDialect classifies a material block. AlphaSplat aliasing is checked
// first via its parent-material marker; otherwise any ET terrain program
// reference in the name or body selects the multi-pass dialect.
func DetectDialect(name, block string) Dialect {
	if strings.Contains(block, ": AlphaSplatTerrain") {
		return DialectAlphaSplatAliased
	}

	haystack := strings.ToLower(name + block)
	for _, marker := range []string{"et/program", "etterrain", "etambient"} {
		if strings.Contains(haystack, marker) {
			return DialectETTerrainMultiPass
		}
	}
	return DialectUnsupported
}

// Resolve finds the named material in the script and reduces it to an
// ordered TextureLayerSet. An unsupported dialect resolves to an empty set
// with a nil error; only a missing material is reported as an error.
func Resolve(script, name string) (*TextureLayerSet, error) {
	block, err := FindBlock(script, name)
	if err != nil {
		return nil, err
	}

	var set *TextureLayerSet
	switch DetectDialect(name, block) {
	case DialectETTerrainMultiPass:
		set = resolveETTerrain(block)
	case DialectAlphaSplatAliased:
		set = resolveAlphaSplat(block)
	default:
		set = &TextureLayerSet{}
	}

	set.assignChannels()
	return set, nil
}

// ResolveFile resolves a material from a script file on disk.
func ResolveFile(path, name string) (*TextureLayerSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading material script: %w", err)
	}
	return Resolve(string(data), name)
}
