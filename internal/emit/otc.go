// Package emit serializes parsed terrain data into the destination file
// formats consumed by the new terrain engine.
package emit

import (
	"errors"
	"fmt"
	"strings"
)

// Geometry config errors.
var (
	ErrIncompleteGeometryConfig = errors.New("incomplete geometry config")
)

// GeometryConfig holds the legacy Ogre terrain .cfg values needed to emit
// an .otc geometry file. Values are passed through verbatim; the heightmap
// itself is referenced by name only and never opened.
type GeometryConfig struct {
	HeightmapSize string
	HeightmapBPP  string
	HeightmapFlip bool
	WorldSizeX    string
	WorldSizeZ    string
	MaxHeight     string
}

// ParseGeometryConfig extracts the required values from a legacy Ogre
// terrain .cfg file. Comment lines ('#') and blanks are skipped. All five
// required values must be present or ErrIncompleteGeometryConfig is
// returned naming the first missing key.
func ParseGeometryConfig(data []byte) (*GeometryConfig, error) {
	cfg := &GeometryConfig{}

	for _, raw := range strings.Split(string(data), "\n") {
		line := strings.TrimSpace(raw)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		switch {
		case strings.Contains(line, "Heightmap.raw.size="):
			cfg.HeightmapSize = valueAfterEquals(line)
		case strings.Contains(line, "Heightmap.raw.bpp="):
			cfg.HeightmapBPP = valueAfterEquals(line)
		case strings.Contains(line, "Heightmap.flip="):
			if strings.EqualFold(valueAfterEquals(line), "true") {
				cfg.HeightmapFlip = true
			}
		case strings.Contains(line, "PageWorldX="):
			cfg.WorldSizeX = valueAfterEquals(line)
		case strings.Contains(line, "PageWorldZ="):
			cfg.WorldSizeZ = valueAfterEquals(line)
		case strings.Contains(line, "MaxHeight="):
			cfg.MaxHeight = valueAfterEquals(line)
		}
	}

	for _, req := range []struct{ key, val string }{
		{"Heightmap.raw.size", cfg.HeightmapSize},
		{"Heightmap.raw.bpp", cfg.HeightmapBPP},
		{"PageWorldX", cfg.WorldSizeX},
		{"PageWorldZ", cfg.WorldSizeZ},
		{"MaxHeight", cfg.MaxHeight},
	} {
		if req.val == "" {
			return nil, fmt.Errorf("%w: missing %s", ErrIncompleteGeometryConfig, req.key)
		}
	}

	return cfg, nil
}

// valueAfterEquals returns the text after the first '=' on the line.
func valueAfterEquals(line string) string {
	if idx := strings.Index(line, "="); idx >= 0 {
		return strings.TrimSpace(line[idx+1:])
	}
	return ""
}

// OTC renders the .otc geometry config for the given terrain name.
func OTC(cfg *GeometryConfig, terrainName string) []byte {
	var b strings.Builder

	flipX := 0
	if cfg.HeightmapFlip {
		flipX = 1
	}

	fmt.Fprintf(&b, "Heightmap.0.0.raw.size=%s\n", cfg.HeightmapSize)
	fmt.Fprintf(&b, "Heightmap.0.0.raw.bpp=%s\n", cfg.HeightmapBPP)
	fmt.Fprintf(&b, "Heightmap.0.0.flipX=%d\n", flipX)
	b.WriteString("\n")
	fmt.Fprintf(&b, "WorldSizeX=%s\n", cfg.WorldSizeX)
	fmt.Fprintf(&b, "WorldSizeZ=%s\n", cfg.WorldSizeZ)
	fmt.Fprintf(&b, "WorldSizeY=%s\n", cfg.MaxHeight)
	b.WriteString("\n")
	b.WriteString("disableCaching=1\n")
	b.WriteString("\n")
	fmt.Fprintf(&b, "PageFileFormat=%s-page-0-0.otc\n", terrainName)
	b.WriteString("\n")
	b.WriteString("MaxPixelError=0\n")
	b.WriteString("LightmapEnabled=0\n")
	b.WriteString("SpecularMappingEnabled=1\n")
	b.WriteString("NormalMappingEnabled=1\n")

	return []byte(b.String())
}
