package material

import "strings"

// resolveETTerrain reduces an ETTerrainMultiPass block to a layer set.
//
// The dialect splits terrain shading over two passes: a Lighting pass whose
// texture units carry the blend maps (_RGB) and normal maps (_NRM), and a
// Splatting pass whose units carry the diffuse textures. Units are sliced
// positionally; the legacy authoring tool always emitted them in the same
// slots, so missing markers simply produce fewer layers.
func resolveETTerrain(block string) *TextureLayerSet {
	lighting := passBlock(block, "pass Lighting", "pass Splatting")
	splatting := passBlock(block, "pass Splatting", "pass")

	set := &TextureLayerSet{}

	lightUnits := strings.Split(lighting, "texture_unit")
	var normalMaps []string
	for i := 1; i < len(lightUnits); i++ {
		unit := lightUnits[i]
		switch {
		case i <= 3 && strings.Contains(unit, "_RGB"):
			set.BlendMaps = append(set.BlendMaps, extractTexture(unit))
		case i >= 4 && strings.Contains(unit, "_NRM"):
			normalMaps = append(normalMaps, extractTexture(unit))
		}
	}

	splatUnits := strings.Split(splatting, "texture_unit")
	var diffuseMaps []string
	for i := 4; i < len(splatUnits); i++ {
		unit := splatUnits[i]
		if !strings.Contains(unit, "texture") || strings.Contains(unit, "_RGB") {
			continue
		}
		name := extractTexture(unit)
		if strings.HasSuffix(name, "_NRM.dds") || strings.HasSuffix(name, "_lightmap.dds") {
			continue
		}
		diffuseMaps = append(diffuseMaps, name)
	}

	// Pair diffuse and normal maps index-wise; trailing unmatched entries
	// on either list are discarded.
	n := len(normalMaps)
	if len(diffuseMaps) < n {
		n = len(diffuseMaps)
	}
	for i := 0; i < n; i++ {
		set.Layers = append(set.Layers, TextureLayer{
			Diffuse: diffuseMaps[i],
			Normal:  normalMaps[i],
			Alpha:   DefaultLayerAlpha,
		})
	}

	return set
}

// passBlock extracts the sub-block starting at the `start` marker and
// ending at the next occurrence of the `end` marker after it. A missing
// start marker yields an empty sub-block; a missing end marker extends the
// sub-block to the end of the material block.
func passBlock(block, start, end string) string {
	from := strings.Index(block, start)
	if from < 0 {
		return ""
	}
	rest := block[from+len(start):]
	if to := strings.Index(rest, end); to >= 0 {
		rest = rest[:to]
	}
	return rest
}

// extractTexture pulls the texture filename out of a texture_unit body:
// the text on the line following the first `texture` keyword, with any
// trailing comment, braces and surrounding whitespace removed.
func extractTexture(unit string) string {
	idx := strings.Index(unit, "texture")
	if idx < 0 {
		return ""
	}
	rest := unit[idx+len("texture"):]
	if nl := strings.IndexByte(rest, '\n'); nl >= 0 {
		rest = rest[:nl]
	}
	if c := strings.Index(rest, "//"); c >= 0 {
		rest = rest[:c]
	}
	rest = strings.ReplaceAll(rest, "{", "")
	rest = strings.ReplaceAll(rest, "}", "")
	return strings.TrimSpace(rest)
}
