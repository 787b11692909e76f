package material

import (
	"fmt"
	"strconv"
	"strings"
)

// splatSlots is the number of Splat<k> texture aliases the dialect defines.
const splatSlots = 8

// resolveAlphaSplat reduces an AlphaSplatAliased block to a layer set.
//
// The dialect inherits from the AlphaSplatTerrain parent material and binds
// everything through texture aliases: AlphaMap aliases carry the blend maps
// and Splat1..Splat8 carry the diffuse textures. Two float4 shader masks
// gate which splat slots actually become layers. No normal maps exist in
// this dialect; every layer gets the synthetic flat normal map.
func resolveAlphaSplat(block string) *TextureLayerSet {
	alpha0Mask := parseMask(block, "alpha0Mask")
	alpha1Mask := parseMask(block, "alpha1Mask")

	set := &TextureLayerSet{}

	var splats [splatSlots]string
	var found [splatSlots]bool

	for _, line := range strings.Split(block, "\n") {
		if strings.Contains(line, "set_texture_alias AlphaMap") {
			if fields := strings.Fields(line); len(fields) >= 3 {
				set.BlendMaps = append(set.BlendMaps, fields[2])
			}
			continue
		}
		for k := 1; k <= splatSlots; k++ {
			if found[k-1] || !strings.Contains(line, fmt.Sprintf("set_texture_alias Splat%d", k)) {
				continue
			}
			if fields := strings.Fields(line); len(fields) >= 3 {
				splats[k-1] = fields[2]
				found[k-1] = true
			}
			break
		}
	}

	appendMasked := func(mask [4]float64, offset int) {
		for i := 0; i < 4; i++ {
			if mask[i] != 1 || !found[offset+i] {
				continue
			}
			set.Layers = append(set.Layers, TextureLayer{
				Diffuse: splats[offset+i],
				Normal:  BlankNormalMap,
				Alpha:   DefaultLayerAlpha,
			})
		}
	}
	appendMasked(alpha0Mask, 0)
	appendMasked(alpha1Mask, 4)

	return set
}

// parseMask reads a float4 channel mask from the AlphaSplatTerrain/FP
// fragment program section. Missing masks default to 1,1,1,0 (three
// channels enabled), matching what the parent material declares.
func parseMask(block, name string) [4]float64 {
	mask := [4]float64{1, 1, 1, 0}

	section := fragmentProgramSection(block)
	for _, line := range strings.Split(section, "\n") {
		if !strings.Contains(line, name) {
			continue
		}
		idx := strings.Index(line, "float4")
		if idx < 0 {
			continue
		}
		fields := strings.Fields(line[idx+len("float4"):])
		if len(fields) < 4 {
			continue
		}
		for i := 0; i < 4; i++ {
			v, err := strconv.ParseFloat(fields[i], 64)
			if err != nil {
				return [4]float64{1, 1, 1, 0}
			}
			mask[i] = v
		}
		return mask
	}
	return mask
}

// fragmentProgramSection extracts the fragment_program_ref sub-section of
// the block: from the AlphaSplatTerrain/FP reference to its closing brace.
func fragmentProgramSection(block string) string {
	idx := strings.Index(block, "fragment_program_ref AlphaSplatTerrain/FP")
	if idx < 0 {
		return ""
	}
	rest := block[idx:]
	if end := strings.IndexByte(rest, '}'); end >= 0 {
		rest = rest[:end]
	}
	return rest
}
