package material

// Channel selects a blend-map color channel.
type Channel int

// Blend-map channels. ChannelA exists for completeness but the positional
// assignment rule only ever yields R, G and B: the blend-map format in use
// downstream is RGB-only.
const (
	ChannelR Channel = iota
	ChannelG
	ChannelB
	ChannelA
)

// String returns the channel letter.
func (c Channel) String() string {
	switch c {
	case ChannelR:
		return "R"
	case ChannelG:
		return "G"
	case ChannelB:
		return "B"
	case ChannelA:
		return "A"
	default:
		return "?"
	}
}

// Layer opacity weights.
const (
	// DefaultLayerAlpha is the opacity assigned to resolved terrain layers.
	DefaultLayerAlpha = 0.99
	// DetailLayerAlpha is the fixed opacity of the synthetic detail layer.
	DetailLayerAlpha = 0.8
)

// BlankNormalMap is the synthetic flat normal map assigned to layers whose
// dialect carries no explicit normal textures.
const BlankNormalMap = "blank_NRM.dds"

// TextureLayer describes one paintable terrain surface.
type TextureLayer struct {
	Diffuse     string
	Normal      string
	BlendSource string // blend-map asset selecting this layer, "" if none left
	Channel     Channel
	Alpha       float64
}

// TextureLayerSet is the ordered result of resolving one material block.
// Layer order determines channel and blend-map pairing downstream and is
// reproducible from the same input. More blend maps than needed is fine;
// the set tolerates fewer layers than 4 per blend map.
type TextureLayerSet struct {
	BlendMaps []string
	Layers    []TextureLayer
}

// Empty reports whether resolution produced no usable layers.
func (s *TextureLayerSet) Empty() bool {
	return len(s.Layers) == 0
}

// assignChannels pairs each layer with a blend map and channel by position:
// layer i reads blend map i/3, channel [R G B][i%3]. The A channel is left
// unused on purpose.
func (s *TextureLayerSet) assignChannels() {
	channels := [3]Channel{ChannelR, ChannelG, ChannelB}
	for i := range s.Layers {
		s.Layers[i].Channel = channels[i%3]
		if bm := i / 3; bm < len(s.BlendMaps) {
			s.Layers[i].BlendSource = s.BlendMaps[bm]
		}
	}
}

// SyntheticDefault builds the two-layer fallback set used when the material
// script is missing or written in an unsupported dialect: a base layer plus
// a fixed-opacity detail layer on a single default blend map.
func SyntheticDefault(baseDiffuse, detailDiffuse, blendMap string) *TextureLayerSet {
	set := &TextureLayerSet{
		BlendMaps: []string{blendMap},
		Layers: []TextureLayer{
			{Diffuse: baseDiffuse, Normal: BlankNormalMap, Alpha: DefaultLayerAlpha},
			{Diffuse: detailDiffuse, Normal: BlankNormalMap, Alpha: DetailLayerAlpha},
		},
	}
	set.assignChannels()
	return set
}
