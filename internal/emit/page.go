package emit

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Faultbox/terrn2conv/pkg/material"
)

// Page renders the -page-0-0.otc texture layer descriptor: the layer count
// followed by one record per layer. Layer order matches the resolver output
// and is reproducible from the same input.
func Page(set *material.TextureLayerSet) []byte {
	var b strings.Builder

	fmt.Fprintf(&b, "%d\n", len(set.Layers))
	for _, layer := range set.Layers {
		blend := layer.BlendSource
		if blend == "" {
			blend = "none"
		}
		fmt.Fprintf(&b, "%s, %s, %s, %s, %s\n",
			layer.Diffuse,
			layer.Normal,
			blend,
			layer.Channel,
			strconv.FormatFloat(layer.Alpha, 'g', -1, 64))
	}

	return []byte(b.String())
}
