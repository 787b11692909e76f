package emit

import (
	"fmt"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/Faultbox/terrn2conv/pkg/terrn"
)

// converterCredit is the author marker stamped into every emitted file.
const converterCredit = "terrn2conv"

// Terrn2 renders the .terrn2 scene descriptor with a freshly generated GUID.
func Terrn2(scene *terrn.Scene, tobjName string) []byte {
	return Terrn2WithGUID(scene, tobjName, uuid.NewString())
}

// Terrn2WithGUID renders the .terrn2 scene descriptor with the given GUID.
// Author roles are emitted in sorted order so output is reproducible.
func Terrn2WithGUID(scene *terrn.Scene, tobjName, guid string) []byte {
	var b strings.Builder

	b.WriteString("[General]\n")
	fmt.Fprintf(&b, "Name = %s\n", scene.Name)
	geomBase := strings.TrimSuffix(scene.GeometryConfigRef, filepath.Ext(scene.GeometryConfigRef))
	fmt.Fprintf(&b, "GeometryConfig = %s.otc\n", geomBase)
	if scene.HasWater() {
		b.WriteString("Water=1\n")
		fmt.Fprintf(&b, "WaterLine = %s\n", strconv.FormatFloat(*scene.WaterHeight, 'g', -1, 64))
	} else {
		b.WriteString("Water=0\n")
	}
	fmt.Fprintf(&b, "AmbientColor = %s\n", scene.AmbientColor)
	fmt.Fprintf(&b, "StartPosition = %s\n", formatPosition(scene.StartPosition))
	// The new engine has no caelum sky support; the key stays commented
	// even when the legacy scene declared one.
	b.WriteString("#CaelumConfigFile =\n")
	b.WriteString("SandStormCubeMap = tracks/skyboxcol\n")
	fmt.Fprintf(&b, "Gravity = %s\n", strconv.FormatFloat(scene.Gravity, 'g', -1, 64))
	b.WriteString("CategoryID = 129\n")
	b.WriteString("Version = 1\n")
	fmt.Fprintf(&b, "GUID = %s\n", guid)
	if scene.LanduseConfigRef != "" {
		fmt.Fprintf(&b, "TractionMap = %s\n", scene.LanduseConfigRef)
	}
	b.WriteString("\n\n")

	b.WriteString("[Authors]\n")
	roles := make([]string, 0, len(scene.Authors))
	for role := range scene.Authors {
		roles = append(roles, role)
	}
	sort.Strings(roles)
	for _, role := range roles {
		fmt.Fprintf(&b, "%s = %s\n", role, scene.Authors[role])
	}
	if len(roles) == 0 {
		b.WriteString("terrain = unknown\n")
	}
	fmt.Fprintf(&b, "terrn2 = %s\n\n", converterCredit)

	b.WriteString(" \n[Objects]\n")
	fmt.Fprintf(&b, "%s=\n\n", tobjName)

	b.WriteString("[Scripts]\n")

	return []byte(b.String())
}

// formatPosition renders a position as "x, y, z".
func formatPosition(pos [3]float64) string {
	parts := make([]string, 3)
	for i, v := range pos {
		parts[i] = strconv.FormatFloat(v, 'g', -1, 64)
	}
	return strings.Join(parts, ", ")
}
