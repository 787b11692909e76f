package emit

import (
	"strings"

	"github.com/Faultbox/terrn2conv/pkg/terrn"
)

// Tobj renders the filtered object list as a .tobj file. Line order is
// rendering-significant and preserved exactly; empty records become blank
// lines.
func Tobj(objects []terrn.ObjectLine) []byte {
	var b strings.Builder
	for _, obj := range objects {
		b.WriteString(obj.Raw)
		b.WriteString("\n")
	}
	return []byte(b.String())
}
