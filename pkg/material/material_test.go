package material

import (
	"errors"
	"strings"
	"testing"
)

const twoMaterialScript = `material First/Terrain
{
	technique
	{
		pass
		{
		}
	}
}

material Second/Terrain : AlphaSplatTerrain
{
}
`

func TestFindBlock(t *testing.T) {
	tests := []struct {
		name    string
		lookup  string
		wantErr bool
		marker  string // substring the block must contain
		absent  string // substring the block must not contain
	}{
		{
			name:   "first block ends at next material",
			lookup: "First/Terrain",
			marker: "technique",
			absent: "AlphaSplatTerrain",
		},
		{
			name:   "second block runs to end of script",
			lookup: "Second/Terrain",
			marker: ": AlphaSplatTerrain",
		},
		{
			name:   "lookup is case-insensitive",
			lookup: "first/terrain",
			marker: "technique",
		},
		{
			name:    "missing material",
			lookup:  "Third/Terrain",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			block, err := FindBlock(twoMaterialScript, tt.lookup)
			if tt.wantErr {
				if !errors.Is(err, ErrMaterialNotFound) {
					t.Fatalf("expected ErrMaterialNotFound, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("FindBlock: %v", err)
			}
			if tt.marker != "" && !strings.Contains(block, tt.marker) {
				t.Errorf("block should contain %q:\n%s", tt.marker, block)
			}
			if tt.absent != "" && strings.Contains(block, tt.absent) {
				t.Errorf("block should not contain %q:\n%s", tt.absent, block)
			}
		})
	}
}

func TestFindBlock_CaseInsensitiveKeyword(t *testing.T) {
	script := "MATERIAL Upper/Case\n{\n}\n"
	if _, err := FindBlock(script, "upper/case"); err != nil {
		t.Fatalf("uppercase material keyword should match: %v", err)
	}
}

func TestDetectDialect(t *testing.T) {
	tests := []struct {
		name  string
		mat   string
		block string
		want  Dialect
	}{
		{
			name:  "alpha splat alias",
			mat:   "Any",
			block: "material Any : AlphaSplatTerrain\n{\n}",
			want:  DialectAlphaSplatAliased,
		},
		{
			name:  "et program reference in block",
			mat:   "Any",
			block: "material Any\n{\n fragment_program_ref ET/Programs/Frag\n}",
			want:  DialectETTerrainMultiPass,
		},
		{
			name:  "etterrain in material name",
			mat:   "ETTerrainMaterial",
			block: "material ETTerrainMaterial\n{\n}",
			want:  DialectETTerrainMultiPass,
		},
		{
			name:  "etambient marker",
			mat:   "Any",
			block: "material Any\n{\n pass ETAmbient\n}",
			want:  DialectETTerrainMultiPass,
		},
		{
			name:  "alpha splat wins over et markers",
			mat:   "Any",
			block: "material Any : AlphaSplatTerrain\n{\n pass etterrain\n}",
			want:  DialectAlphaSplatAliased,
		},
		{
			name:  "plain material unsupported",
			mat:   "Any",
			block: "material Any\n{\n pass\n {\n texture rock.dds\n }\n}",
			want:  DialectUnsupported,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetectDialect(tt.mat, tt.block); got != tt.want {
				t.Errorf("DetectDialect = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestResolve_UnsupportedDialectYieldsEmptySet(t *testing.T) {
	set, err := Resolve(twoMaterialScript, "First/Terrain")
	if err != nil {
		t.Fatalf("unsupported dialect must not error: %v", err)
	}
	if !set.Empty() {
		t.Errorf("expected empty layer set, got %d layers", len(set.Layers))
	}
}

func TestResolve_MissingMaterial(t *testing.T) {
	_, err := Resolve(twoMaterialScript, "Nope")
	if !errors.Is(err, ErrMaterialNotFound) {
		t.Fatalf("expected ErrMaterialNotFound, got %v", err)
	}
}

func TestSyntheticDefault(t *testing.T) {
	set := SyntheticDefault("base.dds", "detail.dds", "blend.png")

	if len(set.Layers) != 2 {
		t.Fatalf("got %d layers, want 2", len(set.Layers))
	}
	base, detail := set.Layers[0], set.Layers[1]
	if base.Diffuse != "base.dds" || base.Alpha != DefaultLayerAlpha {
		t.Errorf("base layer = %+v", base)
	}
	if detail.Diffuse != "detail.dds" || detail.Alpha != DetailLayerAlpha {
		t.Errorf("detail layer = %+v", detail)
	}
	for i, layer := range set.Layers {
		if layer.Normal != BlankNormalMap {
			t.Errorf("layer %d normal = %q", i, layer.Normal)
		}
		if layer.BlendSource != "blend.png" {
			t.Errorf("layer %d blend source = %q", i, layer.BlendSource)
		}
	}
	if base.Channel != ChannelR || detail.Channel != ChannelG {
		t.Errorf("channels = %s, %s, want R, G", base.Channel, detail.Channel)
	}
}
