package convert

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/Faultbox/terrn2conv/internal/config"
	"github.com/Faultbox/terrn2conv/pkg/material"
	"github.com/Faultbox/terrn2conv/pkg/terrn"
)

const testTerrn = `NHelens
nhelens.cfg
w 0.5
255,255,255
10,20,30,0,0,0,0,0,0
//author terrain 1 Jane jane@x.com
1,2,3,0,0,0,rock.mesh
grass 200, 0.1, slope.png
end
`

const testGeometryConfig = `Heightmap.raw.size=1025
Heightmap.raw.bpp=2
Heightmap.flip=true
PageWorldX=3000
PageWorldZ=3000
MaxHeight=300
`

const testMaterialScript = `material NHelens : AlphaSplatTerrain
{
	set_texture_alias AlphaMap1 nhelens_blend.png
	set_texture_alias Splat1 grass.dds
	set_texture_alias Splat2 rock.dds
}
`

func writeInput(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing %s: %v", name, err)
	}
	return path
}

func TestRun_FullConversion(t *testing.T) {
	dir := t.TempDir()
	input := writeInput(t, dir, "nhelens.terrn", testTerrn)
	writeInput(t, dir, "nhelens.cfg", testGeometryConfig)
	writeInput(t, dir, "nhelens.material", testMaterialScript)

	res, err := Run(input, config.Default(), zap.NewNop())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if res.Scene.Name != "NHelens" {
		t.Errorf("scene name = %q", res.Scene.Name)
	}

	terrn2, err := os.ReadFile(res.Terrn2Path)
	if err != nil {
		t.Fatalf("reading terrn2: %v", err)
	}
	for _, want := range []string{
		"Name = NHelens\n",
		"GeometryConfig = nhelens.otc\n",
		"Water=1\n",
		"WaterLine = 0.5\n",
		"terrain = Jane\n",
		"nhelens.tobj=\n",
	} {
		if !strings.Contains(string(terrn2), want) {
			t.Errorf("terrn2 missing %q", want)
		}
	}

	tobj, err := os.ReadFile(res.TobjPath)
	if err != nil {
		t.Fatalf("reading tobj: %v", err)
	}
	wantTobj := "1, 2, 3, 0, 0, 0, rock.mesh\ngrass 200, 0.1, slope.png\n\n"
	if string(tobj) != wantTobj {
		t.Errorf("tobj = %q, want %q", tobj, wantTobj)
	}

	otc, err := os.ReadFile(res.OTCPath)
	if err != nil {
		t.Fatalf("reading otc: %v", err)
	}
	if !strings.Contains(string(otc), "PageFileFormat=nhelens-page-0-0.otc\n") {
		t.Errorf("otc missing page file reference:\n%s", otc)
	}

	page, err := os.ReadFile(res.PagePath)
	if err != nil {
		t.Fatalf("reading page descriptor: %v", err)
	}
	for _, want := range []string{
		"2\n",
		"grass.dds, blank_NRM.dds, nhelens_blend.png, R, 0.99\n",
		"rock.dds, blank_NRM.dds, nhelens_blend.png, G, 0.99\n",
	} {
		if !strings.Contains(string(page), want) {
			t.Errorf("page descriptor missing %q:\n%s", want, page)
		}
	}
}

func TestRun_SyntheticFallbackWithoutMaterial(t *testing.T) {
	dir := t.TempDir()
	input := writeInput(t, dir, "plain.terrn", strings.ReplaceAll(testTerrn, "nhelens.cfg", "plain.cfg"))

	cfg := config.Default()
	res, err := Run(input, cfg, zap.NewNop())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if len(res.Layers.Layers) != 2 {
		t.Fatalf("expected synthetic two-layer fallback, got %d layers", len(res.Layers.Layers))
	}
	if res.Layers.Layers[0].Diffuse != cfg.Resources.BaseDiffuse {
		t.Errorf("base layer = %q", res.Layers.Layers[0].Diffuse)
	}
	if res.Layers.Layers[1].Alpha != material.DetailLayerAlpha {
		t.Errorf("detail layer alpha = %v", res.Layers.Layers[1].Alpha)
	}
	if res.OTCPath != "" {
		t.Errorf("no geometry config present, OTCPath = %q", res.OTCPath)
	}
}

func TestRun_OutputDir(t *testing.T) {
	dir := t.TempDir()
	outDir := filepath.Join(dir, "out")
	input := writeInput(t, dir, "nhelens.terrn", testTerrn)
	writeInput(t, dir, "nhelens.cfg", testGeometryConfig)

	cfg := config.Default()
	cfg.Output.Dir = outDir

	res, err := Run(input, cfg, zap.NewNop())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	for _, path := range []string{res.Terrn2Path, res.TobjPath, res.OTCPath, res.PagePath} {
		if filepath.Dir(path) != outDir {
			t.Errorf("%s not in output dir %s", path, outDir)
		}
		if _, err := os.Stat(path); err != nil {
			t.Errorf("missing output file: %v", err)
		}
	}
}

func TestRun_MalformedSceneIsFatal(t *testing.T) {
	dir := t.TempDir()
	input := writeInput(t, dir, "short.terrn", "OnlyAName\n")

	_, err := Run(input, config.Default(), zap.NewNop())
	if !errors.Is(err, terrn.ErrMalformedScene) {
		t.Fatalf("expected ErrMalformedScene, got %v", err)
	}

	// All-or-nothing: no partial outputs.
	entries, _ := os.ReadDir(dir)
	if len(entries) != 1 {
		t.Errorf("malformed scene must not leave partial outputs: %v", entries)
	}
}

func TestRun_CopiesFallbackTextures(t *testing.T) {
	dir := t.TempDir()
	resDir := filepath.Join(dir, "resources")
	if err := os.MkdirAll(resDir, 0755); err != nil {
		t.Fatal(err)
	}

	cfg := config.Default()
	cfg.Resources.Dir = resDir
	writeInput(t, resDir, material.BlankNormalMap, "dds-bytes")
	writeInput(t, resDir, cfg.Resources.BaseDiffuse, "dds-bytes")
	writeInput(t, resDir, cfg.Resources.DetailDiffuse, "dds-bytes")
	writeInput(t, resDir, cfg.Resources.DefaultBlend, "png-bytes")

	input := writeInput(t, dir, "plain.terrn", strings.ReplaceAll(testTerrn, "nhelens.cfg", "plain.cfg"))

	if _, err := Run(input, cfg, zap.NewNop()); err != nil {
		t.Fatalf("Run: %v", err)
	}

	for _, name := range []string{
		material.BlankNormalMap,
		cfg.Resources.BaseDiffuse,
		cfg.Resources.DetailDiffuse,
		cfg.Resources.DefaultBlend,
	} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("fallback texture %s not copied: %v", name, err)
		}
	}
}

func TestAnalyze(t *testing.T) {
	dir := t.TempDir()
	input := writeInput(t, dir, "nhelens.terrn", testTerrn)
	writeInput(t, dir, "nhelens.material", testMaterialScript)

	a, err := Analyze(input, config.Default())
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}

	if a.Scene.Name != "NHelens" {
		t.Errorf("scene name = %q", a.Scene.Name)
	}
	if !a.ScriptFound {
		t.Error("material script should be found")
	}
	if a.Dialect != material.DialectAlphaSplatAliased {
		t.Errorf("dialect = %s", a.Dialect)
	}
	if len(a.Layers.Layers) != 2 {
		t.Errorf("got %d layers, want 2", len(a.Layers.Layers))
	}
	if len(a.Objects) != 3 {
		t.Errorf("got %d object lines, want 3", len(a.Objects))
	}

	// Analyze writes nothing.
	entries, _ := os.ReadDir(dir)
	if len(entries) != 2 {
		t.Errorf("Analyze must not write outputs: %v", entries)
	}
}
