// Package convert runs the batch conversion pipeline: one legacy terrn
// scene (plus its geometry config and material script) in, the new engine's
// scene descriptor, object list and texture layer files out.
package convert

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/Faultbox/terrn2conv/internal/config"
	"github.com/Faultbox/terrn2conv/internal/emit"
	"github.com/Faultbox/terrn2conv/internal/imagetool"
	"github.com/Faultbox/terrn2conv/pkg/encoding"
	"github.com/Faultbox/terrn2conv/pkg/material"
	"github.com/Faultbox/terrn2conv/pkg/terrn"
)

// Result lists everything one conversion run produced.
type Result struct {
	Scene   *terrn.Scene
	Objects []terrn.ObjectLine
	Layers  *material.TextureLayerSet

	Terrn2Path string
	TobjPath   string
	OTCPath    string // "" when no geometry config was found next to the input
	PagePath   string
}

// Run converts a single terrn scene file end to end. The run is synchronous
// and all-or-nothing for the scene header; texture resolution degrades to
// the synthetic default instead of failing.
func Run(inputPath string, cfg *config.Config, log *zap.Logger) (*Result, error) {
	data, err := os.ReadFile(inputPath)
	if err != nil {
		return nil, fmt.Errorf("reading scene file: %w", err)
	}
	text := encoding.DecodeText(data)

	scene, err := terrn.ParseScene([]byte(text))
	if err != nil {
		return nil, err
	}
	objects := terrn.FilterObjects([]byte(text))

	log.Info("parsed terrn scene",
		zap.String("name", scene.Name),
		zap.String("geometry", scene.GeometryConfigRef),
		zap.Bool("water", scene.HasWater()),
		zap.Int("objects", len(objects)))

	inputDir := filepath.Dir(inputPath)
	outDir := cfg.Output.Dir
	if outDir == "" {
		outDir = inputDir
	} else if err := os.MkdirAll(outDir, 0755); err != nil {
		return nil, fmt.Errorf("creating output dir: %w", err)
	}

	res := &Result{Scene: scene, Objects: objects}

	geomBase := strings.TrimSuffix(scene.GeometryConfigRef, filepath.Ext(scene.GeometryConfigRef))
	tobjName := geomBase + ".tobj"
	res.TobjPath = filepath.Join(outDir, tobjName)
	if err := os.WriteFile(res.TobjPath, emit.Tobj(objects), 0644); err != nil {
		return nil, fmt.Errorf("writing object list: %w", err)
	}

	otcPath, err := convertGeometryConfig(inputDir, outDir, scene.GeometryConfigRef, log)
	if err != nil {
		return nil, err
	}
	res.OTCPath = otcPath

	res.Layers = resolveLayers(inputPath, scene, cfg, log)

	res.PagePath = filepath.Join(outDir, geomBase+"-page-0-0.otc")
	if err := os.WriteFile(res.PagePath, emit.Page(res.Layers), 0644); err != nil {
		return nil, fmt.Errorf("writing page descriptor: %w", err)
	}

	copyFallbackTextures(res.Layers, cfg, outDir, log)
	postProcessBlendMaps(res.Layers, cfg, outDir, log)

	res.Terrn2Path = strings.TrimSuffix(inputPath, filepath.Ext(inputPath)) + ".terrn2"
	if cfg.Output.Dir != "" {
		res.Terrn2Path = filepath.Join(outDir, filepath.Base(res.Terrn2Path))
	}
	if err := os.WriteFile(res.Terrn2Path, emit.Terrn2(scene, tobjName), 0644); err != nil {
		return nil, fmt.Errorf("writing scene descriptor: %w", err)
	}

	log.Info("conversion finished",
		zap.String("terrn2", res.Terrn2Path),
		zap.Int("layers", len(res.Layers.Layers)))
	return res, nil
}

// convertGeometryConfig converts the referenced Ogre terrain .cfg to .otc.
// A missing config file is not an error; the scene may ship without one.
func convertGeometryConfig(inputDir, outDir, geomRef string, log *zap.Logger) (string, error) {
	cfgPath := filepath.Join(inputDir, geomRef)
	data, err := os.ReadFile(cfgPath)
	if err != nil {
		if os.IsNotExist(err) {
			log.Warn("geometry config not found, skipping .otc", zap.String("path", cfgPath))
			return "", nil
		}
		return "", fmt.Errorf("reading geometry config: %w", err)
	}

	geom, err := emit.ParseGeometryConfig(data)
	if err != nil {
		return "", err
	}

	base := strings.TrimSuffix(geomRef, filepath.Ext(geomRef))
	outPath := filepath.Join(outDir, base+".otc")
	if err := os.WriteFile(outPath, emit.OTC(geom, base), 0644); err != nil {
		return "", fmt.Errorf("writing geometry config: %w", err)
	}
	log.Info("converted geometry config", zap.String("path", outPath))
	return outPath, nil
}

// resolveLayers resolves the texture layers for the scene, falling back to
// the synthetic two-layer default when the script is missing, the material
// is absent or the dialect is unsupported.
func resolveLayers(inputPath string, scene *terrn.Scene, cfg *config.Config, log *zap.Logger) *material.TextureLayerSet {
	scriptPath := cfg.Material.ScriptPath
	if scriptPath == "" {
		scriptPath = strings.TrimSuffix(inputPath, filepath.Ext(inputPath)) + ".material"
	}
	matName := cfg.Material.Name
	if matName == "" {
		matName = scene.Name
	}

	script, err := os.ReadFile(scriptPath)
	if err != nil {
		log.Warn("material script not readable, using synthetic layers",
			zap.String("path", scriptPath), zap.Error(err))
		return syntheticDefault(cfg)
	}

	set, err := material.Resolve(encoding.DecodeText(script), matName)
	if err != nil {
		if errors.Is(err, material.ErrMaterialNotFound) {
			log.Warn("material not found, using synthetic layers", zap.String("material", matName))
			return syntheticDefault(cfg)
		}
		log.Warn("material resolution failed, using synthetic layers", zap.Error(err))
		return syntheticDefault(cfg)
	}
	if set.Empty() {
		log.Warn("unsupported material dialect, using synthetic layers", zap.String("material", matName))
		return syntheticDefault(cfg)
	}

	log.Info("resolved texture layers",
		zap.String("material", matName),
		zap.Int("blendmaps", len(set.BlendMaps)),
		zap.Int("layers", len(set.Layers)))
	return set
}

func syntheticDefault(cfg *config.Config) *material.TextureLayerSet {
	return material.SyntheticDefault(
		cfg.Resources.BaseDiffuse,
		cfg.Resources.DetailDiffuse,
		cfg.Resources.DefaultBlend)
}

// copyFallbackTextures copies referenced default textures (flat normal map,
// synthetic blend map and diffuse textures) from the resource directory
// into the output directory. A missing resource directory is only a
// warning; the emitted files still reference the names.
func copyFallbackTextures(set *material.TextureLayerSet, cfg *config.Config, outDir string, log *zap.Logger) {
	if cfg.Resources.Dir == "" {
		return
	}

	needed := make(map[string]bool)
	for _, layer := range set.Layers {
		if layer.Normal == material.BlankNormalMap {
			needed[material.BlankNormalMap] = true
		}
		if layer.Diffuse == cfg.Resources.BaseDiffuse || layer.Diffuse == cfg.Resources.DetailDiffuse {
			needed[layer.Diffuse] = true
		}
	}
	for _, bm := range set.BlendMaps {
		if bm == cfg.Resources.DefaultBlend {
			needed[bm] = true
		}
	}

	for name := range needed {
		src := filepath.Join(cfg.Resources.Dir, name)
		data, err := os.ReadFile(src)
		if err != nil {
			log.Warn("fallback texture not available", zap.String("path", src), zap.Error(err))
			continue
		}
		dst := filepath.Join(outDir, name)
		if err := os.WriteFile(dst, data, 0644); err != nil {
			log.Warn("copying fallback texture failed", zap.String("path", dst), zap.Error(err))
			continue
		}
		log.Debug("copied fallback texture", zap.String("texture", name))
	}
}

// postProcessBlendMaps runs the external image tool over blend maps present
// in the output directory. The new engine expects blend maps with an alpha
// channel; tool failures are warnings, not conversion failures.
func postProcessBlendMaps(set *material.TextureLayerSet, cfg *config.Config, outDir string, log *zap.Logger) {
	tool := imagetool.New(cfg.ImageTool.Command, log)

	for _, bm := range set.BlendMaps {
		path := filepath.Join(outDir, bm)
		if _, err := os.Stat(path); err != nil {
			log.Debug("blend map not in output dir, skipping alpha pass", zap.String("path", path))
			continue
		}
		if err := tool.AddAlphaChannel(path); err != nil {
			log.Warn("adding alpha channel failed", zap.String("path", path), zap.Error(err))
		}
	}
}
