// terrn2conv migrates legacy terrn terrain scenes and their material
// scripts to the terrn2 scene and texture layer formats.
package main

import (
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/Faultbox/terrn2conv/internal/config"
	"github.com/Faultbox/terrn2conv/internal/convert"
	"github.com/Faultbox/terrn2conv/internal/logger"
)

const version = "1.2.0"

func main() {
	config.ParseFlags()

	if flag.NArg() < 1 {
		printUsage()
		os.Exit(1)
	}

	command := flag.Arg(0)
	switch command {
	case "convert":
		cmdConvert(flag.Args()[1:])
	case "inspect":
		cmdInspect(flag.Args()[1:])
	case "version":
		fmt.Println("terrn2conv " + version)
	case "help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`terrn2conv - legacy terrain scene converter

Usage:
  terrn2conv [flags] <command> <file.terrn>

Commands:
  convert <file.terrn>   Convert a scene to .terrn2/.tobj/.otc
  inspect <file.terrn>   Parse and print the scene and material summary
  version                Print the tool version

Flags:
  -config <file>      Config file path
  -output <dir>       Output directory (default: next to input)
  -material <name>    Material block name override
  -script <file>      Material script path override
  -resources <dir>    Default texture resource directory
  -imagetool <cmd>    External image tool command (e.g. gimp)
  -debug              Enable debug logging

Examples:
  terrn2conv convert nhelens.terrn
  terrn2conv -material NHelens/TerrainMat convert nhelens.terrn
  terrn2conv inspect nhelens.terrn`)
}

func loadConfig() *config.Config {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	return cfg
}

func cmdConvert(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: terrn2conv convert <file.terrn>")
		os.Exit(1)
	}

	cfg := loadConfig()
	defer logger.Sync()

	res, err := convert.Run(args[0], cfg, logger.Log)
	if err != nil {
		logger.Log.Error("conversion failed", zap.Error(err))
		os.Exit(1)
	}

	fmt.Printf("Created: %s\n", res.Terrn2Path)
	fmt.Printf("Created: %s\n", res.TobjPath)
	if res.OTCPath != "" {
		fmt.Printf("Created: %s\n", res.OTCPath)
	}
	fmt.Printf("Created: %s\n", res.PagePath)
}

func cmdInspect(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: terrn2conv inspect <file.terrn>")
		os.Exit(1)
	}

	cfg := loadConfig()
	defer logger.Sync()

	a, err := convert.Analyze(args[0], cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	s := a.Scene
	fmt.Printf("Scene:          %s\n", s.Name)
	fmt.Printf("Geometry:       %s\n", s.GeometryConfigRef)
	if s.HasWater() {
		fmt.Printf("Water height:   %g\n", *s.WaterHeight)
	} else {
		fmt.Println("Water height:   (none)")
	}
	fmt.Printf("Ambient color:  %s\n", s.AmbientColor)
	fmt.Printf("Start position: %g, %g, %g\n", s.StartPosition[0], s.StartPosition[1], s.StartPosition[2])
	fmt.Printf("Gravity:        %g\n", s.Gravity)
	if s.LanduseConfigRef != "" {
		fmt.Printf("Landuse config: %s\n", s.LanduseConfigRef)
	}
	fmt.Printf("Caelum sky:     %v\n", s.HasCaelumSky)
	for role, name := range s.Authors {
		fmt.Printf("Author:         %s = %s\n", role, name)
	}
	fmt.Printf("Object lines:   %d\n", len(a.Objects))
	fmt.Println()

	if !a.ScriptFound {
		fmt.Printf("Material script not found: %s\n", a.ScriptPath)
		return
	}
	fmt.Printf("Material:       %s\n", a.MaterialName)
	fmt.Printf("Dialect:        %s\n", a.Dialect)
	fmt.Printf("Blend maps:     %d\n", len(a.Layers.BlendMaps))
	for i, layer := range a.Layers.Layers {
		fmt.Printf("  layer %d: %s + %s (%s/%s, alpha %g)\n",
			i, layer.Diffuse, layer.Normal, layer.BlendSource, layer.Channel, layer.Alpha)
	}
}
