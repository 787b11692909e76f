package config

import "flag"

var (
	flagConfig    = flag.String("config", "", "Path to config file")
	flagDebug     = flag.Bool("debug", false, "Enable debug logging")
	flagOutput    = flag.String("output", "", "Output directory (default: next to input)")
	flagMaterial  = flag.String("material", "", "Material block name override")
	flagScript    = flag.String("script", "", "Material script path override")
	flagResources = flag.String("resources", "", "Default texture resource directory")
	flagImageTool = flag.String("imagetool", "", "External image tool command (e.g. gimp)")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via -config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagOutput != "" {
		cfg.Output.Dir = *flagOutput
	}
	if *flagMaterial != "" {
		cfg.Material.Name = *flagMaterial
	}
	if *flagScript != "" {
		cfg.Material.ScriptPath = *flagScript
	}
	if *flagResources != "" {
		cfg.Resources.Dir = *flagResources
	}
	if *flagImageTool != "" {
		cfg.ImageTool.Command = *flagImageTool
	}
}
