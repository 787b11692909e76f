// Package config handles converter configuration loading and management.
package config

// Config holds all converter settings.
type Config struct {
	Output    OutputConfig    `yaml:"output"`
	Material  MaterialConfig  `yaml:"material"`
	Resources ResourcesConfig `yaml:"resources"`
	ImageTool ImageToolConfig `yaml:"image_tool"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// OutputConfig holds destination settings.
type OutputConfig struct {
	// Dir is where converted files are written. Empty means next to the
	// input scene file.
	Dir string `yaml:"dir"`
}

// MaterialConfig holds material script settings.
type MaterialConfig struct {
	// Name overrides the material block looked up in the script. Empty
	// means the terrain name from the scene header.
	Name string `yaml:"name"`
	// ScriptPath overrides the material script location. Empty means
	// "<terrain>.material" next to the input scene file.
	ScriptPath string `yaml:"script_path"`
}

// ResourcesConfig holds fallback asset settings used when a material cannot
// be resolved or a layer references the synthetic flat normal map.
type ResourcesConfig struct {
	Dir           string `yaml:"dir"`            // directory holding default textures
	BaseDiffuse   string `yaml:"base_diffuse"`   // synthetic base layer texture
	DetailDiffuse string `yaml:"detail_diffuse"` // synthetic detail layer texture
	DefaultBlend  string `yaml:"default_blend"`  // synthetic blend map
}

// ImageToolConfig holds settings for the external raster tool used to add
// alpha channels to blend maps and convert compressed textures.
type ImageToolConfig struct {
	// Command is the tool binary ("gimp"). Empty disables tool invocation.
	Command string `yaml:"command"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Resources: ResourcesConfig{
			BaseDiffuse:   "adt_grass.dds",
			DetailDiffuse: "adt_detail.dds",
			DefaultBlend:  "blendmap_default.png",
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
