// Package imagetool wraps the external raster tool used to post-process
// textures: adding alpha channels to blend maps and converting compressed
// DDS textures. The converter core never touches pixel data itself.
package imagetool

import (
	"fmt"
	"os/exec"

	"go.uber.org/zap"
)

// Tool performs raster operations on texture files. Implementations may be
// long-running; calls are synchronous.
type Tool interface {
	// AddAlphaChannel rewrites the image in place with an alpha channel.
	AddAlphaChannel(path string) error
	// ConvertToPNG converts a compressed texture to PNG next to the source.
	ConvertToPNG(src, dst string) error
}

// New returns a Tool for the configured command. An empty command yields a
// no-op tool so callers never need a nil check.
func New(command string, log *zap.Logger) Tool {
	if command == "" {
		return NoOp{}
	}
	return &GIMP{Command: command, Log: log}
}

// NoOp is a Tool that does nothing. Used when no external tool is
// configured; the emitted files still reference the untouched textures.
type NoOp struct{}

// AddAlphaChannel implements Tool.
func (NoOp) AddAlphaChannel(string) error { return nil }

// ConvertToPNG implements Tool.
func (NoOp) ConvertToPNG(string, string) error { return nil }

// GIMP invokes a GIMP binary in batch mode.
type GIMP struct {
	Command string
	Log     *zap.Logger
}

// AddAlphaChannel implements Tool using a script-fu batch.
func (g *GIMP) AddAlphaChannel(path string) error {
	script := fmt.Sprintf(
		`(let* ((image (car (gimp-file-load RUN-NONINTERACTIVE %[1]q %[1]q)))`+
			` (drawable (car (gimp-image-get-active-drawable image))))`+
			` (gimp-image-set-active-layer image drawable)`+
			` (gimp-image-convert-rgb image)`+
			` (gimp-image-flatten image)`+
			` (gimp-image-set-active-layer image (car (gimp-image-get-active-layer image)))`+
			` (gimp-layer-add-alpha (car (gimp-image-get-active-layer image)))`+
			` (gimp-file-save RUN-NONINTERACTIVE image (car (gimp-image-get-active-drawable image)) %[1]q %[1]q)`+
			` (gimp-image-delete image))`, path)
	return g.runBatch(script)
}

// ConvertToPNG implements Tool using a script-fu batch.
func (g *GIMP) ConvertToPNG(src, dst string) error {
	script := fmt.Sprintf(
		`(let* ((image (car (gimp-file-load RUN-NONINTERACTIVE %[1]q %[1]q))))`+
			` (gimp-image-flatten image)`+
			` (file-png-save RUN-NONINTERACTIVE image (car (gimp-image-get-active-drawable image)) %[2]q %[2]q 0 9 1 1 1 1 1)`+
			` (gimp-image-delete image))`, src, dst)
	return g.runBatch(script)
}

// runBatch runs one script-fu batch invocation and waits for it.
func (g *GIMP) runBatch(script string) error {
	cmd := exec.Command(g.Command, "-i", "-b", script, "-b", "(gimp-quit 0)")

	out, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("image tool %s: %w (output: %s)", g.Command, err, out)
	}
	if g.Log != nil {
		g.Log.Debug("image tool batch finished", zap.String("command", g.Command))
	}
	return nil
}
