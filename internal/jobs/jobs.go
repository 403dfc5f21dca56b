// Package jobs renders batches of solid-color BMP files described in YAML.
//
// A jobs file looks like:
//
//	size_mode: legacy
//	output_dir: out
//	images:
//	  - name: red.bmp
//	    width: 2
//	    height: 2
//	    color: "#ff0000"
//	  - name: custom.bmp
//	    width: 4
//	    height: 4
//	    file_size: "header + pixels*3"
//	    image_size: "width*height*3"
//
// file_size and image_size are optional arithmetic expressions that replace
// the header size fields computed by the size mode. They may use the
// variables width, height, pixels and header (54).
package jobs

import (
	"fmt"
	"log"
	"math"
	"os"
	"path/filepath"

	"github.com/knetic/govaluate"
	"gopkg.in/yaml.v2"

	"github.com/ironsheep/bmp-tools-mcp/internal/bmp"
	"github.com/ironsheep/bmp-tools-mcp/internal/imaging"
)

// File is a parsed jobs file.
type File struct {
	SizeMode  string `yaml:"size_mode"`
	OutputDir string `yaml:"output_dir"`
	Images    []Job  `yaml:"images"`

	// dir is the directory of the jobs file; relative output dirs resolve against it.
	dir string
}

// Job describes one image to render.
type Job struct {
	Name      string `yaml:"name"`
	Width     int    `yaml:"width"`
	Height    int    `yaml:"height"`
	Color     string `yaml:"color"`
	SizeMode  string `yaml:"size_mode"` // overrides File.SizeMode
	FileSize  string `yaml:"file_size"`
	ImageSize string `yaml:"image_size"`
}

// Result reports what was written for one job.
type Result struct {
	Name            string `json:"name"`
	Path            string `json:"path"`
	Bytes           int    `json:"bytes"`
	SizeMode        string `json:"size_mode"`
	HeaderFileSize  uint32 `json:"header_file_size"`
	HeaderImageSize uint32 `json:"header_image_size"`
}

// LoadFile reads and validates a jobs file. Unknown keys are rejected.
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read jobs file: %w", err)
	}
	f, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("invalid jobs file %s: %w", path, err)
	}
	f.dir = filepath.Dir(path)
	return f, nil
}

// Parse decodes and validates jobs YAML. Relative output directories are
// resolved against the working directory.
func Parse(data []byte) (*File, error) {
	var f File
	if err := yaml.UnmarshalStrict(data, &f); err != nil {
		return nil, err
	}
	if f.OutputDir == "" {
		f.OutputDir = "."
	}
	if err := f.validate(); err != nil {
		return nil, err
	}
	return &f, nil
}

func (f *File) validate() error {
	if _, err := bmp.ParseSizeMode(f.SizeMode); err != nil {
		return err
	}
	if len(f.Images) == 0 {
		return fmt.Errorf("no images listed")
	}

	seen := make(map[string]bool, len(f.Images))
	for i, j := range f.Images {
		if j.Name == "" {
			return fmt.Errorf("image %d: name is required", i)
		}
		if filepath.Base(j.Name) != j.Name {
			return fmt.Errorf("image %d: name %q must be a plain file name", i, j.Name)
		}
		if seen[j.Name] {
			return fmt.Errorf("image %d: duplicate name %q", i, j.Name)
		}
		seen[j.Name] = true

		if j.Width < 0 || j.Height < 0 {
			return fmt.Errorf("image %s: dimensions %dx%d must not be negative", j.Name, j.Width, j.Height)
		}
		if _, err := bmp.ParseSizeMode(j.SizeMode); err != nil {
			return fmt.Errorf("image %s: %w", j.Name, err)
		}
		if _, err := imaging.ParseColor(j.Color); err != nil {
			return fmt.Errorf("image %s: %w", j.Name, err)
		}
		for _, expr := range []string{j.FileSize, j.ImageSize} {
			if expr == "" {
				continue
			}
			if _, err := govaluate.NewEvaluableExpression(expr); err != nil {
				return fmt.Errorf("image %s: invalid size expression %q: %w", j.Name, expr, err)
			}
		}
	}
	return nil
}

// Dir returns the directory images are written to.
func (f *File) Dir() string {
	if filepath.IsAbs(f.OutputDir) || f.dir == "" {
		return f.OutputDir
	}
	return filepath.Join(f.dir, f.OutputDir)
}

// Run renders every job in order and stops at the first failure, returning
// the results gathered so far.
func Run(f *File) ([]Result, error) {
	dir := f.Dir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output directory %s: %w", dir, err)
	}

	results := make([]Result, 0, len(f.Images))
	for _, j := range f.Images {
		r, err := render(j, f.SizeMode, dir)
		if err != nil {
			return results, fmt.Errorf("image %s: %w", j.Name, err)
		}
		log.Printf("Rendered %s (%dx%d, %d bytes, %s sizes)", r.Path, j.Width, j.Height, r.Bytes, r.SizeMode)
		results = append(results, *r)
	}
	return results, nil
}

func render(j Job, defaultMode, dir string) (*Result, error) {
	modeName := j.SizeMode
	if modeName == "" {
		modeName = defaultMode
	}
	mode, err := bmp.ParseSizeMode(modeName)
	if err != nil {
		return nil, err
	}
	c, err := imaging.ParseColor(j.Color)
	if err != nil {
		return nil, err
	}

	img, err := bmp.NewWithSizing(j.Height, j.Width, mode)
	if err != nil {
		return nil, err
	}
	img.Fill(c.R, c.G, c.B)

	if err := applySizeOverrides(img, j); err != nil {
		return nil, err
	}

	path := filepath.Join(dir, j.Name)
	if err := img.Save(path); err != nil {
		return nil, err
	}

	return &Result{
		Name:            j.Name,
		Path:            path,
		Bytes:           img.EncodedLen(),
		SizeMode:        mode.String(),
		HeaderFileSize:  img.File.Size,
		HeaderImageSize: img.Info.SizeImage,
	}, nil
}

func applySizeOverrides(img *bmp.Image, j Job) error {
	params := map[string]interface{}{
		"width":  float64(img.Width()),
		"height": float64(img.Height()),
		"pixels": float64(len(img.Pixels)),
		"header": float64(bmp.HeaderLen),
	}

	if j.FileSize != "" {
		v, err := evalSize(j.FileSize, params)
		if err != nil {
			return fmt.Errorf("file_size: %w", err)
		}
		img.File.Size = v
	}
	if j.ImageSize != "" {
		v, err := evalSize(j.ImageSize, params)
		if err != nil {
			return fmt.Errorf("image_size: %w", err)
		}
		img.Info.SizeImage = v
	}
	return nil
}

// evalSize evaluates expr and checks that the result is a whole number that
// fits a 32-bit size field.
func evalSize(expr string, params map[string]interface{}) (uint32, error) {
	e, err := govaluate.NewEvaluableExpression(expr)
	if err != nil {
		return 0, fmt.Errorf("invalid expression %q: %w", expr, err)
	}
	out, err := e.Evaluate(params)
	if err != nil {
		return 0, fmt.Errorf("failed to evaluate %q: %w", expr, err)
	}
	v, ok := out.(float64)
	if !ok {
		return 0, fmt.Errorf("expression %q is not numeric (got %T)", expr, out)
	}
	if v < 0 || v > math.MaxUint32 || v != math.Trunc(v) {
		return 0, fmt.Errorf("expression %q = %v does not fit a 32-bit size field", expr, v)
	}
	return uint32(v), nil
}
