package jobs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ironsheep/bmp-tools-mcp/internal/bmp"
)

func writeJobs(t *testing.T, yml string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "jobs.yaml")
	require.NoError(t, os.WriteFile(path, []byte(yml), 0o644))
	return path
}

func TestLoadFile_Defaults(t *testing.T) {
	path := writeJobs(t, `
images:
  - name: black.bmp
    width: 3
    height: 2
`)
	f, err := LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, "", f.SizeMode)
	assert.Equal(t, ".", f.OutputDir)
	assert.Equal(t, filepath.Dir(path), f.Dir())
	require.Len(t, f.Images, 1)
	assert.Equal(t, Job{Name: "black.bmp", Width: 3, Height: 2}, f.Images[0])
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		yml  string
	}{
		{"unknown key", "images:\n  - name: a.bmp\n    depth: 32\n"},
		{"no images", "size_mode: strict\n"},
		{"bad size mode", "size_mode: exact\nimages:\n  - name: a.bmp\n"},
		{"bad job size mode", "images:\n  - name: a.bmp\n    size_mode: loose\n"},
		{"missing name", "images:\n  - width: 2\n"},
		{"path in name", "images:\n  - name: ../a.bmp\n"},
		{"duplicate name", "images:\n  - name: a.bmp\n  - name: a.bmp\n"},
		{"negative width", "images:\n  - name: a.bmp\n    width: -2\n"},
		{"bad color", "images:\n  - name: a.bmp\n    color: '#zzzzzz'\n"},
		{"bad expression", "images:\n  - name: a.bmp\n    file_size: 'width * ('\n"},
		{"not yaml", "images: [\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yml))
			assert.Error(t, err)
		})
	}
}

func TestLoadFile_Missing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestRun(t *testing.T) {
	path := writeJobs(t, `
size_mode: legacy
output_dir: out
images:
  - name: red.bmp
    width: 2
    height: 2
    color: "#ff0000"
  - name: strict.bmp
    width: 2
    height: 2
    color: blue
    size_mode: strict
  - name: custom.bmp
    width: 4
    height: 1
    file_size: "header + pixels*3"
    image_size: "width*height*3"
`)
	f, err := LoadFile(path)
	require.NoError(t, err)

	results, err := Run(f)
	require.NoError(t, err)
	require.Len(t, results, 3)

	outDir := filepath.Join(filepath.Dir(path), "out")

	assert.Equal(t, Result{
		Name:            "red.bmp",
		Path:            filepath.Join(outDir, "red.bmp"),
		Bytes:           66,
		SizeMode:        "legacy",
		HeaderFileSize:  58,
		HeaderImageSize: 58,
	}, results[0])

	red, err := bmp.Load(results[0].Path)
	require.NoError(t, err)
	for _, p := range red.Pixels {
		assert.Equal(t, bmp.Pixel{Red: 255}, p)
	}

	assert.Equal(t, "strict", results[1].SizeMode)
	assert.Equal(t, uint32(66), results[1].HeaderFileSize)
	assert.Equal(t, uint32(12), results[1].HeaderImageSize)

	// Legacy mode, but the expressions restore byte-accurate fields.
	custom, err := bmp.Load(results[2].Path)
	require.NoError(t, err)
	assert.True(t, custom.SizesConsistent())
	assert.Equal(t, uint32(54+12), custom.File.Size)
}

func TestRun_StopsOnFailure(t *testing.T) {
	f, err := Parse([]byte(`
images:
  - name: ok.bmp
    width: 1
    height: 1
  - name: bad.bmp
    width: 1
    height: 1
    file_size: "pixels - 100"
`))
	require.NoError(t, err)
	f.OutputDir = t.TempDir()

	results, err := Run(f)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad.bmp")
	assert.Len(t, results, 1)

	_, statErr := os.Stat(filepath.Join(f.OutputDir, "bad.bmp"))
	assert.ErrorIs(t, statErr, os.ErrNotExist)
}

func TestEvalSize(t *testing.T) {
	params := map[string]interface{}{
		"width":  float64(3),
		"height": float64(2),
		"pixels": float64(6),
		"header": float64(54),
	}

	tests := []struct {
		expr    string
		want    uint32
		wantErr bool
	}{
		{"width*height + 54", 60, false},
		{"header + pixels*3", 72, false},
		{"0", 0, false},
		{"pixels / 4", 0, true},
		{"pixels - 7", 0, true},
		{"4294967296", 0, true},
		{"width > 2", 0, true},
		{"depth * 2", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			got, err := evalSize(tt.expr, params)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
