package server

import (
	"encoding/base64"
	"encoding/json"
	"fmt"

	"github.com/ironsheep/bmp-tools-mcp/internal/bmp"
	"github.com/ironsheep/bmp-tools-mcp/internal/imaging"
	"github.com/ironsheep/bmp-tools-mcp/internal/jobs"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "bmp_create", "bmp_load").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// handleToolsCall processes a tools/call request and executes the specified tool.
//
// The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
//
// Tool execution errors return a JSON-RPC error response with code -32000.
func (s *Server) handleToolsCall(req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	result, err := s.executeTool(params.Name, params.Arguments)
	if err != nil {
		return s.errorResponse(req.ID, -32000, "Tool execution failed", err.Error())
	}

	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"content": []map[string]interface{}{
				{
					"type": "text",
					"text": mustMarshalJSON(result),
				},
			},
		},
	}
}

// executeTool dispatches tool execution to the appropriate handler function.
//
// Each tool handler:
//  1. Unmarshals arguments from JSON
//  2. Applies default values for optional parameters
//  3. Loads images through the cache as needed
//  4. Calls the bmp/imaging/jobs function
//  5. Keeps the cache in step with any file it rewrote
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	switch name {
	// Codec Operations
	case "bmp_create":
		return s.handleBMPCreate(args)
	case "bmp_fill":
		return s.handleBMPFill(args)
	case "bmp_load":
		return s.handleBMPLoad(args)
	case "bmp_encode":
		return s.handleBMPEncode(args)

	// Inspection
	case "bmp_sample_color":
		return s.handleBMPSampleColor(args)
	case "bmp_colors":
		return s.handleBMPColors(args)
	case "bmp_preview":
		return s.handleBMPPreview(args)
	case "bmp_crop":
		return s.handleBMPCrop(args)
	case "bmp_grid":
		return s.handleBMPGrid(args)
	case "bmp_compare":
		return s.handleBMPCompare(args)

	// Conversion
	case "bmp_import":
		return s.handleBMPImport(args)
	case "bmp_export":
		return s.handleBMPExport(args)

	// Batch
	case "bmp_render_jobs":
		return s.handleBMPRenderJobs(args)

	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// errorResponse creates a JSON-RPC error response with the given details.
func (s *Server) errorResponse(id interface{}, code int, message, data string) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error: &MCPError{
			Code:    code,
			Message: message,
			Data:    data,
		},
	}
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// On marshal failure, returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// writtenResult reports a file a tool has just written.
type writtenResult struct {
	Path string `json:"path"`
	*imaging.ImageInfo
}

// === Codec Operation Handlers ===

type bmpCreateArgs struct {
	Path     string `json:"path"`
	Width    int    `json:"width"`
	Height   int    `json:"height"`
	Color    string `json:"color"`
	SizeMode string `json:"size_mode"`
}

func (s *Server) handleBMPCreate(args json.RawMessage) (interface{}, error) {
	var a bmpCreateArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Path == "" {
		return nil, fmt.Errorf("path is required")
	}
	mode, err := bmp.ParseSizeMode(a.SizeMode)
	if err != nil {
		return nil, err
	}
	c, err := imaging.ParseColor(a.Color)
	if err != nil {
		return nil, err
	}

	img, err := bmp.NewWithSizing(a.Height, a.Width, mode)
	if err != nil {
		return nil, err
	}
	img.Fill(c.R, c.G, c.B)
	if err := img.Save(a.Path); err != nil {
		return nil, err
	}
	s.cache.Store(a.Path, img)

	return &writtenResult{Path: a.Path, ImageInfo: imaging.Describe(img)}, nil
}

type bmpFillArgs struct {
	Path  string `json:"path"`
	Color string `json:"color"`
}

func (s *Server) handleBMPFill(args json.RawMessage) (interface{}, error) {
	var a bmpFillArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	c, err := imaging.ParseColor(a.Color)
	if err != nil {
		return nil, err
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}

	// Fill a copy so a failed save leaves the cached image untouched.
	filled := *img
	filled.Pixels = make([]bmp.Pixel, len(img.Pixels))
	filled.Fill(c.R, c.G, c.B)
	if err := filled.Save(a.Path); err != nil {
		return nil, err
	}
	s.cache.Store(a.Path, &filled)

	return &writtenResult{Path: a.Path, ImageInfo: imaging.Describe(&filled)}, nil
}

type bmpPathArgs struct {
	Path string `json:"path"`
}

func (s *Server) handleBMPLoad(args json.RawMessage) (interface{}, error) {
	var a bmpPathArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	// Always re-read so the report reflects the file, not an older cached copy.
	s.cache.Evict(a.Path)
	return imaging.LoadImageInfo(s.cache, a.Path)
}

type bmpEncodeResult struct {
	Length      int    `json:"length"`
	BytesBase64 string `json:"bytes_base64"`
	MimeType    string `json:"mime_type"`
}

func (s *Server) handleBMPEncode(args json.RawMessage) (interface{}, error) {
	var a bmpPathArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	data := img.Bytes()
	return &bmpEncodeResult{
		Length:      len(data),
		BytesBase64: base64.StdEncoding.EncodeToString(data),
		MimeType:    "image/bmp",
	}, nil
}

// === Inspection Handlers ===

type bmpSampleColorArgs struct {
	Path string `json:"path"`
	X    int    `json:"x"`
	Y    int    `json:"y"`
}

func (s *Server) handleBMPSampleColor(args json.RawMessage) (interface{}, error) {
	var a bmpSampleColorArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	return imaging.SampleColor(img, a.X, a.Y)
}

type bmpColorsArgs struct {
	Path  string `json:"path"`
	Limit *int   `json:"limit"`
}

func (s *Server) handleBMPColors(args json.RawMessage) (interface{}, error) {
	var a bmpColorsArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	limit := 10
	if a.Limit != nil {
		limit = *a.Limit
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	return imaging.CountColors(img, limit), nil
}

type bmpPreviewArgs struct {
	Path  string  `json:"path"`
	Scale float64 `json:"scale"`
}

func (s *Server) handleBMPPreview(args json.RawMessage) (interface{}, error) {
	var a bmpPreviewArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Scale == 0 {
		a.Scale = 1.0
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	return imaging.Preview(img, a.Scale)
}

type bmpCropArgs struct {
	Path  string  `json:"path"`
	X1    int     `json:"x1"`
	Y1    int     `json:"y1"`
	X2    int     `json:"x2"`
	Y2    int     `json:"y2"`
	Scale float64 `json:"scale"`
}

func (s *Server) handleBMPCrop(args json.RawMessage) (interface{}, error) {
	var a bmpCropArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Scale == 0 {
		a.Scale = 1.0
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	return imaging.Crop(img, a.X1, a.Y1, a.X2, a.Y2, a.Scale)
}

type bmpGridArgs struct {
	Path            string `json:"path"`
	GridSpacing     int    `json:"grid_spacing"`
	ShowCoordinates *bool  `json:"show_coordinates"`
	GridColor       string `json:"grid_color"`
}

func (s *Server) handleBMPGrid(args json.RawMessage) (interface{}, error) {
	var a bmpGridArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.GridSpacing == 0 {
		a.GridSpacing = 50
	}
	showCoords := true
	if a.ShowCoordinates != nil {
		showCoords = *a.ShowCoordinates
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	return imaging.Grid(img, a.GridSpacing, showCoords, a.GridColor)
}

type bmpCompareArgs struct {
	Path  string `json:"path"`
	Other string `json:"other"`
}

func (s *Server) handleBMPCompare(args json.RawMessage) (interface{}, error) {
	var a bmpCompareArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	img1, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	img2, err := s.cache.Load(a.Other)
	if err != nil {
		return nil, err
	}
	return imaging.Compare(img1, img2), nil
}

// === Conversion Handlers ===

type bmpImportArgs struct {
	Path     string `json:"path"`
	Source   string `json:"source"`
	SizeMode string `json:"size_mode"`
}

func (s *Server) handleBMPImport(args json.RawMessage) (interface{}, error) {
	var a bmpImportArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Path == "" || a.Source == "" {
		return nil, fmt.Errorf("path and source are required")
	}
	mode, err := bmp.ParseSizeMode(a.SizeMode)
	if err != nil {
		return nil, err
	}
	img, err := imaging.Import(a.Source, mode)
	if err != nil {
		return nil, err
	}
	if err := img.Save(a.Path); err != nil {
		return nil, err
	}
	s.cache.Store(a.Path, img)

	return &writtenResult{Path: a.Path, ImageInfo: imaging.Describe(img)}, nil
}

type bmpExportArgs struct {
	Path    string `json:"path"`
	Output  string `json:"output"`
	Quality int    `json:"quality"`
}

type bmpExportResult struct {
	Output string `json:"output"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

func (s *Server) handleBMPExport(args json.RawMessage) (interface{}, error) {
	var a bmpExportArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	if err := imaging.Export(img, a.Output, a.Quality); err != nil {
		return nil, err
	}
	s.cache.Evict(a.Output)
	return &bmpExportResult{Output: a.Output, Width: img.Width(), Height: img.Height()}, nil
}

// === Batch Handlers ===

type bmpRenderJobsArgs struct {
	JobsFile string `json:"jobs_file"`
}

type bmpRenderJobsResult struct {
	Rendered int           `json:"rendered"`
	Images   []jobs.Result `json:"images"`
}

func (s *Server) handleBMPRenderJobs(args json.RawMessage) (interface{}, error) {
	var a bmpRenderJobsArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	f, err := jobs.LoadFile(a.JobsFile)
	if err != nil {
		return nil, err
	}
	results, err := jobs.Run(f)
	for _, r := range results {
		s.cache.Evict(r.Path)
	}
	if err != nil {
		return nil, err
	}
	return &bmpRenderJobsResult{Rendered: len(results), Images: results}, nil
}
