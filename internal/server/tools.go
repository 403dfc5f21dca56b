package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

func pathProperty(description string) map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": description,
	}
}

func intProperty(description string) map[string]interface{} {
	return map[string]interface{}{
		"type":        "integer",
		"description": description,
	}
}

var sizeModeProperty = map[string]interface{}{
	"type":        "string",
	"enum":        []string{"strict", "legacy"},
	"description": "How header size fields are computed. 'strict' writes byte-accurate sizes; 'legacy' writes pixel count + 54 to match older output. Default 'strict'",
	"default":     "strict",
}

var colorProperty = map[string]interface{}{
	"type":        "string",
	"description": "Fill color as hex ('#FF0000', '#F00') or a basic name (red, green, blue, white, black, ...). Default black",
}

var scaleProperty = map[string]interface{}{
	"type":        "number",
	"description": "Optional scale factor (e.g., 2.0 to double size). Default 1.0",
	"default":     1.0,
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		// Codec Operations
		{
			Name:        "bmp_create",
			Description: "Create a 24-bit BMP of the given size filled with a solid color and write it to path (created or truncated). Returns the header fields that were written.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path":      pathProperty("Absolute path of the BMP file to write"),
					"width":     intProperty("Width in pixels (>= 0)"),
					"height":    intProperty("Height in pixels (>= 0)"),
					"color":     colorProperty,
					"size_mode": sizeModeProperty,
				},
				"required": []string{"path", "width", "height"},
			},
		},
		{
			Name:        "bmp_fill",
			Description: "Overwrite every pixel of an existing BMP with one color and save it in place. Headers are kept as they are.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path":  pathProperty("Absolute path to the BMP file"),
					"color": colorProperty,
				},
				"required": []string{"path", "color"},
			},
		},
		{
			Name:        "bmp_load",
			Description: "Load a 24-bit BMP and report its header fields, pixel count, on-disk size and whether the size fields are byte-accurate. Malformed files are reported as errors.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty("Absolute path to the BMP file"),
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "bmp_encode",
			Description: "Return the exact encoded bytes of a BMP as base64, together with their length (54 + 3 × pixels).",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty("Absolute path to the BMP file"),
				},
				"required": []string{"path"},
			},
		},

		// Inspection
		{
			Name:        "bmp_sample_color",
			Description: "Get the color at a pixel. (0,0) is the top-left of the picture. Returns hex, RGB and HSL.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty("Absolute path to the BMP file"),
					"x":    intProperty("X coordinate (0-based)"),
					"y":    intProperty("Y coordinate (0-based, 0 = top)"),
				},
				"required": []string{"path", "x", "y"},
			},
		},
		{
			Name:        "bmp_colors",
			Description: "List the distinct pixel colors of a BMP, most frequent first. A freshly filled image has exactly one.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path":  pathProperty("Absolute path to the BMP file"),
					"limit": intProperty("Maximum number of colors to list. Default 10, 0 for all"),
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "bmp_preview",
			Description: "Render a BMP as a base64-encoded PNG so it can be viewed.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path":  pathProperty("Absolute path to the BMP file"),
					"scale": scaleProperty,
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "bmp_crop",
			Description: "Render a rectangular region of a BMP as a base64-encoded PNG.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path":  pathProperty("Absolute path to the BMP file"),
					"x1":    intProperty("Left edge X coordinate (0-based)"),
					"y1":    intProperty("Top edge Y coordinate (0-based)"),
					"x2":    intProperty("Right edge X coordinate (exclusive)"),
					"y2":    intProperty("Bottom edge Y coordinate (exclusive)"),
					"scale": scaleProperty,
				},
				"required": []string{"path", "x1", "y1", "x2", "y2"},
			},
		},
		{
			Name:        "bmp_grid",
			Description: "Render a BMP as PNG with a coordinate grid. Labels use picture coordinates with (0,0) at the top-left, which makes row order easy to check.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path":             pathProperty("Absolute path to the BMP file"),
					"grid_spacing":     intProperty("Pixels between grid lines. Default 50"),
					"show_coordinates": map[string]interface{}{"type": "boolean", "description": "Label grid intersections with x,y. Default true", "default": true},
					"grid_color":       map[string]interface{}{"type": "string", "description": "Grid line color (hex or basic name). Default '#FF0000'"},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "bmp_compare",
			Description: "Compare two BMP files: pixel differences in picture coordinates, header equality and whether the size fields differ (as between strict and legacy output).",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path":  pathProperty("Absolute path to the first BMP file"),
					"other": pathProperty("Absolute path to the second BMP file"),
				},
				"required": []string{"path", "other"},
			},
		},

		// Conversion
		{
			Name:        "bmp_import",
			Description: "Convert a PNG, JPEG or GIF file into a 24-bit BMP written to path. Transparency is dropped.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path":      pathProperty("Absolute path of the BMP file to write"),
					"source":    pathProperty("Absolute path of the PNG, JPEG or GIF file to convert"),
					"size_mode": sizeModeProperty,
				},
				"required": []string{"path", "source"},
			},
		},
		{
			Name:        "bmp_export",
			Description: "Write a BMP as PNG, JPEG or BMP. The format is chosen from the output file extension.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path":    pathProperty("Absolute path to the BMP file"),
					"output":  pathProperty("Absolute path of the file to write (.png, .jpg, .jpeg or .bmp)"),
					"quality": intProperty("JPEG quality 1-100. Default 90"),
				},
				"required": []string{"path", "output"},
			},
		},

		// Batch
		{
			Name:        "bmp_render_jobs",
			Description: "Render every image listed in a YAML jobs file (size mode, output directory, names, sizes, colors, optional size-field expressions).",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"jobs_file": pathProperty("Absolute path to the YAML jobs file"),
				},
				"required": []string{"jobs_file"},
			},
		},
	}
}

// handleToolsList returns the list of available tools
func (s *Server) handleToolsList(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"tools": GetToolDefinitions(),
		},
	}
}
