package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

func pathProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": "Absolute path to the frame image file",
	}
}

// edgeProperties are the edge detection arguments.
func edgeProperties() map[string]interface{} {
	return map[string]interface{}{
		"path": pathProperty(),
		"low_threshold": map[string]interface{}{
			"type":        "number",
			"description": "Low hysteresis threshold for Canny edge detection (default 50)",
			"default":     50,
		},
		"high_threshold": map[string]interface{}{
			"type":        "number",
			"description": "High hysteresis threshold for Canny edge detection (default 150)",
			"default":     150,
		},
		"aperture_size": map[string]interface{}{
			"type":        "integer",
			"description": "Sobel aperture size: 3, 5 or 7 (default 3)",
			"enum":        []int{3, 5, 7},
			"default":     3,
		},
		"blur_radius": map[string]interface{}{
			"type":        "number",
			"description": "Optional Gaussian pre-blur radius (default 0, no blur)",
			"default":     0,
		},
		"l2_gradient": map[string]interface{}{
			"type":        "boolean",
			"description": "Use the L2 gradient norm instead of |Gx|+|Gy| (default false)",
			"default":     false,
		},
	}
}

// detectProperties are edgeProperties plus the segment extraction arguments.
func detectProperties() map[string]interface{} {
	props := edgeProperties()
	props["min_line_length"] = map[string]interface{}{
		"type":        "integer",
		"description": "Minimum segment length in pixels (default 100)",
		"default":     100,
	}
	props["max_line_gap"] = map[string]interface{}{
		"type":        "integer",
		"description": "Maximum gap in pixels bridged between collinear fragments (default 10)",
		"default":     10,
	}
	return props
}

func segmentArraySchema(description string) map[string]interface{} {
	return map[string]interface{}{
		"type": "array",
		"items": map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"x1": map[string]interface{}{"type": "integer"},
				"y1": map[string]interface{}{"type": "integer"},
				"x2": map[string]interface{}{"type": "integer"},
				"y2": map[string]interface{}{"type": "integer"},
			},
			"required": []string{"x1", "y1", "x2", "y2"},
		},
		"description": description,
	}
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	drawSegmentsProps := detectProperties()
	drawSegmentsProps["segments"] = segmentArraySchema("Segments to draw. When omitted, segments are detected on the frame first.")
	drawSegmentsProps["color"] = map[string]interface{}{
		"type":        "string",
		"description": "Line color as hex (e.g., \"#00FF00\"). Default green",
		"default":     "#00FF00",
	}

	drawLanesProps := detectProperties()
	drawLanesProps["seed"] = map[string]interface{}{
		"type":        "integer",
		"description": "Optional seed for the per-lane random colors",
	}

	return []Tool{
		// Frame Information
		{
			Name:        "lane_load",
			Description: "Load a road frame and return its dimensions, format and channel count. The frame is cached for subsequent calls.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
				},
				"required": []string{"path"},
			},
		},

		// Detection
		{
			Name:        "lane_edge_detect",
			Description: "Run Canny edge detection on a frame and return the binary edge map as base64-encoded PNG.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": edgeProperties(),
				"required":   []string{"path"},
			},
		},
		{
			Name:        "lane_detect_segments",
			Description: "Detect straight line segments in a frame using edge detection and the probabilistic Hough transform. An empty list means no segments met the length and gap thresholds.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": detectProperties(),
				"required":   []string{"path"},
			},
		},
		{
			Name:        "lane_segment_features",
			Description: "Compute the slope and x-intercept (where the extended line crosses y = 0) of each segment. Vertical and horizontal segments are marked instead of producing infinite values.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"segments": segmentArraySchema("Segments to featurize (must not be empty)"),
				},
				"required": []string{"segments"},
			},
		},
		{
			Name:        "lane_detect_lanes",
			Description: "Detect segments, sort them by slope and group neighbors into lane pairs. The last pair has a single member when the count is odd. Pairing is a heuristic with no geometric validation. Vertical segments are reported as excluded.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": detectProperties(),
				"required":   []string{"path"},
			},
		},

		// Rendering
		{
			Name:        "lane_draw_segments",
			Description: "Draw line segments onto a copy of the frame (2 px wide) and return it as base64-encoded PNG.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": drawSegmentsProps,
				"required":   []string{"path"},
			},
		},
		{
			Name:        "lane_draw_lanes",
			Description: "Detect lane pairs and draw each pair onto a copy of the frame in its own random color. Returns base64-encoded PNG.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": drawLanesProps,
				"required":   []string{"path"},
			},
		},

		// Navigation
		{
			Name:        "lane_recommend_direction",
			Description: "Pick the lane closest to the camera and recommend left, right or forward. Requires a navigation strategy; without one the call fails with an unimplemented error.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": detectProperties(),
				"required":   []string{"path"},
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
