package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"image/color"
	"log"

	"github.com/ironsheep/lane-tools-mcp/internal/imaging"
	"github.com/ironsheep/lane-tools-mcp/internal/lane"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "lane_load", "lane_detect_lanes").
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
		if s.debug {
			log.Printf("Tool %s failed: %v", params.Name, err)
		}
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
//  3. Loads the frame from cache as needed
//  4. Calls the detector, renderer or navigator
//  5. Returns the result or error
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	if len(args) == 0 {
		args = json.RawMessage("{}")
	}

	switch name {
	// Frame Information
	case "lane_load":
		return s.handleLaneLoad(args)

	// Detection
	case "lane_edge_detect":
		return s.handleEdgeDetect(args)
	case "lane_detect_segments":
		return s.handleDetectSegments(args)
	case "lane_segment_features":
		return s.handleSegmentFeatures(args)
	case "lane_detect_lanes":
		return s.handleDetectLanes(args)

	// Rendering
	case "lane_draw_segments":
		return s.handleDrawSegments(args)
	case "lane_draw_lanes":
		return s.handleDrawLanes(args)

	// Navigation
	case "lane_recommend_direction":
		return s.handleRecommendDirection(args)

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
// Panics are suppressed; on marshal failure, returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// detectArgs are the arguments shared by every tool that runs detection.
// Omitted arguments select the defaults from lane.DefaultParams; an explicit
// zero is passed through.
type detectArgs struct {
	Path          string   `json:"path"`
	LowThreshold  *float64 `json:"low_threshold"`
	HighThreshold *float64 `json:"high_threshold"`
	ApertureSize  *int     `json:"aperture_size"`
	BlurRadius    float64  `json:"blur_radius"`
	L2Gradient    bool     `json:"l2_gradient"`
	MinLineLength *int     `json:"min_line_length"`
	MaxLineGap    *int     `json:"max_line_gap"`
}

func (a detectArgs) params() lane.Params {
	p := lane.DefaultParams()
	if a.LowThreshold != nil {
		p.LowThreshold = *a.LowThreshold
	}
	if a.HighThreshold != nil {
		p.HighThreshold = *a.HighThreshold
	}
	if a.ApertureSize != nil {
		p.ApertureSize = *a.ApertureSize
	}
	if a.MinLineLength != nil {
		p.MinLineLength = *a.MinLineLength
	}
	if a.MaxLineGap != nil {
		p.MaxLineGap = *a.MaxLineGap
	}
	p.BlurRadius = a.BlurRadius
	p.L2Gradient = a.L2Gradient
	return p
}

// segments runs detection on the cached frame at a.Path.
func (s *Server) segments(a detectArgs) ([]lane.Segment, error) {
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	return s.detector.DetectSegments(img, a.params())
}

func (s *Server) lanes(a detectArgs) (*lane.LaneResult, error) {
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	return s.detector.DetectLanes(img, a.params())
}

// === Frame Information Handlers ===

type laneLoadArgs struct {
	Path string `json:"path"`
}

func (s *Server) handleLaneLoad(args json.RawMessage) (interface{}, error) {
	var a laneLoadArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return imaging.LoadFrameInfo(s.cache, a.Path)
}

// === Detection Handlers ===

// EdgeDetectResult is the edge map of a frame rendered as a PNG.
type EdgeDetectResult struct {
	*imaging.ImageResult
	EdgePixels int    `json:"edge_pixels"`
	Backend    string `json:"backend"`
}

func (s *Server) handleEdgeDetect(args json.RawMessage) (interface{}, error) {
	var a detectArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	edges, err := s.detector.DetectEdges(img, a.params())
	if err != nil {
		return nil, err
	}
	encoded, err := imaging.EncodePNG(edges.Gray())
	if err != nil {
		return nil, err
	}
	return &EdgeDetectResult{
		ImageResult: encoded,
		EdgePixels:  edges.Count(),
		Backend:     s.BackendName(),
	}, nil
}

// SegmentsResult lists detected segments.
type SegmentsResult struct {
	Count    int            `json:"count"`
	Segments []lane.Segment `json:"segments"`
}

func (s *Server) handleDetectSegments(args json.RawMessage) (interface{}, error) {
	var a detectArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	segs, err := s.segments(a)
	if err != nil {
		return nil, err
	}
	return &SegmentsResult{Count: len(segs), Segments: segs}, nil
}

type segmentFeaturesArgs struct {
	Segments []lane.Segment `json:"segments"`
}

// SegmentFeature pairs a segment with its feature. Error is set for vertical
// and horizontal segments.
type SegmentFeature struct {
	Segment lane.Segment `json:"segment"`
	Feature lane.Feature `json:"feature"`
	Error   string       `json:"error,omitempty"`
}

func (s *Server) handleSegmentFeatures(args json.RawMessage) (interface{}, error) {
	var a segmentFeaturesArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if len(a.Segments) == 0 {
		return nil, fmt.Errorf("%w: segments must not be empty", lane.ErrInvalidInput)
	}

	out := make([]SegmentFeature, len(a.Segments))
	for i, seg := range a.Segments {
		f, err := lane.Featurize(seg)
		out[i] = SegmentFeature{Segment: seg, Feature: f}
		if err != nil {
			out[i].Error = err.Error()
		}
	}
	return map[string]interface{}{"features": out}, nil
}

// LanesResult is the lane analysis of one frame.
type LanesResult struct {
	*lane.LaneResult
	SegmentCount int `json:"segment_count"`
	LaneCount    int `json:"lane_count"`
}

func (s *Server) handleDetectLanes(args json.RawMessage) (interface{}, error) {
	var a detectArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	result, err := s.lanes(a)
	if err != nil {
		return nil, err
	}
	return &LanesResult{
		LaneResult:   result,
		SegmentCount: len(result.Segments),
		LaneCount:    len(result.Lanes),
	}, nil
}

// === Rendering Handlers ===

// RenderResult is an annotated frame. Requested counts the segments asked
// for; Drawn counts those that were visible in the frame.
type RenderResult struct {
	*imaging.ImageResult
	Requested int    `json:"requested"`
	Drawn     int    `json:"drawn"`
	Color     string `json:"color,omitempty"`
}

type drawSegmentsArgs struct {
	detectArgs
	Segments []lane.Segment `json:"segments"`
	Color    string         `json:"color"`
}

func (s *Server) handleDrawSegments(args json.RawMessage) (interface{}, error) {
	var a drawSegmentsArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}

	var c color.Color = lane.SegmentColor
	if a.Color != "" {
		rgba, err := imaging.ParseHexColor(a.Color)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", lane.ErrInvalidInput, err)
		}
		c = rgba
	}

	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}

	segs := a.Segments
	if segs == nil {
		segs, err = s.detector.DetectSegments(img, a.params())
		if err != nil {
			return nil, err
		}
	}

	frame := imaging.CloneFrame(img)
	drawn, err := s.detector.DrawSegments(frame, segs, c)
	if err != nil {
		return nil, err
	}
	encoded, err := imaging.EncodePNG(frame)
	if err != nil {
		return nil, err
	}
	return &RenderResult{
		ImageResult: encoded,
		Requested:   len(segs),
		Drawn:       drawn,
		Color:       imaging.HexString(c),
	}, nil
}

type drawLanesArgs struct {
	detectArgs
	Seed int64 `json:"seed"`
}

func (s *Server) handleDrawLanes(args json.RawMessage) (interface{}, error) {
	var a drawLanesArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	result, err := s.detector.DetectLanes(img, a.params())
	if err != nil {
		return nil, err
	}

	frame := imaging.CloneFrame(img)
	var drawn int
	if a.Seed != 0 {
		r := lane.NewRenderer(s.detector.Backend().Drawer, a.Seed)
		drawn, err = r.DrawLanes(frame, result.Lanes)
	} else {
		drawn, err = s.detector.DrawLanes(frame, result.Lanes)
	}
	if err != nil {
		return nil, err
	}

	requested := 0
	for _, pair := range result.Lanes {
		requested += len(pair.Members)
	}
	encoded, err := imaging.EncodePNG(frame)
	if err != nil {
		return nil, err
	}
	return &RenderResult{ImageResult: encoded, Requested: requested, Drawn: drawn}, nil
}

// === Navigation Handlers ===

// DirectionResult is a steering recommendation for one frame.
type DirectionResult struct {
	Center    lane.LaneCenter `json:"center"`
	Direction lane.Direction  `json:"direction"`
}

func (s *Server) handleRecommendDirection(args json.RawMessage) (interface{}, error) {
	var a detectArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	result, err := s.lanes(a)
	if err != nil {
		return nil, err
	}
	center, dir, err := s.navigator.Navigate(result.Lanes)
	if err != nil {
		if errors.Is(err, lane.ErrUnimplemented) {
			return nil, fmt.Errorf("lane navigation is not available: %w", err)
		}
		return nil, err
	}
	return &DirectionResult{Center: center, Direction: dir}, nil
}
