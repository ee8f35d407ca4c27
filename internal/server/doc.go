// Package server implements the MCP (Model Context Protocol) server for lane detection tools.
//
// This package provides a JSON-RPC 2.0 server that exposes the lane detection
// chain through the MCP protocol, so MCP-compatible clients can inspect road
// frames step by step: edges, segments, slope features, lane pairs and
// annotated overlays.
//
// # Protocol
//
// The server communicates over stdio using JSON-RPC 2.0:
//   - Input: JSON-RPC requests on stdin (one per line)
//   - Output: JSON-RPC responses on stdout
//
// Supported MCP methods:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// # Available Tools
//
// Frame Information:
//   - lane_load: Load a frame and get metadata
//
// Detection:
//   - lane_edge_detect: Canny edge map as PNG
//   - lane_detect_segments: Probabilistic Hough line segments
//   - lane_segment_features: Slope and x-intercept per segment
//   - lane_detect_lanes: Slope-sorted lane pairs
//
// Rendering:
//   - lane_draw_segments: Draw segments onto the frame
//   - lane_draw_lanes: Draw each lane pair in its own color
//
// Navigation:
//   - lane_recommend_direction: Steering recommendation (fails unless a
//     navigation strategy is configured with WithNavigator)
//
// # Backends
//
// Detection runs on a lane.Backend chosen with WithBackend. The default is the
// pure Go backend; the OpenCV one comes from internal/opencv.
//
// # Image Caching
//
// The server maintains an in-memory cache of loaded frames keyed by path.
// Rendering tools draw on a copy, so cached frames are never modified.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure) or standard JSON-RPC codes
//   - message: Human-readable error description
//   - data: The Go error string, e.g. "invalid input: ..." or
//     "degenerate geometry: ..."
//
// # Usage
//
//	srv := server.New(server.WithBackend(lane.DefaultBackend()))
//	if err := srv.Run(); err != nil {
//	    log.Fatal(err)
//	}
package server
