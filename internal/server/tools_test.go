package server

import (
	"testing"
)

var laneToolNames = []string{
	"lane_load",
	"lane_edge_detect",
	"lane_detect_segments",
	"lane_segment_features",
	"lane_detect_lanes",
	"lane_draw_segments",
	"lane_draw_lanes",
	"lane_recommend_direction",
}

func toolByName(t *testing.T, name string) Tool {
	t.Helper()
	for _, tool := range GetToolDefinitions() {
		if tool.Name == name {
			return tool
		}
	}
	t.Fatalf("tool %s not found", name)
	return Tool{}
}

func TestGetToolDefinitions(t *testing.T) {
	tools := GetToolDefinitions()

	if len(tools) != len(laneToolNames) {
		t.Fatalf("tool count: got %d, want %d", len(tools), len(laneToolNames))
	}

	toolMap := make(map[string]Tool)
	for _, tool := range tools {
		if _, dup := toolMap[tool.Name]; dup {
			t.Errorf("duplicate tool %s", tool.Name)
		}
		toolMap[tool.Name] = tool
	}

	for _, name := range laneToolNames {
		if _, ok := toolMap[name]; !ok {
			t.Errorf("Expected tool %s not found", name)
		}
	}
}

func TestToolDefinitions_Structure(t *testing.T) {
	tools := GetToolDefinitions()

	for _, tool := range tools {
		t.Run(tool.Name, func(t *testing.T) {
			if tool.Description == "" {
				t.Error("Tool description is empty")
			}

			schemaType, ok := tool.InputSchema["type"]
			if !ok {
				t.Error("InputSchema missing 'type' field")
			}
			if schemaType != "object" {
				t.Errorf("InputSchema type: got %v, want 'object'", schemaType)
			}

			props, ok := tool.InputSchema["properties"].(map[string]interface{})
			if !ok || props == nil {
				t.Fatal("InputSchema properties should be a map")
			}

			// Every required parameter must be declared.
			required, ok := tool.InputSchema["required"].([]string)
			if !ok {
				t.Fatal("'required' should be a string slice")
			}
			for _, r := range required {
				if _, ok := props[r]; !ok {
					t.Errorf("required parameter %s has no property", r)
				}
			}
		})
	}
}

func TestToolDefinitions_RequiredPath(t *testing.T) {
	for _, name := range laneToolNames {
		if name == "lane_segment_features" {
			continue
		}
		t.Run(name, func(t *testing.T) {
			required := toolByName(t, name).InputSchema["required"].([]string)
			hasPath := false
			for _, r := range required {
				if r == "path" {
					hasPath = true
					break
				}
			}
			if !hasPath {
				t.Error("Tool should require 'path' parameter")
			}
		})
	}

	required := toolByName(t, "lane_segment_features").InputSchema["required"].([]string)
	if len(required) != 1 || required[0] != "segments" {
		t.Errorf("lane_segment_features required: got %v, want [segments]", required)
	}
}

func TestToolDefinitions_ApertureEnum(t *testing.T) {
	props := toolByName(t, "lane_edge_detect").InputSchema["properties"].(map[string]interface{})
	aperture, ok := props["aperture_size"].(map[string]interface{})
	if !ok {
		t.Fatal("aperture_size property should exist and be a map")
	}
	enum, ok := aperture["enum"].([]int)
	if !ok || len(enum) != 3 || enum[0] != 3 || enum[1] != 5 || enum[2] != 7 {
		t.Errorf("aperture_size enum: got %v, want [3 5 7]", aperture["enum"])
	}
}

func TestToolDefinitions_OptionalDefaults(t *testing.T) {
	detectDefaults := map[string]interface{}{
		"low_threshold":   50,
		"high_threshold":  150,
		"aperture_size":   3,
		"min_line_length": 100,
		"max_line_gap":    10,
	}
	toolDefaults := map[string]map[string]interface{}{
		"lane_edge_detect":         {"low_threshold": 50, "high_threshold": 150, "aperture_size": 3, "l2_gradient": false},
		"lane_detect_segments":     detectDefaults,
		"lane_detect_lanes":        detectDefaults,
		"lane_draw_lanes":          detectDefaults,
		"lane_recommend_direction": detectDefaults,
		"lane_draw_segments":       {"color": "#00FF00", "min_line_length": 100},
	}

	for toolName, expectedDefaults := range toolDefaults {
		props, ok := toolByName(t, toolName).InputSchema["properties"].(map[string]interface{})
		if !ok {
			t.Errorf("%s: properties should be a map", toolName)
			continue
		}

		for paramName, expectedDefault := range expectedDefaults {
			param, ok := props[paramName].(map[string]interface{})
			if !ok {
				t.Errorf("%s.%s: parameter not found or not a map", toolName, paramName)
				continue
			}

			actualDefault, ok := param["default"]
			if !ok {
				t.Errorf("%s.%s: missing default value", toolName, paramName)
				continue
			}

			if actualDefault != expectedDefault {
				t.Errorf("%s.%s: default got %v, want %v", toolName, paramName, actualDefault, expectedDefault)
			}
		}
	}
}

func TestHandleToolsList(t *testing.T) {
	s := New()
	req := &MCPRequest{
		JSONRPC: "2.0",
		ID:      1,
	}

	resp := s.handleToolsList(req)

	if resp == nil {
		t.Fatal("handleToolsList returned nil")
	}
	if resp.Error != nil {
		t.Fatalf("Unexpected error: %v", resp.Error)
	}

	result, ok := resp.Result.(map[string]interface{})
	if !ok {
		t.Fatal("Result should be a map")
	}

	toolsList, ok := result["tools"].([]Tool)
	if !ok {
		t.Fatal("tools should be a slice of Tool")
	}

	if len(toolsList) != len(GetToolDefinitions()) {
		t.Errorf("Tool count: got %d, want %d", len(toolsList), len(GetToolDefinitions()))
	}
}
