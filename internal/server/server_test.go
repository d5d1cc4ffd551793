package server

import (
	"encoding/json"
	"testing"
)

func TestHandleRequest_Initialize(t *testing.T) {
	s := New("test")
	resp := s.handleRequest(&Request{JSONRPC: "2.0", ID: 1, Method: "initialize"})
	if resp == nil || resp.Error != nil {
		t.Fatalf("initialize failed: %+v", resp)
	}
	result := resp.Result.(map[string]interface{})
	info := result["serverInfo"].(map[string]interface{})
	if info["name"] != "region-bridge" {
		t.Errorf("server name: got %v", info["name"])
	}
	if info["version"] != "test" {
		t.Errorf("server version: got %v", info["version"])
	}
}

func TestHandleRequest_Ping(t *testing.T) {
	s := New("test")
	resp := s.handleRequest(&Request{JSONRPC: "2.0", ID: 7, Method: "ping"})
	if resp == nil || resp.Error != nil {
		t.Fatalf("ping failed: %+v", resp)
	}
	if resp.ID != 7 {
		t.Errorf("response ID: got %v, want 7", resp.ID)
	}
}

func TestHandleRequest_UnknownMethod(t *testing.T) {
	s := New("test")
	resp := s.handleRequest(&Request{JSONRPC: "2.0", ID: 1, Method: "bogus/method"})
	if resp == nil || resp.Error == nil {
		t.Fatal("unknown method should return an error response")
	}
	if resp.Error.Code != -32601 {
		t.Errorf("error code: got %d, want -32601", resp.Error.Code)
	}
}

func TestHandleRequest_NotificationHasNoResponse(t *testing.T) {
	s := New("test")
	if resp := s.handleRequest(&Request{JSONRPC: "2.0", Method: "notifications/initialized"}); resp != nil {
		t.Errorf("notification should not be answered, got %+v", resp)
	}
}

func TestToolDefinitions(t *testing.T) {
	tools := GetToolDefinitions()
	if len(tools) == 0 {
		t.Fatal("no tools defined")
	}

	seen := make(map[string]bool)
	for _, tool := range tools {
		if tool.Name == "" || tool.Description == "" {
			t.Errorf("tool %+v missing name or description", tool)
		}
		if seen[tool.Name] {
			t.Errorf("duplicate tool name %q", tool.Name)
		}
		seen[tool.Name] = true
		if tool.InputSchema["type"] != "object" {
			t.Errorf("tool %s: schema type should be object", tool.Name)
		}
	}

	// Every advertised tool must dispatch.
	s := New("test")
	for name := range seen {
		_, err := s.executeTool(name, json.RawMessage(`{}`))
		if err != nil && err.Error() == "unknown tool: "+name {
			t.Errorf("tool %s advertised but not dispatched", name)
		}
	}
}

func TestToolsCall_InvalidParams(t *testing.T) {
	s := New("test")
	resp := s.handleToolsCall(&Request{JSONRPC: "2.0", ID: 1, Params: json.RawMessage(`{`)})
	if resp.Error == nil || resp.Error.Code != -32602 {
		t.Errorf("got %+v, want -32602 invalid params", resp.Error)
	}
}

func TestToolsCall_UnknownTool(t *testing.T) {
	s := New("test")
	params, _ := json.Marshal(ToolCallParams{Name: "no_such_tool", Arguments: json.RawMessage(`{}`)})
	resp := s.handleToolsCall(&Request{JSONRPC: "2.0", ID: 1, Params: params})
	if resp.Error == nil || resp.Error.Code != -32000 {
		t.Errorf("got %+v, want -32000 execution failure", resp.Error)
	}
}
