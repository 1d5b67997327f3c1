package trace

// ModelCallData holds data specific to a model call span.
type ModelCallData struct {
	// Turns is the number of conversation turns sent to the model.
	Turns    int    `json:"turns"`
	Response string `json:"response,omitempty"`
}

// ToolCallData holds data specific to a tool call span.
type ToolCallData struct {
	Server string         `json:"server"`
	Tool   string         `json:"tool"`
	Args   map[string]any `json:"args"`
	Result string         `json:"result,omitempty"`
	Error  string         `json:"error,omitempty"`
}

// EventData holds data of a point-in-time event, such as a malformed model reply.
type EventData struct {
	Kind string `json:"kind"`
	Data any    `json:"data"`
}
