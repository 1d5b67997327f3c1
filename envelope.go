package secagent

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/santhosh-tekuri/jsonschema/v6"
)

const (
	// KindToolCall tags a model reply that requests a tool invocation.
	KindToolCall = "tool_call"
	// KindFinalAnswer tags a model reply that carries the final answer.
	KindFinalAnswer = "final_answer"
)

// ToolCall is a model request to run Tool on the provider named Server.
type ToolCall struct {
	Server    string         `json:"server"`
	Tool      string         `json:"tool"`
	Arguments map[string]any `json:"arguments"`
}

// reply is the decoded form of one model response. Exactly one of Call and
// Answer is meaningful; Call is nil for a final answer.
type reply struct {
	Call   *ToolCall
	Answer string
}

const toolCallSchema = `{
	"type": "object",
	"properties": {
		"kind": {"const": "tool_call"},
		"server": {"type": "string", "minLength": 1},
		"tool": {"type": "string", "minLength": 1},
		"arguments": {"type": "object"}
	},
	"required": ["server", "tool"]
}`

var toolCallValidator = mustCompileSchema("tool_call.json", toolCallSchema)

func mustCompileSchema(name, schema string) *jsonschema.Schema {
	doc, err := jsonschema.UnmarshalJSON(strings.NewReader(schema))
	if err != nil {
		panic(err)
	}
	c := jsonschema.NewCompiler()
	if err := c.AddResource(name, doc); err != nil {
		panic(err)
	}
	return c.MustCompile(name)
}

// envelopeKey matches a quoted envelope key used as an object key.
var envelopeKey = regexp.MustCompile(`"(?:kind|server|tool)"\s*:`)

// looksStructured reports whether text carries an envelope key after its first
// '{'. Prose that merely contains braces does not.
func looksStructured(text string) bool {
	start := strings.Index(text, "{")
	return start >= 0 && envelopeKey.MatchString(text[start:])
}

// extractObject returns the greedy brace-delimited substring of text, from the
// first '{' to the last '}'.
func extractObject(text string) (string, bool) {
	start := strings.Index(text, "{")
	if start < 0 {
		return "", false
	}
	end := strings.LastIndex(text, "}")
	if end < start {
		return "", false
	}
	return text[start : end+1], true
}

// decodeReply classifies a model response as a tool call or a final answer.
//
// A response without an envelope key ("kind", "server" or "tool") after its first
// '{' is a final answer returned verbatim, braces or not. Otherwise the greedy
// brace-delimited object must exist and parse, or the reply is
// ErrMalformedToolCall. An object tagged "final_answer" yields its "text" field;
// anything else is decoded as a tool call and checked against the envelope schema.
func decodeReply(text string) (*reply, error) {
	if !looksStructured(text) {
		return &reply{Answer: text}, nil
	}

	raw, ok := extractObject(text)
	if !ok {
		return nil, goerr.Wrap(ErrMalformedToolCall, "no complete JSON object in reply")
	}

	var obj map[string]any
	if err := json.Unmarshal([]byte(raw), &obj); err != nil {
		return nil, goerr.Wrap(ErrMalformedToolCall, "invalid JSON object: "+err.Error(),
			goerr.V("object", raw),
		)
	}

	kind, hasKind := obj["kind"]
	switch {
	case kind == KindFinalAnswer:
		answer, ok := obj["text"].(string)
		if !ok {
			return nil, goerr.Wrap(ErrMalformedToolCall, "final_answer requires a string text field")
		}
		return &reply{Answer: answer}, nil

	case kind == KindToolCall, !hasKind:
		return decodeToolCall(obj)

	default:
		return nil, goerr.Wrap(ErrMalformedToolCall, fmt.Sprintf("unknown reply kind %v", kind))
	}
}

func decodeToolCall(obj map[string]any) (*reply, error) {
	if err := toolCallValidator.Validate(obj); err != nil {
		return nil, goerr.Wrap(ErrMalformedToolCall, "tool call does not match envelope: "+err.Error())
	}

	// Shapes are guaranteed by the schema.
	call := &ToolCall{
		Server:    obj["server"].(string),
		Tool:      obj["tool"].(string),
		Arguments: map[string]any{},
	}
	if args, ok := obj["arguments"].(map[string]any); ok {
		call.Arguments = args
	}

	return &reply{Call: call}, nil
}
