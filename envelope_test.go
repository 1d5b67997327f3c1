package secagent_test

import (
	"errors"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/m-mizutani/secagent"
)

func TestDecodeReply(t *testing.T) {
	t.Run("plain text is a final answer", func(t *testing.T) {
		call, answer, err := secagent.DecodeReply("The repository looks well maintained.")
		gt.NoError(t, err)
		gt.Nil(t, call)
		gt.Equal(t, answer, "The repository looks well maintained.")
	})

	t.Run("legacy tool call", func(t *testing.T) {
		call, _, err := secagent.DecodeReply(`{"server": "vuln-db", "tool": "vul_vendor_product_cve", "arguments": {"product": "X", "version": "1.2.0"}}`)
		gt.NoError(t, err)
		gt.Equal(t, call, &secagent.ToolCall{
			Server:    "vuln-db",
			Tool:      "vul_vendor_product_cve",
			Arguments: map[string]any{"product": "X", "version": "1.2.0"},
		})
	})

	t.Run("tool call surrounded by prose and code fence", func(t *testing.T) {
		text := "I will check CVEs first.\n```json\n{\"kind\": \"tool_call\", \"server\": \"vuln-db\", \"tool\": \"vul_vendor_products\", \"arguments\": {\"vendor\": \"acme\"}}\n```"
		call, _, err := secagent.DecodeReply(text)
		gt.NoError(t, err)
		gt.Equal(t, call.Server, "vuln-db")
		gt.Equal(t, call.Tool, "vul_vendor_products")
		gt.Equal(t, call.Arguments, map[string]any{"vendor": "acme"})
	})

	t.Run("missing arguments default to empty object", func(t *testing.T) {
		call, _, err := secagent.DecodeReply(`{"server": "gh", "tool": "list_releases"}`)
		gt.NoError(t, err)
		gt.NotNil(t, call.Arguments)
		gt.Equal(t, len(call.Arguments), 0)
	})

	t.Run("tagged final answer", func(t *testing.T) {
		call, answer, err := secagent.DecodeReply(`{"kind": "final_answer", "text": "No known CVE for X 1.2.0."}`)
		gt.NoError(t, err)
		gt.Nil(t, call)
		gt.Equal(t, answer, "No known CVE for X 1.2.0.")
	})

	t.Run("untagged object without tool is a final answer", func(t *testing.T) {
		text := `Summary: {"stars": 1200, "forks": 80}`
		call, answer, err := secagent.DecodeReply(text)
		gt.NoError(t, err)
		gt.Nil(t, call)
		gt.Equal(t, answer, text)
	})

	t.Run("tool call cut off before its closing brace is malformed", func(t *testing.T) {
		call, _, err := secagent.DecodeReply(`{"server": "vuln-db", "tool": `)
		gt.True(t, errors.Is(err, secagent.ErrMalformedToolCall))
		gt.Nil(t, call)
	})

	t.Run("tagged envelope cut off is malformed", func(t *testing.T) {
		_, _, err := secagent.DecodeReply("Checking now.\n{\"kind\": \"tool_call\", \"server\": \"vuln-db\"")
		gt.True(t, errors.Is(err, secagent.ErrMalformedToolCall))
	})

	t.Run("unparsable tool call object is malformed", func(t *testing.T) {
		_, _, err := secagent.DecodeReply(`{"server": "vuln-db", "tool": "x", }`)
		gt.True(t, errors.Is(err, secagent.ErrMalformedToolCall))
	})

	t.Run("prose with non-JSON braces is a final answer", func(t *testing.T) {
		text := "No CVE found. Pin the dependency with require { example.com/x v1.2.1 }."
		call, answer, err := secagent.DecodeReply(text)
		gt.NoError(t, err)
		gt.Nil(t, call)
		gt.Equal(t, answer, text)
	})

	t.Run("prose with a code block is a final answer", func(t *testing.T) {
		text := "Use this guard:\n```go\nif v == nil {\n\treturn err\n}\n```"
		call, answer, err := secagent.DecodeReply(text)
		gt.NoError(t, err)
		gt.Nil(t, call)
		gt.Equal(t, answer, text)
	})

	t.Run("two objects are extracted greedily and fail to parse", func(t *testing.T) {
		_, _, err := secagent.DecodeReply(`{"server": "a", "tool": "x"} then {"server": "b", "tool": "y"}`)
		gt.True(t, errors.Is(err, secagent.ErrMalformedToolCall))
	})

	t.Run("tool call with empty server is malformed", func(t *testing.T) {
		_, _, err := secagent.DecodeReply(`{"server": "", "tool": "x"}`)
		gt.True(t, errors.Is(err, secagent.ErrMalformedToolCall))
	})

	t.Run("tool call with non-object arguments is malformed", func(t *testing.T) {
		_, _, err := secagent.DecodeReply(`{"kind": "tool_call", "server": "a", "tool": "x", "arguments": ["p"]}`)
		gt.True(t, errors.Is(err, secagent.ErrMalformedToolCall))
	})

	t.Run("tagged tool call without tool is malformed", func(t *testing.T) {
		_, _, err := secagent.DecodeReply(`{"kind": "tool_call", "server": "a"}`)
		gt.True(t, errors.Is(err, secagent.ErrMalformedToolCall))
	})

	t.Run("final answer without text is malformed", func(t *testing.T) {
		_, _, err := secagent.DecodeReply(`{"kind": "final_answer", "text": 3}`)
		gt.True(t, errors.Is(err, secagent.ErrMalformedToolCall))
	})

	t.Run("unknown kind is malformed", func(t *testing.T) {
		_, _, err := secagent.DecodeReply(`{"kind": "plan", "steps": []}`)
		gt.True(t, errors.Is(err, secagent.ErrMalformedToolCall))
	})

	t.Run("closing brace before opening brace", func(t *testing.T) {
		call, answer, err := secagent.DecodeReply("} nothing to call {")
		gt.NoError(t, err)
		gt.Nil(t, call)
		gt.Equal(t, answer, "} nothing to call {")
	})
}
