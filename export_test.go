package secagent

var (
	Truncate          = truncate
	RenderPreamble    = renderPreamble
	ValidateArguments = validateArguments
)

// DecodeReply exposes decodeReply as (call, answer, err).
func DecodeReply(text string) (*ToolCall, string, error) {
	r, err := decodeReply(text)
	if err != nil {
		return nil, "", err
	}
	return r.Call, r.Answer, nil
}

func ToolResultEntry(tool, text string) string {
	return toolResultEntry(tool, text)
}

func ToolErrorEntry(err error) string {
	return toolErrorEntry(err)
}

