package secagent

import (
	_ "embed"
	"encoding/json"
	"strings"
	"text/template"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/secagent/session"
)

//go:embed templates/preamble.md
var preambleTemplate string

var preambleTmpl = template.Must(template.New("preamble").Parse(preambleTemplate))

type preambleData struct {
	Tools    string
	Question string
}

// renderPreamble builds the first conversation turn: instructions, the tool
// catalog and the user question.
func renderPreamble(tools []session.ToolDescriptor, question string) (string, error) {
	if tools == nil {
		tools = []session.ToolDescriptor{}
	}

	catalog, err := json.MarshalIndent(tools, "", "  ")
	if err != nil {
		return "", goerr.Wrap(err, "failed to serialize tool catalog")
	}

	var b strings.Builder
	if err := preambleTmpl.Execute(&b, preambleData{
		Tools:    string(catalog),
		Question: question,
	}); err != nil {
		return "", goerr.Wrap(err, "failed to render preamble")
	}

	return b.String(), nil
}
