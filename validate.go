package secagent

import (
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/secagent/session"
	"github.com/santhosh-tekuri/jsonschema/v6"
)

// validateArguments checks args against the input schema of the tool in catalog.
// Tools missing from the catalog or without a schema are not checked; the provider
// has the final say.
func validateArguments(catalog []session.ToolDescriptor, call *ToolCall) error {
	var schema map[string]any
	for _, d := range catalog {
		if d.Provider == call.Server && d.Name == call.Tool {
			schema = d.InputSchema
			break
		}
	}
	if schema == nil {
		return nil
	}

	c := jsonschema.NewCompiler()
	if err := c.AddResource("input_schema.json", schema); err != nil {
		return goerr.Wrap(err, "invalid input schema", goerr.V("server", call.Server), goerr.V("tool", call.Tool))
	}
	sch, err := c.Compile("input_schema.json")
	if err != nil {
		return goerr.Wrap(err, "failed to compile input schema", goerr.V("server", call.Server), goerr.V("tool", call.Tool))
	}

	if err := sch.Validate(call.Arguments); err != nil {
		return goerr.Wrap(ErrInvalidArguments, err.Error(), goerr.V("server", call.Server), goerr.V("tool", call.Tool))
	}
	return nil
}
