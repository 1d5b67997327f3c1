package otel

import "go.opentelemetry.io/otel/attribute"

func runIDAttr(id string) attribute.KeyValue {
	return attribute.String("secagent.run_id", id)
}

func questionAttr(question string) attribute.KeyValue {
	return attribute.String("secagent.question", question)
}

func answerLengthAttr(n int) attribute.KeyValue {
	return attribute.Int("secagent.answer.length", n)
}

func modelTurnsAttr(turns int) attribute.KeyValue {
	return attribute.Int("model.turns", turns)
}

func modelResponseLengthAttr(n int) attribute.KeyValue {
	return attribute.Int("model.response.length", n)
}

func toolServerAttr(server string) attribute.KeyValue {
	return attribute.String("tool.server", server)
}

func toolNameAttr(name string) attribute.KeyValue {
	return attribute.String("tool.name", name)
}

func toolArgsAttr(args string) attribute.KeyValue {
	return attribute.String("tool.args", args)
}

func eventDataAttr(data string) attribute.KeyValue {
	return attribute.String("event.data", data)
}
