package secagent

// Conversation is the append-only turn history of one run. Turn order is the chat
// order and is replayed to the model as-is.
type Conversation struct {
	turns []string
}

// Append adds turns at the end of the history.
func (x *Conversation) Append(turns ...string) {
	x.turns = append(x.turns, turns...)
}

// Turns returns a copy of the history.
func (x *Conversation) Turns() []string {
	turns := make([]string, len(x.turns))
	copy(turns, x.turns)
	return turns
}

// Len returns the number of turns.
func (x *Conversation) Len() int {
	return len(x.turns)
}
