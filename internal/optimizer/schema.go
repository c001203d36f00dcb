package optimizer

// SchemaType names a structured output shape. Field names in the
// shapes are deliberately terse (msg, sum, pts) since they count
// against output tokens on every reply.
type SchemaType string

const (
	SchemaChat    SchemaType = "chat"
	SchemaSummary SchemaType = "summary"
	SchemaQA      SchemaType = "qa"
	SchemaList    SchemaType = "list"
)

// Schema describes one structured output shape.
type Schema struct {
	Name        string
	Description string
	Instruction string
}

var schemas = map[SchemaType]Schema{
	SchemaChat: {
		Name:        "chat_response",
		Description: "Concise chat response",
		Instruction: "Output format: JSON with 'msg' field only.",
	},
	SchemaSummary: {
		Name:        "summary_response",
		Description: "Summary with key points",
		Instruction: "Output format: JSON with 'sum' (summary) and optional 'pts' (key points array).",
	},
	SchemaQA: {
		Name:        "qa_response",
		Description: "Question answer format",
		Instruction: "Output format: JSON with 'ans' (answer) and optional 'conf' (confidence 0-1).",
	},
	SchemaList: {
		Name:        "list_response",
		Description: "List of items",
		Instruction: "Output format: JSON with 'items' array and 'cnt' count.",
	},
}

// LookupSchema returns the schema for t, or false when t is unknown.
func LookupSchema(t SchemaType) (Schema, bool) {
	s, ok := schemas[t]
	return s, ok
}

// SchemaTypes lists the supported schema names.
func SchemaTypes() []SchemaType {
	return []SchemaType{SchemaChat, SchemaSummary, SchemaQA, SchemaList}
}
