// Package trace holds the structured form of a parsed stack-trace dump and the parser
// boundary that produces it.
package trace

// CallFrame is one entry in a parsed stack trace: a single invocation site with its
// arguments and source line.
type CallFrame struct {
	// Func is the package- or class-qualified name of the routine invoked at this frame.
	// It may be empty for trace-header frames.
	Func string `json:"function,omitempty"`

	// File is the source file of the invocation site.
	File string `json:"file,omitempty"`

	// ArgsString is the raw argument text exactly as it appeared between the parentheses
	// in the dump. It is preserved verbatim and never rewritten.
	ArgsString string `json:"arguments_string"`

	// Args holds the call's argument values in their original order. A nil entry marks a
	// missing value. Named arguments follow the trace format's "name, value, name, value"
	// convention, so a name and its value appear as consecutive entries.
	Args []*string `json:"arguments_list"`

	// Line is the source line number of the invocation site.
	Line int `json:"line"`
}

// RedactedCallFrame pairs a CallFrame with a masked copy of its argument list. The
// embedded frame is a pass-through of the parser's output, unmodified.
type RedactedCallFrame struct {
	CallFrame

	// RedactedArgs mirrors Args entry for entry, with each value that follows a sensitive
	// argument name replaced by the masking token.
	RedactedArgs []*string `json:"redacted_arguments_list"`
}

// Parser turns a raw trace dump into ordered call frames.
type Parser interface {
	Parse(raw string) ([]CallFrame, error)
}
