package codec

// Codec turns an archive envelope into bytes and back.
type Codec interface {
	Marshal(v interface{}) ([]byte, error)
	Unmarshal(data []byte, v interface{}) error
}

// JSONCodec serializes values restricted to the JSON union.
type JSONCodec interface {
	Marshal(v any, opts JSONWriteOptions) ([]byte, error)
	Unmarshal(data []byte, opts JSONReadOptions) (any, error)
}

const DefaultIndent = "  "

type (
	JSONWriteOptions struct {
		// Write indented output.
		Pretty bool

		// Indentation unit when Pretty is set. Defaults to DefaultIndent.
		Indent string

		// Escape <, > and & inside strings.
		EscapeHTML bool

		// Allow a top level value that is neither an array nor an object.
		FragmentsAllowed bool
	}

	JSONReadOptions struct {
		// Allow a top level value that is neither an array nor an object.
		FragmentsAllowed bool

		// Decode numbers as number literals instead of float64.
		UseNumber bool
	}
)

func (o JSONWriteOptions) IndentUnit() string {
	if o.Indent == "" {
		return DefaultIndent
	}
	return o.Indent
}
