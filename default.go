package konvert

var defaultConverter = New()

// Default returns the process-wide converter behind the package-level functions.
func Default() *Converter {
	return defaultConverter
}

func EncodeArchive(v Value) []byte {
	return defaultConverter.EncodeArchive(v)
}

func DecodeArchive(data []byte) Value {
	return defaultConverter.DecodeArchive(data)
}

func EncodeJSONBytes(v any) []byte {
	return defaultConverter.EncodeJSONBytes(v)
}

func EncodeJSONString(v any) (string, bool) {
	return defaultConverter.EncodeJSONString(v)
}

func DecodeJSONBytes(data []byte) any {
	return defaultConverter.DecodeJSONBytes(data)
}

func DecodeJSONString(text *string) any {
	return defaultConverter.DecodeJSONString(text)
}
