package logger

// Logger is the diagnostic sink shared by every component.
type Logger interface {
	Info(...any)
	Debug(...any)
	Error(...any)
}

type nopLogger struct {
}

// Nop discards everything.
func Nop() Logger {
	return nopLogger{}
}

func (nopLogger) Info(...any)  {}
func (nopLogger) Debug(...any) {}
func (nopLogger) Error(...any) {}
