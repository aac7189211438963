package lexer

import "fmt"

// Error represents an error in a PEG source text.
type Error struct {
	Message string
	Pos     Position
}

// Errorf creates a new Error at the given position.
func Errorf(pos Position, format string, args ...interface{}) *Error {
	return &Error{
		Message: fmt.Sprintf(format, args...),
		Pos:     pos,
	}
}

// Panicf throws an *Error.
func Panicf(pos Position, format string, args ...interface{}) {
	panic(Errorf(pos, format, args...))
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s Error: %s", e.Pos, e.Message)
}

// Position of a token in a PEG source text.
type Position struct {
	Filename string
	Offset   int
	Line     int
	Column   int
}

func (p Position) String() string {
	filename := p.Filename
	if filename == "" {
		filename = "<pattern>"
	}
	return fmt.Sprintf("%s(%d, %d)", filename, p.Line, p.Column)
}
