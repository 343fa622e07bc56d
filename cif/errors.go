package cif

import "fmt"

// A SyntaxError reports where in its input a CIF parse failed and
// why. Context accumulates in Msg as the error climbs back out of
// the parser's handlers, so Line always names the innermost
// failure.
type SyntaxError struct {
	Line int
	Msg  string
}

// Error returns the formatted error message.
func (s SyntaxError) Error() string {
	return fmt.Sprintf("cif: syntax error on line %d: %s", s.Line, s.Msg)
}

// wrapSyntax prefixes a SyntaxError with more context, keeping its
// line number. Errors of any other type pass through untouched.
func wrapSyntax(err error, format string, a ...any) error {
	syntaxErr, ok := err.(SyntaxError)
	if !ok {
		return err
	}
	return SyntaxError{
		Line: syntaxErr.Line,
		Msg:  fmt.Sprintf("%s: %s", fmt.Sprintf(format, a...), syntaxErr.Msg),
	}
}
