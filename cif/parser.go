package cif

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

const whitespaceChars = " \t\r\n"

// A Parser parses CIF data from an io.Reader.
type Parser struct {
	reader *bufio.Reader

	// State held during parsing.
	line           int
	block          *DataBlock
	frame          *SaveFrame
	cif            *CIF
	lastByteWasEOL bool
}

// NewParser creates a new Parser from an io.Reader.
func NewParser(r io.Reader) *Parser {
	return &Parser{
		reader:         bufio.NewReader(r),
		line:           1,
		lastByteWasEOL: true,
	}
}

// Parse parses data in the io.Reader the Parser was provided into a
// CIF. Stops parsing when an io.EOF is encountered.
func (p *Parser) Parse() (*CIF, error) {
	// Clean up on failure.
	defer func() {
		p.block = nil
		p.frame = nil
	}()

	p.cif = &CIF{}

	for {
		err := p.peekAndHandle(
			map[string]func() error{
				// Skip comments.
				"#": p.skipComment,

				// Handle whitespace and newlines.
				" ":  p.skipWhitespace,
				"\t": p.skipWhitespace,
				"\r": p.skipWhitespace,
				"\n": p.skipWhitespace,

				// Handle data headers.
				"data_": p.handleDataBlockHeader,
				"save_": p.handleSaveFrameHeader,

				// Handle data items.
				"loop_": p.handleLoop,
				"_":     p.handleTagValue,
			},
			func() error {
				// EOFs aren't real errors.
				if _, err := p.reader.ReadByte(); err == io.EOF {
					return io.EOF
				}

				return p.makeSyntaxError("unrecognized token")
			},
		)

		// Swallow EOF errors.
		if err == io.EOF {
			if p.frame != nil {
				return p.cif, p.makeSyntaxError("save frame %q was not terminated before EOF", p.frame.Name)
			}

			return p.cif, nil
		} else if err != nil {
			return p.cif, err
		}
	}
}

/* ----------- Handler functions -------------- */

// handleDataBlockHeader reads in a data block header and makes the
// named block current.
func (p *Parser) handleDataBlockHeader() error {
	header, err := p.readUntilWhitespace()
	if err != nil {
		return err
	}

	name := header[len("data_"):]

	if len(name) == 0 {
		return p.makeSyntaxError("data block header missing name")
	}

	if p.frame != nil {
		return p.makeSyntaxError("save frame %q was not terminated before next data block header", p.frame.Name)
	}

	if p.cif.DataBlock(name) != nil {
		return p.makeSyntaxError("data block with name %q already encountered", name)
	}

	p.block = NewDataBlock(name)
	p.cif.DataBlocks = append(p.cif.DataBlocks, p.block)
	return nil
}

// handleSaveFrameHeader reads in a save frame header and makes the
// named frame current, or closes the current frame on a bare save_.
func (p *Parser) handleSaveFrameHeader() error {
	if p.block == nil {
		return p.makeSyntaxError("save frame header found before data block header")
	}

	header, err := p.readUntilWhitespace()
	if err != nil {
		return err
	}

	// Handle closing of a save frame.
	if header == "save_" {
		if p.frame == nil {
			return p.makeSyntaxError("save frames must be named")
		}
		p.frame = nil
		return nil
	}

	name := header[len("save_"):]

	for _, frame := range p.block.SaveFrames {
		if frame.Name == name {
			return p.makeSyntaxError("save frame with name %q already encountered in data block %q", name, p.block.Name)
		}
	}

	p.frame = &SaveFrame{Name: name}
	p.block.SaveFrames = append(p.block.SaveFrames, p.frame)

	return nil
}

// handleTagValue handles a tag:value data item.
func (p *Parser) handleTagValue() error {
	// Ensure we are in a data block.
	if p.block == nil {
		return p.makeSyntaxError("tag:value pairs can only exist within a data block")
	}

	tag, err := p.readTag()
	if err != nil {
		return wrapSyntax(err, "could not read tag of tag:value pair")
	}

	if err := p.skipWhitespace(); err != nil {
		return wrapSyntax(err, "tag of tag:value pair must be followed by whitespace")
	}

	val, err := p.readValue()
	if err != nil {
		return wrapSyntax(err, "could not read value of tag:value pair")
	}

	if prev, exists := p.currValue(tag); exists {
		return p.makeSyntaxError("tag %q already has a value (%v)", tag, prev)
	}

	p.appendEntry(&Item{Tag: tag, Value: val})
	return nil
}

// handleLoop handles a loop_ entry.
func (p *Parser) handleLoop() error {
	p.reader.Discard(len([]byte("loop_")))

	// Ensure we are in a data block.
	if p.block == nil {
		return p.makeSyntaxError("loops can only exist within a data block")
	}

	// Ensure there is nothing after the loop_ token.
	if err := p.skipWhitespace(); err != nil {
		return p.makeSyntaxError("loop_ must be followed by whitespace")
	}

	// Read in tags until we find something that isn't a tag.
	tags := make([]string, 0)
	valueFound := false
	for !valueFound {
		err := p.peekAndHandle(
			map[string]func() error{
				"_": func() error {
					tag, err := p.readTag()
					if err != nil {
						return err
					}

					// Tags must be followed by whitespace.
					if err := p.skipWhitespace(); err != nil {
						return err
					}

					tags = append(tags, tag)
					return nil
				},
			},
			func() error {
				valueFound = true
				return nil
			},
		)
		if err != nil {
			return wrapSyntax(err, "could not read tags in loop_")
		}
	}

	// Loops must have at least one tag.
	if len(tags) == 0 {
		return p.makeSyntaxError("loop_ header must have at least one tag")
	}

	// Handle the values.
	values := make([]string, 0)
	valuesRemain := true
	stopLooping := func() error {
		valuesRemain = false
		return nil
	}
	for valuesRemain {
		err := p.peekAndHandle(map[string]func() error{
			// Stop looping if we find a tag or reserved word.
			"save_": stopLooping,
			"data_": stopLooping,
			"loop_": stopLooping,
			"_":     stopLooping,
			"#":     p.skipComment,
		}, func() error {
			// The end of the input closes the loop.
			if _, err := p.reader.Peek(1); err == io.EOF {
				return stopLooping()
			}

			value, err := p.readValue()
			if err != nil {
				return err
			}

			values = append(values, value)

			err = p.skipWhitespace()
			if err != nil {
				// A syntax error when skipping whitespace means EOF.
				if _, ok := err.(SyntaxError); ok {
					return stopLooping()
				}
				return err
			}
			return nil
		})
		if err != nil {
			return wrapSyntax(err, "could not read values in loop_")
		}
	}

	if len(values)%len(tags) != 0 {
		return p.makeSyntaxError("number of values provided in loop_ must be a multiple of number of tags (tags: %v, values: %v)", len(tags), len(values))
	}

	// Store the values row by row.
	loop := &Loop{Tags: tags}
	for i := 0; i < len(values); i += len(tags) {
		loop.Rows = append(loop.Rows, values[i:i+len(tags)])
	}

	p.appendEntry(loop)
	return nil
}

// skipComment skips a comment through the end of its line.
func (p *Parser) skipComment() error {
	for {
		b, err := p.reader.ReadByte()
		if err == io.EOF {
			return nil
		} else if err != nil {
			return err
		}
		if b == '\n' {
			p.line++
			p.lastByteWasEOL = true
			return nil
		}
	}
}

// skipWhitespace skips whitespace.
//
// Sets p.lastByteWasEOL to true if the last byte it skips is an EOL.
func (p *Parser) skipWhitespace() error {
	foundWhitespace := false
	for {
		b, err := p.reader.ReadByte()
		if err == io.EOF {
			break
		} else if err != nil {
			return err
		}

		if !isWhitespace(b) {
			if err := p.reader.UnreadByte(); err != nil {
				return err
			}
			break
		}

		if b == '\n' {
			p.line++
			p.lastByteWasEOL = true
		} else {
			p.lastByteWasEOL = false
		}
		foundWhitespace = true
	}

	if !foundWhitespace {
		return p.makeSyntaxError("no whitespace found when whitespace was expected")
	}
	return nil
}

/* ----------- Reader functions -------------- */

// readTextField reads in a text field: a block opened by ';' at the
// start of a line and closed by the next line-leading ';'.
//
// Assumes whitespace before the text field has been skipped,
// including the EOL required immediately before the semicolon.
func (p *Parser) readTextField() (string, error) {
	firstChar, err := p.reader.ReadByte()
	if err != nil {
		return "", err
	} else if firstChar != ';' {
		return "", p.makeSyntaxError("text field must begin with ';', not %q", firstChar)
	}

	res := make([]byte, 0)
	for {
		b, err := p.reader.ReadByte()
		if err == io.EOF {
			return "", p.makeSyntaxError("text field was not terminated before EOF")
		} else if err != nil {
			return "", err
		}

		if b == '\n' {
			p.line++
			next, err := p.reader.Peek(1)
			if err == nil && next[0] == ';' {
				p.reader.Discard(1)
				p.lastByteWasEOL = false
				return string(res), nil
			}
		}
		res = append(res, b)
	}
}

// readValue reads a value and returns it.
//
// Appropriately handles inapplicable ('.'), unknown ('?'), unquoted
// string, quoted string, and text field values. Delimiters are not
// included in the return value; special values are kept verbatim so
// a parsed file can be written back unchanged.
func (p *Parser) readValue() (string, error) {
	var res string

	err := p.peekAndHandle(
		map[string]func() error{
			";": func() error {
				// A ';' opens a text field only at the start of a line;
				// anywhere else it begins an unquoted string.
				var err error
				if p.lastByteWasEOL {
					res, err = p.readTextField()
					return err
				}

				res, err = p.readUnquotedValue()
				return err
			},
			"'": func() error {
				var err error
				res, err = p.readQuotedString('\'')
				return err
			},
			"\"": func() error {
				var err error
				res, err = p.readQuotedString('"')
				return err
			},
		},
		func() error {
			var err error
			res, err = p.readUnquotedValue()
			return err
		},
	)
	if err != nil {
		return "", wrapSyntax(err, "could not read value")
	}

	return res, nil
}

// readUnquotedValue reads an unquoted string value, including the
// special '.' and '?' values, and returns it.
func (p *Parser) readUnquotedValue() (string, error) {
	res, err := p.readUntilWhitespace()
	if err != nil {
		return "", wrapSyntax(err, "could not read unquoted value")
	}

	return res, nil
}

// readQuotedString reads a quoted string and returns its value.
func (p *Parser) readQuotedString(quote byte) (string, error) {
	// Drop the opening quote.
	if _, err := p.reader.Discard(1); err != nil {
		return "", err
	}

	res := make([]byte, 0)
	for {
		b, err := p.reader.ReadByte()
		if err == io.EOF {
			return "", p.makeSyntaxError("%c quoted string was not terminated before EOF", quote)
		} else if err != nil {
			return "", err
		}

		if b == '\n' {
			return "", p.makeSyntaxError("%c quoted string was not terminated before EOL", quote)
		}

		// A closing quote must be followed by whitespace or EOF.
		if b == quote {
			next, err := p.reader.Peek(1)
			if err != nil || isWhitespace(next[0]) {
				p.lastByteWasEOL = false
				return string(res), nil
			}
		}
		res = append(res, b)
	}
}

// readTag reads a tag and returns it.
func (p *Parser) readTag() (string, error) {
	res, err := p.readUntilWhitespace()
	if err != nil {
		return "", wrapSyntax(err, "could not read tag")
	}

	if !strings.HasPrefix(res, "_") || res == "_" {
		return "", p.makeSyntaxError("invalid tag name %q", res)
	}

	return res, nil
}

// readUntilWhitespace reads until whitespace or an io.EOF.
//
// Returns a syntax error if no characters could be read.
// Appropriately sets p.lastByteWasEOL.
func (p *Parser) readUntilWhitespace() (string, error) {
	res := make([]byte, 0)
	for {
		b, err := p.reader.ReadByte()
		if err == io.EOF {
			break
		} else if err != nil {
			return "", err
		}

		if isWhitespace(b) {
			if err := p.reader.UnreadByte(); err != nil {
				return "", err
			}
			break
		}

		p.lastByteWasEOL = false
		res = append(res, b)
	}

	if len(res) == 0 {
		return "", p.makeSyntaxError("delimiter encountered before any characters could be read")
	}
	return string(res), nil
}

/* ----------- Utility functions -------------- */

// appendEntry appends an entry to the current save frame or data
// block. Must be called from within one of the two.
func (p *Parser) appendEntry(entry any) {
	if p.frame != nil {
		p.frame.Entries = append(p.frame.Entries, entry)
		return
	}
	p.block.Entries = append(p.block.Entries, entry)
}

// currValue looks up a tag in the current save frame or data block.
func (p *Parser) currValue(tag string) (string, bool) {
	entries := p.block.Entries
	if p.frame != nil {
		entries = p.frame.Entries
	}
	for _, entry := range entries {
		if item, ok := entry.(*Item); ok && item.Tag == tag {
			return item.Value, true
		}
	}
	return "", false
}

// peekAndHandle peeks until a matching handler function is found in
// handlers. If no matching handler is found or an io.EOF is reached,
// calls fallback. Does not itself consume any bytes from the reader.
//
// Matching is performed on the keys of the handlers map, shortest
// key first. Keywords are matched case-insensitively, per CIF v1.1.
func (p *Parser) peekAndHandle(handlers map[string]func() error, fallback func() error) error {
	limit := 0
	for k := range handlers {
		if len(k) > limit {
			limit = len(k)
		}
	}

	for n := 1; n <= limit; n++ {
		peek, err := p.reader.Peek(n)
		if err == io.EOF && len(peek) < n {
			return fallback()
		} else if err != nil && err != io.EOF {
			return err
		}

		if handler, exists := handlers[strings.ToLower(string(peek))]; exists {
			return handler()
		}
	}

	return fallback()
}

// makeSyntaxError returns an error message tagged with the line at
// which the syntax error was encountered.
func (p *Parser) makeSyntaxError(format string, a ...any) error {
	return SyntaxError{
		Msg:  fmt.Sprintf(format, a...),
		Line: p.line,
	}
}

// isWhitespace returns whether or not a character is whitespace.
func isWhitespace(b byte) bool {
	return strings.IndexByte(whitespaceChars, b) >= 0
}
