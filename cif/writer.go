package cif

import (
	"io"
	"strings"
)

// WriteTo serialises the CIF to w, block by block, in the order the
// blocks and their entries were read or inserted.
func (c *CIF) WriteTo(w io.Writer) (int64, error) {
	var writtenBytes int64

	for _, block := range c.DataBlocks {
		newWrittenBytes, err := block.WriteTo(w)
		writtenBytes += newWrittenBytes
		if err != nil {
			return writtenBytes, err
		}
	}

	return writtenBytes, nil
}

// WriteTo serialises a single data block to w.
func (db *DataBlock) WriteTo(w io.Writer) (int64, error) {
	var writtenBytes int64

	write := func(s string) error {
		n, err := io.WriteString(w, s)
		writtenBytes += int64(n)
		return err
	}

	if err := write("data_" + db.Name + "\n#\n"); err != nil {
		return writtenBytes, err
	}

	for _, entry := range db.Entries {
		if err := write(formatEntry(entry)); err != nil {
			return writtenBytes, err
		}
	}

	for _, frame := range db.SaveFrames {
		if err := write("save_" + frame.Name + "\n"); err != nil {
			return writtenBytes, err
		}
		for _, entry := range frame.Entries {
			if err := write(formatEntry(entry)); err != nil {
				return writtenBytes, err
			}
		}
		if err := write("save_\n#\n"); err != nil {
			return writtenBytes, err
		}
	}

	return writtenBytes, nil
}

// formatEntry renders one *Item or *Loop, terminated by a category
// separator comment in the PDBx style.
func formatEntry(entry any) string {
	var builder strings.Builder

	switch e := entry.(type) {
	case *Item:
		builder.WriteString(e.Tag)
		if strings.Contains(e.Value, "\n") {
			builder.WriteString("\n" + formatTextField(e.Value))
		} else {
			builder.WriteString(" " + quoteValue(e.Value) + "\n")
		}

	case *Loop:
		builder.WriteString("loop_\n")
		for _, tag := range e.Tags {
			builder.WriteString(tag + "\n")
		}
		for _, row := range e.Rows {
			for i, val := range row {
				if strings.Contains(val, "\n") {
					// Text fields occupy their own lines within a row.
					if i > 0 {
						builder.WriteString("\n")
					}
					builder.WriteString(formatTextField(val))
					continue
				}
				if i > 0 {
					builder.WriteString(" ")
				}
				builder.WriteString(quoteValue(val))
			}
			builder.WriteString("\n")
		}
	}

	builder.WriteString("#\n")
	return builder.String()
}

// formatTextField renders a multi-line value as a ';' delimited
// text field.
func formatTextField(val string) string {
	return ";" + val + "\n;\n"
}

// quoteValue quotes a value if the CIF syntax requires it.
func quoteValue(val string) string {
	if val == "" {
		return "''"
	}
	if !needsQuoting(val) {
		return val
	}
	if !strings.Contains(val, "'") {
		return "'" + val + "'"
	}
	return `"` + val + `"`
}

// needsQuoting reports whether a value cannot be written as a bare
// token: it contains whitespace, opens with a delimiter character,
// or collides with a reserved word.
func needsQuoting(val string) bool {
	if strings.ContainsAny(val, whitespaceChars) {
		return true
	}
	switch val[0] {
	case '_', '#', '$', '\'', '"', ';', '[', ']':
		return true
	}
	lower := strings.ToLower(val)
	if lower == "loop_" || lower == "stop_" || lower == "global_" {
		return true
	}
	return strings.HasPrefix(lower, "data_") || strings.HasPrefix(lower, "save_")
}
