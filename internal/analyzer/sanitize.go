package analyzer

// Sanitize returns a copy of src with block comments, line comments, and
// string/template literal bodies replaced by spaces. Newlines are kept so
// byte offsets and line numbers in the sanitized text line up with the
// original, which the oracle relies on for self-reference exclusion.
//
// Template literals are blanked wholesale, including ${...} holes. A hole
// can technically reference an imported symbol, so blanking it accepts a
// false negative there; the alternative (parsing nested template
// expressions) is exactly the syntax-tree work this scanner avoids.
func Sanitize(src string) string {
	out := []byte(src)

	const (
		stateCode = iota
		stateLineComment
		stateBlockComment
		stateSingle
		stateDouble
		stateTemplate
	)

	state := stateCode
	for i := 0; i < len(out); i++ {
		c := out[i]

		switch state {
		case stateCode:
			switch {
			case c == '/' && i+1 < len(out) && out[i+1] == '/':
				state = stateLineComment
				out[i] = ' '
			case c == '/' && i+1 < len(out) && out[i+1] == '*':
				state = stateBlockComment
				out[i] = ' '
			case c == '\'':
				state = stateSingle
			case c == '"':
				state = stateDouble
			case c == '`':
				state = stateTemplate
			}

		case stateLineComment:
			if c == '\n' {
				state = stateCode
			} else {
				out[i] = ' '
			}

		case stateBlockComment:
			if c == '*' && i+1 < len(out) && out[i+1] == '/' {
				out[i] = ' '
				out[i+1] = ' '
				i++
				state = stateCode
			} else if c != '\n' {
				out[i] = ' '
			}

		case stateSingle, stateDouble:
			quote := byte('\'')
			if state == stateDouble {
				quote = '"'
			}
			switch {
			case c == '\\' && i+1 < len(out):
				out[i] = ' '
				out[i+1] = ' '
				i++
			case c == quote:
				state = stateCode
			case c == '\n':
				// Unterminated string literal; stop blanking at the
				// line break rather than swallowing the rest of the file.
				state = stateCode
			default:
				out[i] = ' '
			}

		case stateTemplate:
			switch {
			case c == '\\' && i+1 < len(out):
				out[i] = ' '
				out[i+1] = ' '
				i++
			case c == '`':
				state = stateCode
			case c != '\n':
				out[i] = ' '
			}
		}
	}

	return string(out)
}
