package rbtranslations

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/ianaindex"
)

// codingRegex recognizes the encoding magic comment, e.g. "# coding: utf-8".
// Only comments on the first two lines are considered, mirroring the
// convention for source file encodings.
var codingRegex = regexp.MustCompile(`coding[:=]\s*([-\w.]+)`)

// ParseProperties reads a Java properties stream and returns its key/value
// pairs.
//
// The format follows the java.util.Properties rules:
//
//   - Lines starting with '#' or '!' (after leading whitespace) are comments.
//   - A key is separated from its value by the first unescaped '=' or ':';
//     later separators are part of the value.
//   - Whitespace around keys and values is trimmed; escaped whitespace
//     ("\ ") is preserved, which allows leading and trailing spaces.
//   - "\uXXXX" escapes denote a Unicode code point; a backslash before a
//     newline continues the pair on the next line, whose leading whitespace
//     is skipped and which is never treated as a comment. Any other escaped
//     character stands for itself.
//   - Carriage returns are ignored; tab and form feed count as whitespace.
//
// As an extension over Java, the encoding may be declared by a magic comment
// matching `coding[:=]\s*([-\w.]+)` on the first or second line. Without it,
// the stream is decoded as ISO-8859-1 as Java prescribes.
func ParseProperties(r io.Reader) (map[string]string, error) {
	p := propertiesScan{
		decoder: charmap.ISO8859_1.NewDecoder(),
		pairs:   make(map[string]string),
	}
	if err := p.run(bufio.NewReader(r)); err != nil {
		return nil, errors.Join(ErrFailedToParseProperties, err)
	}
	return p.pairs, nil
}

// propertiesScan holds parser state that survives across lines: an escaped
// newline continues the current pair, and a pending \uXXXX escape may even
// swallow the line break itself.
type propertiesScan struct {
	decoder *encoding.Decoder
	pairs   map[string]string

	key       strings.Builder
	value     strings.Builder
	pendingWS string

	haveKey       bool
	escaped       bool
	ignoreComment bool

	unicodeDigits int
	unicodeBuffer strings.Builder

	lineCount int
}

func (p *propertiesScan) run(br *bufio.Reader) error {
	for {
		raw, readErr := br.ReadBytes('\n')
		if len(raw) == 0 && readErr != nil {
			if readErr != io.EOF {
				return readErr
			}
			// EOF: save a pair that was not terminated by a newline.
			if p.key.Len() > 0 {
				p.pairs[p.key.String()] = p.value.String()
			}
			return nil
		}

		p.lineCount++
		line, err := p.decoder.String(string(raw))
		if err != nil {
			return errors.Join(ErrFailedToDecodeLine, fmt.Errorf("line %d: %w", p.lineCount, err))
		}
		if err := p.scanLine(line); err != nil {
			return fmt.Errorf("line %d: %w", p.lineCount, err)
		}

		if readErr != nil {
			if readErr != io.EOF {
				return readErr
			}
			if p.key.Len() > 0 {
				p.pairs[p.key.String()] = p.value.String()
			}
			return nil
		}
	}
}

func (p *propertiesScan) scanLine(line string) error {
	// Whitespace at the beginning of every line is skipped.
	skipWS := true

	for _, c := range line {
		if p.unicodeDigits > 0 {
			p.unicodeBuffer.WriteRune(c)
			p.unicodeDigits--
			if p.unicodeDigits > 0 {
				continue
			}
			code, err := strconv.ParseUint(p.unicodeBuffer.String(), 16, 32)
			if err != nil {
				return errors.Join(ErrInvalidUnicodeEscape,
					fmt.Errorf("\\u%s: %w", p.unicodeBuffer.String(), err))
			}
			p.unicodeBuffer.Reset()
			c = rune(code)
		}

		if c == '\r' {
			continue
		}
		if c == '\t' || c == '\f' {
			c = ' '
		}

		if skipWS {
			if c == ' ' {
				continue
			}
			skipWS = false
			// A continuation line is never a comment, even when its first
			// character says otherwise.
			if !p.ignoreComment {
				if c == '#' || c == '!' {
					if p.lineCount <= 2 {
						if m := codingRegex.FindStringSubmatch(line); m != nil {
							if err := p.switchEncoding(m[1]); err != nil {
								return err
							}
						}
					}
					return nil
				}
			}
			p.ignoreComment = false
		}

		if p.escaped {
			p.escaped = false
			if c == '\n' {
				p.ignoreComment = true
				continue
			}
			if c == 'u' {
				p.unicodeDigits = 4
				continue
			}
			// Fall through: the escaped character stands for itself.
		} else {
			// Whitespace around keys and values is held back and only
			// emitted when more content follows.
			if c == ' ' {
				p.pendingWS += " "
				continue
			}
			if c == '\\' {
				p.escaped = true
				continue
			}
			if (c == ':' || c == '=') && !p.haveKey {
				p.haveKey = true
				p.pendingWS = ""
				skipWS = true
				continue
			}
			if c == '\n' {
				if p.key.Len() > 0 {
					p.pairs[p.key.String()] = p.value.String()
					p.key.Reset()
					p.value.Reset()
					p.pendingWS = ""
					p.haveKey = false
				}
				return nil
			}
		}

		if !p.haveKey {
			p.key.WriteString(p.pendingWS)
			p.key.WriteRune(c)
		} else {
			p.value.WriteString(p.pendingWS)
			p.value.WriteRune(c)
		}
		p.pendingWS = ""
	}

	return nil
}

// switchEncoding installs the decoder named by a coding magic comment. The
// comment itself is ASCII, so it decodes identically under the previous
// encoding and the new one takes effect from the following line.
func (p *propertiesScan) switchEncoding(name string) error {
	enc, err := ianaindex.IANA.Encoding(name)
	if err != nil || enc == nil {
		return errors.Join(ErrUnknownEncoding, fmt.Errorf("coding %q", name))
	}
	p.decoder = enc.NewDecoder()
	return nil
}
