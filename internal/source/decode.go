package source

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Names accepted without a charset lookup.
const (
	EncodingUTF8  = "utf-8"
	EncodingASCII = "ascii"
)

// ErrUnsupportedEncoding is returned for names the charset index does not know.
var ErrUnsupportedEncoding = errors.New("unsupported encoding")

// DecodeError reports the first byte sequence that is not valid in the
// requested encoding.
type DecodeError struct {
	Encoding string
	Offset   int // byte offset into the raw input
	Byte     byte
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("'%s' codec can't decode byte 0x%02x in position %d", e.Encoding, e.Byte, e.Offset)
}

// Decoded is the result of reading an input through a named encoding.
type Decoded struct {
	Raw      []byte
	Text     []rune
	Encoding string
	Flags    FileFlags
}

// Decode reads r fully and converts it to characters. A UTF-8 byte order mark
// is dropped from the text and recorded in Flags.
func Decode(r io.Reader, name string) (*Decoded, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return DecodeBytes(raw, name)
}

// DecodeBytes is Decode for an in-memory buffer.
func DecodeBytes(raw []byte, name string) (*Decoded, error) {
	canon := canonicalEncoding(name)
	out := &Decoded{Raw: raw, Encoding: canon}

	switch canon {
	case EncodingUTF8:
		body, hadBOM := removeBOM(raw)
		if hadBOM {
			out.Flags |= FileHadBOM
		}
		if off := invalidUTF8(body); off >= 0 {
			if hadBOM {
				off += 3
			}
			return nil, &DecodeError{Encoding: canon, Offset: off, Byte: raw[off]}
		}
		out.Text = bytes.Runes(body)
		return out, nil
	case EncodingASCII:
		text := make([]rune, len(raw))
		for i, b := range raw {
			if b >= utf8.RuneSelf {
				return nil, &DecodeError{Encoding: canon, Offset: i, Byte: b}
			}
			text[i] = rune(b)
		}
		out.Text = text
		return out, nil
	}

	enc, err := ianaindex.IANA.Encoding(name)
	if err != nil || enc == nil {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedEncoding, name)
	}
	decoded, err := transcode(raw, enc)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", name, err)
	}
	if body, hadBOM := removeBOM(decoded); hadBOM {
		decoded = body
		out.Flags |= FileHadBOM
	}
	out.Flags |= FileTranscoded
	out.Text = bytes.Runes(decoded)
	return out, nil
}

func transcode(raw []byte, enc encoding.Encoding) ([]byte, error) {
	// BOMOverride lets a UTF-16 or UTF-8 mark win over the declared charset.
	dec := unicode.BOMOverride(enc.NewDecoder())
	return io.ReadAll(transform.NewReader(bytes.NewReader(raw), dec))
}

func canonicalEncoding(name string) string {
	switch strings.ToLower(strings.ReplaceAll(strings.TrimSpace(name), "_", "-")) {
	case "", "utf-8", "utf8":
		return EncodingUTF8
	case "ascii", "us-ascii":
		return EncodingASCII
	default:
		return name
	}
}

func invalidUTF8(b []byte) int {
	for i := 0; i < len(b); {
		r, size := utf8.DecodeRune(b[i:])
		if r == utf8.RuneError && size <= 1 {
			return i
		}
		i += size
	}
	return -1
}
