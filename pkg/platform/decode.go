package platform

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
)

const (
	// Russian OEM code page. Used when the console code page is unknown.
	defaultCodePage = 866
	codePageUTF8    = 65001
)

var ErrInvalidUTF8 = errors.New("output is not valid UTF-8")

// Decoder converts captured console output to text
type Decoder func(raw []byte) (string, error)

// DecoderFor returns the console output decoder for a platform.
// Windows console utilities write in the OEM code page of the session,
// POSIX utilities write UTF-8.
func DecoderFor(p Platform) Decoder {
	if p == Windows {
		return DecoderForCodePage(consoleCodePage())
	}
	return decodeUTF8
}

// DecoderForCodePage returns a decoder for a Windows code page number
func DecoderForCodePage(cp uint32) Decoder {
	if cp == codePageUTF8 {
		return decodeUTF8
	}

	enc := codePages[cp]
	if enc == nil {
		enc = codePages[defaultCodePage]
	}
	return charmapDecoder(enc)
}

var codePages = map[uint32]encoding.Encoding{
	437:  charmap.CodePage437,
	850:  charmap.CodePage850,
	852:  charmap.CodePage852,
	855:  charmap.CodePage855,
	866:  charmap.CodePage866,
	1250: charmap.Windows1250,
	1251: charmap.Windows1251,
	1252: charmap.Windows1252,
}

func charmapDecoder(enc encoding.Encoding) Decoder {
	return func(raw []byte) (string, error) {
		text, err := enc.NewDecoder().Bytes(raw)
		if err != nil {
			return "", fmt.Errorf("decode: %w", err)
		}
		return string(text), nil
	}
}

func decodeUTF8(raw []byte) (string, error) {
	if !utf8.Valid(raw) {
		return "", ErrInvalidUTF8
	}
	return string(raw), nil
}
