// Package encoding normalizes uploaded plan files to UTF-8 before they reach
// the XML codec. Files exported or edited outside the app show up in UTF-16
// or legacy single-byte charsets often enough to matter.
package encoding

import (
	"bytes"
	"fmt"
	"unicode/utf8"

	"github.com/saintfish/chardet"
	textencoding "golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
)

var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16LE = []byte{0xFF, 0xFE}
	bomUTF16BE = []byte{0xFE, 0xFF}
)

// ToUTF8 converts an uploaded document to UTF-8.
//
// Resolution order: BOM, then a plain valid-UTF-8 check, then chardet's best
// guess, then Windows-1252 as the last resort.
func ToUTF8(data []byte) ([]byte, error) {
	switch {
	case bytes.HasPrefix(data, bomUTF8):
		return data[len(bomUTF8):], nil

	case bytes.HasPrefix(data, bomUTF16LE):
		return decodeWith(data, unicode.UTF16(unicode.LittleEndian, unicode.UseBOM))

	case bytes.HasPrefix(data, bomUTF16BE):
		return decodeWith(data, unicode.UTF16(unicode.BigEndian, unicode.UseBOM))
	}

	if utf8.Valid(data) {
		return data, nil
	}

	result, err := chardet.NewTextDetector().DetectBest(data)
	if err == nil {
		switch result.Charset {
		case "UTF-16LE":
			return decodeWith(data, unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM))
		case "UTF-16BE":
			return decodeWith(data, unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM))
		case "windows-1258":
			// Legacy Vietnamese exports.
			return decodeWith(data, charmap.Windows1258)
		case "ISO-8859-9":
			return decodeWith(data, charmap.ISO8859_9)
		}
	}

	return decodeWith(data, charmap.Windows1252)
}

func decodeWith(data []byte, enc textencoding.Encoding) ([]byte, error) {
	out, err := enc.NewDecoder().Bytes(data)
	if err != nil {
		return nil, fmt.Errorf("transcoding to UTF-8: %w", err)
	}

	return out, nil
}
