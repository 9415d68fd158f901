package tabular

import (
	"bytes"
	"strings"
	"unicode/utf8"

	"github.com/saintfish/chardet"
	textencoding "golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"

	"github.com/droxline/stockmap/pkg/constants"
	"github.com/droxline/stockmap/pkg/errors"
)

// Canonical encoding names used in candidate lists and diagnostics.
const (
	EncodingUTF8        = "utf-8"
	EncodingUTF8BOM     = "utf-8-sig"
	EncodingWindows1252 = "windows-1252"
	EncodingLatin1      = "latin-1"
	EncodingISO88591    = "iso-8859-1"
)

// fallbackEncodings is the fixed candidate list tried after the detected
// encoding. Order matters: it is the acceptance order of the reader.
var fallbackEncodings = []string{
	EncodingUTF8,
	EncodingUTF8BOM,
	EncodingWindows1252,
	EncodingLatin1,
	EncodingISO88591,
}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// detectEncoding sniffs the encoding of raw file bytes using a
// byte-frequency detector. Returns "" when detection fails or yields an
// encoding we cannot decode.
func detectEncoding(raw []byte) string {
	sample := raw
	if len(sample) > constants.DetectionBytes {
		sample = sample[:constants.DetectionBytes]
	}

	result, err := chardet.NewTextDetector().DetectBest(sample)
	if err != nil || result == nil {
		return ""
	}

	name := canonicalEncoding(result.Charset)
	if !canDecode(name) {
		return ""
	}
	return name
}

// candidateEncodings returns the ordered encodings to try for raw bytes:
// the detected encoding first, then the fixed fallback list, deduplicated.
func candidateEncodings(raw []byte) []string {
	candidates := make([]string, 0, len(fallbackEncodings)+1)
	seen := make(map[string]bool)

	if detected := detectEncoding(raw); detected != "" {
		candidates = append(candidates, detected)
		seen[detected] = true
	}
	for _, enc := range fallbackEncodings {
		if !seen[enc] {
			candidates = append(candidates, enc)
			seen[enc] = true
		}
	}
	return candidates
}

// canonicalEncoding maps a detector charset name onto our candidate names.
func canonicalEncoding(charset string) string {
	switch strings.ToLower(charset) {
	case "utf-8", "utf8", "ascii", "us-ascii":
		return EncodingUTF8
	case "utf-8-sig":
		return EncodingUTF8BOM
	case "windows-1252", "cp1252":
		return EncodingWindows1252
	case "iso-8859-1":
		return EncodingISO88591
	case "latin-1", "latin1":
		return EncodingLatin1
	default:
		return strings.ToLower(charset)
	}
}

// canDecode reports whether decode supports the encoding name.
func canDecode(name string) bool {
	switch name {
	case EncodingUTF8, EncodingUTF8BOM, EncodingWindows1252, EncodingLatin1, EncodingISO88591:
		return true
	default:
		return false
	}
}

// decode converts raw file bytes to a UTF-8 string using the named
// encoding. UTF-8 decoding is strict so that a Windows-1252 file falls
// through to the single-byte candidates instead of being accepted with
// replacement runes.
func decode(raw []byte, encoding string) (string, error) {
	switch encoding {
	case EncodingUTF8:
		if !utf8.Valid(raw) {
			return "", errors.New("invalid UTF-8 byte sequence")
		}
		return string(raw), nil
	case EncodingUTF8BOM:
		trimmed := bytes.TrimPrefix(raw, utf8BOM)
		if !utf8.Valid(trimmed) {
			return "", errors.New("invalid UTF-8 byte sequence")
		}
		return string(trimmed), nil
	case EncodingWindows1252:
		decoded, err := charmap.Windows1252.NewDecoder().Bytes(raw)
		if err != nil {
			return "", err
		}
		return string(decoded), nil
	case EncodingLatin1, EncodingISO88591:
		decoded, err := charmap.ISO8859_1.NewDecoder().Bytes(raw)
		if err != nil {
			return "", err
		}
		return string(decoded), nil
	default:
		return "", errors.NewValidationError("encoding", encoding, "unsupported encoding")
	}
}

// encode converts a UTF-8 string back to bytes in the named encoding.
// Characters outside the target charset are replaced rather than failing
// the write: snapshots must always be produced for successful merges.
func encode(text string, encoding string) ([]byte, error) {
	switch encoding {
	case EncodingUTF8, "":
		return []byte(text), nil
	case EncodingUTF8BOM:
		return append(append([]byte{}, utf8BOM...), text...), nil
	case EncodingWindows1252:
		return textencoding.ReplaceUnsupported(charmap.Windows1252.NewEncoder()).Bytes([]byte(text))
	case EncodingLatin1, EncodingISO88591:
		return textencoding.ReplaceUnsupported(charmap.ISO8859_1.NewEncoder()).Bytes([]byte(text))
	default:
		return nil, errors.NewValidationError("encoding", encoding, "unsupported encoding")
	}
}
