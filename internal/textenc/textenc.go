// Package textenc turns raw subtitle file bytes into UTF-8 text. Byte order
// marks decide the encoding outright; without one the charset is sniffed and
// legacy encodings are decoded through x/text.
package textenc

import (
	"bytes"
	"io"

	"github.com/dimchansky/utfbom"
	"github.com/saintfish/chardet"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/encoding/korean"
	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/encoding/traditionalchinese"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Decode converts raw subtitle bytes to UTF-8 text, returning the name of
// the charset it decoded from. Unrecognized charsets pass through unchanged.
func Decode(raw []byte) (string, string, error) {
	stripped, bom, err := skipBOM(raw)
	if err != nil {
		return "", "", err
	}

	switch bom {
	case utfbom.UTF8:
		return string(stripped), "UTF-8", nil
	case utfbom.UTF16LittleEndian:
		return decodeWith(stripped, unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM), "UTF-16LE")
	case utfbom.UTF16BigEndian:
		return decodeWith(stripped, unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM), "UTF-16BE")
	}

	// no BOM: sniff the charset
	result, err := chardet.NewTextDetector().DetectBest(stripped)
	if err != nil {
		// detection fails on empty or featureless input; treat as UTF-8
		return string(stripped), "UTF-8", nil
	}
	if result.Charset == "UTF-8" {
		return string(stripped), "UTF-8", nil
	}
	if enc := encodingFor(result.Charset); enc != nil {
		return decodeWith(stripped, enc, result.Charset)
	}
	return string(stripped), result.Charset, nil
}

func skipBOM(raw []byte) ([]byte, utfbom.Encoding, error) {
	sr, bom := utfbom.Skip(bytes.NewReader(raw))
	stripped, err := io.ReadAll(sr)
	if err != nil {
		return nil, utfbom.Unknown, err
	}
	return stripped, bom, nil
}

func decodeWith(raw []byte, enc encoding.Encoding, charset string) (string, string, error) {
	r := transform.NewReader(bytes.NewReader(raw), enc.NewDecoder())
	decoded, err := io.ReadAll(r)
	if err != nil {
		return "", charset, err
	}
	return string(decoded), charset, nil
}

// encodingFor maps the detector's charset names to decoders. ISO-8859-1 is
// decoded as windows-1252, its common superset in subtitle files.
func encodingFor(charset string) encoding.Encoding {
	switch charset {
	case "GB-18030":
		return simplifiedchinese.GB18030
	case "Big5":
		return traditionalchinese.Big5
	case "Shift_JIS":
		return japanese.ShiftJIS
	case "EUC-JP":
		return japanese.EUCJP
	case "EUC-KR":
		return korean.EUCKR
	case "ISO-8859-1", "windows-1252":
		return charmap.Windows1252
	case "ISO-8859-2":
		return charmap.ISO8859_2
	case "windows-1251":
		return charmap.Windows1251
	case "KOI8-R":
		return charmap.KOI8R
	case "UTF-16LE":
		return unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)
	case "UTF-16BE":
		return unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM)
	default:
		return nil
	}
}
