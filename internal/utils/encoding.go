package utils

import (
	"bytes"
	"io"
	"os"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"
)

var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16LE = []byte{0xFF, 0xFE}
	bomUTF16BE = []byte{0xFE, 0xFF}
)

// DetectEncoding sniffs the byte order mark of a file. Visual Studio writes
// C# sources as UTF-8 with BOM or UTF-16, so both must decode cleanly. A nil
// encoding with nil error means no BOM was found and plain UTF-8 applies.
func DetectEncoding(filePath string) (encoding.Encoding, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	buf := make([]byte, 3)
	n, err := f.Read(buf)
	if err != nil && err != io.EOF {
		return nil, err
	}
	buf = buf[:n]

	switch {
	case bytes.HasPrefix(buf, bomUTF8):
		return unicode.UTF8BOM, nil
	case bytes.HasPrefix(buf, bomUTF16BE):
		return unicode.UTF16(unicode.BigEndian, unicode.UseBOM), nil
	case bytes.HasPrefix(buf, bomUTF16LE):
		return unicode.UTF16(unicode.LittleEndian, unicode.UseBOM), nil
	}
	return nil, nil
}
