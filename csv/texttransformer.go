package csv

import (
	"golang.org/x/text/encoding"
)

// TextTransformer converts the UTF-8 bytes of a written row.
type TextTransformer interface {
	Bytes([]byte) ([]byte, error)
}

// EncodingTransformer returns a TextTransformer
// that encodes rows with enc, for example
// charmap.Windows1252 for spreadsheet imports.
func EncodingTransformer(enc encoding.Encoding) TextTransformer {
	return encoderTransformer{enc}
}

type encoderTransformer struct {
	enc encoding.Encoding
}

func (t encoderTransformer) Bytes(b []byte) ([]byte, error) {
	return t.enc.NewEncoder().Bytes(b)
}
