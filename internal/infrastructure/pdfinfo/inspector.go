package pdfinfo

import (
	"bytes"
	"fmt"

	"github.com/ledongthuc/pdf"
)

// Inspector validates rendered artifacts by parsing them back. A render that
// produced unparseable bytes must never be marked ready.
type Inspector struct{}

func New() Inspector {
	return Inspector{}
}

func (Inspector) PageCount(data []byte) (int, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return 0, fmt.Errorf("parse pdf: %w", err)
	}
	return reader.NumPage(), nil
}
