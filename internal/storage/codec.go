package storage

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"ledger/internal/core"
)

type Format string

const (
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
	FormatYAML Format = "yaml"
)

// Codec converts the whole collection to and from one document.
type Codec interface {
	Format() Format
	Encode(w io.Writer, txs []core.Transaction) error
	Decode(r io.Reader) ([]core.Transaction, error)
	// Placeholder is the document written for a new, empty ledger.
	Placeholder() []byte
}

// CodecFor returns the codec for a format name.
func CodecFor(f Format) (Codec, error) {
	switch Format(strings.ToLower(string(f))) {
	case FormatJSON:
		return jsonCodec{}, nil
	case FormatCSV:
		return csvCodec{}, nil
	case FormatYAML, "yml":
		return yamlCodec{}, nil
	}
	return nil, fmt.Errorf("%w: %q", core.ErrUnsupportedFormat, f)
}

// CodecForPath picks a codec from the file extension.
func CodecForPath(path string) (Codec, error) {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext == "" {
		return nil, fmt.Errorf("%w: %s has no extension", core.ErrUnsupportedFormat, path)
	}
	return CodecFor(Format(ext))
}
