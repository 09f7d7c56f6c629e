package storage

import (
	"bytes"
	"encoding/csv"
	"io"
	"strings"

	"ledger/internal/core"
)

type csvCodec struct{}

func (csvCodec) Format() Format { return FormatCSV }

func (csvCodec) Placeholder() []byte {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	_ = w.Write(Header)
	w.Flush()
	return buf.Bytes()
}

func (csvCodec) Encode(w io.Writer, txs []core.Transaction) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return err
	}
	for _, tx := range txs {
		if err := cw.Write(toRecord(tx).fields()); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// Decode skips a leading header row when present. A UTF-8 byte order mark
// written by spreadsheet exports is dropped first.
func (csvCodec) Decode(r io.Reader) ([]core.Transaction, error) {
	rows, err := csv.NewReader(r).ReadAll()
	if err != nil {
		return nil, err
	}
	if len(rows) > 0 && len(rows[0]) > 0 {
		rows[0][0] = strings.TrimPrefix(rows[0][0], "\ufeff")
	}
	if len(rows) > 0 && isHeader(rows[0]) {
		rows = rows[1:]
	}
	records := make([]record, 0, len(rows))
	for _, row := range rows {
		rec, err := recordFromFields(row)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return decodeRecords(records)
}

func isHeader(row []string) bool {
	if len(row) != len(Header) {
		return false
	}
	for i, h := range Header {
		if !strings.EqualFold(strings.TrimSpace(row[i]), h) {
			return false
		}
	}
	return true
}
