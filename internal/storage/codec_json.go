package storage

import (
	"encoding/json"
	"io"

	"ledger/internal/core"
)

type jsonRecord struct {
	ID       string      `json:"ID"`
	Type     string      `json:"Type"`
	Category string      `json:"Category"`
	Amount   json.Number `json:"Amount"`
	Date     string      `json:"Date"`
	Note     string      `json:"Note"`
}

type jsonCodec struct{}

func (jsonCodec) Format() Format { return FormatJSON }

func (jsonCodec) Placeholder() []byte { return []byte("[]\n") }

func (jsonCodec) Encode(w io.Writer, txs []core.Transaction) error {
	out := make([]jsonRecord, 0, len(txs))
	for _, tx := range txs {
		r := toRecord(tx)
		out = append(out, jsonRecord{
			ID:       r.ID,
			Type:     r.Type,
			Category: r.Category,
			Amount:   json.Number(r.Amount),
			Date:     r.Date,
			Note:     r.Note,
		})
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func (jsonCodec) Decode(r io.Reader) ([]core.Transaction, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	var in []jsonRecord
	if err := json.Unmarshal(data, &in); err != nil {
		return nil, err
	}
	records := make([]record, 0, len(in))
	for _, jr := range in {
		records = append(records, record{
			ID:       jr.ID,
			Type:     jr.Type,
			Category: jr.Category,
			Amount:   jr.Amount.String(),
			Date:     jr.Date,
			Note:     jr.Note,
		})
	}
	return decodeRecords(records)
}
