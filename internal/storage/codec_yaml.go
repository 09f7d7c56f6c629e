package storage

import (
	"bytes"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"ledger/internal/core"
)

type yamlRecord struct {
	ID       string     `yaml:"ID"`
	Type     string     `yaml:"Type"`
	Category string     `yaml:"Category"`
	Amount   yamlAmount `yaml:"Amount"`
	Date     string     `yaml:"Date"`
	Note     string     `yaml:"Note"`
}

// yamlAmount keeps the two-decimal text while writing a float scalar.
type yamlAmount string

func (a yamlAmount) MarshalYAML() (interface{}, error) {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!float", Value: string(a)}, nil
}

func (a *yamlAmount) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: amount must be a scalar", value.Line)
	}
	*a = yamlAmount(value.Value)
	return nil
}

type yamlCodec struct{}

func (yamlCodec) Format() Format { return FormatYAML }

func (yamlCodec) Placeholder() []byte { return []byte("[]\n") }

func (yamlCodec) Encode(w io.Writer, txs []core.Transaction) error {
	out := make([]yamlRecord, 0, len(txs))
	for _, tx := range txs {
		r := toRecord(tx)
		out = append(out, yamlRecord{
			ID:       r.ID,
			Type:     r.Type,
			Category: r.Category,
			Amount:   yamlAmount(r.Amount),
			Date:     r.Date,
			Note:     r.Note,
		})
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(out); err != nil {
		return err
	}
	return enc.Close()
}

func (yamlCodec) Decode(r io.Reader) ([]core.Transaction, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	var in []yamlRecord
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&in); err != nil && err != io.EOF {
		return nil, err
	}
	records := make([]record, 0, len(in))
	for _, yr := range in {
		records = append(records, record{
			ID:       yr.ID,
			Type:     yr.Type,
			Category: yr.Category,
			Amount:   string(yr.Amount),
			Date:     yr.Date,
			Note:     yr.Note,
		})
	}
	return decodeRecords(records)
}
