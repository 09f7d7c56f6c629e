package log

import (
	"sort"

	"ledger/internal/core"
)

// Common field names for structured logging
const (
	FieldComponent     = "component"
	FieldError         = "error"
	FieldOperation     = "operation"
	FieldTransactionID = "transaction_id"
	FieldType          = "type"
	FieldCategory      = "category"
	FieldAmount        = "amount"
	FieldDate          = "date"
	FieldCount         = "count"
	FieldPath          = "path"
	FieldFormat        = "format"
	FieldBackend       = "backend"
	FieldExchange      = "exchange"
	FieldRoutingKey    = "routing_key"
)

// Components defines standard component names
const (
	ComponentApp     = "app"
	ComponentLedger  = "ledger"
	ComponentStorage = "storage"
	ComponentAMQP    = "amqp"
	ComponentBackend = "backend"
	ComponentCLI     = "cli"
)

// Operations defines standard operation names
const (
	OpAdd      = "add"
	OpEdit     = "edit"
	OpDelete   = "delete"
	OpClear    = "clear"
	OpLoad     = "load"
	OpSave     = "save"
	OpPublish  = "publish"
	OpValidate = "validate"
	OpStartup  = "startup"
	OpShutdown = "shutdown"
)

// LogFields provides a builder pattern for structured log fields
type LogFields map[string]any

// NewFields creates a new LogFields instance
func NewFields() LogFields {
	return make(LogFields)
}

// WithComponent adds component field
func (f LogFields) WithComponent(component string) LogFields {
	f[FieldComponent] = component
	return f
}

// WithError adds error field
func (f LogFields) WithError(err error) LogFields {
	if err != nil {
		f[FieldError] = err.Error()
	}
	return f
}

// WithOperation adds operation field
func (f LogFields) WithOperation(op string) LogFields {
	f[FieldOperation] = op
	return f
}

// WithTransaction adds the identifying fields of a transaction
func (f LogFields) WithTransaction(tx core.Transaction) LogFields {
	f[FieldTransactionID] = tx.ID
	f[FieldType] = tx.Type.String()
	f[FieldCategory] = tx.Category
	f[FieldAmount] = core.FormatAmount(tx.Amount)
	f[FieldDate] = tx.Date.String()
	return f
}

// WithCount adds count field
func (f LogFields) WithCount(n int) LogFields {
	f[FieldCount] = n
	return f
}

// ToSlice converts LogFields to a slice for slog, ordered by key so output
// is stable.
func (f LogFields) ToSlice() []any {
	keys := make([]string, 0, len(f))
	for k := range f {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	slice := make([]any, 0, len(f)*2)
	for _, k := range keys {
		slice = append(slice, k, f[k])
	}
	return slice
}
