package amqp

import (
	"encoding/json"
	"time"

	"ledger/internal/core"
)

// Action names the ledger change an event describes. It is also the last
// segment of the routing key.
type Action string

const (
	ActionAdded   Action = "added"
	ActionEdited  Action = "edited"
	ActionDeleted Action = "deleted"
	ActionCleared Action = "cleared"
	ActionSaved   Action = "saved"
)

// TransactionPayload is the wire form of a transaction inside an event.
type TransactionPayload struct {
	ID       string `json:"id"`
	Type     string `json:"type"`
	Category string `json:"category"`
	Amount   string `json:"amount"`
	Date     string `json:"date"`
	Note     string `json:"note,omitempty"`
}

// TransactionEvent is published after every ledger change. Transaction is set
// for added, edited and deleted; Count for cleared and saved.
type TransactionEvent struct {
	Action      Action              `json:"action"`
	Transaction *TransactionPayload `json:"transaction,omitempty"`
	Count       int                 `json:"count"`
	Timestamp   time.Time           `json:"timestamp"`
}

// NewTransactionEvent describes a change to a single transaction.
func NewTransactionEvent(action Action, tx core.Transaction) *TransactionEvent {
	return &TransactionEvent{
		Action: action,
		Transaction: &TransactionPayload{
			ID:       tx.ID,
			Type:     tx.Type.String(),
			Category: tx.Category,
			Amount:   core.FormatAmount(tx.Amount),
			Date:     tx.Date.String(),
			Note:     tx.Note,
		},
		Timestamp: time.Now(),
	}
}

// NewCountEvent describes a change to the whole ledger.
func NewCountEvent(action Action, count int) *TransactionEvent {
	return &TransactionEvent{
		Action:    action,
		Count:     count,
		Timestamp: time.Now(),
	}
}

// ToJSON converts the event to JSON bytes
func (e *TransactionEvent) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

// TransactionEventFromJSON decodes an event published by Client.
func TransactionEventFromJSON(data []byte) (*TransactionEvent, error) {
	var e TransactionEvent
	if err := json.Unmarshal(data, &e); err != nil {
		return nil, err
	}
	return &e, nil
}
