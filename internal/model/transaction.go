package model

import (
	"crypto/sha256"
	"fmt"
	"time"
)

// TransactionEvent represents a single purchase event from the transaction
// corpus. Identity is (customer, item, date); the corpus is append-only and
// never mutated after ingestion.
type TransactionEvent struct {
	Date       time.Time
	CustomerID string
	ItemID     string
	Hash       string
	Price      float64
	Channel    string // sales channel identifier, passed through
}

// GenerateHash creates a unique hash for duplicate detection on re-ingestion.
func (t *TransactionEvent) GenerateHash() string {
	data := fmt.Sprintf("%s:%s:%s:%.4f",
		t.Date.Format("2006-01-02"),
		t.CustomerID,
		t.ItemID,
		t.Price)
	hash := sha256.Sum256([]byte(data))
	return fmt.Sprintf("%x", hash)
}
