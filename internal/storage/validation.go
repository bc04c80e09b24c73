package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/tanya972/ThreadLife/internal/model"
)

// Validation errors.
var (
	ErrNilContext    = errors.New("context cannot be nil")
	ErrEmptyString   = errors.New("string parameter cannot be empty")
	ErrNilParameter  = errors.New("parameter cannot be nil")
	ErrEmptySlice    = errors.New("slice cannot be empty")
	ErrInvalidItem   = errors.New("invalid catalog item")
	ErrInvalidEvent  = errors.New("invalid transaction event")
	ErrInvalidLabel  = errors.New("invalid synthetic label")
	ErrInvalidReport = errors.New("invalid validation report")
)

// validateContext ensures the context is not nil.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

// validateString ensures a string parameter is not empty.
func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

// validateItems validates a slice of catalog items.
func validateItems(items []model.CatalogItem) error {
	if items == nil {
		return fmt.Errorf("%w: items", ErrNilParameter)
	}
	if len(items) == 0 {
		return fmt.Errorf("%w: items", ErrEmptySlice)
	}
	for i, item := range items {
		if item.ID == "" {
			return fmt.Errorf("item at index %d: %w: missing ID", i, ErrInvalidItem)
		}
		if item.Category == "" {
			return fmt.Errorf("item at index %d: %w: missing category", i, ErrInvalidItem)
		}
	}
	return nil
}

// validateEvents validates a slice of transaction events.
func validateEvents(events []model.TransactionEvent) error {
	if events == nil {
		return fmt.Errorf("%w: events", ErrNilParameter)
	}
	if len(events) == 0 {
		return fmt.Errorf("%w: events", ErrEmptySlice)
	}
	for i, event := range events {
		if event.Date.IsZero() {
			return fmt.Errorf("event at index %d: %w: missing date", i, ErrInvalidEvent)
		}
		if event.CustomerID == "" {
			return fmt.Errorf("event at index %d: %w: missing customer ID", i, ErrInvalidEvent)
		}
		if event.ItemID == "" {
			return fmt.Errorf("event at index %d: %w: missing item ID", i, ErrInvalidEvent)
		}
	}
	return nil
}

// validateLabels validates a slice of synthetic labels.
func validateLabels(labels []model.SyntheticLabel) error {
	if labels == nil {
		return fmt.Errorf("%w: labels", ErrNilParameter)
	}
	for i, label := range labels {
		if label.ItemID == "" {
			return fmt.Errorf("label at index %d: %w: missing item ID", i, ErrInvalidLabel)
		}
		if label.LifespanMonths < 0 {
			return fmt.Errorf("label at index %d: %w: negative lifespan", i, ErrInvalidLabel)
		}
	}
	return nil
}
