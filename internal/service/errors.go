package service

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// Sentinel errors the delivery layer maps onto HTTP statuses. Services
// wrap them with fmt.Errorf("%w: ...") so the detail survives the trip.
var (
	ErrNotFound    = errors.New("not found")
	ErrValidation  = errors.New("validation failed")
	ErrPersistence = errors.New("persistence failure")
)

// wrapFind translates a repository read error. Missing rows become
// ErrNotFound with the entity named, everything else is a persistence
// failure.
func wrapFind(err error, entity, id string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: %s %s", ErrNotFound, entity, id)
	}
	return fmt.Errorf("%w: %v", ErrPersistence, err)
}

func wrapWrite(err error) error {
	return fmt.Errorf("%w: %v", ErrPersistence, err)
}
