package models

import "errors"

var (
	ErrDuplicatePair   = errors.New("recipe requirement for this menu item and ingredient already exists")
	ErrInvalidQuantity = errors.New("quantity must be at least 1")
	ErrInvalidUnit     = errors.New("measurement unit must be one of grams, liters, pieces")
)
