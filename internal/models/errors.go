package models

import "errors"

// Sentinel errors surfaced by repositories and controllers so handlers can
// map them to response codes without string matching.
var (
	ErrNotFound         = errors.New("record not found")
	ErrValidation       = errors.New("validation failed")
	ErrConflict         = errors.New("conflict")
	ErrAlreadyProcessed = errors.New("lab result already processed")
	ErrNotConnected     = errors.New("service not connected")
)
