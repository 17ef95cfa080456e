package domain

import "errors"

var (
	// Common domain errors
	ErrNotFound           = errors.New("entity not found")
	ErrInvalidArgument    = errors.New("invalid argument")
	ErrSessionNotFound    = errors.New("funnel session not found")
	ErrNoPlanMatch        = errors.New("no plan matches the current selection")
	ErrValidation         = errors.New("validation failed")
	ErrQuotaExhausted     = errors.New("all allowed dependents are already registered")
	ErrNoRedirectURL      = errors.New("submission accepted but no redirect url returned")
	ErrUpstreamRejected   = errors.New("upstream webhook rejected the submission")
	ErrCatalogUnavailable = errors.New("plan catalog unavailable")
)
