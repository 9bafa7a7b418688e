package domain

import "errors"

// Domain errors
var (
	ErrMissingConfiguration = errors.New("missing Appwrite credentials or collection IDs")
	ErrUpstream             = errors.New("document database request failed")
	ErrMalformedPage        = errors.New("malformed document page")
)

// Response messages
const (
	ConfigurationErrorMessage = "Server configuration error: Missing Appwrite credentials or collection IDs."
	ProcessingErrorPrefix     = "Failed to get profit/loss data: "
)
