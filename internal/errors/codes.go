// Package errors provides the coded domain errors surfaced to users.
package errors

import "net/http"

// Code is a machine-readable error code.
type Code string

const (
	// CodeInternal covers every failure not classified below.
	CodeInternal Code = "INTERNAL"

	CodeInvalidAddress Code = "INVALID_ADDRESS_FORMAT"
	CodeNoRecords      Code = "NO_RECORDS_FOUND"
	CodeUpstreamFetch  Code = "UPSTREAM_FETCH_FAILURE"
	CodeSchemaMismatch Code = "SCHEMA_MISMATCH"
	CodeUnknownEngine  Code = "UNKNOWN_ENGINE"
)

// HTTPStatus maps domain codes to HTTP status codes.
func (c Code) HTTPStatus() int {
	switch c {
	case CodeInvalidAddress:
		return http.StatusBadRequest
	case CodeNoRecords:
		return http.StatusNotFound
	case CodeUpstreamFetch, CodeSchemaMismatch:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// UserMessage is the text shown to the person who typed the address.
func (c Code) UserMessage() string {
	switch c {
	case CodeInvalidAddress:
		return `Not a valid address. Please enter a valid 42-character hexadecimal Ethereum address starting with "0x"`
	case CodeNoRecords:
		return "Sorry, no records found for this address. Please try another address."
	case CodeUpstreamFetch:
		return "The donation dataset could not be retrieved. Please try again later."
	case CodeSchemaMismatch:
		return "The donation dataset has an unexpected format."
	default:
		return "Something went wrong while compiling your results."
	}
}
