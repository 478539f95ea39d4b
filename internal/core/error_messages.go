package core

// error_messages.go maps technical errors to user-friendly messages with
// codes for support reference. Users quote the code; support looks it up here.
//
// # Source Errors (SRC001-SRC099)
//
//	SRC001 - Source unreachable
//	SRC002 - Bad status: the source answered with a non-success status
//	SRC003 - Timeout
//	SRC004 - Not found: object, file or sheet missing (DATASET_URL)
//
// # Payload Errors (CSV001-CSV099)
//
//	CSV001 - Malformed: not delimited text, or a quote left open
//	CSV002 - Empty: no header row
//	CSV003 - Ragged row: more fields than the header
//	CSV004 - Too large: over DATASET_MAX_BYTES
//
// # Other
//
//	QRY001  - Search cancelled before it completed
//	RATE001 - Too many requests
//	ERR000  - Fallback when nothing else matches; check the logs
//
// Typed errors (*FetchError, *ParseError) are classified first. Anything
// else falls through to the pattern table, matched case-insensitively with
// strings.Contains; the first matching pattern wins.
//
// Messages are in Spanish, the language of the front-end.

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// UserMessage provides user-friendly error information with actionable guidance.
type UserMessage struct {
	Message string // What happened (user-friendly)
	Action  string // What to do about it
	Code    string // Error code for support reference
}

var (
	msgUnreachable = UserMessage{
		Message: "No se pudo conectar con el registro de empresas",
		Action:  "Verifique su conexión y busque de nuevo",
		Code:    "SRC001",
	}
	msgBadStatus = UserMessage{
		Message: "El registro de empresas respondió con un error",
		Action:  "Busque de nuevo en unos momentos",
		Code:    "SRC002",
	}
	msgTimeout = UserMessage{
		Message: "El registro de empresas tardó demasiado en responder",
		Action:  "Busque de nuevo en unos momentos",
		Code:    "SRC003",
	}
	msgNotFound = UserMessage{
		Message: "El registro de empresas configurado no existe",
		Action:  "Pida a un administrador que revise DATASET_URL",
		Code:    "SRC004",
	}
	msgMalformed = UserMessage{
		Message: "Los datos del registro no forman una tabla válida",
		Action:  "Pida a un administrador que revise la exportación de origen",
		Code:    "CSV001",
	}
	msgEmpty = UserMessage{
		Message: "El registro no devolvió datos",
		Action:  "Pida a un administrador que revise la exportación de origen",
		Code:    "CSV002",
	}
	msgRagged = UserMessage{
		Message: "Una fila del registro tiene más campos que el encabezado",
		Action:  "Pida a un administrador que revise la exportación de origen",
		Code:    "CSV003",
	}
	msgTooLarge = UserMessage{
		Message: "Los datos del registro superan el tamaño máximo configurado",
		Action:  "Pida a un administrador que aumente DATASET_MAX_BYTES",
		Code:    "CSV004",
	}
	msgCancelled = UserMessage{
		Message: "La búsqueda fue cancelada",
		Action:  "Busque de nuevo",
		Code:    "QRY001",
	}
)

// defaultMessage is returned when no pattern matches.
var defaultMessage = UserMessage{
	Message: "Ocurrió un error inesperado",
	Action:  "Intente de nuevo o contacte a soporte",
	Code:    "ERR000",
}

// errorPattern defines a pattern to match and its corresponding user message.
type errorPattern struct {
	pattern string
	msg     UserMessage
}

// errorPatterns covers errors that reach MapError untyped.
// More specific patterns come first.
var errorPatterns = []errorPattern{
	{pattern: "context deadline exceeded", msg: msgTimeout},
	{pattern: "timeout", msg: msgTimeout},
	{pattern: "context canceled", msg: msgCancelled},
	{pattern: "connection refused", msg: msgUnreachable},
	{pattern: "no such host", msg: msgUnreachable},
	{pattern: "connection reset", msg: msgUnreachable},
	{pattern: "no such file", msg: msgNotFound},
	{pattern: "nosuchkey", msg: msgNotFound},
	{pattern: "payload too large", msg: msgTooLarge},
	{pattern: "empty payload", msg: msgEmpty},
	{pattern: "more fields than the header", msg: msgRagged},
	{pattern: "parse dataset", msg: msgMalformed},
	{
		pattern: "rate limit",
		msg: UserMessage{
			Message: "Demasiadas solicitudes",
			Action:  "Espere un momento antes de intentarlo de nuevo",
			Code:    "RATE001",
		},
	},
}

// MapError converts a technical error to a user-friendly message.
// Returns an empty UserMessage for a nil error.
func MapError(err error) UserMessage {
	if err == nil {
		return UserMessage{}
	}

	var fe *FetchError
	if errors.As(err, &fe) {
		return mapFetchError(fe)
	}

	var pe *ParseError
	if errors.As(err, &pe) {
		return mapParseError(pe)
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return msgTimeout
	}
	if errors.Is(err, context.Canceled) {
		return msgCancelled
	}

	return matchPattern(err.Error())
}

func mapFetchError(fe *FetchError) UserMessage {
	switch {
	case fe.StatusCode == http.StatusNotFound:
		return msgNotFound
	case fe.StatusCode != 0:
		return msgBadStatus
	case errors.Is(fe.Err, context.DeadlineExceeded):
		return msgTimeout
	case errors.Is(fe.Err, context.Canceled):
		return msgCancelled
	}
	if fe.Err != nil {
		if msg := matchPattern(fe.Err.Error()); msg.Code != defaultMessage.Code {
			return msg
		}
	}
	return msgUnreachable
}

func mapParseError(pe *ParseError) UserMessage {
	switch {
	case errors.Is(pe.Err, ErrEmptyPayload):
		return msgEmpty
	case errors.Is(pe.Err, ErrRaggedRow):
		return msgRagged
	case errors.Is(pe.Err, ErrPayloadTooLarge):
		return msgTooLarge
	}
	return msgMalformed
}

func matchPattern(text string) UserMessage {
	text = strings.ToLower(text)
	for _, ep := range errorPatterns {
		if strings.Contains(text, ep.pattern) {
			return ep.msg
		}
	}
	return defaultMessage
}

// FormatUserError creates a formatted error string for display.
// The format is: "Message (Código: XXX). Action"
func FormatUserError(err error) string {
	msg := MapError(err)
	if msg.Message == "" {
		return ""
	}
	return fmt.Sprintf("%s (Código: %s). %s", msg.Message, msg.Code, msg.Action)
}

// IsUserFacing reports whether err maps to a specific message rather than ERR000.
func IsUserFacing(err error) bool {
	if err == nil {
		return false
	}
	return MapError(err).Code != defaultMessage.Code
}
