package orders

import "strings"

var statusTable = map[string]Status{
	"pending":     StatusPending,
	"pendente":    StatusPending,
	"created":     StatusPending,
	"new":         StatusPending,
	"processing":  StatusProcessing,
	"processando": StatusProcessing,
	"completed":   StatusCompleted,
	"complete":    StatusCompleted,
	"concluido":   StatusCompleted,
	"concluído":   StatusCompleted,
	"aprovado":    StatusCompleted,
	"approved":    StatusCompleted,
	"paid":        StatusCompleted,
	"failed":      StatusFailed,
	"falhou":      StatusFailed,
	"rejected":    StatusFailed,
	"cancelled":   StatusCancelled,
	"canceled":    StatusCancelled,
	"cancelado":   StatusCancelled,
}

// ParseStatus maps an upstream status tag onto the canonical set.
func ParseStatus(raw string) Status {
	if s, ok := statusTable[strings.ToLower(strings.TrimSpace(raw))]; ok {
		return s
	}
	return StatusUnknown
}
