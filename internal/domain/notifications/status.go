package notifications

import "strings"

var statusTable = map[string]Status{
	"pending":    StatusPending,
	"pendente":   StatusPending,
	"processing": StatusPending,
	"sending":    StatusPending,
	"enviando":   StatusPending,
	"sent":       StatusSent,
	"enviado":    StatusSent,
	"delivered":  StatusDelivered,
	"entregue":   StatusDelivered,
	"read":       StatusRead,
	"lido":       StatusRead,
	"failed":     StatusFailed,
	"error":      StatusFailed,
	"falhou":     StatusFailed,
}

var typeTable = map[string]Type{
	string(TypeEmail):   TypeEmail,
	string(TypeSMS):     TypeSMS,
	string(TypePush):    TypePush,
	string(TypeWebhook): TypeWebhook,
	string(TypeOrder):   TypeOrder,
	string(TypePayment): TypePayment,
}

// ParseStatus maps an upstream status tag onto the canonical set.
func ParseStatus(raw string) Status {
	if s, ok := statusTable[normalize(raw)]; ok {
		return s
	}
	return StatusUnknown
}

// ParseType maps an upstream type; anything unrecognised is TypeOther.
func ParseType(raw string) Type {
	if t, ok := typeTable[normalize(raw)]; ok {
		return t
	}
	return TypeOther
}

func normalize(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}
