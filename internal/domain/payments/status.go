package payments

import "strings"

var statusTable = map[string]Status{
	"pending":     StatusPending,
	"pendente":    StatusPending,
	"processing":  StatusPending,
	"processando": StatusPending,
	"approved":    StatusApproved,
	"aprovado":    StatusApproved,
	"paid":        StatusApproved,
	"success":     StatusApproved,
	"succeeded":   StatusApproved,
	"completed":   StatusApproved,
	"failed":      StatusFailed,
	"falhou":      StatusFailed,
	"rejected":    StatusFailed,
	"error":       StatusFailed,
	"cancelled":   StatusCancelled,
	"canceled":    StatusCancelled,
	"cancelado":   StatusCancelled,
}

var methodTable = map[string]Method{
	"card":          MethodCard,
	"credit_card":   MethodCard,
	"debit_card":    MethodCard,
	"cartao":        MethodCard,
	"cartão":        MethodCard,
	"pix":           MethodPix,
	"bank_transfer": MethodBankTransfer,
	"transferencia": MethodBankTransfer,
	"transferência": MethodBankTransfer,
	"boleto":        MethodBoleto,
}

// ParseStatus maps an upstream status tag onto the canonical set.
func ParseStatus(raw string) Status {
	if s, ok := statusTable[normalize(raw)]; ok {
		return s
	}
	return StatusUnknown
}

// ParseMethod maps an upstream payment method; anything unrecognised is MethodOther.
func ParseMethod(raw string) Method {
	if m, ok := methodTable[normalize(raw)]; ok {
		return m
	}
	return MethodOther
}

func normalize(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}
