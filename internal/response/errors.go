package response

// ErrCode is a typed error code enum for consistent API error identification.
type ErrCode string

const (
	// ─── Authentication ────────────────────────────────────────────────
	ErrTokenRequired ErrCode = "TOKEN_REQUIRED"
	ErrTokenInvalid  ErrCode = "TOKEN_INVALID"
	ErrTokenExpired  ErrCode = "TOKEN_EXPIRED"
	ErrForbidden     ErrCode = "FORBIDDEN"

	// ─── Validation ────────────────────────────────────────────────────
	ErrValidation     ErrCode = "VALIDATION_ERROR"
	ErrInvalidID      ErrCode = "INVALID_ID"
	ErrInvalidPayload ErrCode = "INVALID_PAYLOAD"

	// ─── Catalog ───────────────────────────────────────────────────────
	ErrSimuladoNotFound ErrCode = "SIMULADO_NOT_FOUND"
	ErrExamNotFound     ErrCode = "EXAM_NOT_FOUND"

	// ─── Progress ──────────────────────────────────────────────────────
	ErrRecordConflict ErrCode = "RECORD_CONFLICT"

	// ─── Server ────────────────────────────────────────────────────────
	ErrInternal ErrCode = "INTERNAL_ERROR"
)

// GetMessage returns a human-readable message for a given error code.
func GetMessage(code ErrCode) string {
	switch code {
	case ErrTokenRequired:
		return "Token de autenticação necessário."
	case ErrTokenInvalid:
		return "Token de autenticação inválido."
	case ErrTokenExpired:
		return "Token de autenticação expirado."
	case ErrForbidden:
		return "Você não tem permissão para acessar este recurso."
	case ErrValidation:
		return "Validação falhou. Verifique os dados enviados."
	case ErrInvalidID:
		return "Formato de ID inválido."
	case ErrInvalidPayload:
		return "Payload da requisição inválido."
	case ErrSimuladoNotFound:
		return "Simulado não encontrado."
	case ErrExamNotFound:
		return "Exame não encontrado para este simulado."
	case ErrRecordConflict:
		return "Registro de sessão já existente."
	case ErrInternal:
		return "Erro interno do servidor."
	default:
		return "Ocorreu um erro inesperado."
	}
}
