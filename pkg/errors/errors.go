package errors

import "fmt"

var (
	// JWT e tokens
	ErrInvalidSigningMethod = fmt.Errorf("método de assinatura do token inválido")
	ErrInvalidToken         = fmt.Errorf("token inválido")
	ErrTokenExpired         = fmt.Errorf("token expirado")
	ErrTokenIsNotRefresh    = fmt.Errorf("o token não é um refresh token")
	ErrTokenIsNotAccess     = fmt.Errorf("o token não é um access token")

	// Autenticação / autorização
	ErrEmptyAuthHeader    = fmt.Errorf("cabeçalho de autorização ausente")
	ErrInvalidAuthHeader  = fmt.Errorf("formato do cabeçalho de autorização inválido")
	ErrInvalidCredentials = fmt.Errorf("credenciais inválidas")
	ErrUnauthorized       = fmt.Errorf("não autenticado")
	ErrForbidden          = fmt.Errorf("acesso negado")

	// Resolução de entidades
	ErrNotFound  = fmt.Errorf("registro não encontrado")
	ErrAmbiguous = fmt.Errorf("mais de um registro corresponde ao critério informado")

	// Contexto
	ErrIdentityNotFoundInContext = fmt.Errorf("identidade não encontrada no contexto da requisição")
)

// InvalidInputError - erro de validação detectado antes de qualquer chamada ao banco.
type InvalidInputError struct {
	Message string
}

func (e *InvalidInputError) Error() string { return e.Message }

func NewInvalidInputError(format string, args ...interface{}) error {
	return &InvalidInputError{Message: fmt.Sprintf(format, args...)}
}

// HistoryWriteError - o status já foi gravado mas o registro de histórico falhou.
// Não há transação entre as duas escritas; a falha é reportada sem rollback.
type HistoryWriteError struct {
	Err error
}

func (e *HistoryWriteError) Error() string {
	return fmt.Sprintf("status atualizado, mas falha ao registrar histórico: %v", e.Err)
}

func (e *HistoryWriteError) Unwrap() error { return e.Err }

// HttpError - erro com código HTTP para a camada de transporte.
type HttpError struct {
	Code    int
	Message string
	Err     error
	Details interface{}
}

func (e *HttpError) Error() string { return e.Message }

func (e *HttpError) Unwrap() error { return e.Err }

func NewHttpError(code int, message string, err error, details interface{}) *HttpError {
	return &HttpError{Code: code, Message: message, Err: err, Details: details}
}
