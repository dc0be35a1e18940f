package service

import "fmt"

// Business error codes mapped to HTTP status at the handler boundary.
const (
	CodeValidation   = "VALIDATION_ERROR"
	CodeConflict     = "CONFLICT"
	CodeUnauthorized = "UNAUTHORIZED"
	CodeNotFound     = "NOT_FOUND"
)

// User-facing messages. The frontend is Korean-only.
const (
	MsgMissingFields      = "모든 필드를 입력해주세요."
	MsgMissingCredentials = "사용자명과 비밀번호를 입력해주세요."
	MsgUsernameTaken      = "이미 존재하는 사용자명입니다."
	MsgEmailTaken         = "이미 존재하는 이메일입니다."
	MsgBadCredentials     = "사용자명 또는 비밀번호가 잘못되었습니다."
	MsgLoginRequired      = "로그인이 필요합니다."
	MsgTaskNotFound       = "작업을 찾을 수 없습니다."
	MsgMissingTaskFields  = "제목과 카테고리를 입력해주세요."
	MsgTitleTooLong       = "제목은 200자를 넘을 수 없습니다."
	MsgBadDueDate         = "마감일 형식이 잘못되었습니다. (YYYY-MM-DD)"
)

type BusinessError struct {
	Code    string
	Message string
	Details map[string]any
	Err     error
}

func (b *BusinessError) Error() string {
	if b.Err != nil {
		return fmt.Sprintf("[%s] %s: %s", b.Code, b.Message, b.Err.Error())
	}
	return fmt.Sprintf("[%s] %s", b.Code, b.Message)
}

func (b *BusinessError) Unwrap() error {
	return b.Err
}

func NewValidationError(message string) *BusinessError {
	return &BusinessError{Code: CodeValidation, Message: message}
}

func NewConflict(message string) *BusinessError {
	return &BusinessError{Code: CodeConflict, Message: message}
}

func NewAuthError(message string) *BusinessError {
	return &BusinessError{Code: CodeUnauthorized, Message: message}
}

func NewNotFound(message string) *BusinessError {
	return &BusinessError{Code: CodeNotFound, Message: message}
}
