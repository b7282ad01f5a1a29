package errors

import (
	"errors"
	"fmt"
)

// 표준 라이브러리 함수 재노출
var (
	New    = errors.New
	Unwrap = errors.Unwrap
	Is     = errors.Is
	As     = errors.As
)

// Error는 코드를 가진 애플리케이션 에러 인터페이스입니다
type Error interface {
	error
	Code() string
	Unwrap() error
}

// AppError는 기본 에러 구현체입니다
type AppError struct {
	code    string
	message string
	err     error
}

func (e *AppError) Error() string {
	if e.err != nil {
		return fmt.Sprintf("%s: %s", e.message, e.err.Error())
	}
	return e.message
}

func (e *AppError) Code() string {
	return e.code
}

// Message는 내부 에러를 제외한 메시지만 반환합니다 (클라이언트 응답용)
func (e *AppError) Message() string {
	return e.message
}

func (e *AppError) Unwrap() error {
	return e.err
}

// NewAppError는 새 애플리케이션 에러를 생성합니다
func NewAppError(code string, message string, err error) *AppError {
	return &AppError{
		code:    code,
		message: message,
		err:     err,
	}
}

// InvalidArgument는 잘못된 요청 에러를 생성합니다
func InvalidArgument(message string, err error) *AppError {
	return NewAppError(ErrInvalidArgument, message, err)
}

// Internal은 내부 서버 에러를 생성합니다
func Internal(message string, err error) *AppError {
	return NewAppError(ErrInternal, message, err)
}

// Wrap은 기존 에러를 래핑합니다. 기존 AppError의 코드는 유지됩니다
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}

	var appErr *AppError
	if As(err, &appErr) {
		return NewAppError(appErr.Code(), message, err)
	}

	return NewAppError(ErrInternal, message, err)
}

// CodeOf는 에러 체인에서 AppError 코드를 찾아 반환합니다. 없으면 Internal입니다
func CodeOf(err error) string {
	var appErr *AppError
	if As(err, &appErr) {
		return appErr.Code()
	}
	return ErrInternal
}
