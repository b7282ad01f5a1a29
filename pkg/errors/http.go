package errors

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// ToHTTPStatus는 에러 코드를 HTTP 상태 코드로 변환합니다
func ToHTTPStatus(code string) int {
	httpStatus, _ := GetCodeMapping(code)
	return httpStatus
}

// ToHTTPError는 에러를 Echo HTTP 에러로 변환합니다.
// 내부 원인은 응답에 노출하지 않습니다.
func ToHTTPError(err error) *echo.HTTPError {
	if err == nil {
		return nil
	}

	var appErr *AppError
	if As(err, &appErr) {
		return echo.NewHTTPError(ToHTTPStatus(appErr.Code()), echo.Map{
			"error": appErr.Message(),
			"code":  appErr.Code(),
		}).SetInternal(err)
	}

	var echoErr *echo.HTTPError
	if As(err, &echoErr) {
		return echoErr
	}

	return echo.NewHTTPError(http.StatusInternalServerError, echo.Map{
		"error": http.StatusText(http.StatusInternalServerError),
		"code":  ErrInternal,
	}).SetInternal(err)
}
