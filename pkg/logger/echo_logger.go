// File: pkg/logger/echo_logger.go
package logger

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

// NewEchoRequestLogger는 zap으로 HTTP 요청/응답을 기록하는 Echo 미들웨어를 생성합니다.
// /health, /metrics 요청은 기록하지 않습니다.
func NewEchoRequestLogger(logger *zap.Logger) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		Skipper: func(c echo.Context) bool {
			path := c.Request().URL.Path
			return path == "/health" || path == "/metrics"
		},
		HandleError:  true,
		LogLatency:   true,
		LogRemoteIP:  true,
		LogMethod:    true,
		LogURIPath:   true,
		LogRoutePath: true,
		LogRequestID: true,
		LogUserAgent: true,
		LogStatus:    true,
		LogError:     true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			fields := []zap.Field{
				zap.String("request.remote_ip", v.RemoteIP),
				zap.String("request.method", v.Method),
				zap.String("request.path", v.URIPath),
				zap.String("request.route", v.RoutePath),
				zap.String("request.request_id", v.RequestID),
				zap.String("request.user_agent", v.UserAgent),
				zap.Int("response.status", v.Status),
				zap.Duration("response.latency", v.Latency),
			}

			// 인증 미들웨어가 설정한 사용자 ID
			if userID, ok := c.Get("user_id").(string); ok && userID != "" {
				fields = append(fields, zap.String("request.user_id", userID))
			}

			switch {
			case v.Error != nil:
				logger.Error("Request failed", append(fields, zap.Error(v.Error))...)
			case v.Status >= http.StatusInternalServerError:
				logger.Error("Server error", fields...)
			case v.Status >= http.StatusBadRequest:
				logger.Warn("Client error", fields...)
			default:
				logger.Info("Request completed", fields...)
			}
			return nil
		},
	})
}

// WithEchoLogger는 Echo에 zap 기반 에러 핸들러를 설정합니다.
func WithEchoLogger(e *echo.Echo, logger *zap.Logger) {
	e.HTTPErrorHandler = func(err error, c echo.Context) {
		code := http.StatusInternalServerError
		var body interface{} = map[string]interface{}{
			"error": http.StatusText(code),
		}

		if he, ok := err.(*echo.HTTPError); ok {
			code = he.Code
			switch msg := he.Message.(type) {
			case string:
				body = map[string]interface{}{"error": msg}
			case nil:
				body = map[string]interface{}{"error": http.StatusText(code)}
			default:
				body = msg
			}
			if he.Internal != nil {
				err = he.Internal
			}
		}

		fields := []zap.Field{
			zap.Error(err),
			zap.Int("status", code),
			zap.String("method", c.Request().Method),
			zap.String("path", c.Request().URL.Path),
			zap.String("ip", c.RealIP()),
		}
		if code >= http.StatusInternalServerError {
			logger.Error("HTTP error", fields...)
		} else {
			logger.Warn("HTTP error", fields...)
		}

		if c.Response().Committed {
			return
		}
		if c.Request().Method == http.MethodHead {
			err = c.NoContent(code)
		} else {
			err = c.JSON(code, body)
		}
		if err != nil {
			logger.Error("Failed to send error response", zap.Error(err))
		}
	}
}
