// File: pkg/logger/zap.go
package logger

import (
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config 로거 설정
type Config struct {
	// Level 로그 레벨 (debug, info, warn, error, dpanic, panic, fatal)
	Level string
	// Format 로그 포맷 (json, console)
	Format string
	// Output 로그 출력 대상 (stdout, stderr, file)
	Output string
	// FilePath 파일로 출력할 경우 파일 경로
	FilePath string
	// Development 개발 모드 여부
	Development bool
}

// ParseLevel은 문자열 레벨을 zapcore 레벨로 변환합니다. 알 수 없는 값은 info입니다.
func ParseLevel(level string) zapcore.Level {
	var l zapcore.Level
	if err := l.UnmarshalText([]byte(strings.ToLower(level))); err != nil {
		return zapcore.InfoLevel
	}
	return l
}

// NewZapLogger 새로운 zap 로거를 생성합니다.
func NewZapLogger(config Config) (*zap.Logger, error) {
	level := zap.NewAtomicLevelAt(ParseLevel(config.Level))

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.TimeKey = "@timestamp"
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderConfig.LevelKey = "log.level"
	encoderConfig.MessageKey = "message"
	encoderConfig.CallerKey = "caller"

	if config.Development {
		encoderConfig = zap.NewDevelopmentEncoderConfig()
		encoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	var encoder zapcore.Encoder
	if config.Format == "console" {
		encoder = zapcore.NewConsoleEncoder(encoderConfig)
	} else {
		encoder = zapcore.NewJSONEncoder(encoderConfig)
	}

	writeSyncer, err := newWriteSyncer(config)
	if err != nil {
		return nil, err
	}

	logger := zap.New(zapcore.NewCore(encoder, writeSyncer, level))

	// 개발 모드이면 호출자 정보 추가
	if config.Development {
		logger = logger.WithOptions(zap.AddCaller())
	}

	return logger.WithOptions(zap.AddStacktrace(zapcore.ErrorLevel)), nil
}

func newWriteSyncer(config Config) (zapcore.WriteSyncer, error) {
	switch config.Output {
	case "stderr":
		return zapcore.AddSync(os.Stderr), nil
	case "file":
		if config.FilePath == "" {
			return zapcore.AddSync(os.Stdout), nil
		}
		file, err := os.OpenFile(config.FilePath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
		if err != nil {
			return nil, err
		}
		return zapcore.AddSync(file), nil
	default:
		return zapcore.AddSync(os.Stdout), nil
	}
}

// DefaultZapLogger 기본 설정으로 zap 로거를 생성합니다.
func DefaultZapLogger() *zap.Logger {
	logger, err := NewZapLogger(Config{Level: "info", Format: "json", Output: "stdout"})
	if err != nil {
		return zap.NewExample()
	}
	return logger
}
