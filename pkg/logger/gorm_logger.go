package logger

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// GormLogger는 gorm의 logger.Interface를 구현하며 모든 GORM 로그를 zap으로 기록합니다.
type GormLogger struct {
	logger *zap.Logger
	// LogLevel은 기록할 로그의 최소 레벨입니다 (Silent, Error, Warn, Info)
	LogLevel gormlogger.LogLevel
	// SlowThreshold보다 오래 걸린 쿼리는 Warn 레벨로 기록합니다. 0이면 사용하지 않습니다.
	SlowThreshold time.Duration
	// IgnoreRecordNotFoundError가 true이면 gorm.ErrRecordNotFound는 기록하지 않습니다.
	IgnoreRecordNotFoundError bool
}

// NewGormLogger는 zap 로거를 감싼 GORM 로거를 생성합니다.
func NewGormLogger(logger *zap.Logger, level gormlogger.LogLevel, slowThreshold time.Duration, ignoreRecordNotFoundError bool) *GormLogger {
	return &GormLogger{
		logger:                    logger.Named("gorm"),
		LogLevel:                  level,
		SlowThreshold:             slowThreshold,
		IgnoreRecordNotFoundError: ignoreRecordNotFoundError,
	}
}

// LogMode는 로그 레벨을 변경한 새 로거를 반환합니다.
func (l *GormLogger) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	newLogger := *l
	newLogger.LogLevel = level
	return &newLogger
}

func (l *GormLogger) Info(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= gormlogger.Info {
		l.logger.Sugar().Infof(msg, data...)
	}
}

func (l *GormLogger) Warn(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= gormlogger.Warn {
		l.logger.Sugar().Warnf(msg, data...)
	}
}

func (l *GormLogger) Error(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= gormlogger.Error {
		l.logger.Sugar().Errorf(msg, data...)
	}
}

// Trace는 쿼리 실행 시간, SQL, 영향받은 행 수, 에러를 기록합니다.
func (l *GormLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.LogLevel <= gormlogger.Silent {
		return
	}

	elapsed := time.Since(begin)
	sql, rows := fc()
	fields := []zap.Field{
		zap.Duration("elapsed", elapsed),
		zap.String("sql", sql),
		zap.Int64("rows", rows),
	}

	switch {
	case err != nil && l.LogLevel >= gormlogger.Error &&
		(!l.IgnoreRecordNotFoundError || !errors.Is(err, gorm.ErrRecordNotFound)):
		l.logger.Error("GORM query error", append(fields, zap.Error(err))...)
	case l.SlowThreshold != 0 && elapsed > l.SlowThreshold && l.LogLevel >= gormlogger.Warn:
		l.logger.Warn("GORM slow query", fields...)
	case l.LogLevel >= gormlogger.Info:
		l.logger.Debug("GORM query", fields...)
	}
}
