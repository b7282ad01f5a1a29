package logger

import (
	"context"
	"path"
	"time"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// NewGrpcUnaryServerInterceptor는 단일 요청/응답 gRPC 메서드에 대한 로깅 인터셉터를 생성합니다.
func NewGrpcUnaryServerInterceptor(logger *zap.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
		startTime := time.Now()
		resp, err := handler(ctx, req)
		logGrpcCall(logger, "gRPC 요청", info.FullMethod, err, time.Since(startTime))
		return resp, err
	}
}

// NewGrpcStreamServerInterceptor는 스트리밍 gRPC 메서드에 대한 로깅 인터셉터를 생성합니다.
func NewGrpcStreamServerInterceptor(logger *zap.Logger) grpc.StreamServerInterceptor {
	return func(srv interface{}, ss grpc.ServerStream, info *grpc.StreamServerInfo, handler grpc.StreamHandler) error {
		startTime := time.Now()
		err := handler(srv, ss)
		logGrpcCall(logger, "gRPC 스트림", info.FullMethod, err, time.Since(startTime))
		return err
	}
}

// logGrpcCall은 상태 코드에 따라 로그 레벨을 정해 기록합니다.
// 클라이언트 취소나 일시적 장애는 Warn, 그 외 실패는 Error입니다.
func logGrpcCall(logger *zap.Logger, kind, fullMethod string, err error, duration time.Duration) {
	code := status.Code(err)
	fields := []zap.Field{
		zap.String("grpc.service", path.Dir(fullMethod)[1:]),
		zap.String("grpc.method", path.Base(fullMethod)),
		zap.String("grpc.code", code.String()),
		zap.Duration("grpc.duration", duration),
	}

	switch code {
	case codes.OK:
		logger.Info(kind+" 완료", fields...)
	case codes.Canceled, codes.DeadlineExceeded, codes.ResourceExhausted,
		codes.Aborted, codes.Unavailable, codes.DataLoss:
		logger.Warn(kind+" 실패", append(fields, zap.Error(err))...)
	default:
		logger.Error(kind+" 오류", append(fields, zap.Error(err))...)
	}
}
