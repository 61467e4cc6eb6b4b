package handler

import (
	"context"
	"strings"
	"time"

	"github.com/ogurasousui/onboarding-tracker/internal/core/auth"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

const (
	authorizationHeader = "authorization"
	bearerPrefix        = "bearer "
)

// AuthGuard は保護対象サービスへの呼び出しにセッショントークンを要求します。
type AuthGuard struct {
	authn     auth.Authenticator
	protected map[string]bool
}

// NewAuthGuard は AuthGuard を生成します。services は保護対象のサービス名です。
func NewAuthGuard(authn auth.Authenticator, services ...string) *AuthGuard {
	protected := make(map[string]bool, len(services))
	for _, s := range services {
		protected[s] = true
	}
	return &AuthGuard{authn: authn, protected: protected}
}

// Unary は単項呼び出し用のインターセプターです。
func (g *AuthGuard) Unary() grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		if !g.requiresAuth(info.FullMethod) {
			return handler(ctx, req)
		}
		authed, err := g.authenticate(ctx)
		if err != nil {
			return nil, err
		}
		return handler(authed, req)
	}
}

// Stream はストリーム呼び出し用のインターセプターです。
func (g *AuthGuard) Stream() grpc.StreamServerInterceptor {
	return func(srv any, ss grpc.ServerStream, info *grpc.StreamServerInfo, handler grpc.StreamHandler) error {
		if !g.requiresAuth(info.FullMethod) {
			return handler(srv, ss)
		}
		authed, err := g.authenticate(ss.Context())
		if err != nil {
			return err
		}
		return handler(srv, &authedStream{ServerStream: ss, ctx: authed})
	}
}

func (g *AuthGuard) requiresAuth(fullMethod string) bool {
	// "/package.Service/Method"
	trimmed := strings.TrimPrefix(fullMethod, "/")
	service, _, ok := strings.Cut(trimmed, "/")
	return ok && g.protected[service]
}

func (g *AuthGuard) authenticate(ctx context.Context) (context.Context, error) {
	token := bearerToken(ctx)
	if token == "" {
		return nil, toStatusError(auth.ErrUnauthenticated)
	}
	op, err := g.authn.Authenticate(ctx, token)
	if err != nil {
		return nil, toStatusError(err)
	}
	return auth.ContextWithOperator(ctx, op), nil
}

func bearerToken(ctx context.Context) string {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return ""
	}
	for _, v := range md.Get(authorizationHeader) {
		if len(v) > len(bearerPrefix) && strings.EqualFold(v[:len(bearerPrefix)], bearerPrefix) {
			return strings.TrimSpace(v[len(bearerPrefix):])
		}
	}
	return ""
}

type authedStream struct {
	grpc.ServerStream
	ctx context.Context
}

func (s *authedStream) Context() context.Context {
	return s.ctx
}

// UnaryLogger は呼び出しごとにアクセスログを出力します。
func UnaryLogger(log *zap.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		start := time.Now()
		resp, err := handler(ctx, req)
		fields := []zap.Field{
			zap.String("method", info.FullMethod),
			zap.String("code", status.Code(err).String()),
			zap.Duration("elapsed", time.Since(start)),
		}
		if op, ok := auth.OperatorFromContext(ctx); ok {
			fields = append(fields, zap.String("operator_id", op.ID))
		}
		if err != nil {
			log.Warn("grpc call failed", append(fields, zap.Error(err))...)
		} else {
			log.Info("grpc call", fields...)
		}
		return resp, err
	}
}

// StreamLogger はストリーム終了時にアクセスログを出力します。
func StreamLogger(log *zap.Logger) grpc.StreamServerInterceptor {
	return func(srv any, ss grpc.ServerStream, info *grpc.StreamServerInfo, handler grpc.StreamHandler) error {
		start := time.Now()
		err := handler(srv, ss)
		log.Info("grpc stream closed",
			zap.String("method", info.FullMethod),
			zap.String("code", status.Code(err).String()),
			zap.Duration("elapsed", time.Since(start)),
		)
		return err
	}
}
