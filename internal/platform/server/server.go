package server

import (
	"context"
	"errors"
	"fmt"
	"net"

	"github.com/ogurasousui/onboarding-tracker/internal/adapters/grpc/handler"
	"github.com/ogurasousui/onboarding-tracker/internal/adapters/grpc/onboardingv1"
	"github.com/ogurasousui/onboarding-tracker/internal/core/auth"
	"github.com/ogurasousui/onboarding-tracker/internal/core/worker"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
)

// Dependencies はサーバーに登録するユースケース群です。
type Dependencies struct {
	Workers worker.UseCase
	Watcher handler.Watcher
	Auth    auth.UseCase
	Logger  *zap.Logger
}

// Server は gRPC サーバーのライフサイクルを管理します。
type Server struct {
	listenAddr string
	grpcServer *grpc.Server
	health     *health.Server
	log        *zap.Logger
}

// New は指定されたアドレスで待ち受ける gRPC サーバーを構築します。
// WorkerService はサインイン済みのオペレーターのみ呼び出せます。
func New(listenAddr string, deps Dependencies, opts ...grpc.ServerOption) *Server {
	log := deps.Logger
	if log == nil {
		log = zap.NewNop()
	}

	guard := handler.NewAuthGuard(deps.Auth, onboardingv1.WorkerServiceName)
	opts = append(opts,
		grpc.ChainUnaryInterceptor(guard.Unary(), handler.UnaryLogger(log)),
		grpc.ChainStreamInterceptor(guard.Stream(), handler.StreamLogger(log)),
	)

	srv := grpc.NewServer(opts...)
	onboardingv1.RegisterWorkerServiceServer(srv, handler.NewWorkerGrpcHandler(deps.Workers, deps.Watcher, log))
	onboardingv1.RegisterAuthServiceServer(srv, handler.NewAuthGrpcHandler(deps.Auth))

	healthSrv := health.NewServer()
	healthpb.RegisterHealthServer(srv, healthSrv)
	healthSrv.SetServingStatus(onboardingv1.WorkerServiceName, healthpb.HealthCheckResponse_SERVING)
	healthSrv.SetServingStatus(onboardingv1.AuthServiceName, healthpb.HealthCheckResponse_SERVING)

	reflection.Register(srv)

	return &Server{
		listenAddr: listenAddr,
		grpcServer: srv,
		health:     healthSrv,
		log:        log,
	}
}

// Run はサーバーを起動し、コンテキストがキャンセルされると GracefulStop します。
func (s *Server) Run(ctx context.Context) error {
	lis, err := net.Listen("tcp", s.listenAddr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.listenAddr, err)
	}
	return s.Serve(ctx, lis)
}

// Serve は与えられたリスナーで待ち受けます。
func (s *Server) Serve(ctx context.Context, lis net.Listener) error {
	go func() {
		<-ctx.Done()
		s.GracefulStop()
	}()

	s.log.Info("gRPC server listening", zap.String("addr", lis.Addr().String()))

	if err := s.grpcServer.Serve(lis); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
		return fmt.Errorf("serve gRPC: %w", err)
	}
	return nil
}

// GracefulStop はヘルスチェックを NOT_SERVING にしてからサーバーを停止します。
func (s *Server) GracefulStop() {
	s.health.Shutdown()
	s.grpcServer.GracefulStop()
}
