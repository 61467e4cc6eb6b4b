package handler

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/ogurasousui/onboarding-tracker/internal/adapters/grpc/onboardingv1"
	"github.com/ogurasousui/onboarding-tracker/internal/core/auth"
	"github.com/ogurasousui/onboarding-tracker/internal/core/worker"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
	"google.golang.org/protobuf/types/known/emptypb"
)

const validToken = "token-1"

type stubAuth struct{}

func (stubAuth) Authenticate(_ context.Context, token string) (*auth.Operator, error) {
	if token != validToken {
		return nil, auth.ErrUnauthenticated
	}
	return &auth.Operator{ID: "op-1", Email: "admin@example.com"}, nil
}

func (stubAuth) SignIn(_ context.Context, email, password string) (*auth.Session, error) {
	if email != "admin@example.com" {
		return nil, auth.ErrOperatorNotFound
	}
	if password != "secret1" {
		return nil, auth.ErrInvalidCredentials
	}
	return &auth.Session{
		Token:     validToken,
		ExpiresAt: time.Date(2025, 11, 3, 21, 0, 0, 0, time.UTC),
		Operator:  &auth.Operator{ID: "op-1", Email: email, Name: "Admin"},
	}, nil
}

type stubWatcher struct {
	snap worker.Snapshot
}

func (w stubWatcher) Subscribe(fn func(worker.Snapshot)) func() {
	fn(w.snap)
	return func() {}
}

func startTestServer(t *testing.T, svc worker.UseCase, watcher Watcher) *grpc.ClientConn {
	t.Helper()

	lis := bufconn.Listen(1024 * 1024)
	guard := NewAuthGuard(stubAuth{}, onboardingv1.WorkerServiceName)
	srv := grpc.NewServer(
		grpc.ChainUnaryInterceptor(guard.Unary(), UnaryLogger(zap.NewNop())),
		grpc.ChainStreamInterceptor(guard.Stream(), StreamLogger(zap.NewNop())),
	)
	onboardingv1.RegisterWorkerServiceServer(srv, NewWorkerGrpcHandler(svc, watcher, zap.NewNop()))
	onboardingv1.RegisterAuthServiceServer(srv, NewAuthGrpcHandler(stubAuth{}))

	go func() {
		_ = srv.Serve(lis)
	}()
	t.Cleanup(srv.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	if err != nil {
		t.Fatalf("failed to dial bufnet: %v", err)
	}
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func withToken(ctx context.Context, token string) context.Context {
	return metadata.AppendToOutgoingContext(ctx, "authorization", "Bearer "+token)
}

func TestAuthGuard_RequiresToken(t *testing.T) {
	t.Parallel()

	conn := startTestServer(t, &stubWorkerUseCase{}, nil)
	client := onboardingv1.NewWorkerServiceClient(conn)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := client.ListWorkers(ctx, &emptypb.Empty{}); status.Code(err) != codes.Unauthenticated {
		t.Fatalf("expected Unauthenticated without token, got %v", status.Code(err))
	}
	if _, err := client.ListWorkers(withToken(ctx, "forged"), &emptypb.Empty{}); status.Code(err) != codes.Unauthenticated {
		t.Fatalf("expected Unauthenticated with bad token, got %v", status.Code(err))
	}
	if _, err := client.ListWorkers(withToken(ctx, validToken), &emptypb.Empty{}); err != nil {
		t.Fatalf("expected ListWorkers to succeed with token, got %v", err)
	}
}

func TestAuthGrpcHandler_SignIn(t *testing.T) {
	t.Parallel()

	conn := startTestServer(t, &stubWorkerUseCase{}, nil)
	client := onboardingv1.NewAuthServiceClient(conn)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	resp, err := client.SignIn(ctx, mustStruct(t, map[string]any{"email": "admin@example.com", "password": "secret1"}))
	if err != nil {
		t.Fatalf("SignIn returned error: %v", err)
	}
	if resp.GetFields()["token"].GetStringValue() != validToken {
		t.Fatalf("unexpected token in response: %v", resp)
	}

	_, err = client.SignIn(ctx, mustStruct(t, map[string]any{"email": "admin@example.com", "password": "wrong-pass"}))
	if status.Code(err) != codes.Unauthenticated {
		t.Fatalf("expected Unauthenticated, got %v", status.Code(err))
	}

	_, err = client.SignIn(ctx, mustStruct(t, map[string]any{"email": "nobody@example.com", "password": "secret1"}))
	if status.Code(err) != codes.NotFound {
		t.Fatalf("expected NotFound, got %v", status.Code(err))
	}
}

func TestWorkerGrpcHandler_WatchWorkers(t *testing.T) {
	t.Parallel()

	workers := []*worker.Worker{completeWorker("w1"), {ID: "w2", Name: "Jonas Berg"}}
	watcher := stubWatcher{snap: worker.Snapshot{Workers: workers, Summary: worker.Summarize(workers)}}
	conn := startTestServer(t, &stubWorkerUseCase{}, watcher)
	client := onboardingv1.NewWorkerServiceClient(conn)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	stream, err := client.WatchWorkers(withToken(ctx, validToken), &emptypb.Empty{})
	if err != nil {
		t.Fatalf("WatchWorkers returned error: %v", err)
	}

	msg, err := stream.Recv()
	if err != nil {
		t.Fatalf("Recv returned error: %v", err)
	}
	summary := msg.GetFields()["summary"].GetStructValue().GetFields()
	if summary["total"].GetNumberValue() != 2 || summary["progress"].GetNumberValue() != 50 {
		t.Fatalf("unexpected snapshot summary: %v", summary)
	}
}

func TestWorkerGrpcHandler_WatchWorkersRequiresToken(t *testing.T) {
	t.Parallel()

	conn := startTestServer(t, &stubWorkerUseCase{}, stubWatcher{})
	client := onboardingv1.NewWorkerServiceClient(conn)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	stream, err := client.WatchWorkers(ctx, &emptypb.Empty{})
	if err == nil {
		_, err = stream.Recv()
	}
	if status.Code(err) != codes.Unauthenticated {
		t.Fatalf("expected Unauthenticated, got %v", status.Code(err))
	}
}

func TestBearerToken(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"Bearer abc":  "abc",
		"bearer  abc": "abc",
		"Basic abc":   "",
		"Bearer ":     "",
	}
	for header, want := range cases {
		ctx := metadata.NewIncomingContext(context.Background(), metadata.Pairs("authorization", header))
		if got := bearerToken(ctx); got != want {
			t.Errorf("bearerToken(%q) = %q, want %q", header, got, want)
		}
	}
}
