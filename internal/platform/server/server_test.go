package server

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/ogurasousui/onboarding-tracker/internal/adapters/grpc/onboardingv1"
	"github.com/ogurasousui/onboarding-tracker/internal/core/auth"
	"github.com/ogurasousui/onboarding-tracker/internal/core/worker"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
	"google.golang.org/protobuf/types/known/emptypb"
)

type rejectAll struct{}

func (rejectAll) Authenticate(context.Context, string) (*auth.Operator, error) {
	return nil, auth.ErrUnauthenticated
}

func (rejectAll) SignIn(context.Context, string, string) (*auth.Session, error) {
	return nil, auth.ErrInvalidCredentials
}

func (rejectAll) Register(context.Context, auth.RegisterInput) (*auth.Operator, error) {
	return nil, auth.ErrInvalidEmail
}

func TestServer_ServesHealthAndGuardsWorkers(t *testing.T) {
	t.Parallel()

	svc := worker.NewService(nil, nil, nil)
	srv := New("bufnet", Dependencies{Workers: svc, Auth: rejectAll{}})

	lis := bufconn.Listen(1024 * 1024)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Serve(ctx, lis) }()

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	if err != nil {
		t.Fatalf("failed to dial bufnet: %v", err)
	}
	defer conn.Close()

	callCtx, callCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer callCancel()

	resp, err := healthpb.NewHealthClient(conn).Check(callCtx, &healthpb.HealthCheckRequest{Service: onboardingv1.WorkerServiceName})
	if err != nil {
		t.Fatalf("health check returned error: %v", err)
	}
	if resp.GetStatus() != healthpb.HealthCheckResponse_SERVING {
		t.Fatalf("expected SERVING, got %v", resp.GetStatus())
	}

	_, err = onboardingv1.NewWorkerServiceClient(conn).GetStats(callCtx, &emptypb.Empty{})
	if status.Code(err) != codes.Unauthenticated {
		t.Fatalf("expected Unauthenticated, got %v", status.Code(err))
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Serve returned error: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}
