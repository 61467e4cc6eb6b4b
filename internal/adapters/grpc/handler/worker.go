package handler

import (
	"context"
	"strings"

	"github.com/ogurasousui/onboarding-tracker/internal/adapters/grpc/onboardingv1"
	"github.com/ogurasousui/onboarding-tracker/internal/core/worker"
	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// Watcher はコレクションのスナップショットを購読するインターフェースです。worker.Hub が実装します。
type Watcher interface {
	Subscribe(fn func(worker.Snapshot)) func()
}

// WorkerGrpcHandler は WorkerService の gRPC 実装です。
type WorkerGrpcHandler struct {
	svc     worker.UseCase
	watcher Watcher
	log     *zap.Logger
	onboardingv1.UnimplementedWorkerServiceServer
}

// NewWorkerGrpcHandler は WorkerGrpcHandler を生成します。
func NewWorkerGrpcHandler(svc worker.UseCase, watcher Watcher, log *zap.Logger) *WorkerGrpcHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &WorkerGrpcHandler{svc: svc, watcher: watcher, log: log}
}

// SaveWorker はレコードの保存を受け付けます。
// id があれば含まれるフィールドだけをマージし、無ければ新規作成します。
func (h *WorkerGrpcHandler) SaveWorker(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	id, patch, err := fromStruct(req)
	if err != nil {
		return nil, toStatusError(err)
	}

	var result *worker.SaveResult
	if strings.TrimSpace(id) != "" {
		result, err = h.svc.UpdateFields(ctx, id, patch)
	} else {
		w := worker.NewEmpty()
		patch.Apply(w)
		result, err = h.svc.Save(ctx, w)
	}
	if err != nil {
		return nil, toStatusError(err)
	}

	resp, err := structpb.NewStruct(map[string]any{
		"id":      result.ID,
		"created": result.Created,
	})
	if err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}
	return resp, nil
}

// DeleteWorker はレコードの削除を受け付けます。
func (h *WorkerGrpcHandler) DeleteWorker(ctx context.Context, req *wrapperspb.StringValue) (*emptypb.Empty, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}
	if err := h.svc.Delete(ctx, req.GetValue()); err != nil {
		return nil, toStatusError(err)
	}
	return &emptypb.Empty{}, nil
}

// GetWorker はレコードを取得します。
func (h *WorkerGrpcHandler) GetWorker(ctx context.Context, req *wrapperspb.StringValue) (*structpb.Struct, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	found, err := h.svc.Get(ctx, req.GetValue())
	if err != nil {
		return nil, toStatusError(err)
	}

	resp, err := toWorkerStruct(found)
	if err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}
	return resp, nil
}

// ListWorkers はレコード一覧と集計値を返します。
func (h *WorkerGrpcHandler) ListWorkers(ctx context.Context, _ *emptypb.Empty) (*structpb.Struct, error) {
	workers, err := h.svc.List(ctx)
	if err != nil {
		return nil, toStatusError(err)
	}

	resp, err := toCollectionStruct(workers, worker.Summarize(workers))
	if err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}
	return resp, nil
}

// GetStats はダッシュボードの集計値を返します。
func (h *WorkerGrpcHandler) GetStats(ctx context.Context, _ *emptypb.Empty) (*structpb.Struct, error) {
	summary, err := h.svc.Stats(ctx)
	if err != nil {
		return nil, toStatusError(err)
	}

	resp, err := structpb.NewStruct(summaryToMap(summary))
	if err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}
	return resp, nil
}

// WatchWorkers はコレクションが変わるたびにスナップショットを送信します。
// 送信が追いつかない場合は古いスナップショットを捨て、最新のものだけを送ります。
func (h *WorkerGrpcHandler) WatchWorkers(_ *emptypb.Empty, stream onboardingv1.WorkerService_WatchWorkersServer) error {
	if h.watcher == nil {
		return status.Error(codes.Unavailable, "live view is not available")
	}

	ctx := stream.Context()
	pending := make(chan worker.Snapshot, 1)
	unsubscribe := h.watcher.Subscribe(func(snap worker.Snapshot) {
		for {
			select {
			case pending <- snap:
				return
			default:
			}
			select {
			case <-pending:
			default:
			}
		}
	})
	defer unsubscribe()

	for {
		select {
		case <-ctx.Done():
			return nil
		case snap := <-pending:
			msg, err := toCollectionStruct(snap.Workers, snap.Summary)
			if err != nil {
				return status.Error(codes.Internal, err.Error())
			}
			if err := stream.Send(msg); err != nil {
				h.log.Debug("watch stream closed", zap.Error(err))
				return err
			}
		}
	}
}
