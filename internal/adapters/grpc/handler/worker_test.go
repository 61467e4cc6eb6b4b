package handler

import (
	"context"
	"errors"
	"testing"

	"github.com/ogurasousui/onboarding-tracker/internal/core/worker"
	"github.com/ogurasousui/onboarding-tracker/internal/platform/dispatch"
	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

type stubWorkerUseCase struct {
	saveInput *worker.Worker
	saveOut   *worker.SaveResult
	saveErr   error

	updateID    string
	updatePatch worker.Patch
	updateErr   error

	deleteID  string
	deleteErr error

	getOut *worker.Worker
	getErr error

	listOut []*worker.Worker
	listErr error
}

func (s *stubWorkerUseCase) Save(_ context.Context, w *worker.Worker) (*worker.SaveResult, error) {
	s.saveInput = w
	if s.saveErr != nil {
		return nil, s.saveErr
	}
	return s.saveOut, nil
}

func (s *stubWorkerUseCase) UpdateFields(_ context.Context, id string, patch worker.Patch) (*worker.SaveResult, error) {
	s.updateID = id
	s.updatePatch = patch
	if s.updateErr != nil {
		return nil, s.updateErr
	}
	return &worker.SaveResult{ID: id}, nil
}

func (s *stubWorkerUseCase) Delete(_ context.Context, id string) error {
	s.deleteID = id
	return s.deleteErr
}

func (s *stubWorkerUseCase) Get(_ context.Context, _ string) (*worker.Worker, error) {
	return s.getOut, s.getErr
}

func (s *stubWorkerUseCase) List(_ context.Context) ([]*worker.Worker, error) {
	return s.listOut, s.listErr
}

func (s *stubWorkerUseCase) Stats(ctx context.Context) (worker.Summary, error) {
	workers, err := s.List(ctx)
	if err != nil {
		return worker.Summary{}, err
	}
	return worker.Summarize(workers), nil
}

func mustStruct(t *testing.T, m map[string]any) *structpb.Struct {
	t.Helper()

	s, err := structpb.NewStruct(m)
	if err != nil {
		t.Fatalf("failed to build struct: %v", err)
	}
	return s
}

func completeWorker(id string) *worker.Worker {
	return &worker.Worker{
		ID:   id,
		Name: "Priya Sharma",
		Checklist: worker.Checklist{
			SecurityIDReceived:                 true,
			PCMeetsMinimumSpecifications:       true,
			InternetMeetsMinimumSpecifications: true,
			NDASigned:                          true,
			BankingDetailsReceived:             true,
			VPNAccessGranted:                   true,
			EquipmentShipped:                   true,
			WelcomeKitSent:                     true,
			HRDocumentsSigned:                  true,
		},
	}
}

func TestWorkerGrpcHandler_SaveWorker_Create(t *testing.T) {
	t.Parallel()

	stub := &stubWorkerUseCase{saveOut: &worker.SaveResult{ID: "w1", Created: true}}
	handler := NewWorkerGrpcHandler(stub, nil, nil)

	resp, err := handler.SaveWorker(context.Background(), mustStruct(t, map[string]any{
		"name":               "Priya Sharma",
		"startDate":          "2025-11-03",
		"securityIdReceived": true,
	}))
	if err != nil {
		t.Fatalf("SaveWorker returned error: %v", err)
	}

	if stub.saveInput == nil || stub.saveInput.Name != "Priya Sharma" || !stub.saveInput.Checklist.SecurityIDReceived {
		t.Fatalf("unexpected worker passed to Save: %+v", stub.saveInput)
	}
	if stub.saveInput.Checklist.NDASigned {
		t.Fatalf("omitted flags must default to false")
	}
	if resp.GetFields()["id"].GetStringValue() != "w1" || !resp.GetFields()["created"].GetBoolValue() {
		t.Fatalf("unexpected response: %v", resp)
	}
}

func TestWorkerGrpcHandler_SaveWorker_MergesOnlyProvidedFields(t *testing.T) {
	t.Parallel()

	stub := &stubWorkerUseCase{}
	handler := NewWorkerGrpcHandler(stub, nil, nil)

	resp, err := handler.SaveWorker(context.Background(), mustStruct(t, map[string]any{
		"id":        "w1",
		"ndaSigned": true,
		"status":    "Incomplete",
	}))
	if err != nil {
		t.Fatalf("SaveWorker returned error: %v", err)
	}

	if stub.saveInput != nil {
		t.Fatal("Save must not be called when an id is present")
	}
	if stub.updateID != "w1" {
		t.Fatalf("expected update for w1, got %q", stub.updateID)
	}
	fields := stub.updatePatch.Fields()
	if len(fields) != 1 || fields[0].Name != worker.FieldNDASigned || fields[0].Value != true {
		t.Fatalf("expected only ndaSigned in patch, got %+v", fields)
	}
	if resp.GetFields()["created"].GetBoolValue() {
		t.Fatal("merge must not report created")
	}
}

func TestWorkerGrpcHandler_SaveWorker_RejectsMalformedFields(t *testing.T) {
	t.Parallel()

	handler := NewWorkerGrpcHandler(&stubWorkerUseCase{}, nil, nil)

	cases := map[string]map[string]any{
		"unknown field":  {"favouriteColour": "blue"},
		"flag as string": {"ndaSigned": "yes"},
		"name as bool":   {"name": true},
		"id as number":   {"id": 12},
	}

	for name, body := range cases {
		body := body
		t.Run(name, func(t *testing.T) {
			_, err := handler.SaveWorker(context.Background(), mustStruct(t, body))
			if status.Code(err) != codes.InvalidArgument {
				t.Fatalf("expected InvalidArgument, got %v", status.Code(err))
			}
		})
	}
}

func TestWorkerGrpcHandler_SaveWorker_ValidationDetails(t *testing.T) {
	t.Parallel()

	stub := &stubWorkerUseCase{saveErr: &worker.ValidationError{Fields: []worker.FieldError{
		{Field: worker.FieldName, Message: "Name must be at least 2 characters."},
	}}}
	handler := NewWorkerGrpcHandler(stub, nil, nil)

	_, err := handler.SaveWorker(context.Background(), mustStruct(t, map[string]any{"name": "P"}))
	st := status.Convert(err)
	if st.Code() != codes.InvalidArgument {
		t.Fatalf("expected InvalidArgument, got %v", st.Code())
	}

	var found bool
	for _, d := range st.Details() {
		if br, ok := d.(*errdetails.BadRequest); ok {
			found = len(br.GetFieldViolations()) == 1 && br.GetFieldViolations()[0].GetField() == worker.FieldName
		}
	}
	if !found {
		t.Fatalf("expected BadRequest field violation for name, got %v", st.Details())
	}
}

func TestWorkerGrpcHandler_ErrorMapping(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		err  error
		want codes.Code
	}{
		{name: "queue full", err: dispatch.ErrQueueFull, want: codes.ResourceExhausted},
		{name: "closed", err: dispatch.ErrClosed, want: codes.Unavailable},
		{name: "store unavailable", err: worker.ErrStoreUnavailable, want: codes.Unavailable},
		{name: "not found", err: worker.ErrWorkerNotFound, want: codes.NotFound},
		{name: "invalid id", err: worker.ErrInvalidID, want: codes.InvalidArgument},
		{name: "other", err: errors.New("boom"), want: codes.Internal},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			handler := NewWorkerGrpcHandler(&stubWorkerUseCase{deleteErr: tc.err}, nil, nil)
			_, err := handler.DeleteWorker(context.Background(), wrapperspb.String("w1"))
			if status.Code(err) != tc.want {
				t.Fatalf("expected %v, got %v", tc.want, status.Code(err))
			}
		})
	}
}

func TestWorkerGrpcHandler_GetWorker(t *testing.T) {
	t.Parallel()

	stub := &stubWorkerUseCase{getOut: completeWorker("w1")}
	handler := NewWorkerGrpcHandler(stub, nil, nil)

	resp, err := handler.GetWorker(context.Background(), wrapperspb.String("w1"))
	if err != nil {
		t.Fatalf("GetWorker returned error: %v", err)
	}
	if got := resp.GetFields()["status"].GetStringValue(); got != string(worker.StatusComplete) {
		t.Fatalf("expected Complete status, got %s", got)
	}
	if _, ok := resp.GetFields()["createdAt"]; ok {
		t.Fatal("zero timestamps must be omitted")
	}
}

func TestWorkerGrpcHandler_ListWorkersAndStats(t *testing.T) {
	t.Parallel()

	stub := &stubWorkerUseCase{listOut: []*worker.Worker{
		completeWorker("w1"),
		completeWorker("w2"),
		{ID: "w3", Name: "Jonas Berg"},
	}}
	handler := NewWorkerGrpcHandler(stub, nil, nil)

	list, err := handler.ListWorkers(context.Background(), &emptypb.Empty{})
	if err != nil {
		t.Fatalf("ListWorkers returned error: %v", err)
	}
	if n := len(list.GetFields()["workers"].GetListValue().GetValues()); n != 3 {
		t.Fatalf("expected 3 workers, got %d", n)
	}

	stats, err := handler.GetStats(context.Background(), &emptypb.Empty{})
	if err != nil {
		t.Fatalf("GetStats returned error: %v", err)
	}
	f := stats.GetFields()
	if f["total"].GetNumberValue() != 3 || f["completed"].GetNumberValue() != 2 || f["incomplete"].GetNumberValue() != 1 {
		t.Fatalf("unexpected stats: %v", stats)
	}
	if f["progress"].GetNumberValue() != 67 || f["progressLabel"].GetStringValue() != "67% Complete" {
		t.Fatalf("unexpected progress: %v", stats)
	}
}
