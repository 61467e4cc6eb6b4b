package handler

import (
	"errors"

	"github.com/ogurasousui/onboarding-tracker/internal/core/auth"
	"github.com/ogurasousui/onboarding-tracker/internal/core/worker"
	"github.com/ogurasousui/onboarding-tracker/internal/platform/dispatch"
	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

var errInvalidRequest = errors.New("handler: invalid request")

func toStatusError(err error) error {
	var validationErr *worker.ValidationError

	switch {
	case err == nil:
		return nil
	case errors.As(err, &validationErr):
		return validationStatus(validationErr)
	case errors.Is(err, errInvalidRequest),
		errors.Is(err, worker.ErrInvalidID),
		errors.Is(err, worker.ErrEmptyPatch),
		errors.Is(err, auth.ErrInvalidEmail),
		errors.Is(err, auth.ErrInvalidPassword),
		errors.Is(err, auth.ErrInvalidName):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, worker.ErrWorkerAlreadyExists), errors.Is(err, auth.ErrEmailAlreadyExists):
		return status.Error(codes.AlreadyExists, err.Error())
	case errors.Is(err, worker.ErrWorkerNotFound), errors.Is(err, auth.ErrOperatorNotFound):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, auth.ErrInvalidCredentials), errors.Is(err, auth.ErrUnauthenticated):
		return status.Error(codes.Unauthenticated, err.Error())
	case errors.Is(err, dispatch.ErrQueueFull):
		return status.Error(codes.ResourceExhausted, err.Error())
	case errors.Is(err, worker.ErrStoreUnavailable), errors.Is(err, dispatch.ErrClosed):
		return status.Error(codes.Unavailable, err.Error())
	default:
		return status.Error(codes.Internal, err.Error())
	}
}

// validationStatus は入力エラーをフィールド単位の BadRequest 詳細付きで返します。
func validationStatus(err *worker.ValidationError) error {
	st := status.New(codes.InvalidArgument, err.Error())

	violations := make([]*errdetails.BadRequest_FieldViolation, 0, len(err.Fields))
	for _, f := range err.Fields {
		violations = append(violations, &errdetails.BadRequest_FieldViolation{
			Field:       f.Field,
			Description: f.Message,
		})
	}

	detailed, detailErr := st.WithDetails(&errdetails.BadRequest{FieldViolations: violations})
	if detailErr != nil {
		return st.Err()
	}
	return detailed.Err()
}
