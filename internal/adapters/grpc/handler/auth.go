package handler

import (
	"context"
	"time"

	"github.com/ogurasousui/onboarding-tracker/internal/adapters/grpc/onboardingv1"
	"github.com/ogurasousui/onboarding-tracker/internal/core/auth"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
)

// SignInUseCase はサインインを行うユースケースです。
type SignInUseCase interface {
	SignIn(ctx context.Context, email, password string) (*auth.Session, error)
}

// AuthGrpcHandler は AuthService の gRPC 実装です。
type AuthGrpcHandler struct {
	svc SignInUseCase
	onboardingv1.UnimplementedAuthServiceServer
}

// NewAuthGrpcHandler は AuthGrpcHandler を生成します。
func NewAuthGrpcHandler(svc SignInUseCase) *AuthGrpcHandler {
	return &AuthGrpcHandler{svc: svc}
}

// SignIn はメールアドレスとパスワードでサインインし、セッショントークンを返します。
func (h *AuthGrpcHandler) SignIn(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	fields := req.GetFields()
	session, err := h.svc.SignIn(ctx, fields["email"].GetStringValue(), fields["password"].GetStringValue())
	if err != nil {
		return nil, toStatusError(err)
	}

	resp, err := structpb.NewStruct(map[string]any{
		"token":     session.Token,
		"expiresAt": session.ExpiresAt.UTC().Format(time.RFC3339),
		"operator": map[string]any{
			"id":    session.Operator.ID,
			"email": session.Operator.Email,
			"name":  session.Operator.Name,
		},
	})
	if err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}
	return resp, nil
}
