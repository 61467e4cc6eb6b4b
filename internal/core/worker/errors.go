package worker

import "errors"

var (
	ErrInvalidID           = errors.New("worker: invalid id")
	ErrWorkerNotFound      = errors.New("worker: not found")
	ErrWorkerAlreadyExists = errors.New("worker: already exists")
	ErrEmptyPatch          = errors.New("worker: patch has no fields")
	// ErrStoreUnavailable はストアが設定されていない状態で読み取りを行った場合に返却されます。
	ErrStoreUnavailable = errors.New("worker: store is not available")
)
