package auth

import "errors"

var (
	// ErrOperatorNotFound はオペレーターが存在しない場合に返却されます。
	ErrOperatorNotFound = errors.New("auth: account not found")
	// ErrEmailAlreadyExists はメールアドレス重複時に返却されます。
	ErrEmailAlreadyExists = errors.New("auth: email already exists")
	// ErrInvalidCredentials はメールアドレスまたはパスワードが一致しない場合に返却されます。
	ErrInvalidCredentials = errors.New("auth: invalid email or password")
	// ErrInvalidEmail はメールアドレスが不正な場合に返却されます。
	ErrInvalidEmail = errors.New("auth: invalid email")
	// ErrInvalidPassword はパスワードが短すぎる場合に返却されます。
	ErrInvalidPassword = errors.New("auth: password must be at least 6 characters long")
	// ErrInvalidName は名前が空の場合に返却されます。
	ErrInvalidName = errors.New("auth: invalid name")
	// ErrUnauthenticated はトークンが無い、または検証できない場合に返却されます。
	ErrUnauthenticated = errors.New("auth: unauthenticated")
)
