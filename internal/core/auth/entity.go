package auth

import "time"

// Status はオペレーターの状態を表します。
type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

// Operator はダッシュボードにサインインできる担当者です。
type Operator struct {
	ID           string
	Email        string
	Name         string
	PasswordHash string
	Status       Status
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Session はサインイン成功時に発行されるセッションです。
type Session struct {
	Token     string
	ExpiresAt time.Time
	Operator  *Operator
}
