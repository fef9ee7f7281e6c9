package entity

import "time"

// RevokedToken jti invalidado en el logout hasta su vencimiento.
type RevokedToken struct {
	JTI       string
	UserID    string
	ExpiresAt time.Time
	Reason    string
	RevokedAt time.Time
}
