package api

import "codeberg.org/mutker/comfortd/internal/errors"

const (
	ErrServerStart = errors.ErrorCode("api_server_start_failed")
	ErrServerStop  = errors.ErrorCode("api_server_stop_failed")
)
