package mqtt

import "codeberg.org/mutker/comfortd/internal/errors"

const (
	// Connection Errors
	ErrConnectFailed  = errors.ErrorCode("mqtt_connect_failed")
	ErrConnectTimeout = errors.ErrorCode("mqtt_connect_timeout")

	// Publish Errors
	ErrPublishFailed  = errors.ErrorCode("mqtt_publish_failed")
	ErrPublishTimeout = errors.ErrorCode("mqtt_publish_timeout")

	// Subscribe Errors
	ErrSubscribeFailed  = errors.ErrorCode("mqtt_subscribe_failed")
	ErrSubscribeTimeout = errors.ErrorCode("mqtt_subscribe_timeout")
)
