package comfort

import "codeberg.org/mutker/comfortd/internal/errors"

const (
	// Reading validation errors
	ErrStateUnavailable = errors.ErrorCode("comfort_state_unavailable")
	ErrStateNotNumeric  = errors.ErrorCode("comfort_state_not_numeric")
	ErrOutOfRange       = errors.ErrorCode("comfort_reading_out_of_range")
	ErrUnknownUnit      = errors.ErrorCode("comfort_unknown_unit")

	// Engine errors
	ErrUnknownMetric = errors.ErrorCode("comfort_unknown_metric")
	ErrNotReady      = errors.ErrorCode("comfort_not_ready")
)
