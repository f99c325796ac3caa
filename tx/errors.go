package tx

import "errors"

// ErrMessageTooLarge is returned when a fully serialized message would exceed
// the channel's maximum message size. The planner guarantees frame-sized
// messages fit, so hitting this is a programming error in the caller, not a
// network condition.
var ErrMessageTooLarge = errors.New("message exceeds channel size limit")
