package refdata

// Error Messages
const (
	ErrMsgReadFailed       = "failed to read reference data"
	ErrMsgDecodeFailed     = "failed to decode reference data"
	ErrMsgValidationFailed = "invalid reference data"
	ErrMsgDuplicateEntry   = "duplicate reference entry"
)
