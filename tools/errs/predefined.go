package errs

const (
	ArgsErr           = 1001
	RecordNotFoundErr = 1002
	DuplicateKeyErr   = 1003
	NoPermissionErr   = 1101
	TokenInvalidErr   = 1102
	TokenExpiredErr   = 1103
	PasswordErr       = 1104
	InternalErr       = 1500
)

var (
	ErrArgs           = NewCodeError(ArgsErr, "invalid argument")
	ErrRecordNotFound = NewCodeError(RecordNotFoundErr, "record not found")
	ErrDuplicateKey   = NewCodeError(DuplicateKeyErr, "duplicate key")
	ErrNoPermission   = NewCodeError(NoPermissionErr, "no permission")
	ErrTokenInvalid   = NewCodeError(TokenInvalidErr, "token invalid")
	ErrTokenExpired   = NewCodeError(TokenExpiredErr, "token expired")
	ErrPassword       = NewCodeError(PasswordErr, "password mismatch")
	ErrInternal       = NewCodeError(InternalErr, "internal error")
)
