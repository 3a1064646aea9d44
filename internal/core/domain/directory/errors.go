package directory

import "errors"

var (
	ErrUnavailable   = errors.New("directory is unavailable")
	ErrBindFailed    = errors.New("directory bind failed")
	ErrNotFound      = errors.New("directory entry not found")
	ErrAmbiguous     = errors.New("directory lookup matched more than one entry")
	ErrWriteRejected = errors.New("directory rejected the password write")
)
