package storage

import "errors"

var (
	ErrEmptyBlob  = errors.New("blob is empty")
	ErrBlobTooBig = errors.New("blob exceeds maximum allowed size")
)
