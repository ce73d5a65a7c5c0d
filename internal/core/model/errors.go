package model

import "errors"

var (
	ErrUsage  = errors.New("usage error")
	ErrParse  = errors.New("parse error")
	ErrConfig = errors.New("unsupported configuration")
	ErrIO     = errors.New("io error")
)
