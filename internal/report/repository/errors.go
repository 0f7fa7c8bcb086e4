package repository

import "errors"

var (
	ErrConnect = errors.New("failed to connect to mail server")
	ErrFetch   = errors.New("failed to fetch messages")
)
