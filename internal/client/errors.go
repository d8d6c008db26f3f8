package client

import "errors"

var (
	ErrConnectTimeout = errors.New("realtime channel did not connect in time")
	ErrChannelFailed  = errors.New("realtime channel gave up reconnecting")
)
