package impl

import "errors"

var (
	ErrUnknownHost          = errors.New("unknown host")
	ErrRoutingInconsistency = errors.New("routing table references a missing host")
	ErrCollision            = errors.New("collision on shared medium")
)
