package models

import (
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

var (
	ErrCatalogFetch    = status.Errorf(codes.Unavailable, "catalog fetch failed")
	ErrProductNotFound = status.Errorf(codes.NotFound, "product not found")
	ErrIndexOutOfRange = status.Errorf(codes.OutOfRange, "cart position out of range")
	ErrConfiguration   = status.Errorf(codes.FailedPrecondition, "invalid configuration")
)
