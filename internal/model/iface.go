package model

import "context"

// AvailabilityClient asks the availability backend about a single name.
// Implementations return a *TransportError for every failure to obtain or
// decode an answer.
type AvailabilityClient interface {
	CheckAvailability(ctx context.Context, name string) (bool, error)
}

// AvailabilityClientFunc adapts a plain function to AvailabilityClient.
type AvailabilityClientFunc func(ctx context.Context, name string) (bool, error)

func (f AvailabilityClientFunc) CheckAvailability(ctx context.Context, name string) (bool, error) {
	return f(ctx, name)
}
