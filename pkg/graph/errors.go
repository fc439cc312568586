package graph

import "errors"

// ErrConnection marks failures reaching or authenticating against the store.
// ErrQuery marks queries the store rejected. Both abort the caller's request;
// adapters wrap the driver error so errors.Is works on either sentinel.
var (
	ErrConnection = errors.New("graph store unreachable")
	ErrQuery      = errors.New("graph query rejected")
)
