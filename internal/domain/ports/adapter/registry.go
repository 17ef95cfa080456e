package adapter

import "context"

// RegistryLookup is the dependent registry's answer for one customer.
// Depending on the upstream revision it may carry explicit counts or only
// the list length; Registered is always populated by the adapter.
type RegistryLookup struct {
	Registered    int
	MaxDependents int  // 0 when the upstream did not report it
	HasMax        bool // true when MaxDependents came from the upstream
}

// DependentRegistry looks up how many dependents a customer has already
// registered, keyed by the external customer reference.
type DependentRegistry interface {
	Lookup(ctx context.Context, customerRef string) (RegistryLookup, error)
}
