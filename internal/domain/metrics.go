package domain

import "time"

// Metrics records operational counters. Implementations must be safe for concurrent use.
type Metrics interface {
	// RegistrationAttempt counts a register/unregister attempt by outcome
	// (e.g. "registered", "unregistered", "full", "retry").
	RegistrationAttempt(outcome string)
	TaskCompleted(task string, err error)
	CacheRefreshed(cache string, populated bool)
	ObserveRequest(method, route string, status int, d time.Duration)
}
