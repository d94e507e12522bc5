// Package domain contains the core value types of the service host.
//
// This package represents the innermost layer of the Clean Architecture. It has
// no dependencies on infrastructure concerns (service control manager, signals,
// logging) and contains only the lifecycle vocabulary.
//
// # Types
//
//   - [State]: the lifecycle state reported to the supervisor
//   - [Accepts]: the set of controls the process declares it can handle
//   - [Control] and [Event]: control requests delivered by a channel
//   - [Status]: the full status record pushed on every transition
//   - [Snapshot]: a persisted view of the status for out-of-process readers
//   - [Mode]: managed (supervisor) or interactive (foreground) execution
//
// Numeric values of State, Accepts and Control match the host service-status
// protocol so adapters can convert them without lookup tables.
package domain
