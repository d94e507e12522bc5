// Package ports defines the interfaces (ports) that connect the lifecycle core
// to infrastructure adapters.
//
// In Clean Architecture / Hexagonal Architecture, ports are the boundaries
// between the application core and the outside world. They define what the
// core needs from the host without specifying how those needs are fulfilled.
//
// # Port Interfaces
//
//   - [Dispatcher]: receives control events from a channel
//   - [Channel]: delivers control events and accepts status reports
//   - [Supervisor]: hosts a managed run and hands the core its channel
//   - [StatusRepository]: persists status snapshots for other processes
//
// # Usage
//
// The application layer (internal/app) depends only on these interfaces.
// Infrastructure adapters (internal/adapters) implement them with the
// service control manager, os/signal and the file system.
package ports
