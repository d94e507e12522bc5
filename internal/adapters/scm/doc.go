// Package scm hosts a service under the Windows Service Control Manager.
// On other platforms Serve reports domain.ErrNotSupported.
package scm
