// Package service runs a worker either under the Windows Service Control
// Manager or as a foreground console program, from the same binary.
//
// # Basic Usage
//
//	type worker struct{}
//
//	func (worker) Run(s *service.Service) service.ExitCode {
//	    // set up, then block until the quit signal is set
//	    return s.Run()
//	}
//
//	func main() {
//	    svc, err := service.New("myservice", worker{})
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    os.Exit(int(svc.Start(os.Args[1:])))
//	}
//
// Without arguments the process registers with the service manager. With
// /debug or -debug (any case) it runs in the foreground and Ctrl+C stops it.
//
// # Controls
//
// A worker opts into a control by implementing the matching handler
// interface ([PauseHandler], [ContinueHandler], [PreShutdownHandler] and so
// on) and declaring it with [Service.Accept]. Stop is always accepted; its
// default response reports StopPending and sets the quit signal.
//
// # Plugins
//
// Supporting functionality implements [Plugin] and is registered with
// [WithPlugin]. Plugins are initialized in registration order once the
// service reports StartPending, and shut down in reverse order after the
// worker returns.
package service
