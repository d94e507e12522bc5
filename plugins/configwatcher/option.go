package configwatcher

import "github.com/bft-labs/consvc/pkg/service"

// WithConfigWatcher returns a service Option that reloads the log level
// whenever the configuration file changes.
//
// Usage:
//
//	logger := log.NewZerologAdapter()
//	svc, err := service.New("myservice", w,
//	    service.WithLogger(logger),
//	    configwatcher.WithConfigWatcher(configwatcher.Config{
//	        Path:   "/etc/myservice/config.toml",
//	        Levels: logger,
//	    }),
//	)
func WithConfigWatcher(cfg Config) service.Option {
	return service.WithPlugin(New(cfg))
}
