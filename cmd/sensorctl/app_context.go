package main

import (
	"fmt"
	"os"

	"github.com/plalonde/sensorctl/internal/client"
	"github.com/plalonde/sensorctl/internal/logger"
	"github.com/plalonde/sensorctl/internal/profile"
	"github.com/plalonde/sensorctl/internal/report"
	"github.com/plalonde/sensorctl/internal/spec"
	"github.com/plalonde/sensorctl/internal/verify"
)

// appContext bundles the services a command invocation needs. Built fresh
// per invocation; nothing here outlives the command.
type appContext struct {
	flags    *rootFlags
	profiles *profile.Set
	registry *spec.Registry
	log      *logger.Logger
	clients  map[string]*client.Client
}

func newAppContext(flags *rootFlags) (*appContext, error) {
	level := "info"
	if flags.verbose {
		level = "debug"
	}
	log, err := logger.New(logger.Options{Level: level, HumanReadable: !flags.jsonOut})
	if err != nil {
		return nil, fmt.Errorf("create logger: %w", err)
	}

	profiles := profile.Defaults()
	if flags.profilesPath != "" {
		profiles, err = profile.Load(flags.profilesPath)
		if err != nil {
			return nil, err
		}
	}

	registry := spec.NewRegistry()
	if flags.specsPath != "" {
		if err := registry.LoadFile(flags.specsPath); err != nil {
			return nil, err
		}
	}

	return &appContext{
		flags:    flags,
		profiles: profiles,
		registry: registry,
		log:      log,
		clients:  make(map[string]*client.Client),
	}, nil
}

// clientFor returns the resource client for a service, building it on first
// use.
func (a *appContext) clientFor(service string) (*client.Client, error) {
	if c, ok := a.clients[service]; ok {
		return c, nil
	}

	p, err := a.profiles.Get(service)
	if err != nil {
		return nil, err
	}

	opts := []client.Option{client.WithLogger(a.log)}
	if a.flags.insecure {
		opts = append(opts, client.WithInsecureTLS())
	}

	c := client.New(p, opts...)
	a.clients[service] = c
	return c, nil
}

// readerResolver adapts clientFor for the verification engine.
func (a *appContext) readerResolver() verify.ReaderResolver {
	return func(service string) (verify.Reader, error) {
		return a.clientFor(service)
	}
}

func (a *appContext) report() *report.Writer {
	return report.NewWriter(os.Stdout)
}
