/*
Package supervisor provides process supervision for Kinoflow using suture v4.

This package implements a two-layer supervisor tree that manages the
lifecycle of the module's long-running services, giving them Erlang/OTP-style
supervision with automatic restart, failure isolation, and graceful shutdown.

# Overview

	RootSupervisor ("kinoflow")
	├── ETLSupervisor ("etl-layer")
	│   └── OrchestratorService (C7: round-robins the ETL streams)
	└── APISupervisor ("api-layer")
	    └── HTTPServerService (Query API)

Each binary (cmd/etl, cmd/api) only populates the layer it runs; the other
is left empty. This keeps a crash in the orchestrator from ever touching
the HTTP server's lifecycle, and vice versa, in the rare case both run in
a single process (tests, or a combined deployment).

# Key Features

Automatic Restart:
  - A crashed service is restarted by its parent supervisor.
  - Exponential backoff prevents restart storms.
  - Configurable failure thresholds and decay rates.

Structured Logging:
  - Suture events are routed through the slog-to-zerolog adapter in
    internal/logging, so restarts and failures land in the same structured
    log stream as everything else.

# Usage Example

	logger := logging.NewSlogLogger()
	tree, err := supervisor.NewSupervisorTree(logger, supervisor.DefaultTreeConfig())
	if err != nil {
	    log.Fatal(err)
	}

	tree.AddETLService(orchestrator)

	if err := tree.Serve(ctx); err != nil {
	    log.Printf("supervisor stopped: %v", err)
	}

# Configuration

	config := supervisor.TreeConfig{
	    FailureThreshold: 5.0,
	    FailureDecay:     30.0,
	    FailureBackoff:   15 * time.Second,
	    ShutdownTimeout:  10 * time.Second,
	}

# Service Interface

Services added to the tree must implement suture.Service:

	type Service interface {
	    Serve(ctx context.Context) error
	}

Returning nil means the service stopped cleanly and will not be restarted;
returning an error means it crashed and suture will restart it subject to
the failure threshold/backoff above.

See Also:

  - github.com/thejerf/suture/v4: underlying supervision library
  - internal/etl: the orchestrator service supervised by the ETL layer
*/
package supervisor
