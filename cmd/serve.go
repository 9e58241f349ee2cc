// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/canonical/group-service/internal/logging"
	"github.com/canonical/group-service/internal/monitoring/prometheus"
	"github.com/canonical/group-service/internal/tracing"
	"github.com/canonical/group-service/pkg/authentication"
	"github.com/canonical/group-service/pkg/scopes"
	"github.com/canonical/group-service/pkg/web"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "serve starts the web server",
	Long:  `Launch the web application, list of environment variables is available in the readme`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func serve() error {
	specs, err := loadSpecs()
	if err != nil {
		return err
	}

	logger := logging.NewLogger(specs.LogLevel)
	logger.Debugf("env vars: %v", specs)
	defer logger.Sync()

	monitor := prometheus.NewMonitor("group-service", logger)
	tracer := tracing.NewTracer(tracing.NewConfig(specs.TracingEnabled, specs.OtelGRPCEndpoint, specs.OtelHTTPEndpoint, logger))

	c, err := newClients(specs, tracer, monitor, logger)
	if err != nil {
		return err
	}

	flow := authentication.NewFlow(
		specs.AuthURL,
		c.clientID,
		specs.ClientSecret,
		specs.BaseURL+"/login/complete",
		false,
		tracer,
		monitor,
		logger,
	)

	verifier, err := authentication.NewJWTAuthenticator(
		context.Background(),
		specs.AuthURL,
		"",
		nil,
		scopes.URIForScope(c.clientID, "manage_linked_groups"),
		tracer,
		monitor,
		logger,
	)
	if err != nil {
		return fmt.Errorf("failed to set up token verification: %v", err)
	}

	loginAPI := web.NewLoginAPI(flow, c.guard, web.NewStore(), specs.BaseURL, tracer, monitor, logger)
	groupsAPI := web.NewGroupsAPI(c.groups, tracer, monitor, logger)

	router := web.NewRouter(
		loginAPI,
		groupsAPI,
		verifier,
		tracer,
		monitor,
		logger,
	)
	logger.Infof("Starting HTTP server on port %v", specs.Port)

	srv := &http.Server{
		Addr:         fmt.Sprintf("0.0.0.0:%v", specs.Port),
		WriteTimeout: time.Second * 60,
		ReadTimeout:  time.Second * 15,
		IdleTimeout:  time.Second * 60,
		Handler:      router,
	}

	var serverError error
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Security().SystemStartup()
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverError = fmt.Errorf("server error: %w", err)
			stop <- os.Interrupt
		}
	}()

	<-stop

	// Create a deadline to wait for.
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	logger.Security().SystemShutdown()
	if err := srv.Shutdown(ctx); err != nil {
		serverError = fmt.Errorf("server shutdown error: %w", err)
	}

	return serverError
}
