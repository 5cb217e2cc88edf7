package command

import (
	"context"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github/universalwallet/wallet-bridge/internal/api"
	"github/universalwallet/wallet-bridge/internal/api/router"
	"github/universalwallet/wallet-bridge/internal/config"
)

// NewSubcommandGroup returns a bare group command that only exists to hold
// the given subcommands.
func NewSubcommandGroup(use string, subcommands ...*cobra.Command) *cobra.Command {
	group := &cobra.Command{
		Use: use,
		Run: func(cmd *cobra.Command, _ []string) {
			_ = cmd.Help()
		},
	}

	group.AddCommand(subcommands...)

	return group
}

// WithServer initializes a full server (components and router) for the given
// config, runs fn against it and shuts it down again. Intended for one-shot
// commands that need the component graph without a listener.
func WithServer(ctx context.Context, cfg config.Server, fn func(ctx context.Context, s *api.Server) error) error {
	s, err := api.InitNewServer(ctx, cfg)
	if err != nil {
		return errors.Wrap(err, "failed to initialize server")
	}

	router.Init(s)

	defer func() {
		_ = s.Shutdown(ctx)
	}()

	return fn(ctx, s)
}
