package main

import (
	"fmt"

	"github.com/SukhanRumanov/prac3/internal/app"
	"github.com/SukhanRumanov/prac3/internal/config"
	"github.com/SukhanRumanov/prac3/internal/shared/apperror"
	"github.com/SukhanRumanov/prac3/internal/user"

	"github.com/gin-gonic/gin/binding"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// connector opens the database; tests swap it out.
type connector func(cfg config.Config, l *zap.Logger) (*app.Infra, error)

func newRootCmd(logger *zap.Logger) *cobra.Command {
	return newRootCmdWith(logger, config.Load, app.Connect)
}

func newRootCmdWith(logger *zap.Logger, load func(...string) (config.Config, error), connect connector) *cobra.Command {
	root := &cobra.Command{
		Use:          "dbctl",
		Short:        "Schema and reference data tooling",
		SilenceUsage: true,
	}

	open := func() (*app.Infra, error) {
		cfg, err := load()
		if err != nil {
			return nil, err
		}
		// Redis is irrelevant here.
		cfg.Redis.Addr = ""
		return connect(cfg, logger)
	}

	root.AddCommand(
		&cobra.Command{
			Use:   "migrate",
			Short: "Create or update every table",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				infra, err := open()
				if err != nil {
					return err
				}
				defer infra.Close()

				if err := app.Migrate(infra.GormDB); err != nil {
					return err
				}
				logger.Info("schema migrated")
				return nil
			},
		},
		&cobra.Command{
			Use:   "seed",
			Short: "Migrate and load reference data into an empty database",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				infra, err := open()
				if err != nil {
					return err
				}
				defer infra.Close()

				if err := app.Migrate(infra.GormDB); err != nil {
					return err
				}
				users := user.NewService(infra.SQLDB, user.NewRepository(infra.GormDB), logger)
				return app.Seed(cmd.Context(), infra.GormDB, users, logger)
			},
		},
		newCreateUserCmd(logger, open),
	)

	return root
}

func newCreateUserCmd(logger *zap.Logger, open func() (*app.Infra, error)) *cobra.Command {
	var req user.CreateUserRequest

	cmd := &cobra.Command{
		Use:   "create-user",
		Short: "Create an account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			apperror.Init()
			if err := validate(req); err != nil {
				return err
			}

			infra, err := open()
			if err != nil {
				return err
			}
			defer infra.Close()

			users := user.NewService(infra.SQLDB, user.NewRepository(infra.GormDB), logger)
			res, err := users.Create(cmd.Context(), req)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "created user %d (%s)\n", res.ID, res.Username)
			return nil
		},
	}

	cmd.Flags().StringVar(&req.Username, "username", "", "login name")
	cmd.Flags().StringVar(&req.Email, "email", "", "email address")
	cmd.Flags().StringVar(&req.Password, "password", "", "initial password")
	cmd.Flags().BoolVar(&req.IsSuperuser, "superuser", false, "grant administrator rights")
	_ = cmd.MarkFlagRequired("username")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")

	return cmd
}

// validate applies the same binding rules as the registration endpoint.
func validate(req user.CreateUserRequest) error {
	if err := binding.Validator.ValidateStruct(req); err != nil {
		return apperror.MapValidationError(err)
	}
	return nil
}
