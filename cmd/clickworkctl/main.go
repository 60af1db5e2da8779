package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/clickwork/clickwork/internal/app"
	"github.com/clickwork/clickwork/internal/config"
	"github.com/clickwork/clickwork/internal/repository/postgres"
	"github.com/clickwork/clickwork/pkg/logger/sl"
	"github.com/clickwork/clickwork/pkg/logger/slogpretty"
)

var rootCmd = &cobra.Command{
	Use:           "clickworkctl",
	Short:         "Clickwork administration CLI",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func main() {
	cobra.OnInitialize(initConfig)
	addPersistentFlags()
	registerCommands()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func initConfig() {
	viper.SetEnvPrefix("CLICKWORK")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
	_ = viper.BindEnv("config", "CONFIG_PATH")
}

func addPersistentFlags() {
	rootCmd.PersistentFlags().StringP("config", "c", "", "config file (defaults to $CONFIG_PATH)")
	rootCmd.PersistentFlags().StringP("user", "u", "", "acting user id")
	rootCmd.PersistentFlags().Bool("json", false, "output JSON")
	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
	_ = viper.BindPFlag("user", rootCmd.PersistentFlags().Lookup("user"))
	_ = viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
}

func registerCommands() {
	rootCmd.AddCommand(wipCmd())
	rootCmd.AddCommand(projectCmd())
	rootCmd.AddCommand(autoReviewCmd())
	rootCmd.AddCommand(taskCmd())
}

func withServices(ctx context.Context, fn func(ctx context.Context, s *app.Services) error) error {
	path := viper.GetString("config")
	if path == "" {
		return fmt.Errorf("no config file: pass --config or set CONFIG_PATH")
	}

	cfg, err := config.LoadPath(path)
	if err != nil {
		return err
	}

	log := slogpretty.SetupLogger(cfg.Env)

	db, err := postgres.NewDB(ctx, cfg.Postgres, log)
	if err != nil {
		return fmt.Errorf("failed to init db: %w", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("db close failed", sl.Err(err))
		}
	}()

	services, err := app.NewServices(log, db.DB(), cfg)
	if err != nil {
		return err
	}

	return fn(ctx, services)
}

func actingUser() (string, error) {
	user := viper.GetString("user")
	if user == "" {
		return "", fmt.Errorf("no acting user: pass --user or set CLICKWORK_USER")
	}

	return user, nil
}

func wipCmd() *cobra.Command {
	wip := &cobra.Command{Use: "wip", Short: "Review and clear work-in-progress claims"}
	wip.AddCommand(wipListCmd())
	wip.AddCommand(wipDeleteCmd())

	return wip
}

func wipListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List claims visible to the acting user",
		RunE: func(cmd *cobra.Command, args []string) error {
			user, err := actingUser()
			if err != nil {
				return err
			}

			return withServices(cmd.Context(), func(ctx context.Context, s *app.Services) error {
				claims, err := s.Admin.ListClaims(ctx, user)
				if err != nil {
					return err
				}

				if viper.GetBool("json") {
					return printJSON(cmd.OutOrStdout(), claims)
				}

				renderClaims(cmd.OutOrStdout(), claims)

				return nil
			})
		},
	}
}

func wipDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <claim-id>...",
		Short: "Delete claims by id",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			user, err := actingUser()
			if err != nil {
				return err
			}

			ids, err := parseIDs(args)
			if err != nil {
				return err
			}

			return withServices(cmd.Context(), func(ctx context.Context, s *app.Services) error {
				deleted, err := s.Admin.DeleteClaims(ctx, user, ids)
				if err != nil {
					return err
				}

				fmt.Fprintf(cmd.OutOrStdout(), "deleted %d of %d claims\n", deleted, len(ids))

				return nil
			})
		},
	}
}

func projectCmd() *cobra.Command {
	prj := &cobra.Command{Use: "project", Short: "Inspect projects"}
	prj.AddCommand(projectOverviewCmd())

	return prj
}

func projectOverviewCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "overview <project-id>",
		Short: "Show annotation progress of a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			user, err := actingUser()
			if err != nil {
				return err
			}

			projectID, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid project id %q", args[0])
			}

			return withServices(cmd.Context(), func(ctx context.Context, s *app.Services) error {
				overview, err := s.Admin.ProjectOverview(ctx, user, projectID)
				if err != nil {
					return err
				}

				if viper.GetBool("json") {
					return printJSON(cmd.OutOrStdout(), overview)
				}

				renderOverview(cmd.OutOrStdout(), overview)

				return nil
			})
		},
	}
}

func autoReviewCmd() *cobra.Command {
	ar := &cobra.Command{Use: "autoreview", Short: "Manage auto-review records"}
	ar.AddCommand(&cobra.Command{
		Use:   "sync",
		Short: "Create missing auto-review records for merged tasks",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withServices(cmd.Context(), func(ctx context.Context, s *app.Services) error {
				created, err := s.Admin.SyncAutoReviews(ctx)
				if err != nil {
					return err
				}

				fmt.Fprintf(cmd.OutOrStdout(), "created %d auto-reviews\n", created)

				return nil
			})
		},
	})

	return ar
}

func taskCmd() *cobra.Command {
	task := &cobra.Command{Use: "task", Short: "Work with tasks"}
	task.AddCommand(taskExportCmd())

	return task
}

func taskExportCmd() *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "export <project-id>",
		Short: "Export the responses of every task in a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			projectID, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid project id %q", args[0])
			}

			return withServices(cmd.Context(), func(ctx context.Context, s *app.Services) error {
				tasks, err := s.Admin.ExportProject(ctx, projectID, fileWriter(out))
				if err != nil {
					return err
				}

				fmt.Fprintf(cmd.OutOrStdout(), "exported %d tasks to %s\n", tasks, out)

				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "export", "output directory")

	return cmd
}

// fileWriter stores exported files under dir, creating directories as needed.
func fileWriter(dir string) func(name string, data []byte) error {
	return func(name string, data []byte) error {
		path := filepath.Join(dir, filepath.FromSlash(name))

		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return err
		}

		return os.WriteFile(path, data, 0o644)
	}
}

func parseIDs(args []string) ([]int64, error) {
	ids := make([]int64, 0, len(args))

	for _, arg := range args {
		for _, part := range strings.Split(arg, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}

			id, err := strconv.ParseInt(part, 10, 64)
			if err != nil || id <= 0 {
				return nil, fmt.Errorf("invalid claim id %q", part)
			}

			ids = append(ids, id)
		}
	}

	if len(ids) == 0 {
		return nil, fmt.Errorf("no claim ids given")
	}

	return ids, nil
}
