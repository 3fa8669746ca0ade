package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"caredesk/internal/adapters/postgres"
	"caredesk/internal/config"

	"github.com/golang-migrate/migrate/v4"
	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "migrate",
		Short:         "Manage the caredesk database schema",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().String("database-url", "", "postgres url (defaults to DATABASE_URL)")

	rootCmd.AddCommand(upCmd())
	rootCmd.AddCommand(downCmd())
	rootCmd.AddCommand(versionCmd())
	rootCmd.AddCommand(forceCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Migration failed:", err)
		os.Exit(1)
	}
}

func migrator(cmd *cobra.Command) (*migrate.Migrate, error) {
	url, _ := cmd.Flags().GetString("database-url")
	if url == "" {
		url = config.Load().DatabaseURL
	}

	return postgres.NewMigrator(url)
}

func report(err error) error {
	if errors.Is(err, migrate.ErrNoChange) {
		fmt.Println("No changes detected.")
		return nil
	}
	if err != nil {
		return err
	}

	fmt.Println("Migration success!")
	return nil
}

func upCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "up",
		Short: "Apply pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			steps, _ := cmd.Flags().GetInt("steps")

			m, err := migrator(cmd)
			if err != nil {
				return err
			}
			defer m.Close()

			if steps > 0 {
				return report(m.Steps(steps))
			}
			return report(m.Up())
		},
	}
	cmd.Flags().Int("steps", 0, "number of migrations to apply (0 = all)")

	return cmd
}

func downCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "down",
		Short: "Roll back migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			steps, _ := cmd.Flags().GetInt("steps")
			all, _ := cmd.Flags().GetBool("all")

			if steps <= 0 && !all {
				return errors.New("refusing to roll back everything without --all")
			}

			m, err := migrator(cmd)
			if err != nil {
				return err
			}
			defer m.Close()

			if all {
				return report(m.Down())
			}
			return report(m.Steps(-steps))
		},
	}
	cmd.Flags().Int("steps", 1, "number of migrations to roll back")
	cmd.Flags().Bool("all", false, "roll back every migration")

	return cmd
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the current schema version",
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := migrator(cmd)
			if err != nil {
				return err
			}
			defer m.Close()

			v, dirty, err := m.Version()
			if errors.Is(err, migrate.ErrNilVersion) {
				fmt.Println("Version: none")
				return nil
			}
			if err != nil {
				return err
			}

			fmt.Printf("Version: %d, Dirty: %v\n", v, dirty)
			return nil
		},
	}
}

func forceCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "force VERSION",
		Short: "Set the schema version without running migrations",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			version, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid version %q", args[0])
			}

			m, err := migrator(cmd)
			if err != nil {
				return err
			}
			defer m.Close()

			return report(m.Force(version))
		},
	}
}
