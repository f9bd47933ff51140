package main

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/erazemk/shramba/internal/db"
	"github.com/erazemk/shramba/internal/store"
)

// Global flag values.
var (
	flagConfig string
	flagDB     string
	flagJSON   bool
)

// Set by PersistentPreRunE so all subcommands can use them.
var (
	database *sql.DB
	cfg      *viper.Viper
)

var rootCmd = &cobra.Command{
	Use:   "shramba",
	Short: "Shramba tracks labeled food containers",
	Long: `Shramba tracks physical food containers labeled with scannable codes:
what each container holds, where it is stored, and how that changed over
time. Every change appends a revision; nothing is ever overwritten.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "version" {
			return nil
		}
		return openStore(cmd.Context())
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if database != nil {
			database.Close()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "config file (default: $XDG_CONFIG_HOME/shramba/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&flagDB, "db", "", "SQLite database path (overrides config)")
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "output as JSON")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(editCmd)
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(restoreCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(urlCmd)
	rootCmd.AddCommand(locationsCmd)
	rootCmd.AddCommand(tagsCmd)
	rootCmd.AddCommand(tagCmd)
	rootCmd.AddCommand(untagCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("shramba v0.1.0")
	},
}

// openStore loads configuration, opens the database, ensures the schema
// and seeds the default catalogs (idempotent).
func openStore(ctx context.Context) error {
	var err error
	cfg, err = loadConfig(flagConfig)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	dbPath := cfg.GetString(cfgKeyDBPath)
	if flagDB != "" {
		dbPath = flagDB
	}

	database, err = db.Open(dbPath)
	if err != nil {
		return err
	}

	if err := db.EnsureSchema(database); err != nil {
		database.Close()
		return err
	}

	return store.Seed(ctx, database)
}

// itemURL builds the address embedded in a container's scannable code.
func itemURL(publicID string) string {
	return fmt.Sprintf("%s/i/%s", cfg.GetString(cfgKeyBaseURL), publicID)
}
