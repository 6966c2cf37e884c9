// Local commands: storage init, account creation, version.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/en-arthur/initflow-be/internal/auth"
	"github.com/en-arthur/initflow-be/internal/sqlite"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize the storage backend",
	Long:  `Create the data directory and database schema using configuration from file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := resolveConfig()
		if err != nil {
			return err
		}

		store := sqlite.NewStore()
		if err := store.Attach(cfg.store); err != nil {
			return fmt.Errorf("attaching store: %w", err)
		}
		defer store.Detach()

		fmt.Printf("Storage initialized at %s\n", cfg.store.DataDir)
		return nil
	},
}

var (
	flagUserEmail    string
	flagUserName     string
	flagUserPassword string
)

var userAddCmd = &cobra.Command{
	Use:   "user-add",
	Short: "Create an account directly in the store",
	Long:  `Create an account without going through the HTTP signup endpoint.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := resolveConfig()
		if err != nil {
			return err
		}

		hash, err := auth.HashPassword(flagUserPassword)
		if err != nil {
			return err
		}

		store := sqlite.NewStore()
		if err := store.Attach(cfg.store); err != nil {
			return fmt.Errorf("attaching store: %w", err)
		}
		defer store.Detach()

		user, err := store.CreateUser(flagUserEmail, flagUserName, hash)
		if err != nil {
			return fmt.Errorf("creating user: %w", err)
		}

		fmt.Printf("Created user %s (%s)\n", user.UserID, user.Email)
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("initflow v0.1.0")
	},
}

func init() {
	userAddCmd.Flags().StringVar(&flagUserEmail, "email", "", "account email")
	userAddCmd.Flags().StringVar(&flagUserName, "name", "", "account display name")
	userAddCmd.Flags().StringVar(&flagUserPassword, "password", "", "account password")
	userAddCmd.MarkFlagRequired("email")
	userAddCmd.MarkFlagRequired("name")
	userAddCmd.MarkFlagRequired("password")
}
