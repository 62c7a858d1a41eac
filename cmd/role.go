package cmd

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/vibast-solutions/ms-go-accounts/app/entity"
	"github.com/vibast-solutions/ms-go-accounts/app/repository"
	"github.com/vibast-solutions/ms-go-accounts/config"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/mattn/go-sqlite3"
	"github.com/spf13/cobra"
)

// Roles are administratively managed; end-user flows never create them.

var roleCreateParent string

var roleCmd = &cobra.Command{
	Use:   "role",
	Short: "Manage roles and role assignments",
}

var roleCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a role, optionally under a parent role",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		db, err := openDatabaseForCommands()
		if err != nil {
			return err
		}
		defer db.Close()

		roleRepo := repository.NewRoleRepository(db)
		ctx := context.Background()

		name := args[0]
		existing, err := roleRepo.FindByName(ctx, name)
		if err != nil {
			return err
		}
		if existing != nil {
			return fmt.Errorf("role %q already exists", name)
		}

		role := &entity.Role{
			Name:      name,
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		}
		if roleCreateParent != "" {
			parent, err := roleRepo.FindByName(ctx, roleCreateParent)
			if err != nil {
				return err
			}
			if parent == nil {
				return fmt.Errorf("parent role %q does not exist", roleCreateParent)
			}
			role.ParentRoleID = sql.NullInt64{Int64: int64(parent.ID), Valid: true}
		}

		if err := roleRepo.Create(ctx, role); err != nil {
			return err
		}

		fmt.Printf("role: %s (id %d)\n", role.Name, role.ID)
		return nil
	},
}

var roleAssignCmd = &cobra.Command{
	Use:   "assign <email> <role>",
	Short: "Assign a role to a user",
	Args:  cobra.ExactArgs(2),
	RunE: func(_ *cobra.Command, args []string) error {
		db, err := openDatabaseForCommands()
		if err != nil {
			return err
		}
		defer db.Close()

		userRepo := repository.NewUserRepository(db)
		roleRepo := repository.NewRoleRepository(db)
		ctx := context.Background()

		email, roleName := args[0], args[1]

		user, err := userRepo.FindByEmail(ctx, email)
		if err != nil {
			return err
		}
		if user == nil {
			return fmt.Errorf("no user with email %q", email)
		}

		role, err := roleRepo.FindByName(ctx, roleName)
		if err != nil {
			return err
		}
		if role == nil {
			return fmt.Errorf("role %q does not exist", roleName)
		}

		if err := roleRepo.Assign(ctx, user.ID, role.ID); err != nil {
			return err
		}

		fmt.Printf("assigned role %s to %s\n", role.Name, user.Email)
		return nil
	},
}

var roleListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all roles",
	Args:  cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		db, err := openDatabaseForCommands()
		if err != nil {
			return err
		}
		defer db.Close()

		roleRepo := repository.NewRoleRepository(db)
		roles, err := roleRepo.List(context.Background())
		if err != nil {
			return err
		}

		for _, role := range roles {
			if role.ParentRoleID.Valid {
				fmt.Printf("%d\t%s\t(parent id %d)\n", role.ID, role.Name, role.ParentRoleID.Int64)
			} else {
				fmt.Printf("%d\t%s\n", role.ID, role.Name)
			}
		}
		return nil
	},
}

func init() {
	roleCreateCmd.Flags().StringVar(&roleCreateParent, "parent", "", "name of the parent role")
	roleCmd.AddCommand(roleCreateCmd)
	roleCmd.AddCommand(roleAssignCmd)
	roleCmd.AddCommand(roleListCmd)
	rootCmd.AddCommand(roleCmd)
}

func openDatabaseForCommands() (*sql.DB, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if cfg.DatabaseDSN == "" {
		return nil, errors.New("DATABASE_DSN is required")
	}

	db, err := sql.Open(cfg.DatabaseDriver, cfg.DatabaseDSN)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}
