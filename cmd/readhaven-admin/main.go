// Package main is the entry point for the ReadHaven admin CLI.
// This tool provides operator commands for managing user accounts and
// generating server secrets, talking directly to the configured database.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/rs/zerolog"

	"github.com/Ilaiyarasan2005/Read-Haven/internal/config"
	"github.com/Ilaiyarasan2005/Read-Haven/internal/pkg/crypto"
	"github.com/Ilaiyarasan2005/Read-Haven/internal/repository"
	"github.com/Ilaiyarasan2005/Read-Haven/internal/repository/postgres"
	"github.com/Ilaiyarasan2005/Read-Haven/internal/repository/sqlite"
	"github.com/Ilaiyarasan2005/Read-Haven/internal/service"
)

// Version information (set at build time)
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	var err error
	switch command {
	case "version":
		fmt.Printf("ReadHaven Admin CLI\n")
		fmt.Printf("Version: %s\n", Version)
		fmt.Printf("Build Time: %s\n", BuildTime)
		fmt.Printf("Git Commit: %s\n", GitCommit)

	case "user":
		err = runUserCommand(args)

	case "stats":
		err = runStatsCommand(args)

	case "secret":
		err = runSecretCommand()

	case "help", "-h", "--help":
		printUsage()

	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`ReadHaven Admin CLI

Usage:
  readhaven-admin <command> [arguments]

Commands:
  user list                     List registered users
  user create <name> <email> <password>
                                Create a user account
  user activate <id>            Reactivate a user account
  user deactivate <id>          Deactivate a user account (blocks login)
  stats                         Show aggregate library statistics
  secret                        Generate a signing secret for auth.jwt_secret
  version                       Show version information
  help                          Show this help

Flags (user and stats commands):
  -config <path>                Path to config file`)
}

// runSecretCommand prints a fresh token-signing secret.
func runSecretCommand() error {
	secret, err := crypto.GenerateSigningSecret(32)
	if err != nil {
		return err
	}
	fmt.Println(secret)
	return nil
}

// runUserCommand dispatches the user subcommands.
func runUserCommand(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("user command requires a subcommand (list, create, activate, deactivate)")
	}

	subcommand := args[0]
	fs := flag.NewFlagSet("user "+subcommand, flag.ExitOnError)
	configPath := fs.String("config", "", "path to config file")

	// Positional arguments come before flags get parsed out.
	var positional []string
	for _, a := range args[1:] {
		if len(a) > 0 && a[0] == '-' {
			break
		}
		positional = append(positional, a)
	}
	if err := fs.Parse(args[1+len(positional):]); err != nil {
		return err
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	ctx := context.Background()
	repos, cleanup, err := openRepositories(ctx, cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	userService := service.NewUserService(repos.users, cfg.Auth.BcryptCost, zerolog.Nop())

	switch subcommand {
	case "list":
		return listUsers(ctx, userService)
	case "create":
		if len(positional) != 3 {
			return fmt.Errorf("usage: user create <name> <email> <password>")
		}
		return createUser(ctx, userService, positional[0], positional[1], positional[2])
	case "activate", "deactivate":
		if len(positional) != 1 {
			return fmt.Errorf("usage: user %s <id>", subcommand)
		}
		id, err := strconv.ParseInt(positional[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid user id %q", positional[0])
		}
		return setUserActive(ctx, userService, id, subcommand == "activate")
	default:
		return fmt.Errorf("unknown user subcommand: %s", subcommand)
	}
}

// runStatsCommand prints the aggregate counts an operator would otherwise
// fetch from the admin API.
func runStatsCommand(args []string) error {
	fs := flag.NewFlagSet("stats", flag.ExitOnError)
	configPath := fs.String("config", "", "path to config file")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	ctx := context.Background()
	repos, cleanup, err := openRepositories(ctx, cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	statsService := service.NewStatsService(repos.users, repos.books, repos.bookmarks, nil, zerolog.Nop())
	stats, err := statsService.Collect(ctx)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "Users\t%d\n", stats.TotalUsers)
	fmt.Fprintf(w, "New users (30d)\t%d\n", stats.NewUsers30d)
	fmt.Fprintf(w, "Books\t%d\n", stats.TotalBooks)
	fmt.Fprintf(w, "Bookmarks\t%d\n", stats.TotalBookmarks)
	for genre, count := range stats.BooksByGenre {
		fmt.Fprintf(w, "Books: %s\t%d\n", genre, count)
	}
	return w.Flush()
}

// repositories bundles the per-entity repositories over one connection.
type repositories struct {
	users     repository.UserRepository
	books     repository.BookRepository
	bookmarks repository.BookmarkRepository
}

// openRepositories opens the configured database and returns the
// repositories with a cleanup function.
func openRepositories(ctx context.Context, cfg *config.Config) (*repositories, func(), error) {
	if cfg.Database.IsEmbedded() {
		db, err := sqlite.NewDB(ctx, sqlite.DefaultConfig(cfg.Database.Path), zerolog.Nop())
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open sqlite database: %w", err)
		}
		if err := db.Migrate(ctx); err != nil {
			db.Close()
			return nil, nil, fmt.Errorf("failed to migrate sqlite database: %w", err)
		}
		repos := &repositories{
			users:     sqlite.NewUserRepository(db),
			books:     sqlite.NewBookRepository(db),
			bookmarks: sqlite.NewBookmarkRepository(db),
		}
		return repos, func() { db.Close() }, nil
	}

	db, err := postgres.NewDB(ctx, cfg.Database, zerolog.Nop())
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open postgres database: %w", err)
	}
	if err := db.Migrate(ctx); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("failed to migrate postgres database: %w", err)
	}
	repos := &repositories{
		users:     postgres.NewUserRepository(db),
		books:     postgres.NewBookRepository(db),
		bookmarks: postgres.NewBookmarkRepository(db),
	}
	return repos, func() { db.Close() }, nil
}

func listUsers(ctx context.Context, userService *service.UserService) error {
	output, err := userService.List(ctx, service.ListUsersInput{Limit: 100})
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tUSERNAME\tEMAIL\tACTIVE\tCREATED")
	for _, u := range output.Users {
		fmt.Fprintf(w, "%d\t%s\t%s\t%t\t%s\n",
			u.ID, u.Username, u.Email, u.IsActive, u.CreatedAt.Format("2006-01-02"))
	}
	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Printf("\n%d users total\n", output.TotalCount)
	return nil
}

func createUser(ctx context.Context, userService *service.UserService, username, email, password string) error {
	user, err := userService.Register(ctx, service.RegisterInput{
		Username: username,
		Email:    email,
		Password: password,
	})
	if err != nil {
		return err
	}
	fmt.Printf("Created user %d (%s)\n", user.ID, user.Username)
	return nil
}

func setUserActive(ctx context.Context, userService *service.UserService, id int64, active bool) error {
	if err := userService.SetActive(ctx, id, active); err != nil {
		return err
	}
	if active {
		fmt.Printf("User %d activated\n", id)
	} else {
		fmt.Printf("User %d deactivated\n", id)
	}
	return nil
}
