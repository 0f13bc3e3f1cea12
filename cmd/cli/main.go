// Command cli is the operator tool for account bootstrap tasks that have no
// web surface, like creating the first admin.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/myrayzsiza/cse-340/internal/auth"
	"github.com/myrayzsiza/cse-340/internal/config"
	"github.com/myrayzsiza/cse-340/internal/store"
	"github.com/myrayzsiza/cse-340/internal/validate"
)

func usage() {
	fmt.Fprintln(os.Stderr, `Usage:
  cli add-account -first NAME -last NAME -email EMAIL -password PASSWORD [-type Client|Employee|Admin]
  cli set-role -email EMAIL -type Client|Employee|Admin`)
	os.Exit(2)
}

func main() {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	if len(os.Args) < 2 {
		usage()
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}
	st, err := store.NewStore(cfg.DBPath)
	if err != nil {
		slog.Error("Failed to open database", "path", cfg.DBPath, "error", err)
		os.Exit(1)
	}
	defer st.Close()
	if err := st.Migrate(); err != nil {
		slog.Error("Failed to run migrations", "error", err)
		os.Exit(1)
	}

	switch os.Args[1] {
	case "add-account":
		addAccount(st, os.Args[2:])
	case "set-role":
		setRole(st, os.Args[2:])
	default:
		usage()
	}
}

func addAccount(st *store.Store, args []string) {
	fs := flag.NewFlagSet("add-account", flag.ExitOnError)
	first := fs.String("first", "", "first name")
	last := fs.String("last", "", "last name")
	email := fs.String("email", "", "email address")
	password := fs.String("password", "", "password")
	accountType := fs.String("type", "Client", "account type (Client, Employee, Admin)")
	fs.Parse(args)

	if *first == "" || *last == "" || *email == "" || *password == "" {
		fs.Usage()
		os.Exit(2)
	}
	if !validate.IsValidEmail(*email) {
		slog.Error("Invalid email address", "email", *email)
		os.Exit(1)
	}
	if issues := validate.PasswordIssues(*password); len(issues) > 0 {
		slog.Error("Password does not meet requirements", "issues", strings.Join(issues, "; "))
		os.Exit(1)
	}
	if !validAccountType(*accountType) {
		slog.Error("Invalid account type", "type", *accountType)
		os.Exit(1)
	}

	existing, err := st.GetAccountByEmail(*email)
	if err != nil {
		slog.Error("Failed to look up account", "error", err)
		os.Exit(1)
	}
	if existing != nil {
		slog.Error("An account with that email already exists", "email", *email)
		os.Exit(1)
	}

	hash, err := auth.HashPassword(*password)
	if err != nil {
		slog.Error("Failed to hash password", "error", err)
		os.Exit(1)
	}
	id, err := st.RegisterAccount(*first, *last, *email, hash)
	if err != nil {
		slog.Error("Failed to create account", "error", err)
		os.Exit(1)
	}
	if *accountType != "Client" {
		if err := st.UpdateAccountType(id, *accountType); err != nil {
			slog.Error("Account created but setting type failed", "error", err)
			os.Exit(1)
		}
	}
	fmt.Printf("Created account %d (%s, %s)\n", id, *email, *accountType)
}

func setRole(st *store.Store, args []string) {
	fs := flag.NewFlagSet("set-role", flag.ExitOnError)
	email := fs.String("email", "", "email address")
	accountType := fs.String("type", "", "account type (Client, Employee, Admin)")
	fs.Parse(args)

	if *email == "" || !validAccountType(*accountType) {
		fs.Usage()
		os.Exit(2)
	}

	account, err := st.GetAccountByEmail(*email)
	if err != nil {
		slog.Error("Failed to look up account", "error", err)
		os.Exit(1)
	}
	if account == nil {
		slog.Error("No account with that email", "email", *email)
		os.Exit(1)
	}
	if err := st.UpdateAccountType(account.ID, *accountType); err != nil {
		slog.Error("Failed to update account type", "error", err)
		os.Exit(1)
	}
	fmt.Printf("Set %s to %s\n", *email, *accountType)
}

func validAccountType(t string) bool {
	return t == "Client" || t == "Employee" || t == "Admin"
}
