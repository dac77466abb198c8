// Command userctl manages the flat-file credential store used by the
// panel: add and remove accounts without going through the HTTP surface.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/wardwatch/statuspanel/internal/adapters/credentials"
	"github.com/wardwatch/statuspanel/internal/adapters/sessions"
	"github.com/wardwatch/statuspanel/internal/application/services"
	"github.com/wardwatch/statuspanel/pkg/config"
)

func main() {
	var (
		add      = flag.String("add", "", "username to create (reads PANEL_PASSWORD or -password)")
		password = flag.String("password", "", "password for -add")
		remove   = flag.String("delete", "", "username to delete")
	)
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to load configuration:", err)
		os.Exit(1)
	}

	users := credentials.NewFileStore(cfg.Auth.UsersFile)
	// a throwaway session store; userctl never logs anyone in
	store := sessions.NewMemoryStore(time.Minute)
	defer store.Close()
	auth := services.NewAuthService(users, store, cfg.Session.TTL)

	ctx := context.Background()

	switch {
	case *add != "":
		pass := *password
		if pass == "" {
			pass = os.Getenv("PANEL_PASSWORD")
		}
		if err := auth.CreateUser(ctx, *add, pass); err != nil {
			fmt.Fprintln(os.Stderr, "failed to create user:", err)
			os.Exit(1)
		}
		fmt.Println("created", *add)
	case *remove != "":
		existed, err := auth.DeleteUser(ctx, *remove)
		if err != nil {
			fmt.Fprintln(os.Stderr, "failed to delete user:", err)
			os.Exit(1)
		}
		if !existed {
			fmt.Fprintln(os.Stderr, "no such user:", *remove)
			os.Exit(1)
		}
		fmt.Println("deleted", *remove)
	default:
		flag.Usage()
		os.Exit(2)
	}
}
