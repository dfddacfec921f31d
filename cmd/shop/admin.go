package main

import (
	"bufio"
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/kelseyhightower/envconfig"

	"github.com/tailorline/storefront/internal/tui"
	"github.com/tailorline/storefront/pkg/config"
	"github.com/tailorline/storefront/pkg/security"
)

func (a *app) admin(ctx context.Context, args []string) error {
	if len(args) > 0 && args[0] == "hash-password" {
		return a.hashPassword(args[1:])
	}
	login := len(args) > 0 && args[0] == "login"
	if login {
		args = args[1:]
	}

	fs := newFlagSet("admin", a.out)
	password := fs.String("password", "", "admin password (prompted when empty)")
	if err := parseFlags(fs, args); err != nil {
		return err
	}

	if login || a.cfg.AdminToken == "" {
		pw, err := a.passwordFrom(*password)
		if err != nil {
			return err
		}
		tok, err := a.client.AdminLogin(ctx, pw)
		if err != nil {
			return err
		}
		if login {
			fmt.Fprintln(a.out, tok.Token)
			fmt.Fprintln(a.out, mutedStyle.Render("expires "+tok.ExpiresAt.Local().Format("2006-01-02 15:04")))
			return nil
		}
	}

	p := tea.NewProgram(tui.New(a.client), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}

// passwordFrom returns the flag value or reads one line from input.
func (a *app) passwordFrom(flagValue string) (string, error) {
	if pw := strings.TrimSpace(flagValue); pw != "" {
		return pw, nil
	}
	fmt.Fprint(a.out, "Admin password: ")
	line, err := bufio.NewReader(a.in).ReadString('\n')
	line = strings.TrimSpace(line)
	if line == "" {
		if err != nil {
			return "", fmt.Errorf("read password: %w", err)
		}
		return "", fmt.Errorf("%w: password is required", errUsage)
	}
	return line, nil
}

// hashPassword prints an argon2id hash for TAILORLINE_ADMIN_PASSWORD_HASH.
func (a *app) hashPassword(args []string) error {
	fs := newFlagSet("admin hash-password", a.out)
	password := fs.String("password", "", "password to hash (prompted when empty)")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	var params config.PasswordConfig
	if err := envconfig.Process("", &params); err != nil {
		return fmt.Errorf("parsing password config: %w", err)
	}
	pw, err := a.passwordFrom(*password)
	if err != nil {
		return err
	}
	hash, err := security.HashPassword(pw, params)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, hash)
	return nil
}
