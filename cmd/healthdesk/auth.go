package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/healthdesk/healthdesk/internal/platform/rest"
)

func loginCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and store the session token",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			email, _ := cmd.Flags().GetString("email")
			password, _ := cmd.Flags().GetString("password")
			if email == "" {
				email = prompt("Email: ")
			}
			if password == "" {
				password = prompt("Password: ")
			}

			user, err := a.sessions.Login(cmd.Context(), email, password)
			if err != nil {
				a.notify.Error(rest.Detail(err, "Login failed. Please try again."))
				return err
			}
			a.notify.Successf("Signed in as %s (%s)", user.Name, user.Role)
			return nil
		},
	}
	cmd.Flags().String("email", "", "Account email")
	cmd.Flags().String("password", "", "Account password")
	return cmd
}

func registerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account and sign in",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			name, _ := cmd.Flags().GetString("name")
			email, _ := cmd.Flags().GetString("email")
			phone, _ := cmd.Flags().GetString("phone")
			password, _ := cmd.Flags().GetString("password")
			if name == "" {
				name = prompt("Name: ")
			}
			if email == "" {
				email = prompt("Email: ")
			}
			if phone == "" {
				phone = prompt("Phone: ")
			}
			if password == "" {
				password = prompt("Password: ")
			}

			user, err := a.sessions.Register(cmd.Context(), name, email, phone, password)
			if err != nil {
				a.notify.Error(rest.Detail(err, "Registration failed. Please try again."))
				return err
			}
			a.notify.Successf("Welcome, %s! You are signed in.", user.Name)
			return nil
		},
	}
	cmd.Flags().String("name", "", "Full name")
	cmd.Flags().String("email", "", "Account email")
	cmd.Flags().String("phone", "", "Phone number")
	cmd.Flags().String("password", "", "Account password")
	return cmd
}

func logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Discard the stored session",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			if err := a.sessions.Logout(); err != nil {
				return err
			}
			a.notify.Info("Signed out.")
			return nil
		},
	}
}

func whoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in account",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			user, err := a.requireSession(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Printf("%s <%s> role=%s\n", user.Name, user.Email, user.Role)
			return nil
		},
	}
}

var stdin = bufio.NewReader(os.Stdin)

func prompt(label string) string {
	fmt.Print(label)
	line, _ := stdin.ReadString('\n')
	return strings.TrimSpace(line)
}
