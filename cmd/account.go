// ABOUTME: Session and account commands: login, logout, whoami, passwd and profile
// ABOUTME: Credentials are prompted on a terminal and never passed as plain flags

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/eventdesk/console/internal/auth"
	"github.com/eventdesk/console/internal/client"
	"github.com/eventdesk/console/internal/forms"
	"github.com/eventdesk/console/internal/guard"
	"github.com/eventdesk/console/internal/session"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var (
	loginEmail        string
	loginPasswordFile string

	profileEmail  string
	profileMobile string
	profileAvatar string
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in and store the session",
	Long: `Sign in with an admin email and password. The session is stored in the
config directory and reused by every other command.

The password is prompted on the terminal. For scripts, pass --password-file
with a path, or "-" to read it from stdin.`,
	Args: cobra.NoArgs,
	Run: run(func(ctx context.Context, w io.Writer, _ []string) int {
		creds, err := readCredentials(loginEmail, loginPasswordFile)
		if err != nil {
			return fail(w, err)
		}
		return runLogin(ctx, w, creds)
	}),
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Sign out and remove the stored session",
	Args:  cobra.NoArgs,
	Run: run(func(ctx context.Context, w io.Writer, _ []string) int {
		return runLogout(ctx, w)
	}),
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the signed-in admin",
	Args:  cobra.NoArgs,
	Run: run(func(ctx context.Context, w io.Writer, _ []string) int {
		return runWhoami(ctx, w)
	}),
}

var passwdCmd = &cobra.Command{
	Use:   "passwd",
	Short: "Change your password",
	Args:  cobra.NoArgs,
	Run: run(func(ctx context.Context, w io.Writer, _ []string) int {
		change, err := promptPasswordChange()
		if err != nil {
			return fail(w, err)
		}
		return runPasswd(ctx, w, change)
	}),
}

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Update your email, mobile number or avatar",
	Long: `Update your own admin profile. Only the fields you pass are changed.

Examples:
  eventdesk profile --mobile +15551234567
  eventdesk profile --avatar ./me.png`,
	Args: cobra.NoArgs,
	Run: run(func(ctx context.Context, w io.Writer, _ []string) int {
		form := forms.ProfileForm{Email: profileEmail, Mobile: profileMobile, AvatarPath: profileAvatar}
		return runProfile(ctx, w, form)
	}),
}

func init() {
	rootCmd.AddCommand(loginCmd, logoutCmd, whoamiCmd, passwdCmd, profileCmd)
	loginCmd.Flags().StringVar(&loginEmail, "email", "", "Admin email (prompted when omitted)")
	loginCmd.Flags().StringVar(&loginPasswordFile, "password-file", "", `Read the password from a file, or "-" for stdin`)
	profileCmd.Flags().StringVar(&profileEmail, "email", "", "New email address")
	profileCmd.Flags().StringVar(&profileMobile, "mobile", "", "New mobile number in E.164 form")
	profileCmd.Flags().StringVar(&profileAvatar, "avatar", "", "Path to a new avatar image")
}

// readCredentials collects the login email and password from flags,
// the password file or an interactive prompt
func readCredentials(email, passwordFile string) (forms.Credentials, error) {
	creds := forms.Credentials{Email: email}
	if passwordFile != "" {
		password, err := readSecret(passwordFile)
		if err != nil {
			return creds, err
		}
		creds.Password = password
	}
	if creds.Email != "" && creds.Password != "" {
		return creds, nil
	}

	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return creds, errors.New("no terminal available for interactive login (use --email and --password-file)")
	}
	var fields []huh.Field
	if creds.Email == "" {
		fields = append(fields, huh.NewInput().Title("Email").Value(&creds.Email))
	}
	if creds.Password == "" {
		fields = append(fields, huh.NewInput().Title("Password").EchoMode(huh.EchoModePassword).Value(&creds.Password))
	}
	if err := huh.NewForm(huh.NewGroup(fields...)).Run(); err != nil {
		return creds, err
	}
	return creds, nil
}

// readSecret reads a password from path, or from stdin when path is "-".
// Trailing newlines are stripped.
func readSecret(path string) (string, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}
	return strings.TrimRight(string(data), "\r\n"), nil
}

// promptPasswordChange asks for the current and new password on the terminal
func promptPasswordChange() (forms.PasswordChange, error) {
	var change forms.PasswordChange
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return change, errors.New("passwd needs an interactive terminal")
	}
	err := huh.NewForm(huh.NewGroup(
		huh.NewInput().Title("Current password").EchoMode(huh.EchoModePassword).Value(&change.OldPassword),
		huh.NewInput().Title("New password").EchoMode(huh.EchoModePassword).Value(&change.NewPassword),
		huh.NewInput().Title("Confirm new password").EchoMode(huh.EchoModePassword).Value(&change.ConfirmPassword),
	)).Run()
	return change, err
}

// runLogin exchanges credentials for a stored session and returns exit code
func runLogin(ctx context.Context, w io.Writer, creds forms.Credentials) int {
	if err := creds.Validate(); err != nil {
		return invalid(w, err)
	}
	return withApp(ctx, w, func(a *app) int {
		user, err := a.resolver.Login(ctx, creds.Email, creds.Password)
		switch {
		case errors.Is(err, client.ErrUnauthorized):
			fmt.Fprintln(w, "Error: invalid email or password")
			return 1
		case errors.Is(err, auth.ErrUnknownRole):
			fmt.Fprintln(w, "Error: this account has no console access")
			return 1
		case err != nil:
			return fail(w, err)
		}
		emitDone(w, fmt.Sprintf("Signed in as %s (%s)", user.Email, user.Role.Label()), user)
		return 0
	})
}

// runLogout clears the stored session and returns exit code
func runLogout(ctx context.Context, w io.Writer) int {
	return withApp(ctx, w, func(a *app) int {
		state := a.resolver.Resolve()
		a.resolver.Logout()
		if state.Status != auth.StatusAuthenticated {
			emitDone(w, "Not signed in", nil)
			return 0
		}
		emitDone(w, "Signed out", nil)
		return 0
	})
}

// whoami is the JSON shape of the whoami command
type whoami struct {
	User      *auth.User `json:"user"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
	APIURL    string     `json:"api_url"`
}

// runWhoami prints the stored session's admin and returns exit code
func runWhoami(ctx context.Context, w io.Writer) int {
	return withApp(ctx, w, func(a *app) int {
		state, err := a.require(guard.PathProfile)
		if err != nil {
			return fail(w, err)
		}
		info := whoami{User: state.User, APIURL: a.client.BaseURL()}
		if exp, ok := session.TokenExpiry(a.resolver.Token()); ok {
			info.ExpiresAt = &exp
		}
		emit(w, info, func() string { return formatWhoamiHuman(info) })
		return 0
	})
}

// formatWhoamiHuman formats the signed-in admin for human readability
func formatWhoamiHuman(info whoami) string {
	u := info.User
	name := u.Username
	if name == "" {
		name = "-"
	}
	mobile := u.Mobile
	if mobile == "" {
		mobile = "-"
	}
	expires := "unknown"
	if info.ExpiresAt != nil {
		expires = info.ExpiresAt.Local().Format(time.RFC1123)
	}
	return fmt.Sprintf(`Email:    %s
Username: %s
Role:     %s
Mobile:   %s
API:      %s
Expires:  %s`,
		u.Email, name, u.Role.Label(), mobile, info.APIURL, expires)
}

// runPasswd changes the signed-in admin's password and returns exit code
func runPasswd(ctx context.Context, w io.Writer, change forms.PasswordChange) int {
	input, err := change.Input()
	if err != nil {
		return invalid(w, err)
	}
	return withSession(ctx, w, guard.PathProfile, func(ctx context.Context, a *app, _ auth.State) int {
		message, err := a.client.ChangePassword(ctx, input)
		if err != nil {
			return fail(w, err)
		}
		if message == "" {
			message = "Password changed"
		}
		emitDone(w, message, nil)
		return 0
	})
}

// runProfile updates the signed-in admin's profile and returns exit code
func runProfile(ctx context.Context, w io.Writer, form forms.ProfileForm) int {
	update, err := form.Update()
	if err != nil {
		return invalid(w, err)
	}
	return withSession(ctx, w, guard.PathProfile, func(ctx context.Context, a *app, _ auth.State) int {
		gen := a.resolver.Generation()
		admin, err := a.client.UpdateProfile(ctx, update)
		if err != nil {
			return fail(w, err)
		}
		user, err := a.resolver.ReplaceUser(gen, *admin)
		if err != nil {
			return fail(w, err)
		}
		emitDone(w, "Profile updated", user)
		return 0
	})
}
