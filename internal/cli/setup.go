// filepath: internal/cli/setup.go
package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"inkhub/internal/config"
	"inkhub/internal/logging"
	"inkhub/internal/services/auth"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// ErrAlreadyConfigured is returned by setup when a password hash exists and --force is not set.
var ErrAlreadyConfigured = errors.New("authentication is already configured; use --force to replace it")

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Provision the studio password and token signing secret",
	Long: `Stores a bcrypt hash of the studio password and a fresh random signing secret
in the config file. Run once per deployment, before starting the server.
Replacing the secret invalidates every issued token.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		password, _ := cmd.Flags().GetString("password")
		force, _ := cmd.Flags().GetBool("force")

		if password == "" {
			var err error
			password, err = promptNewPassword(cmd.OutOrStdout(), cmd.InOrStdin())
			if err != nil {
				return err
			}
		}
		if err := runSetup(cfgFile, password, force); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Credentials written to %s\n", cfgFile)
		return nil
	},
}

func init() {
	setupCmd.Flags().String("password", "", "Studio password (prompted when omitted)")
	setupCmd.Flags().Bool("force", false, "Replace existing credentials")
	RootCmd.AddCommand(setupCmd)
}

// runSetup writes a new password hash and signing secret into the config
// file at path. Only the auth section changes; overrides from flags and the
// environment are not persisted.
func runSetup(path, password string, force bool) error {
	if strings.TrimSpace(password) == "" {
		return errors.New("password must not be empty")
	}

	fileCfg, err := loadConfigFile(path)
	if err != nil {
		return err
	}
	if fileCfg.Auth.PasswordHash != "" && !force {
		return ErrAlreadyConfigured
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	secret, err := auth.GenerateSecret()
	if err != nil {
		return fmt.Errorf("failed to generate signing secret: %w", err)
	}

	fileCfg.Auth.PasswordHash = hash
	fileCfg.Auth.Secret = secret
	if err := config.SaveConfig(path, fileCfg); err != nil {
		return err
	}

	logging.Log.Infof("Authentication configured in %s", path)
	return nil
}

// promptNewPassword asks twice on a terminal, or reads one line from a pipe.
func promptNewPassword(out io.Writer, in io.Reader) (string, error) {
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		fmt.Fprint(out, "New studio password: ")
		first, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(out)
		if err != nil {
			return "", err
		}
		fmt.Fprint(out, "Repeat password: ")
		second, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(out)
		if err != nil {
			return "", err
		}
		if string(first) != string(second) {
			return "", errors.New("passwords do not match")
		}
		return string(first), nil
	}

	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}
