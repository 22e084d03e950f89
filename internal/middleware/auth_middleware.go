package middleware

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"

	"github.com/YassineBouzid/phsyckatre-clinick/internal/services"
)

// LoginRequest holds the credentials entered at the login gate.
type LoginRequest struct {
	Username string `validate:"required"`
	Password string `validate:"required"`
}

// Gate is a cobra pre-run hook.
type Gate func(cmd *cobra.Command, args []string) error

// AuthRequired returns a cobra hook asking for credentials before the
// command runs. The username comes from the "username" key of v (flag or
// CLINIC_USERNAME) and the password from the "password" key
// (CLINIC_PASSWORD); missing values are prompted for on in. Once a login
// succeeds the gate stays open for the rest of the process.
func AuthRequired(authService *services.AuthService, v *viper.Viper, in io.Reader, out io.Writer) Gate {
	validate := validator.New()
	authenticated := false

	return func(cmd *cobra.Command, args []string) error {
		if authenticated {
			return nil
		}

		reader := bufio.NewReader(in)
		req := LoginRequest{
			Username: v.GetString("username"),
			Password: v.GetString("password"),
		}
		if req.Username == "" {
			fmt.Fprint(out, "Username: ")
			line, err := readLine(reader)
			if err != nil {
				return fmt.Errorf("failed to read username: %w", err)
			}
			req.Username = line
		}
		if req.Password == "" {
			fmt.Fprint(out, "Password: ")
			pw, err := readPassword(in, reader)
			fmt.Fprintln(out)
			if err != nil {
				return fmt.Errorf("failed to read password: %w", err)
			}
			req.Password = pw
		}

		if err := validate.Struct(req); err != nil {
			var validationErrors validator.ValidationErrors
			if errors.As(err, &validationErrors) {
				msgs := make([]string, 0, len(validationErrors))
				for _, e := range validationErrors {
					msgs = append(msgs, fmt.Sprintf("field '%s' failed on the '%s' tag", e.Field(), e.Tag()))
				}
				return fmt.Errorf("login rejected: %s", strings.Join(msgs, "; "))
			}
			return fmt.Errorf("login rejected: %w", err)
		}

		if err := authService.Authenticate(req.Username, req.Password); err != nil {
			return fmt.Errorf("authentication failed: %w", err)
		}
		authenticated = true
		return nil
	}
}

func readLine(r *bufio.Reader) (string, error) {
	line, err := r.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// readPassword reads without echo when in is a terminal.
func readPassword(in io.Reader, r *bufio.Reader) (string, error) {
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		pw, err := term.ReadPassword(int(f.Fd()))
		return string(pw), err
	}
	return readLine(r)
}
