package handlers

import (
	"fmt"

	"github.com/spf13/cobra"
)

// AuthHandler exposes a credential check on the command line. The check
// itself runs in the login gate installed on the command.
type AuthHandler struct{}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler() *AuthHandler {
	return &AuthHandler{}
}

// RegisterCommands adds the login command to root and returns it.
func (h *AuthHandler) RegisterCommands(root *cobra.Command) *cobra.Command {
	loginCmd := &cobra.Command{
		Use:   "login",
		Short: "Check the clinic credentials",
		Args:  cobra.NoArgs,
		RunE:  h.HandleLogin,
	}
	root.AddCommand(loginCmd)
	return loginCmd
}

// HandleLogin reports a successful login.
func (h *AuthHandler) HandleLogin(cmd *cobra.Command, args []string) error {
	fmt.Fprintln(cmd.OutOrStdout(), "Login successful")
	return nil
}
