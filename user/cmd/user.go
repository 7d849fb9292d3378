package cmd

import (
	"errors"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/Alturino/restaurant/internal/app"
	"github.com/Alturino/restaurant/internal/constants"
	"github.com/Alturino/restaurant/user/pkg/auth"
	"github.com/Alturino/restaurant/user/pkg/request"
)

// NewCommands returns the account commands: login, logout, whoami and
// register.
func NewCommands(opts *app.Options) []*cobra.Command {
	return []*cobra.Command{
		newLoginCommand(opts),
		newLogoutCommand(opts),
		newWhoamiCommand(opts),
		newRegisterCommand(opts),
	}
}

func printFormError(cmd *cobra.Command, err error) error {
	formErr := &auth.FormError{}
	if !errors.As(err, &formErr) {
		return err
	}
	fields := make([]string, 0, len(formErr.Fields))
	for field := range formErr.Fields {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	for _, field := range fields {
		fmt.Fprintf(cmd.ErrOrStderr(), "%s: %s\n", field, formErr.Fields[field])
	}
	return err
}

func newLoginCommand(opts *app.Options) *cobra.Command {
	req := request.LoginRequest{}
	loginCmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and keep the session on this device",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, a, err := app.New(cmd.Context(), *opts, constants.APP_USER_SERVICE)
			if err != nil {
				return err
			}
			defer a.Close(c)

			login, err := auth.NewClient(a.API).Login(c, req)
			if err != nil {
				return printFormError(cmd, err)
			}
			if err = a.Session.Login(c, login); err != nil {
				return err
			}
			user, _ := a.Session.User()
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "signed in as %s (%s)\n", user.FullName(), a.Session.Role())
			return err
		},
	}
	loginCmd.Flags().StringVarP(&req.Email, "email", "e", "", "account email")
	loginCmd.Flags().StringVarP(&req.Password, "password", "p", "", "account password")
	return loginCmd
}

func newLogoutCommand(opts *app.Options) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the session kept on this device",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, a, err := app.New(cmd.Context(), *opts, constants.APP_USER_SERVICE)
			if err != nil {
				return err
			}
			defer a.Close(c)

			if err = a.Session.Logout(c); err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), "signed out")
			return err
		},
	}
}

func newWhoamiCommand(opts *app.Options) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed in customer",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, a, err := app.New(cmd.Context(), *opts, constants.APP_USER_SERVICE)
			if err != nil {
				return err
			}
			defer a.Close(c)

			user, ok := a.Session.User()
			if !ok {
				_, err = fmt.Fprintln(cmd.OutOrStdout(), "not signed in")
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s <%s> %s\n", user.FullName(), user.Email, a.Session.Role())
			return err
		},
	}
}

func newRegisterCommand(opts *app.Options) *cobra.Command {
	req := request.Register{}
	registerCmd := &cobra.Command{
		Use:   "register",
		Short: "Create a customer account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, a, err := app.New(cmd.Context(), *opts, constants.APP_USER_SERVICE)
			if err != nil {
				return err
			}
			defer a.Close(c)

			if err = auth.NewClient(a.API).Register(c, req); err != nil {
				return printFormError(cmd, err)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), "account created, you can sign in now")
			return err
		},
	}
	flags := registerCmd.Flags()
	flags.StringVar(&req.Nombres, "nombres", "", "first names")
	flags.StringVar(&req.Apellidos, "apellidos", "", "last names")
	flags.StringVar(&req.Birthdate, "birthdate", "", "birth date as DD/MM/YYYY")
	flags.StringVar(&req.Celular, "celular", "", "10 digit phone number")
	flags.StringVar(&req.Genero, "genero", "", "gender")
	flags.StringVarP(&req.Email, "email", "e", "", "account email")
	flags.StringVarP(&req.Password, "password", "p", "", "password, 8 to 20 characters")
	flags.StringVar(&req.ConfirmPassword, "confirm-password", "", "the password again")
	return registerCmd
}
