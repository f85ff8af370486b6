package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/theirongolddev/paydash/internal/api"
	"github.com/theirongolddev/paydash/internal/cli"

	"github.com/charmbracelet/huh"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

var (
	flagCHFirst   string
	flagCHLast    string
	flagCHEmail   string
	flagCHPhone   string
	flagCHAddress string
)

var cardholdersCmd = &cobra.Command{
	Use:     "cardholders",
	Aliases: []string{"ch"},
	Short:   "List cardholders",
	RunE:    runCardholders,
}

var cardholdersAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Create a cardholder",
	Long:  "Create a cardholder. Missing fields are prompted for when stdin is a terminal.",
	RunE:  runCardholdersAdd,
}

func init() {
	f := cardholdersAddCmd.Flags()
	f.StringVar(&flagCHFirst, "first", "", "First name")
	f.StringVar(&flagCHLast, "last", "", "Last name")
	f.StringVar(&flagCHEmail, "email", "", "Email address")
	f.StringVar(&flagCHPhone, "phone", "", "Phone number")
	f.StringVar(&flagCHAddress, "address", "", "Postal address")

	cardholdersCmd.AddCommand(cardholdersAddCmd)
	rootCmd.AddCommand(cardholdersCmd)
}

func runCardholders(_ *cobra.Command, _ []string) error {
	_, client, err := prepare()
	if err != nil {
		return err
	}

	chs := client.FetchCardholders(context.Background())
	if flagJSON {
		return printJSON(chs)
	}

	fmt.Println()
	fmt.Print(cli.RenderCardholders(chs))
	fmt.Println()
	return nil
}

func runCardholdersAdd(_ *cobra.Command, _ []string) error {
	_, client, err := prepare()
	if err != nil {
		return err
	}

	n := api.NewCardholder{
		FirstName: strings.TrimSpace(flagCHFirst),
		LastName:  strings.TrimSpace(flagCHLast),
		Email:     strings.TrimSpace(flagCHEmail),
		Phone:     strings.TrimSpace(flagCHPhone),
		Address:   strings.TrimSpace(flagCHAddress),
	}

	if n.Validate() != nil && isatty.IsTerminal(os.Stdin.Fd()) {
		if err := newCardholderForm(&n).Run(); err != nil {
			return fmt.Errorf("cardholder form: %w", err)
		}
	}

	if err := client.CreateCardholder(context.Background(), n); err != nil {
		return fmt.Errorf("creating cardholder: %w", err)
	}

	fmt.Printf("  Created cardholder %s %s <%s>\n", n.FirstName, n.LastName, n.Email)
	return nil
}

func newCardholderForm(n *api.NewCardholder) *huh.Form {
	required := func(field string) func(string) error {
		return func(s string) error {
			if strings.TrimSpace(s) == "" {
				return fmt.Errorf("%s is required", field)
			}
			return nil
		}
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("First name").Value(&n.FirstName).Validate(required("first name")),
			huh.NewInput().Title("Last name").Value(&n.LastName).Validate(required("last name")),
			huh.NewInput().Title("Email").Value(&n.Email).Validate(func(s string) error {
				if !strings.Contains(s, "@") {
					return errors.New("email must contain @")
				}
				return nil
			}),
			huh.NewInput().Title("Phone").Description("optional").Value(&n.Phone),
			huh.NewText().Title("Address").Description("optional").Value(&n.Address),
		),
	)
}
