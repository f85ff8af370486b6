package cmd

import (
	"context"
	"fmt"

	"github.com/theirongolddev/paydash/internal/cli"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

// maxMerchantLabel caps the merchant name column, in display columns.
const maxMerchantLabel = 28

var merchantsCmd = &cobra.Command{
	Use:   "merchants",
	Short: "Show top merchants by revenue",
	RunE:  runMerchants,
}

func init() {
	rootCmd.AddCommand(merchantsCmd)
}

func runMerchants(_ *cobra.Command, _ []string) error {
	_, client, err := prepare()
	if err != nil {
		return err
	}

	merchants := client.FetchTopMerchants(context.Background())
	if flagJSON {
		return printJSON(merchants)
	}

	fmt.Println()
	fmt.Print(cli.RenderTitle("Top Merchants"))
	fmt.Println()
	if len(merchants) == 0 {
		fmt.Print(cli.RenderPlaceholder("No merchant data available."))
		fmt.Println()
		return nil
	}

	peak, labelW := 0.0, 0
	for _, m := range merchants {
		peak = max(peak, m.TotalRevenue.Float64())
		labelW = max(labelW, lipgloss.Width(m.Name))
	}
	labelW = min(labelW, maxMerchantLabel)

	for _, m := range merchants {
		fmt.Println(cli.RenderHorizontalBar(m.Name, labelW, m.TotalRevenue.Float64(), peak, renderWidth-labelW-16))
	}
	fmt.Println()
	return nil
}
