package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"TripPlanner/internal/service"
)

var (
	convertAmount string
	convertFrom   string
)

var convertCmd = &cobra.Command{
	Use:   "convert",
	Short: "Convert an amount between THB and KRW with the calculator rate",
	Args:  cobra.NoArgs,
	RunE:  runConvert,
}

func init() {
	convertCmd.Flags().StringVar(&convertAmount, "amount", "", "Amount to convert")
	convertCmd.Flags().StringVar(&convertFrom, "from", "THB", "Source currency (THB or KRW)")
	_ = convertCmd.MarkFlagRequired("amount")
}

func runConvert(cmd *cobra.Command, args []string) error {
	res, err := service.Exchange().Convert(convertAmount, convertFrom)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s %s = %s %s (rate %s)\n",
		res.Amount, res.From, res.Result, res.To, res.Rate)
	return nil
}
