package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"TripPlanner/internal/model"
	"TripPlanner/internal/model/dto"
	"TripPlanner/internal/service"
	"TripPlanner/storage/database"
)

var (
	seedTitle   string
	seedKeyword string
	seedStart   string
	seedEnd     string
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Create the default trip unless one matching the keyword exists",
	Args:  cobra.NoArgs,
	RunE:  runSeed,
}

func init() {
	seedCmd.Flags().StringVar(&seedTitle, "title", "태국 푸켓 여행", "Title of the trip to create")
	seedCmd.Flags().StringVar(&seedKeyword, "keyword", "푸켓", "Reuse the oldest trip whose title contains this")
	seedCmd.Flags().StringVar(&seedStart, "start", "2025-08-13", "Start date (YYYY-MM-DD)")
	seedCmd.Flags().StringVar(&seedEnd, "end", "2025-08-16", "End date (YYYY-MM-DD)")
}

func runSeed(cmd *cobra.Command, args []string) error {
	req, err := seedRequest()
	if err != nil {
		return err
	}

	if err := database.Init(); err != nil {
		return fmt.Errorf("seed: %w", err)
	}
	defer database.Close(context.Background())

	trip, created, err := service.Trip().Ensure(cmd.Context(), req)
	if err != nil {
		return fmt.Errorf("seed: %w", err)
	}

	verb := "reused"
	if created {
		verb = "created"
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s trip %s %q (%s ~ %s, %d days)\n",
		verb, trip.ID, trip.Title, trip.StartDate, trip.EndDate, trip.TotalDays)
	return nil
}

func seedRequest() (dto.EnsureTripRequest, error) {
	start, err := model.ParseDate(seedStart)
	if err != nil {
		return dto.EnsureTripRequest{}, fmt.Errorf("invalid --start: %w", err)
	}
	end, err := model.ParseDate(seedEnd)
	if err != nil {
		return dto.EnsureTripRequest{}, fmt.Errorf("invalid --end: %w", err)
	}

	return dto.EnsureTripRequest{
		Keyword: seedKeyword,
		CreateTripRequest: dto.CreateTripRequest{
			Title:     seedTitle,
			StartDate: start,
			EndDate:   end,
		},
	}, nil
}
