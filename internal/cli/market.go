package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/pfrederiksen/nav-tracker/internal/market"
	"github.com/spf13/cobra"
)

// newMarketCmd creates the market command: update the index close history.
func newMarketCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "market",
		Short: "Update daily closes for the tracked market indices",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			format, err := outputFormat()
			if err != nil {
				return err
			}

			mt := market.NewTracker(market.NewClient(), cfg.MarketDataFile, market.DefaultIndices)
			store, err := mt.Update()
			if err != nil {
				return err
			}

			if format == FormatJSON {
				encoder := json.NewEncoder(os.Stdout)
				encoder.SetIndent("", "  ")
				return encoder.Encode(store)
			}

			for _, idx := range market.DefaultIndices {
				h, ok := store.Indices[idx.Symbol]
				if !ok || len(h.History) == 0 {
					fmt.Printf("%-22s no data\n", idx.Name)
					continue
				}
				last := h.History[len(h.History)-1]
				fmt.Printf("%-22s %10.2f  %s (%d entries)\n", h.Name, last.Close, last.Date, len(h.History))
			}
			return nil
		},
	}
}
