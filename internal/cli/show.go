package cli

import (
	"fmt"
	"os"

	"github.com/pfrederiksen/nav-tracker/internal/storage"
	"github.com/spf13/cobra"
)

// newShowCmd creates the show command: print the stored history without
// fetching anything.
func newShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the stored fund history",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			format, err := outputFormat()
			if err != nil {
				return err
			}

			st, err := storage.New(cfg.DataFile)
			if err != nil {
				return fmt.Errorf("initializing storage: %w", err)
			}
			store, err := st.Load()
			if err != nil {
				return err
			}

			return WriteStore(os.Stdout, store, format)
		},
	}
}
