package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tubesum/tubesum/internal/config"
)

func newHistoryCommand() *cobra.Command {
	var removeID string
	var clear bool

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List or edit the recent link history",
		Example: `  tubesum history
  tubesum history --remove 2f4c...
  tubesum history --clear`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}

			switch {
			case clear:
				cfg.ClearHistory()
				if err := cfg.Save(); err != nil {
					return fmt.Errorf("save config: %w", err)
				}
				fmt.Println("History cleared")

			case removeID != "":
				if !cfg.RemoveHistory(removeID) {
					return fmt.Errorf("no history entry with id %s", removeID)
				}
				if err := cfg.Save(); err != nil {
					return fmt.Errorf("save config: %w", err)
				}
				fmt.Println("Entry removed")

			default:
				if len(cfg.LinkHistory) == 0 {
					fmt.Println("History is empty")
					return nil
				}
				for i, e := range cfg.LinkHistory {
					fmt.Printf("%2d. %s\n    %s\n    %s  id=%s\n",
						i+1, e.Title, e.URL, e.Timestamp.Format("2006-01-02 15:04"), e.ID)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&removeID, "remove", "", "Remove the entry with this ID")
	cmd.Flags().BoolVar(&clear, "clear", false, "Remove all entries")

	return cmd
}
