package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

func init() {
	chatCmd := &cobra.Command{
		Use:   "chat MESSAGE...",
		Short: "Send a message to the assistant",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			payload := map[string]string{"message": strings.Join(args, " ")}
			data, err := doPostJSON(fmt.Sprintf("%s/api/chat", apiFlag), payload)
			if err != nil {
				return err
			}
			var out struct {
				Reply string `json:"reply"`
			}
			if err := json.Unmarshal(data, &out); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, out.Reply)
			return nil
		},
	}
	rootCmd.AddCommand(chatCmd)
}
