package main

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"go.clipx.app/clipx/internal/message"
)

func newHistoryCmd() *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List the clipboard history",
		Long: `Prints the running daemon's clipboard history, most recent first.
Indexes shown here are the ones "clipx delete" accepts.`,
		Args:    cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, _ []string) error { return bindViper(cmd, v) },
		RunE:    func(_ *cobra.Command, _ []string) error { return runHistory(v) },
	}

	f := cmd.Flags()
	f.Int("limit", 0, "show at most N entries (0 = all)")
	f.Bool("json", false, "output raw JSON")
	addConfigFlag(cmd)

	return cmd
}

func runHistory(v *viper.Viper) error {
	resp, err := request(&message.Message{
		Type:  message.TypeHistory,
		Limit: v.GetInt("limit"),
	})
	if err != nil {
		return err
	}

	if v.GetBool("json") {
		enc, _ := json.MarshalIndent(resp.Entries, "", "  ")
		fmt.Println(string(enc))
		return nil
	}

	if len(resp.Entries) == 0 {
		fmt.Println("History is empty.")
		return nil
	}

	tw := tabwriter.NewWriter(os.Stdout, 1, 0, 2, ' ', 0)
	_, _ = fmt.Fprintf(tw, "#\tTYPE\tAGE\tPREVIEW\n")
	_, _ = fmt.Fprintf(tw, "-\t----\t---\t-------\n")
	for i, e := range resp.Entries {
		_, _ = fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n",
			i, e.ContentType, fmtAge(e.Timestamp), e.Preview())
	}
	return tw.Flush()
}
