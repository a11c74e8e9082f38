package main

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"go.clipx.app/clipx/internal/ipc"
	"go.clipx.app/clipx/internal/message"
)

func newStatusCmd() *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:     "status",
		Short:   "Show the running daemon's status",
		Args:    cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, _ []string) error { return bindViper(cmd, v) },
		RunE:    func(_ *cobra.Command, _ []string) error { return runStatus(v) },
	}

	f := cmd.Flags()
	f.Bool("json", false, "output raw JSON")
	addConfigFlag(cmd)

	return cmd
}

func runStatus(v *viper.Viper) error {
	resp, err := request(&message.Message{Type: message.TypeStatus})
	if err != nil {
		return err
	}
	if resp.Status == nil {
		return fmt.Errorf("malformed status response")
	}

	if v.GetBool("json") {
		enc, _ := json.MarshalIndent(resp.Status, "", "  ")
		fmt.Println(string(enc))
		return nil
	}

	s := resp.Status
	w := tabwriter.NewWriter(os.Stdout, 1, 0, 2, ' ', 0)
	fmt.Fprintf(w, "Socket:\t%s\n", ipc.SocketPath())
	fmt.Fprintf(w, "PID:\t%d\n", s.PID)
	fmt.Fprintf(w, "Version:\t%s\n", s.Version)
	if !s.StartedAt.IsZero() {
		fmt.Fprintf(w, "Started:\t%s (%s)\n",
			s.StartedAt.Format(time.RFC3339), fmtAge(s.StartedAt))
	}
	fmt.Fprintf(w, "Entries:\t%d\n", s.HistoryLen)
	fmt.Fprintf(w, "Accessibility:\t%s\n", yesNo(s.Trusted, "granted", "missing"))
	fmt.Fprintf(w, "Hotkey:\t%s\n", yesNo(s.HotkeyReady, "active (cmd+opt+v)", "inactive"))
	return w.Flush()
}

func yesNo(b bool, yes, no string) string {
	if b {
		return yes
	}
	return no
}
