package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"slices"
	"strings"

	"github.com/gorilla/websocket"
	"github.com/spf13/cobra"

	"github.com/xplm-go/xplm/inspector"
	"github.com/xplm-go/xplm/internal/version"
)

func newWatchCmd() *cobra.Command {
	var (
		addr  string
		token string
	)

	cmd := &cobra.Command{
		Use:   "watch <dataref>...",
		Short: "Stream live dataref values from a running plugin's inspector",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if token == "" {
				token = os.Getenv("GOXPLM_INSPECTOR_TOKEN")
			}
			return runWatch(cmd, addr, token, args)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "127.0.0.1:18590", "inspector address (host:port)")
	cmd.Flags().StringVar(&token, "token", "", "inspector auth token (or GOXPLM_INSPECTOR_TOKEN)")

	return cmd
}

func runWatch(cmd *cobra.Command, addr, token string, names []string) error {
	conn, _, err := websocket.DefaultDialer.Dial("ws://"+addr+"/ws", nil)
	if err != nil {
		return fmt.Errorf("connecting to inspector at %s: %w", addr, err)
	}
	defer conn.Close()

	var challenge inspector.Frame
	if err := conn.ReadJSON(&challenge); err != nil {
		return fmt.Errorf("reading challenge: %w", err)
	}

	params := inspector.ConnectParams{
		MinProtocol: inspector.ProtocolVersion,
		MaxProtocol: inspector.ProtocolVersion,
		Client:      inspector.ClientInfo{ID: "goxplm-watch", Version: version.Version},
	}
	if token != "" {
		params.Auth = &inspector.ConnectAuth{Token: token}
	}
	req, err := inspector.NewRequest("connect", "connect", params)
	if err != nil {
		return err
	}
	if err := conn.WriteJSON(req); err != nil {
		return err
	}

	var hello inspector.Frame
	if err := conn.ReadJSON(&hello); err != nil {
		return fmt.Errorf("reading hello: %w", err)
	}
	if hello.Error != nil {
		return fmt.Errorf("connect refused: %s", hello.Error.Message)
	}

	watch, err := inspector.NewRequest("watch", "data.watch", map[string][]string{"names": names})
	if err != nil {
		return err
	}
	if err := conn.WriteJSON(watch); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()
	go func() {
		<-ctx.Done()
		conn.Close()
	}()

	for {
		var f inspector.Frame
		if err := conn.ReadJSON(&f); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return err
		}

		switch {
		case f.Type == inspector.FrameTypeResponse && f.ID == "watch":
			if f.Error != nil {
				return fmt.Errorf("watch refused: %s", f.Error.Message)
			}
			var ch struct {
				Missing     []string `json:"missing"`
				Unsupported []string `json:"unsupported"`
				Watched     []string `json:"watched"`
			}
			if err := json.Unmarshal(f.Payload, &ch); err != nil {
				return err
			}
			for _, m := range ch.Missing {
				fmt.Fprintf(cmd.ErrOrStderr(), "not found: %s\n", m)
			}
			for _, u := range ch.Unsupported {
				fmt.Fprintf(cmd.ErrOrStderr(), "not numeric: %s\n", u)
			}
			if len(ch.Watched) == 0 {
				return fmt.Errorf("nothing to watch")
			}

		case f.Type == inspector.FrameTypeEvent && f.Event == "data.snapshot":
			var snap inspector.Snapshot
			if err := json.Unmarshal(f.Payload, &snap); err != nil {
				return err
			}
			fmt.Println(formatSnapshot(snap))
		}
	}
}

func formatSnapshot(snap inspector.Snapshot) string {
	names := make([]string, 0, len(snap.Values))
	for name := range snap.Values {
		names = append(names, name)
	}
	slices.Sort(names)

	var b strings.Builder
	fmt.Fprintf(&b, "t=%9.2f", snap.SimTime)
	for _, name := range names {
		fmt.Fprintf(&b, "  %s=%g", name, snap.Values[name])
	}
	return b.String()
}
