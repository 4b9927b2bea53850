package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"ordergate/pkg/clierr"
)

var liveCmd = &cobra.Command{
	Use:   "live",
	Short: "Manage live-mode arming",
	Long: `Manage the live-mode flag and its unlock token.

Live order submission needs two things: the persisted live_mode flag
turned on, and a fresh unlock token supplied with the order. Tokens are
time-boxed; issuing a new one replaces the old one.

Examples:
  ordergate live on --ttl-seconds 900
  ordergate live status
  ordergate live unlock
  ordergate live off`,
}

var liveOnCmd = &cobra.Command{
	Use:   "on",
	Short: "Enable live mode and issue an unlock token",
	Args:  cobra.NoArgs,
	RunE:  runLiveOn,
}

var liveOffCmd = &cobra.Command{
	Use:   "off",
	Short: "Disable live mode and clear the unlock token",
	Args:  cobra.NoArgs,
	RunE:  runLiveOff,
}

var liveStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the live-mode flag and unlock token state",
	Args:  cobra.NoArgs,
	RunE:  runLiveStatus,
}

var liveUnlockCmd = &cobra.Command{
	Use:   "unlock",
	Short: "Issue a fresh unlock token (live mode must be on)",
	Args:  cobra.NoArgs,
	RunE:  runLiveUnlock,
}

var liveClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete the stored unlock token",
	Args:  cobra.NoArgs,
	RunE:  runLiveClear,
}

var (
	liveYes        bool
	liveTTLSeconds int
)

func init() {
	rootCmd.AddCommand(liveCmd)
	liveCmd.AddCommand(liveOnCmd)
	liveCmd.AddCommand(liveOffCmd)
	liveCmd.AddCommand(liveStatusCmd)
	liveCmd.AddCommand(liveUnlockCmd)
	liveCmd.AddCommand(liveClearCmd)

	liveOnCmd.Flags().BoolVarP(&liveYes, "yes", "y", false, "skip the confirmation prompt")
	liveOnCmd.Flags().IntVar(&liveTTLSeconds, "ttl-seconds", 0, "token TTL in seconds (defaults to config safety.live_unlock_ttl_seconds)")
	liveUnlockCmd.Flags().IntVar(&liveTTLSeconds, "ttl-seconds", 0, "token TTL in seconds (defaults to config safety.live_unlock_ttl_seconds)")
}

func runLiveOn(cmd *cobra.Command, args []string) error {
	rt, err := openRuntime()
	if err != nil {
		return respond("live on", nil, nil, err)
	}
	defer rt.Close()

	if !liveYes && !confirm("Enable live mode? This allows order placement.") {
		return respond("live on", nil, nil,
			clierr.Validationf("live mode not enabled"))
	}

	rt.gate.SetLiveMode(true)
	if liveTTLSeconds > 0 {
		rt.cfg.Safety.LiveUnlockTTLSeconds = liveTTLSeconds
	}
	if err := rt.cfg.SaveToFile(cfgPath); err != nil {
		return respond("live on", nil, nil, clierr.Internal("save config", err))
	}

	token, expiresAt, err := rt.gate.IssueUnlock(rt.cfg.Safety.LiveUnlockTTLSeconds)
	if err != nil {
		return respond("live on", nil, nil, err)
	}

	rt.log.Info("live mode enabled", "ttl_seconds", rt.cfg.Safety.LiveUnlockTTLSeconds)

	data := map[string]any{
		"live_mode":          true,
		"live_confirm_token": token,
		"expires_at":         expiresAt,
		"ttl_seconds":        rt.cfg.Safety.LiveUnlockTTLSeconds,
	}
	return respond("live on", data, func() {
		fmt.Println("Live mode is ON")
		fmt.Printf("  Unlock token: %s\n", token)
		fmt.Printf("  Expires at:   %d (epoch seconds)\n", expiresAt)
	}, nil)
}

func runLiveOff(cmd *cobra.Command, args []string) error {
	rt, err := openRuntime()
	if err != nil {
		return respond("live off", nil, nil, err)
	}
	defer rt.Close()

	rt.gate.SetLiveMode(false)
	if err := rt.cfg.SaveToFile(cfgPath); err != nil {
		return respond("live off", nil, nil, clierr.Internal("save config", err))
	}
	if err := rt.gate.Clear(); err != nil {
		return respond("live off", nil, nil, err)
	}

	rt.log.Info("live mode disabled")

	return respond("live off", map[string]any{"live_mode": false}, func() {
		fmt.Println("Live mode is OFF")
	}, nil)
}

func runLiveStatus(cmd *cobra.Command, args []string) error {
	rt, err := openRuntime()
	if err != nil {
		return respond("live status", nil, nil, err)
	}
	defer rt.Close()

	status, err := rt.gate.Status()
	if err != nil {
		return respond("live status", nil, nil, err)
	}

	data := map[string]any{
		"live_mode":   rt.gate.LiveModeEnabled(),
		"live_unlock": status,
	}
	return respond("live status", data, func() {
		fmt.Printf("Live mode: %v\n", rt.gate.LiveModeEnabled())
		if status.Active {
			fmt.Printf("Unlock token: active, expires at %d\n", *status.ExpiresAt)
		} else if status.ExpiresAt != nil {
			fmt.Printf("Unlock token: expired at %d\n", *status.ExpiresAt)
		} else {
			fmt.Println("Unlock token: none")
		}
	}, nil)
}

func runLiveUnlock(cmd *cobra.Command, args []string) error {
	rt, err := openRuntime()
	if err != nil {
		return respond("live unlock", nil, nil, err)
	}
	defer rt.Close()

	if err := rt.gate.RequireLiveMode(); err != nil {
		return respond("live unlock", nil, nil, err)
	}

	ttl := rt.cfg.Safety.LiveUnlockTTLSeconds
	if liveTTLSeconds > 0 {
		ttl = liveTTLSeconds
	}
	token, expiresAt, err := rt.gate.IssueUnlock(ttl)
	if err != nil {
		return respond("live unlock", nil, nil, err)
	}

	data := map[string]any{
		"live_confirm_token": token,
		"expires_at":         expiresAt,
		"ttl_seconds":        ttl,
	}
	return respond("live unlock", data, func() {
		fmt.Printf("Unlock token: %s\n", token)
		fmt.Printf("Expires at:   %d (epoch seconds)\n", expiresAt)
	}, nil)
}

func runLiveClear(cmd *cobra.Command, args []string) error {
	rt, err := openRuntime()
	if err != nil {
		return respond("live clear", nil, nil, err)
	}
	defer rt.Close()

	if err := rt.gate.Clear(); err != nil {
		return respond("live clear", nil, nil, err)
	}
	return respond("live clear", map[string]any{"cleared": true}, func() {
		fmt.Println("Unlock token cleared")
	}, nil)
}

func confirm(prompt string) bool {
	fmt.Printf("%s [y/N]: ", prompt)
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}
