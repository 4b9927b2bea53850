package guard

import (
	"strings"
	"time"

	"ordergate/pkg/clierr"
)

// checkTradingWindow compares now's local wall-clock time against a
// "HH:MM-HH:MM" window. A window whose start is after its end wraps
// midnight. An empty window always passes; a malformed one is a config
// defect, not a policy block.
func checkTradingWindow(window string, now time.Time) error {
	window = strings.TrimSpace(window)
	if window == "" {
		return nil
	}

	startS, endS, ok := strings.Cut(window, "-")
	if !ok {
		return clierr.Validationf("invalid trading_window format; expected HH:MM-HH:MM")
	}

	start, err := parseClock(startS)
	if err != nil {
		return err
	}
	end, err := parseClock(endS)
	if err != nil {
		return err
	}

	minute := now.Hour()*60 + now.Minute()

	var allowed bool
	if start <= end {
		allowed = start <= minute && minute <= end
	} else {
		allowed = minute >= start || minute <= end
	}

	if !allowed {
		return clierr.Blockf("trading is outside configured trading_window %s", window)
	}
	return nil
}

// parseClock converts "HH:MM" to minutes since midnight.
func parseClock(s string) (int, error) {
	t, err := time.Parse("15:04", strings.TrimSpace(s))
	if err != nil {
		return 0, clierr.Validationf("invalid trading_window format: %v", err)
	}
	return t.Hour()*60 + t.Minute(), nil
}
