package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/mobile-next/ghostcli/commands"
	"github.com/mobile-next/ghostcli/types"
	"github.com/spf13/cobra"
)

var scriptCmd = &cobra.Command{
	Use:   "script",
	Short: "Generate event scripts for common gestures",
	Long:  `Prints JSON event scripts for taps, swipes and pinches. The output can be fed to 'replay' or 'transform preview'.`,
}

var scriptTapCmd = &cobra.Command{
	Use:   "tap [x,y]",
	Short: "Generate a tap at the given coordinates",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		points, err := parsePoints(args[0], 1)
		if err != nil {
			return finish(commands.NewErrorResponse(err))
		}

		printJson(commands.EventScript{Events: commands.TapScript(points[0])})
		return nil
	},
}

var scriptSwipeCmd = &cobra.Command{
	Use:   "swipe [x1,y1,x2,y2]",
	Short: "Generate a single-finger swipe",
	Long:  `Generates a straight swipe from (x1,y1) to (x2,y2). Use --hold to press before moving, which makes the ghost icon drag instead of adjusting opacity.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		points, err := parsePoints(args[0], 2)
		if err != nil {
			return finish(commands.NewErrorResponse(err))
		}

		events, err := commands.SwipeScript(commands.SwipeRequest{
			From:     points[0],
			To:       points[1],
			Hold:     scriptHold,
			Duration: scriptDuration,
			Steps:    scriptSteps,
		})
		if err != nil {
			return finish(commands.NewErrorResponse(err))
		}

		printJson(commands.EventScript{Events: events})
		return nil
	},
}

var scriptPinchCmd = &cobra.Command{
	Use:   "pinch [x,y]",
	Short: "Generate a two-finger pinch around a center point",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		points, err := parsePoints(args[0], 1)
		if err != nil {
			return finish(commands.NewErrorResponse(err))
		}

		events, err := commands.PinchScript(commands.PinchRequest{
			Center:       points[0],
			FromDistance: pinchFrom,
			ToDistance:   pinchTo,
			Rotate:       pinchRotate,
			Steps:        scriptSteps,
		})
		if err != nil {
			return finish(commands.NewErrorResponse(err))
		}

		printJson(commands.EventScript{Events: events})
		return nil
	},
}

// parsePoints reads "x,y[,x,y...]" into exactly n points.
func parsePoints(s string, n int) ([]types.Point, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2*n {
		return nil, fmt.Errorf("invalid coordinate format. Expected %d comma separated numbers, got '%s'", 2*n, s)
	}

	values := make([]float64, len(parts))
	for i, part := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid coordinate value '%s'", part)
		}
		values[i] = v
	}

	points := make([]types.Point, n)
	for i := range points {
		points[i] = types.Point{X: values[2*i], Y: values[2*i+1]}
	}
	return points, nil
}

func init() {
	rootCmd.AddCommand(scriptCmd)
	scriptCmd.AddCommand(scriptTapCmd, scriptSwipeCmd, scriptPinchCmd)

	scriptSwipeCmd.Flags().IntVar(&scriptSteps, "steps", 10, "number of move events")
	scriptSwipeCmd.Flags().DurationVar(&scriptHold, "hold", 0, "time to hold before moving (e.g. 600ms)")
	scriptSwipeCmd.Flags().DurationVar(&scriptDuration, "duration", 200*time.Millisecond, "time spent moving")

	scriptPinchCmd.Flags().IntVar(&scriptSteps, "steps", 10, "number of move steps")
	scriptPinchCmd.Flags().Float64Var(&pinchFrom, "from", 100, "starting distance between the fingers")
	scriptPinchCmd.Flags().Float64Var(&pinchTo, "to", 200, "final distance between the fingers")
	scriptPinchCmd.Flags().Float64Var(&pinchRotate, "rotate", 0, "degrees to rotate the finger line by")
}
