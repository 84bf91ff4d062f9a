package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/yuqie6/ScopeClicks/internal/calculator"
)

const rule = "═══════════════════════════════════════"

// emit 按 --json 选择输出格式
func (a *app) emit(cmd *cobra.Command, v any, text func(w io.Writer)) error {
	w := cmd.OutOrStdout()
	if a.jsonOut {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}
	text(w)
	return nil
}

// formatFloat 按固定小数位格式化
func formatFloat(v float64, prec int) string {
	return strconv.FormatFloat(v, 'f', prec, 64)
}

func directionLabel(d calculator.Direction) string {
	switch d {
	case calculator.Up:
		return "向上 ↑"
	case calculator.Down:
		return "向下 ↓"
	case calculator.Left:
		return "向左 ←"
	case calculator.Right:
		return "向右 →"
	default:
		return "无需调整"
	}
}

func printAdjustment(w io.Writer, label string, adj calculator.Adjustment) {
	if adj.Clicks == 0 {
		fmt.Fprintf(w, "  • %s: %s\n", label, directionLabel(adj.Direction))
		return
	}
	fmt.Fprintf(w, "  • %s: %d 点击 %s", label, adj.Clicks, directionLabel(adj.Direction))
	if adj.AngleUnit != "" {
		fmt.Fprintf(w, "  (%s %s, 原始 %s 点击)", formatFloat(adj.Angle, 3), adj.AngleUnit, formatFloat(adj.RawClicks, 2))
	}
	fmt.Fprintln(w)
}
