package system

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/julianstephens/sustainlog/internal/cli"
	"github.com/julianstephens/sustainlog/internal/errors"
)

type DoctorCmd struct{}

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	out := ctx.Stdout()
	fmt.Fprintln(out, "Running diagnostics...")
	fmt.Fprintln(out)

	hasError := false

	if ctx.Config != nil {
		fmt.Fprintf(out, "✓ API URL: %s\n", ctx.Config.BaseURL)
	}

	// Check 1: collection reachable and readable
	actions, err := ctx.Client.List(ctx.Context())
	if err != nil {
		fmt.Fprintf(out, "❌ Collection reachable: FAIL\n")
		fmt.Fprintf(out, "   %s\n", errors.Describe(err))
		hasError = true
	} else {
		fmt.Fprintf(out, "✓ Collection reachable: OK\n")
		fmt.Fprintf(out, "✓ Actions recorded: %d\n", len(actions))
	}

	// Check 2: request metrics for this run
	if ctx.Metrics != nil {
		if err := writeMetrics(out, ctx); err != nil {
			fmt.Fprintf(out, "⚠ Request metrics: WARNING\n")
			fmt.Fprintf(out, "   %v\n", err)
		}
	}

	fmt.Fprintln(out)
	if hasError {
		fmt.Fprintln(out, "Diagnostics completed with errors.")
		return fmt.Errorf("one or more health checks failed")
	}

	fmt.Fprintln(out, "All diagnostics passed!")
	return nil
}

func writeMetrics(out io.Writer, ctx *cli.Context) error {
	families, err := ctx.Metrics.Gather()
	if err != nil {
		return fmt.Errorf("failed to gather metrics: %w", err)
	}

	var lines []string
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			var labels []string
			for _, lp := range m.GetLabel() {
				labels = append(labels, fmt.Sprintf("%s=%q", lp.GetName(), lp.GetValue()))
			}
			name := mf.GetName()
			if len(labels) > 0 {
				name += "{" + strings.Join(labels, ",") + "}"
			}

			switch {
			case m.GetCounter() != nil:
				lines = append(lines, fmt.Sprintf("%s %g", name, m.GetCounter().GetValue()))
			case m.GetHistogram() != nil:
				h := m.GetHistogram()
				lines = append(lines, fmt.Sprintf("%s count=%d sum=%.3fs", name, h.GetSampleCount(), h.GetSampleSum()))
			}
		}
	}
	sort.Strings(lines)

	fmt.Fprintf(out, "✓ Request metrics:\n")
	for _, line := range lines {
		fmt.Fprintf(out, "   %s\n", line)
	}
	return nil
}
