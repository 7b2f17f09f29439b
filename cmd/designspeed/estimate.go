package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/couchcryptid/storm-data-extremes-service/internal/domain"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli/v2"
)

var (
	methodFlag = cli.StringFlag{
		Name:  "method",
		Usage: "estimation method (see the methods command)",
		Value: string(domain.MethodGumbel),
	}
	fileFlag = cli.StringFlag{
		Name:     "file",
		Usage:    "analysis request JSON, or a bare JSON array of gusts",
		Required: true,
	}
	yearsFlag = cli.Float64Flag{
		Name:  "years",
		Usage: "record length in years, overrides the file",
	}
	periodsFlag = cli.StringFlag{
		Name:  "periods",
		Usage: "comma-separated return periods in years",
	}
	measuredFlag = cli.BoolFlag{
		Name:  "measured",
		Usage: "also print the measured data points",
	}
	thresholdCountFlag = cli.IntFlag{
		Name:  "threshold-count",
		Usage: "number of peaks-over-threshold thresholds",
		Value: domain.DefaultThresholdGrid().Count,
	}
	spacingFlag = cli.StringFlag{
		Name:  "spacing",
		Usage: "peaks-over-threshold spacing: linear or geometric",
		Value: string(domain.SpacingLinear),
	}
	airDensityFlag = cli.Float64Flag{
		Name:  "air-density",
		Usage: "air density in kg/m^3 for the design pressure",
		Value: domain.DefaultConstants().AirDensity,
	}
)

// EstimateCommand fits one method to a sample file and prints the design speeds.
var EstimateCommand = cli.Command{
	Action: estimateAction,
	Name:   "estimate",
	Usage:  "fit a method to a gust sample and tabulate design speeds",
	Flags: []cli.Flag{
		&methodFlag,
		&fileFlag,
		&yearsFlag,
		&periodsFlag,
		&measuredFlag,
		&thresholdCountFlag,
		&spacingFlag,
		&airDensityFlag,
	},
}

func estimateAction(ctx *cli.Context) error {
	data, err := os.ReadFile(ctx.String(fileFlag.Name))
	if err != nil {
		return fmt.Errorf("read sample: %w", err)
	}
	req, err := parseSample(data)
	if err != nil {
		return err
	}
	if ctx.IsSet(methodFlag.Name) || req.Method == "" {
		req.Method = ctx.String(methodFlag.Name)
	}
	if ctx.IsSet(yearsFlag.Name) {
		req.Years = ctx.Float64(yearsFlag.Name)
	}
	if ctx.IsSet(periodsFlag.Name) {
		if req.ReturnPeriods, err = parsePeriods(ctx.String(periodsFlag.Name)); err != nil {
			return err
		}
	}

	spacing := domain.ThresholdSpacing(strings.ToLower(ctx.String(spacingFlag.Name)))
	if spacing != domain.SpacingLinear && spacing != domain.SpacingGeometric {
		return fmt.Errorf("invalid spacing %q: want linear or geometric", spacing)
	}
	settings := domain.DefaultSettings()
	settings.Thresholds = domain.ThresholdGrid{Count: ctx.Int(thresholdCountFlag.Name), Spacing: spacing}
	settings.Constants.AirDensity = ctx.Float64(airDensityFlag.Name)

	result, err := domain.Analyze(req, settings, domain.DefaultReturnPeriods)
	if err != nil {
		return err
	}
	printResult(ctx.App.Writer, result, ctx.Bool(measuredFlag.Name))
	return nil
}

// parseSample accepts either a full analysis request or a bare list of gusts.
func parseSample(data []byte) (domain.AnalysisRequest, error) {
	data = bytes.TrimSpace(data)
	if bytes.HasPrefix(data, []byte("[")) {
		var gusts []float64
		if err := json.Unmarshal(data, &gusts); err != nil {
			return domain.AnalysisRequest{}, fmt.Errorf("parse gust list: %w", err)
		}
		return domain.AnalysisRequest{Gusts: gusts}, nil
	}
	return domain.ParseRawMessage(domain.RawMessage{Value: data})
}

func parsePeriods(s string) ([]float64, error) {
	var out []float64
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		v, err := strconv.ParseFloat(part, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid return period %q: %w", part, err)
		}
		if math.IsNaN(v) || math.IsInf(v, 0) || v <= 1 {
			return nil, fmt.Errorf("invalid return period %q: %w", part, domain.ErrReturnPeriod)
		}
		out = append(out, v)
	}
	return out, nil
}

func printResult(w io.Writer, result domain.DesignWindResult, measured bool) {
	fmt.Fprintf(w, "method: %s (%d gusts)\n", result.Method, result.SampleSize)
	for _, name := range sortedKeys(result.Parameters) {
		fmt.Fprintf(w, "  %s = %.6g\n", name, result.Parameters[name])
	}

	tbl := tablewriter.NewWriter(w)
	tbl.SetHeader([]string{"Return period (yr)", "Speed (m/s)", "Pressure (Pa)"})
	tbl.SetBorder(true)
	for _, d := range result.DesignSpeeds {
		tbl.Append([]string{
			strconv.FormatFloat(d.ReturnPeriod, 'g', -1, 64),
			fmt.Sprintf("%.2f", d.Speed),
			fmt.Sprintf("%.1f", d.Pressure),
		})
	}
	tbl.Render()

	if !measured || len(result.Measured) == 0 {
		return
	}
	fmt.Fprintln(w, "measured:")
	mt := tablewriter.NewWriter(w)
	mt.SetHeader([]string{"Return period (yr)", "Speed (m/s)"})
	mt.SetBorder(true)
	for _, m := range result.Measured {
		mt.Append([]string{fmt.Sprintf("%.3f", m.ReturnPeriod), fmt.Sprintf("%.2f", m.Speed)})
	}
	mt.Render()
}

func sortedKeys(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
