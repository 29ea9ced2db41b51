package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/google/uuid"
	"github.com/guttosm/suppository-service/internal/compounding"
	"github.com/guttosm/suppository-service/internal/domain/dto"
	"github.com/guttosm/suppository-service/internal/domain/model"
	"github.com/guttosm/suppository-service/internal/logger"
	"github.com/guttosm/suppository-service/internal/service"
	"github.com/spf13/cobra"
)

const historyWriteBudget = 2 * time.Second

// Output formats of the calculate command.
const (
	FormatTable = "table"
	FormatCSV   = "csv"
	FormatJSON  = "json"
)

type calculateOptions struct {
	units        int
	blank        float64
	baseDensity  float64
	overage      float64
	roundingStep float64
	apis         []string
	input        string
	format       string
	coach        bool
}

func newCalculateCommand(deps Dependencies) *cobra.Command {
	opts := &calculateOptions{}
	cmd := &cobra.Command{
		Use:   "calculate",
		Short: "Calculate the base required for a batch",
		Long: `Run the five-step displacement calculation for one batch.

Inputs come from flags, from a JSON request file (--input), or both; flags
override values read from the file. Each --api is "NAME,AMOUNT,UNIT,density=X"
or "NAME,AMOUNT,UNIT,df=X". The name may be left empty.

Examples:
  suppcalc calculate -n 1 --blank 2 --base-density 1 --api ",200,mg,density=3"
  suppcalc calculate -n 12 --blank 1.8 --base-density 0.95 --api "Drug A,150,mg,df=1.5" --format csv
  cat batch.json | suppcalc calculate --input - --format json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCalculate(cmd, deps, opts)
		},
	}

	f := cmd.Flags()
	f.IntVarP(&opts.units, "units", "n", 0, "number of suppositories (N)")
	f.Float64Var(&opts.blank, "blank", 0, "blank weight per suppository in grams")
	f.Float64Var(&opts.baseDensity, "base-density", 0, "base density in g/mL")
	f.Float64Var(&opts.overage, "overage", 0, "overage fraction added to the batch (0.05 = 5%)")
	f.Float64Var(&opts.roundingStep, "rounding-step", 0, "round the batch requirement to the nearest multiple of this step in grams, half away from zero (0 disables)")
	f.StringArrayVar(&opts.apis, "api", nil, `active ingredient "NAME,AMOUNT,UNIT,density=X|df=X" (repeatable)`)
	f.StringVarP(&opts.input, "input", "i", "", "JSON request file, or - for stdin")
	f.StringVarP(&opts.format, "format", "f", FormatTable, "output format (table, csv, json)")
	f.BoolVar(&opts.coach, "coach", true, "show common-mistake coaching in table output")

	return cmd
}

func runCalculate(cmd *cobra.Command, deps Dependencies, opts *calculateOptions) error {
	switch opts.format {
	case FormatTable, FormatCSV, FormatJSON:
	default:
		return fmt.Errorf("unknown format %q (want table, csv or json)", opts.format)
	}

	raw, err := buildRawInput(cmd, opts)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	out, err := deps.Calculator.Calculate(ctx, raw)
	if err != nil {
		var inputErr *compounding.InputError
		if errors.As(err, &inputErr) {
			printInputError(cmd.ErrOrStderr(), inputErr)
			return fmt.Errorf("cannot calculate: %s", inputErr.Kind)
		}
		return err
	}

	recordCLI(ctx, deps.History, out)

	w := cmd.OutOrStdout()
	switch opts.format {
	case FormatCSV:
		return compounding.WriteCSV(w, out.Export)
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(dto.CalculateResponse{
			Inputs:      out.Result.Inputs,
			Result:      out.Result,
			Steps:       out.Result.Steps(),
			Coaching:    out.Coaching,
			Export:      out.Export,
			Explanation: out.Explanation,
		})
	default:
		return printTable(w, out, opts.coach)
	}
}

// buildRawInput merges the --input file with the flags. Flags that were set
// on the command line win.
func buildRawInput(cmd *cobra.Command, opts *calculateOptions) (model.RawBatchInput, error) {
	var raw model.RawBatchInput
	if opts.input != "" {
		req, err := readRequest(cmd.InOrStdin(), opts.input)
		if err != nil {
			return raw, err
		}
		if err := req.Validate(); err != nil {
			return raw, fmt.Errorf("invalid request file: %w", err)
		}
		raw = req.ToRaw()
	}

	f := cmd.Flags()
	if f.Changed("units") {
		raw.UnitCount = &opts.units
	}
	if f.Changed("blank") {
		raw.BlankWeightPerUnitG = &opts.blank
	}
	if f.Changed("base-density") {
		raw.BaseDensityGPerML = &opts.baseDensity
	}
	if f.Changed("overage") {
		raw.OverageFraction = &opts.overage
	}
	if f.Changed("rounding-step") {
		raw.RoundingStepG = &opts.roundingStep
	}
	if len(opts.apis) > 0 {
		components := make([]model.RawComponent, 0, len(opts.apis))
		for i, arg := range opts.apis {
			c, err := parseAPIFlag(arg)
			if err != nil {
				return raw, fmt.Errorf("--api #%d: %w", i+1, err)
			}
			components = append(components, c)
		}
		raw.Components = components
	}
	return raw, nil
}

func readRequest(stdin io.Reader, path string) (*dto.CalculateRequest, error) {
	var r io.Reader
	if path == "-" {
		r = stdin
	} else {
		file, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open input: %w", err)
		}
		defer file.Close()
		r = file
	}

	var req dto.CalculateRequest
	if err := json.NewDecoder(r).Decode(&req); err != nil {
		return nil, fmt.Errorf("failed to parse input: %w", err)
	}
	return &req, nil
}

// parseAPIFlag reads "NAME,AMOUNT,UNIT,density=X" or "NAME,AMOUNT,UNIT,df=X".
// Both potency keys may be given; the normalizer reports the conflict.
func parseAPIFlag(arg string) (model.RawComponent, error) {
	parts := strings.Split(arg, ",")
	if len(parts) < 4 {
		return model.RawComponent{}, fmt.Errorf("want NAME,AMOUNT,UNIT,density=X|df=X, got %q", arg)
	}

	c := model.RawComponent{
		Name: strings.TrimSpace(parts[0]),
		Unit: strings.ToLower(strings.TrimSpace(parts[2])),
	}
	amount, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return c, fmt.Errorf("amount %q is not a number", parts[1])
	}
	c.Amount = amount

	for _, kv := range parts[3:] {
		key, value, ok := strings.Cut(strings.TrimSpace(kv), "=")
		if !ok {
			return c, fmt.Errorf("expected key=value, got %q", kv)
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil {
			return c, fmt.Errorf("%s %q is not a number", key, value)
		}
		switch strings.ToLower(strings.TrimSpace(key)) {
		case "density", "rho":
			c.Density = &v
		case "df", "factor":
			c.DisplacementFactor = &v
		default:
			return c, fmt.Errorf("unknown key %q (want density or df)", key)
		}
	}
	return c, nil
}

func printInputError(w io.Writer, err *compounding.InputError) {
	fmt.Fprintf(w, "Cannot calculate (%s):\n", err.Kind)
	for _, name := range err.FieldNames() {
		fmt.Fprintf(w, "  %s: %s\n", name, err.Fields[name])
	}
}

func printTable(w io.Writer, out service.Outcome, coach bool) error {
	for _, line := range out.Explanation {
		fmt.Fprintln(w, line)
	}
	fmt.Fprintln(w)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "FIELD\tVALUE")
	for _, row := range out.Export {
		fmt.Fprintf(tw, "%s\t%s\n", row.Name, row.Value)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if coach {
		notes := compounding.CoachingNotes(out.Coaching)
		if len(notes) > 0 {
			fmt.Fprintln(w)
			for _, note := range notes {
				fmt.Fprintln(w, note)
			}
		}
	}
	return nil
}

func recordCLI(ctx context.Context, history service.HistoryService, out service.Outcome) {
	if history == nil || !history.Enabled() {
		return
	}
	ctx, cancel := context.WithTimeout(ctx, historyWriteBudget)
	defer cancel()

	record := service.NewCalculationRecord(model.SourceCLI, uuid.NewString(), "", out)
	if err := history.Record(ctx, record); err != nil {
		log := logger.Component("cli")
		log.Warn().Err(err).Str("request_id", record.RequestID).Msg("failed to record calculation history")
	}
}
