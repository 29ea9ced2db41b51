package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/guttosm/suppository-service/internal/domain/dto"
	"github.com/guttosm/suppository-service/internal/domain/model"
	"github.com/guttosm/suppository-service/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingHistory struct {
	mu      sync.Mutex
	records []*model.CalculationRecord
	err     error
}

func (h *recordingHistory) Record(_ context.Context, record *model.CalculationRecord) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.records = append(h.records, record)
	return h.err
}

func (h *recordingHistory) Get(context.Context, string) (*model.CalculationRecord, error) {
	return nil, service.ErrHistoryDisabled
}

func (h *recordingHistory) List(context.Context, model.CalculationQueryOptions) ([]model.CalculationRecord, int64, error) {
	return nil, 0, nil
}

func (h *recordingHistory) Enabled() bool { return true }

var workedExampleArgs = []string{"calculate", "-n", "1", "--blank", "2", "--base-density", "1", "--api", ",200,mg,density=3"}

func execute(t *testing.T, deps Dependencies, stdin string, args ...string) (string, string, error) {
	t.Helper()
	cmd := NewRootCommand(deps)
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(append([]string{"--pretty-logs=false", "--log-level=error"}, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestCalculateCommand(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		contains []string
		absent   []string
	}{
		{
			name: "table shows steps, export rows and coaching",
			args: workedExampleArgs,
			contains: []string{
				"Step 3 - Density ratio (API 1): 3.0000 / 1.0000 = 3.0000",
				"Step 5 - Required base: 2.0000 g - 0.0667 g = 1.9333 g",
				"Required base batch (g)",
				"Multiplying by the density ratio instead of dividing",
			},
		},
		{
			name:     "coaching can be switched off",
			args:     append(append([]string{}, workedExampleArgs...), "--coach=false"),
			contains: []string{"1.9333"},
			absent:   []string{"Multiplying by the density ratio"},
		},
		{
			name:     "csv export",
			args:     append(append([]string{}, workedExampleArgs...), "--format", "csv"),
			contains: []string{"field,value\n", "N,1\n", "Required base batch (g),1.9333\n", "Rounding step,none\n"},
		},
		{
			name: "displacement factor and overage",
			args: []string{"calculate", "-n", "10", "--blank", "2", "--base-density", "1",
				"--api", "Drug A,0.5,g,df=2", "--overage", "0.1", "--rounding-step", "0.5"},
			contains: []string{
				"Step 3 - Displacement factor (Drug A): 2.0000",
				"Step 5 - Required base: 20.0000 g - 2.5000 g = 17.5000 g",
				"With 10.0000% overage: 19.2500 g",
				"Rounded to the nearest 0.5 g",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, _, err := execute(t, Dependencies{}, "", tt.args...)
			require.NoError(t, err)
			for _, s := range tt.contains {
				assert.Contains(t, out, s)
			}
			for _, s := range tt.absent {
				assert.NotContains(t, out, s)
			}
		})
	}
}

func TestCalculateCommand_JSON(t *testing.T) {
	out, _, err := execute(t, Dependencies{}, "", append(append([]string{}, workedExampleArgs...), "--format", "json")...)
	require.NoError(t, err)

	var resp dto.CalculateResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, model.ModeDensity, resp.Result.Mode)
	assert.InDelta(t, 2-0.2/3, resp.Result.RequiredBaseBatchG, 1e-9)
	assert.NotEmpty(t, resp.Steps)
	assert.NotEmpty(t, resp.Explanation)
}

func TestCalculateCommand_InputFile(t *testing.T) {
	body := `{"unit_count": 1, "blank_weight_per_unit_g": 2, "base_density_g_per_ml": 1,
		"components": [{"amount": 200, "unit": "mg", "density": 3}]}`

	t.Run("from stdin", func(t *testing.T) {
		out, _, err := execute(t, Dependencies{}, body, "calculate", "--input", "-", "--format", "csv")
		require.NoError(t, err)
		assert.Contains(t, out, "Required base batch (g),1.9333")
	})

	t.Run("flags override the file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "batch.json")
		require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

		out, _, err := execute(t, Dependencies{}, "", "calculate", "--input", path, "-n", "2", "--format", "csv")
		require.NoError(t, err)
		assert.Contains(t, out, "N,2\n")
		assert.Contains(t, out, "Required base batch (g),3.8667")
	})

	t.Run("row without amount is rejected", func(t *testing.T) {
		_, _, err := execute(t, Dependencies{}, `{"components": [{"unit": "mg", "density": 3}]}`, "calculate", "--input", "-")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "components[0].amount")
	})

	t.Run("missing file", func(t *testing.T) {
		_, _, err := execute(t, Dependencies{}, "", "calculate", "--input", filepath.Join(t.TempDir(), "nope.json"))
		require.Error(t, err)
	})
}

func TestCalculateCommand_Errors(t *testing.T) {
	t.Run("incomplete input lists the fields", func(t *testing.T) {
		_, stderr, err := execute(t, Dependencies{}, "", "calculate", "-n", "3")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "incomplete_input")
		assert.Contains(t, stderr, "blank_weight_per_unit_g: required")
		assert.Contains(t, stderr, "base_density_g_per_ml: required")
		assert.Contains(t, stderr, "components:")
	})

	t.Run("density and factor together conflict", func(t *testing.T) {
		_, stderr, err := execute(t, Dependencies{}, "", "calculate", "-n", "1", "--blank", "2", "--base-density", "1",
			"--api", "X,200,mg,density=3,df=2")
		require.Error(t, err)
		assert.Contains(t, stderr, "mode_conflict")
	})

	t.Run("unknown format", func(t *testing.T) {
		_, _, err := execute(t, Dependencies{}, "", append(append([]string{}, workedExampleArgs...), "--format", "xml")...)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown format")
	})
}

func TestParseAPIFlag(t *testing.T) {
	density := 1.2
	factor := 1.5

	tests := []struct {
		name    string
		flag    string
		want    model.RawComponent
		wantErr string
	}{
		{
			name: "density",
			flag: "Drug A,150,mg,density=1.2",
			want: model.RawComponent{Name: "Drug A", Amount: 150, Unit: "mg", Density: &density},
		},
		{
			name: "rho alias and upper-case unit",
			flag: " Drug A , 150 , MG , rho=1.2",
			want: model.RawComponent{Name: "Drug A", Amount: 150, Unit: "mg", Density: &density},
		},
		{
			name: "displacement factor without a name",
			flag: ",0.5,g,df=1.5",
			want: model.RawComponent{Amount: 0.5, Unit: "g", DisplacementFactor: &factor},
		},
		{name: "too few parts", flag: "Drug A,150,mg", wantErr: "want NAME"},
		{name: "bad amount", flag: "Drug A,lots,mg,density=1", wantErr: "amount"},
		{name: "missing equals", flag: "Drug A,150,mg,1.2", wantErr: "key=value"},
		{name: "unknown key", flag: "Drug A,150,mg,weight=1", wantErr: "unknown key"},
		{name: "bad value", flag: "Drug A,150,mg,df=x", wantErr: "not a number"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseAPIFlag(tt.flag)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCalculateCommand_RecordsHistory(t *testing.T) {
	history := &recordingHistory{}
	_, _, err := execute(t, Dependencies{History: history}, "", workedExampleArgs...)
	require.NoError(t, err)

	require.Len(t, history.records, 1)
	assert.Equal(t, model.SourceCLI, history.records[0].Source)
	assert.NotEmpty(t, history.records[0].RequestID)

	t.Run("history failure does not fail the command", func(t *testing.T) {
		failing := &recordingHistory{err: errors.New("mongo down")}
		_, _, err := execute(t, Dependencies{History: failing}, "", workedExampleArgs...)
		assert.NoError(t, err)
	})
}

func TestChatCommand(t *testing.T) {
	history := &recordingHistory{}
	stdin := "example\ncompute\nreset\nN=2\nquit\nN=99\n"

	out, _, err := execute(t, Dependencies{History: history}, stdin, "chat", "--quiet")
	require.NoError(t, err)

	assert.Contains(t, out, "Type compute when you're ready")
	assert.Contains(t, out, "Loaded the worked example.")
	assert.Contains(t, out, "Step 5 - Required base: 2.0000 g - 0.0667 g = 1.9333 g")
	assert.Contains(t, out, "Inputs cleared.")
	assert.Contains(t, out, "Still need:")
	assert.NotContains(t, out, "> ")
	require.Len(t, history.records, 1)
}

func TestChatCommand_Prompt(t *testing.T) {
	out, _, err := execute(t, Dependencies{}, "compute\n", "chat")
	require.NoError(t, err)
	assert.Contains(t, out, chatPrompt)
	assert.Contains(t, out, "I still need:")
}

func TestChatCommand_MessageTooLong(t *testing.T) {
	out, _, err := execute(t, Dependencies{MaxMessageLength: 5}, "N=12 blank 2\n", "chat", "-q")
	require.NoError(t, err)
	assert.Contains(t, out, "too long")
}

func TestVersionCommand(t *testing.T) {
	out, _, err := execute(t, Dependencies{}, "", "version")
	require.NoError(t, err)
	assert.Equal(t, "suppcalc dev (commit: unknown)\n", out)
}

func TestCalculateCommand_RoundingStepHelp(t *testing.T) {
	cmd, _, err := NewRootCommand(Dependencies{}).Find([]string{"calculate"})
	require.NoError(t, err)

	flag := cmd.Flags().Lookup("rounding-step")
	require.NotNil(t, flag)
	assert.Contains(t, flag.Usage, "nearest multiple")
	assert.NotContains(t, flag.Usage, "up to")
}
