package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/rustyeddy/pnl/calendar"
	"github.com/rustyeddy/pnl/trade"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var idPattern = regexp.MustCompile(`\(([0-9A-Z]{26})\)`)

func resetFlags() {
	cfgFile, dataDir, storageType, logLevel, plain = "", "", "", "", false
	addDate, addTime, addNote = "", "", ""
	dayOrg = false
	monthPrev, monthNext = 0, 0
	exportFormat, exportOutput = "csv", ""
	configInitOutput, configValidatePath = "pnl.yaml", ""
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"PNL_STORAGE", "PNL_DATA_DIR", "PNL_CURRENCY", "PNL_LOG_LEVEL"} {
		t.Setenv(k, "")
	}
}

// run executes the root command with args and returns what it printed.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	out, _, err := runWithStderr(t, args...)
	return out, err
}

func runWithStderr(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	resetFlags()

	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), errOut.String(), err
}

func addTrade(t *testing.T, dir string, args ...string) string {
	t.Helper()
	out, err := run(t, append([]string{"--plain", "--data-dir", dir, "add"}, args...)...)
	require.NoError(t, err)
	m := idPattern.FindStringSubmatch(out)
	require.Len(t, m, 2, "no id in %q", out)
	return m[1]
}

func TestAddAndDay(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()

	out, err := run(t, "--plain", "--data-dir", dir, "add", "profit", "100", "--date", "2024-03-05", "--time", "09:30", "--note", "breakout")
	require.NoError(t, err)
	assert.Contains(t, out, "Profit of $100.00 recorded on 2024-03-05 at 09:30")

	addTrade(t, dir, "loss", "40", "--date", "2024-03-05", "--time", "10:00")
	addTrade(t, dir, "profit", "7", "--date", "2024-03-06", "--time", "10:00")

	assert.FileExists(t, filepath.Join(dir, "pnl-trades.json"))

	out, err = run(t, "--plain", "--data-dir", dir, "day", "2024-03-05")
	require.NoError(t, err)
	assert.Contains(t, out, "# Trades for March 5, 2024")
	assert.Contains(t, out, "Daily Total: **+$60.00**")
	assert.Contains(t, out, "| 09:30 | profit | +$100.00 | breakout |")
	assert.Contains(t, out, "| 10:00 | loss | -$40.00 |")
	assert.Less(t, strings.Index(out, "10:00"), strings.Index(out, "09:30"), "latest trade first")

	out, err = run(t, "--plain", "--data-dir", dir, "day", "2024-03-07")
	require.NoError(t, err)
	assert.Contains(t, out, "Daily Total: **$0.00**")
	assert.Contains(t, out, "No trades recorded for this day")
}

func TestDayOrg(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	addTrade(t, dir, "loss", "40", "--date", "2024-03-05", "--time", "10:00")

	out, err := run(t, "--data-dir", dir, "day", "2024-03-05", "--org")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "** <2024-03-05 Tue> P&L -40\n"), out)
	assert.Contains(t, out, "*** 10:00 LOSS 40 (")
}

func TestAddRejectsBadInput(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()

	tests := []struct {
		name string
		args []string
	}{
		{"unknown type", []string{"gain", "10"}},
		{"not a number", []string{"profit", "abc"}},
		{"zero", []string{"profit", "0"}},
		{"bad date", []string{"profit", "10", "--date", "yesterday"}},
		{"bad time", []string{"profit", "10", "--time", "25:00"}},
		{"missing amount", []string{"profit"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := run(t, append([]string{"--plain", "--data-dir", dir, "add"}, tt.args...)...)
			assert.Error(t, err)
		})
	}

	out, err := run(t, "--plain", "--data-dir", dir, "summary")
	require.NoError(t, err)
	assert.Contains(t, out, "| $0.00 | $0.00 | $0.00 | 0 |")
}

func TestRemove(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	keep := addTrade(t, dir, "profit", "100", "--date", "2024-03-05", "--time", "09:30")
	drop := addTrade(t, dir, "loss", "40", "--date", "2024-03-05", "--time", "10:00")

	out, err := run(t, "--data-dir", dir, "rm", drop)
	require.NoError(t, err)
	assert.Equal(t, "Removed loss of $40.00 on 2024-03-05 at 10:00 ("+drop+")\n", out)

	out, err = run(t, "--data-dir", dir, "delete", "nope")
	require.NoError(t, err)
	assert.Contains(t, out, "No trade with id nope")

	out, err = run(t, "--plain", "--data-dir", dir, "day", "2024-03-05")
	require.NoError(t, err)
	assert.Contains(t, out, "Daily Total: **+$100.00**")
	assert.Contains(t, out, keep)
	assert.NotContains(t, out, drop)
}

func TestMonthAndSummary(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	addTrade(t, dir, "profit", "100", "--date", "2024-03-05", "--time", "09:30")
	addTrade(t, dir, "loss", "40", "--date", "2024-03-05", "--time", "10:00")
	addTrade(t, dir, "loss", "15.5", "--date", "2024-02-29", "--time", "10:00")

	out, err := run(t, "--plain", "--data-dir", dir, "month", "2024-03")
	require.NoError(t, err)
	assert.Contains(t, out, "# March 2024")
	assert.Contains(t, out, "| 5 +$60 |")
	assert.Contains(t, out, "| $100.00 | $40.00 | +$60.00 | 2 |")

	out, err = run(t, "--plain", "--data-dir", dir, "month", "2024-03", "--prev", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "# February 2024")
	assert.Contains(t, out, "29 -$16")
	assert.Contains(t, out, "| $0.00 | $15.50 | -$15.50 | 1 |")

	out, err = run(t, "--plain", "--data-dir", dir, "summary")
	require.NoError(t, err)
	assert.Contains(t, out, "Total P&L: **+$44.50**")
	assert.Contains(t, out, "| $100.00 | $55.50 | +$44.50 | 3 |")
}

func TestLargeAmountsKeepTheirSign(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	addTrade(t, dir, "profit", "100000000000000000", "--date", "2024-03-05", "--time", "09:30")

	out, err := run(t, "--plain", "--data-dir", dir, "summary")
	require.NoError(t, err)
	assert.Contains(t, out, "Total P&L: **+$100,000,000,000,000,000.00**")
	assert.NotContains(t, out, "+-")

	out, err = run(t, "--plain", "--data-dir", dir, "month", "2024-03")
	require.NoError(t, err)
	assert.Contains(t, out, "| 5 +$100,000,000,000,000,000 |")
}

func TestUnreadableStorageWarns(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, "pnl-trades.json"), 0o755))

	out, stderr, err := runWithStderr(t, "--plain", "--data-dir", dir, "summary")
	require.NoError(t, err)
	assert.Contains(t, out, "| $0.00 | $0.00 | $0.00 | 0 |")
	assert.Contains(t, stderr, "warning: stored trades could not be read")
}

func TestTargetMonth(t *testing.T) {
	today := calendar.MustParse("2024-01-31")

	tests := []struct {
		name       string
		args       []string
		prev, next int
		want       string
		wantErr    bool
	}{
		{name: "current", want: "2024-01"},
		{name: "next from month end", next: 1, want: "2024-02"},
		{name: "previous year", prev: 1, want: "2023-12"},
		{name: "explicit", args: []string{"2024-12"}, next: 1, want: "2025-01"},
		{name: "net zero", prev: 2, next: 2, want: "2024-01"},
		{name: "many months back", prev: 13, want: "2022-12"},
		{name: "bad month", args: []string{"2024-13"}, wantErr: true},
		{name: "negative", prev: -1, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetFlags()
			monthPrev, monthNext = tt.prev, tt.next
			m, err := targetMonth(tt.args, today)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, m.String())
		})
	}
}

func TestExport(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	id := addTrade(t, dir, "profit", "100.25", "--date", "2024-03-05", "--time", "09:30", "--note", "a, b")

	out, err := run(t, "--data-dir", dir, "export")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "id,date,time,type,amount,signed,note,created_at", lines[0])
	assert.True(t, strings.HasPrefix(lines[1], id+",2024-03-05,09:30,profit,100.25,100.25,\"a, b\","), lines[1])

	file := filepath.Join(t.TempDir(), "log.org")
	_, err = run(t, "--data-dir", dir, "export", "--format", "org", "--output", file)
	require.NoError(t, err)
	data, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.Contains(t, string(data), "* March 2024\n** <2024-03-05 Tue> P&L 100.25\n")

	_, err = run(t, "--data-dir", dir, "export", "--format", "xml")
	assert.Error(t, err)
}

func TestSQLiteStorage(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()

	_, err := run(t, "--plain", "--storage", "sqlite", "--data-dir", dir, "add", "profit", "12", "--date", "2024-03-05", "--time", "09:30")
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(dir, "pnl.sqlite"))
	assert.NoFileExists(t, filepath.Join(dir, "pnl-trades.json"))

	out, err := run(t, "--plain", "--storage", "sqlite", "--data-dir", dir, "day", "2024-03-05")
	require.NoError(t, err)
	assert.Contains(t, out, "Daily Total: **+$12.00**")
}

func TestEnvOverrides(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	t.Setenv("PNL_DATA_DIR", dir)
	t.Setenv("PNL_CURRENCY", "eur")

	out, err := run(t, "--plain", "add", "profit", "5", "--date", "2024-03-05", "--time", "09:30")
	require.NoError(t, err)
	assert.Contains(t, out, "€")
	assert.FileExists(t, filepath.Join(dir, "pnl-trades.json"))

	t.Setenv("PNL_CURRENCY", "XXQ")
	_, err = run(t, "--plain", "summary")
	assert.Error(t, err)
}

func TestConfigInitAndValidate(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "pnl.yaml")

	out, err := run(t, "config", "init", "-o", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Created default configuration")
	assert.FileExists(t, path)

	out, err = run(t, "config", "validate", "-f", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Configuration valid")
	assert.Contains(t, out, "Currency: USD")

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("storage:\n  type: redis\n"), 0o644))
	_, err = run(t, "config", "validate", "-f", bad)
	assert.Error(t, err)
}

func TestConfigFileSelectsStorage(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "pnl.yaml")
	db := filepath.Join(dir, "data", "log.db")
	cfg := "storage:\n  type: sqlite\n  db_path: " + db + "\ndisplay:\n  currency: USD\nlog:\n  level: warn\n"
	require.NoError(t, os.WriteFile(path, []byte(cfg), 0o644))

	_, err := run(t, "--plain", "-c", path, "add", "loss", "3", "--date", "2024-03-05", "--time", "09:30")
	require.NoError(t, err)
	assert.FileExists(t, db)
}

func TestParseInputDefaults(t *testing.T) {
	resetFlags()
	now := time.Date(2024, 3, 5, 14, 7, 59, 0, time.Local)

	in, err := parseInput([]string{"l", "12.5"}, now)
	require.NoError(t, err)
	assert.Equal(t, trade.Loss, in.Type)
	assert.Equal(t, "12.5", in.Amount.String())
	assert.Equal(t, calendar.MustParse("2024-03-05"), in.Date)
	assert.Equal(t, "14:07", in.Time)
	assert.Empty(t, in.Note)
}

func TestVersion(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "pnl version "+version)
}
