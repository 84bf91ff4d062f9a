package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/yuqie6/ScopeClicks/internal/dto"
	"github.com/yuqie6/ScopeClicks/internal/pkg/apperr"
	"github.com/yuqie6/ScopeClicks/internal/pkg/config"
)

func writeTestConfig(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	cfg := config.Default()
	cfg.App.LogLevel = "error"
	cfg.Storage.DBPath = filepath.Join(dir, "database", "riflescope_clicks.db")
	path := filepath.Join(dir, "config.yaml")
	if err := config.WriteFile(path, cfg); err != nil {
		t.Fatalf("WriteFile error: %v", err)
	}
	return path
}

func run(t *testing.T, cfgPath string, args ...string) (string, error) {
	t.Helper()
	a := &app{}
	root := a.rootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(append([]string{"--config", cfgPath}, args...))
	err := root.Execute()
	if cerr := a.closeCore(); cerr != nil {
		t.Fatalf("close: %v", cerr)
	}
	return out.String(), err
}

func mustRun(t *testing.T, cfgPath string, args ...string) string {
	t.Helper()
	out, err := run(t, cfgPath, args...)
	if err != nil {
		t.Fatalf("scope %s: %v\n%s", strings.Join(args, " "), err, out)
	}
	return out
}

func TestWorkflow(t *testing.T) {
	cfg := writeTestConfig(t)

	mustRun(t, cfg, "weapon", "add", "Remington 700", "--caliber", "7.62mm")
	mustRun(t, cfg, "ammo", "add", "Federal Match", "--caliber", "7.62 mm")

	out := mustRun(t, cfg, "distance", "list")
	if !strings.Contains(out, "100m") || !strings.Contains(out, "300m") {
		t.Fatalf("seeded distances missing:\n%s", out)
	}

	out = mustRun(t, cfg, "result", "set", "Remington 700", "Federal Match", "100m", "15")
	if !strings.Contains(out, "Remington 700 + Federal Match @ 100m = 15") {
		t.Fatalf("result set output:\n%s", out)
	}

	out = mustRun(t, cfg, "--json", "clicks", "Remington 700", "Federal Match", "100m", "--current", "10")
	var clicks dto.ClicksDTO
	if err := json.Unmarshal([]byte(out), &clicks); err != nil {
		t.Fatalf("json: %v\n%s", err, out)
	}
	if clicks.Adjustment.Clicks != 5 || clicks.Adjustment.Direction != "up" || clicks.Result.Clicks != 15 {
		t.Fatalf("clicks=%+v", clicks)
	}

	out = mustRun(t, cfg, "--json", "ammo", "for-weapon", "Remington 700")
	var ammo []dto.AmmunitionDTO
	if err := json.Unmarshal([]byte(out), &ammo); err != nil || len(ammo) != 1 {
		t.Fatalf("for-weapon=%s err=%v", out, err)
	}

	mustRun(t, cfg, "weapon", "rm", "Remington 700")
	out = mustRun(t, cfg, "--json", "result", "list")
	var results []dto.ResultDTO
	if err := json.Unmarshal([]byte(out), &results); err != nil || len(results) != 0 {
		t.Fatalf("results after weapon rm=%s err=%v", out, err)
	}
}

func TestCorrectCommand(t *testing.T) {
	cfg := writeTestConfig(t)
	mustRun(t, cfg, "weapon", "add", "Tikka T3x", "--caliber", "6.5 mm")
	mustRun(t, cfg, "ammo", "add", "Hornady ELD", "--caliber", "6.5 mm")
	mustRun(t, cfg, "distance", "add", "200", "yd")

	out := mustRun(t, cfg, "--json", "correct", "Tikka T3x", "Hornady ELD", "200yd",
		"--x", "2", "--miss-unit", "in", "--click-unit", "moa", "--click-value", "0.25", "--ref", "100yd")
	var corr dto.CorrectionDTO
	if err := json.Unmarshal([]byte(out), &corr); err != nil {
		t.Fatalf("json: %v\n%s", err, out)
	}
	if corr.Windage.Clicks != 4 || corr.Windage.Direction != "left" || corr.NewWindage != -4 || corr.Saved {
		t.Fatalf("corr=%+v", corr)
	}
}

func TestDuplicateWeaponFails(t *testing.T) {
	cfg := writeTestConfig(t)
	mustRun(t, cfg, "weapon", "add", "Precision Rifle", "--caliber", "6.5 mm")
	_, err := run(t, cfg, "weapon", "add", "Precision Rifle", "--caliber", "6.5 mm")
	if !errors.Is(err, apperr.ErrDuplicateKey) {
		t.Fatalf("err=%v, want duplicate", err)
	}
}

func TestConvertWithoutDatabase(t *testing.T) {
	a := &app{}
	root := a.rootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"--json", "convert", "--value", "30", "--from", "cm", "--to", "mil", "--distance", "300m"})
	if err := root.Execute(); err != nil {
		t.Fatalf("convert error: %v", err)
	}
	if a.core != nil {
		t.Fatalf("convert opened the database")
	}
	var got dto.ConversionDTO
	if err := json.Unmarshal(out.Bytes(), &got); err != nil {
		t.Fatalf("json: %v\n%s", err, out.String())
	}
	if got.Output < 0.9999 || got.Output > 1.0001 || got.Distance != "300m" {
		t.Fatalf("got=%+v, want 1 mil", got)
	}
}

func TestNumericNamesResolveBeforeIDs(t *testing.T) {
	cfg := writeTestConfig(t)
	mustRun(t, cfg, "weapon", "add", "Remington 700", "--caliber", "7.62 mm")
	mustRun(t, cfg, "weapon", "add", "308", "--caliber", "7.62 mm")
	mustRun(t, cfg, "ammo", "add", "Federal Match", "--caliber", "7.62 mm")

	out := mustRun(t, cfg, "--json", "ammo", "for-weapon", "308")
	var ammo []dto.AmmunitionDTO
	if err := json.Unmarshal([]byte(out), &ammo); err != nil || len(ammo) != 1 {
		t.Fatalf("for-weapon 308=%s err=%v", out, err)
	}

	mustRun(t, cfg, "weapon", "rm", "308")
	out = mustRun(t, cfg, "--json", "weapon", "list")
	var weapons []dto.WeaponDTO
	if err := json.Unmarshal([]byte(out), &weapons); err != nil {
		t.Fatalf("json: %v\n%s", err, out)
	}
	if len(weapons) != 1 || weapons[0].Name != "Remington 700" {
		t.Fatalf("weapons after rm 308=%+v", weapons)
	}

	// 名称不存在时纯数字回退为 ID
	mustRun(t, cfg, "weapon", "rm", "1")
	out = mustRun(t, cfg, "--json", "weapon", "list")
	if err := json.Unmarshal([]byte(out), &weapons); err != nil || len(weapons) != 0 {
		t.Fatalf("weapons after rm 1=%s err=%v", out, err)
	}
}

func TestParseID(t *testing.T) {
	if id, ok := parseID("12"); !ok || id != 12 {
		t.Fatalf("parseID(12)=%d,%v", id, ok)
	}
	for _, s := range []string{"100m", "0", "-3", "Remington 700"} {
		if _, ok := parseID(s); ok {
			t.Fatalf("parseID(%q) accepted", s)
		}
	}
}
