package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/yuqie6/ScopeClicks/internal/calculator"
	"github.com/yuqie6/ScopeClicks/internal/dto"
	"github.com/yuqie6/ScopeClicks/internal/pkg/apperr"
	"github.com/yuqie6/ScopeClicks/internal/repository"
	"github.com/yuqie6/ScopeClicks/internal/service"
	"github.com/yuqie6/ScopeClicks/internal/unit"
)

// resultCmd 结果管理
func (a *app) resultCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "result",
		Short: "管理 武器+弹药+距离 的归零位置",
	}

	var weaponArg, ammoArg, distanceArg string
	list := &cobra.Command{
		Use:   "list",
		Short: "列出结果，可按武器/弹药/距离过滤",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			var filter repository.ResultFilter
			if weaponArg != "" {
				w, err := a.resolveWeapon(ctx, weaponArg)
				if err != nil {
					return err
				}
				filter.WeaponID = w.ID
			}
			if ammoArg != "" {
				am, err := a.resolveAmmunition(ctx, ammoArg)
				if err != nil {
					return err
				}
				filter.AmmunitionID = am.ID
			}
			if distanceArg != "" {
				d, err := a.resolveDistance(ctx, distanceArg)
				if err != nil {
					return err
				}
				filter.DistanceID = d.ID
			}

			items, err := a.core.Services.Results.List(ctx, filter)
			if err != nil {
				return err
			}
			return a.emit(cmd, dto.ResultDTOs(items), func(out io.Writer) {
				if len(items) == 0 {
					fmt.Fprintln(out, "🎯 没有匹配的结果")
					return
				}
				fmt.Fprintf(out, "🎯 结果 (%d)\n", len(items))
				for _, r := range items {
					fmt.Fprintf(out, "  #%-4d %s\n", r.ID, r.Display())
				}
			})
		},
	}
	list.Flags().StringVar(&weaponArg, "weapon", "", "武器 ID 或名称")
	list.Flags().StringVar(&ammoArg, "ammo", "", "弹药 ID 或名称")
	list.Flags().StringVar(&distanceArg, "distance", "", "距离 ID 或显示值，如 100m")

	get := &cobra.Command{
		Use:   "get <weapon> <ammo> <distance>",
		Short: "获取组合的结果，不存在时以 0 新建",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.core.RequireWritable(); err != nil {
				return err
			}
			ctx := cmd.Context()
			key, err := a.resolveTriple(ctx, args)
			if err != nil {
				return err
			}
			res, err := a.core.Services.Results.GetOrCreate(ctx, key)
			if err != nil {
				return err
			}
			return a.emit(cmd, dto.NewResultDTO(*res), func(out io.Writer) {
				fmt.Fprintf(out, "🎯 #%d %s\n", res.ID, res.Display())
			})
		},
	}

	set := &cobra.Command{
		Use:   "set <weapon> <ammo> <distance> <clicks>",
		Short: "保存组合的目标转塔位置（点击，可为负）",
		Args:  cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.core.RequireWritable(); err != nil {
				return err
			}
			clicks, err := strconv.Atoi(args[3])
			if err != nil {
				return apperr.Invalid("result", args[3], "必须是整数")
			}
			ctx := cmd.Context()
			key, err := a.resolveTriple(ctx, args[:3])
			if err != nil {
				return err
			}
			res, err := a.core.Services.Results.Set(ctx, key, clicks)
			if err != nil {
				return err
			}
			return a.emit(cmd, dto.NewResultDTO(*res), func(out io.Writer) {
				fmt.Fprintf(out, "✅ 已保存 #%d %s\n", res.ID, res.Display())
			})
		},
	}

	rm := &cobra.Command{
		Use:   "rm <id>",
		Short: "删除结果",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.core.RequireWritable(); err != nil {
				return err
			}
			id, ok := parseID(args[0])
			if !ok {
				return apperr.Invalid("result_id", args[0], "必须是正整数")
			}
			if err := a.core.Services.Results.Delete(cmd.Context(), id); err != nil {
				return err
			}
			return a.emit(cmd, map[string]int64{"deleted": id}, func(out io.Writer) {
				fmt.Fprintf(out, "🗑️  已删除结果 #%d\n", id)
			})
		},
	}

	cmd.AddCommand(list, get, set, rm)
	return cmd
}

// clicksCmd 从当前位置调到已保存位置
func (a *app) clicksCmd() *cobra.Command {
	var current int

	cmd := &cobra.Command{
		Use:   "clicks <weapon> <ammo> <distance>",
		Short: "计算从当前转塔位置调到已保存位置需要的点击",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.core.RequireWritable(); err != nil {
				return err
			}
			ctx := cmd.Context()
			key, err := a.resolveTriple(ctx, args)
			if err != nil {
				return err
			}
			res, adj, err := a.core.Services.Results.Calculate(ctx, key, current)
			if err != nil {
				return err
			}
			payload := dto.ClicksDTO{Result: dto.NewResultDTO(*res), Current: current, Adjustment: dto.NewAdjustmentDTO(adj)}
			return a.emit(cmd, payload, func(out io.Writer) {
				fmt.Fprintf(out, "🎯 %s\n", res.Display())
				fmt.Fprintln(out, rule)
				fmt.Fprintf(out, "  • 当前位置: %d\n", current)
				printAdjustment(out, "高低", adj)
			})
		},
	}

	cmd.Flags().IntVar(&current, "current", 0, "当前转塔位置（点击）")
	return cmd
}

// correctCmd 按弹着偏差修正
func (a *app) correctCmd() *cobra.Command {
	var (
		x, y         float64
		missUnit     string
		clickUnit    string
		clickValue   float64
		clicksPerOne float64
		reference    string
		windage      int
		save         bool
	)

	cmd := &cobra.Command{
		Use:   "correct <weapon> <ammo> <distance>",
		Short: "根据弹着偏差计算修正点击（偏右为正、偏高为正）",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.core.RequireWritable(); err != nil {
				return err
			}
			flags := cmd.Flags()
			scope, err := a.scopeFromFlags(scopeFlags{
				unit:       clickUnit,
				value:      clickValue,
				valueSet:   flags.Changed("click-value"),
				perUnit:    clicksPerOne,
				perUnitSet: flags.Changed("clicks-per-unit"),
				reference:  reference,
			})
			if err != nil {
				return err
			}
			mu, err := unit.ParseLinearUnit(missUnit)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			key, err := a.resolveTriple(ctx, args)
			if err != nil {
				return err
			}
			out, err := a.core.Services.Results.Correct(ctx, service.CorrectRequest{
				Key:            key,
				Scope:          scope,
				Miss:           calculator.Miss{X: x, Y: y, Unit: mu},
				CurrentWindage: windage,
				Save:           save,
			})
			if err != nil {
				return err
			}

			c := out.Correction
			payload := dto.CorrectionDTO{
				Result:       dto.NewResultDTO(*out.Result),
				Elevation:    dto.NewAdjustmentDTO(c.Elevation),
				Windage:      dto.NewAdjustmentDTO(c.Windage),
				NewElevation: c.NewElevation,
				NewWindage:   c.NewWindage,
				Saved:        out.Saved,
			}
			return a.emit(cmd, payload, func(w io.Writer) {
				fmt.Fprintf(w, "🎯 %s\n", out.Result.Display())
				fmt.Fprintln(w, rule)
				printAdjustment(w, "高低", c.Elevation)
				printAdjustment(w, "风偏", c.Windage)
				fmt.Fprintf(w, "  • 调整后位置: 高低 %d / 风偏 %d\n", c.NewElevation, c.NewWindage)
				if out.Saved {
					fmt.Fprintln(w, "✅ 已保存新的高低位置")
				}
			})
		},
	}

	cmd.Flags().Float64Var(&x, "x", 0, "水平偏差，偏右为正")
	cmd.Flags().Float64Var(&y, "y", 0, "垂直偏差，偏高为正")
	cmd.Flags().StringVar(&missUnit, "miss-unit", string(unit.Inch), "偏差单位 in|cm|mm")
	cmd.Flags().StringVar(&clickUnit, "click-unit", "", "点击单位 moa|mil|in|cm（默认取配置）")
	cmd.Flags().Float64Var(&clickValue, "click-value", 0, "每次点击的量（默认取配置）")
	cmd.Flags().Float64Var(&clicksPerOne, "clicks-per-unit", 0, "每单位的点击数，如 4 表示 1/4 MOA")
	cmd.Flags().StringVar(&reference, "ref", "", "点击值的参考距离，如 100yd（默认取配置）")
	cmd.Flags().IntVar(&windage, "windage", 0, "当前风偏转塔位置")
	cmd.Flags().BoolVar(&save, "save", false, "把修正后的高低位置写回结果")
	cmd.MarkFlagsMutuallyExclusive("click-value", "clicks-per-unit")
	return cmd
}

type scopeFlags struct {
	unit       string
	value      float64
	valueSet   bool
	perUnit    float64
	perUnitSet bool
	reference  string
}

// scopeFromFlags 以配置中的默认瞄具为底，命令行参数覆盖
func (a *app) scopeFromFlags(f scopeFlags) (calculator.Scope, error) {
	scope, err := a.core.Cfg.Calculator.Scope()
	if err != nil {
		return calculator.Scope{}, err
	}
	if f.unit != "" {
		if scope.Unit, err = calculator.ParseClickUnit(f.unit); err != nil {
			return calculator.Scope{}, err
		}
	}
	if f.reference != "" {
		if scope.Reference, err = unit.ParseDistance(f.reference); err != nil {
			return calculator.Scope{}, err
		}
	}
	if f.perUnitSet {
		return calculator.ScopeFromClicksPerUnit(f.perUnit, scope.Unit, scope.Reference)
	}
	if f.valueSet {
		scope.Value = f.value
	}
	return scope, nil
}
