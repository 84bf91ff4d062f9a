package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/yuqie6/ScopeClicks/internal/dto"
	"github.com/yuqie6/ScopeClicks/internal/pkg/apperr"
	"github.com/yuqie6/ScopeClicks/internal/pkg/buildinfo"
	"github.com/yuqie6/ScopeClicks/internal/pkg/config"
	"github.com/yuqie6/ScopeClicks/internal/unit"
)

// quantity 角度或线性单位
type quantity struct {
	angular unit.AngularUnit
	linear  unit.LinearUnit
}

func parseQuantity(field, s string) (quantity, error) {
	if au, err := unit.ParseAngularUnit(s); err == nil {
		return quantity{angular: au}, nil
	}
	if lu, err := unit.ParseLinearUnit(s); err == nil {
		return quantity{linear: lu}, nil
	}
	if s == "" {
		return quantity{}, apperr.Missing(field)
	}
	return quantity{}, apperr.Invalid(field, s, "应为 moa、mil、in、cm 或 mm")
}

func (q quantity) String() string {
	if q.angular != "" {
		return string(q.angular)
	}
	return string(q.linear)
}

// convert 四种组合：角度↔角度、线性↔线性无需距离，角度↔线性需要距离
func convert(conv unit.Converter, value float64, from, to quantity, distance string) (float64, error) {
	switch {
	case from.angular != "" && to.angular != "":
		return conv.ConvertAngular(value, from.angular, to.angular)
	case from.linear != "" && to.linear != "":
		return unit.ConvertLinear(value, from.linear, to.linear)
	}

	d, err := unit.ParseDistance(distance)
	if err != nil {
		return 0, err
	}
	if from.angular != "" {
		return conv.AngularToLinear(value, from.angular, d, to.linear)
	}
	return conv.LinearToAngular(value, from.linear, d, to.angular)
}

// convertCmd 单位换算，如目标尺寸对应的 MOA
func (a *app) convertCmd() *cobra.Command {
	var (
		value    float64
		from, to string
		distance string
		model    string
	)

	cmd := &cobra.Command{
		Use:         "convert",
		Short:       "在 MOA/MIL 与 英寸/厘米 之间换算",
		Example:     "  scope convert --value 2.9 --from cm --to moa --distance 100m",
		Args:        cobra.NoArgs,
		Annotations: noCore(),
		RunE: func(cmd *cobra.Command, args []string) error {
			fq, err := parseQuantity("from", from)
			if err != nil {
				return err
			}
			tq, err := parseQuantity("to", to)
			if err != nil {
				return err
			}
			m, err := unit.ParseMOAModel(model)
			if err != nil {
				return err
			}

			result, err := convert(unit.NewConverter(m), value, fq, tq, distance)
			if err != nil {
				return err
			}

			payload := dto.ConversionDTO{Input: value, From: fq.String(), Output: result, To: tq.String()}
			if (fq.angular == "") != (tq.angular == "") {
				payload.Distance = distance
			}
			if fq.angular == unit.MOA || tq.angular == unit.MOA {
				payload.MOAModel = string(m)
			}
			return a.emit(cmd, payload, func(out io.Writer) {
				fmt.Fprintf(out, "%s %s = %s %s", formatFloat(value, 3), fq, formatFloat(result, 4), tq)
				if payload.Distance != "" {
					fmt.Fprintf(out, " @ %s", payload.Distance)
				}
				fmt.Fprintln(out)
			})
		},
	}

	cmd.Flags().Float64Var(&value, "value", 0, "输入数值")
	cmd.Flags().StringVar(&from, "from", "", "输入单位 moa|mil|in|cm|mm")
	cmd.Flags().StringVar(&to, "to", "", "输出单位 moa|mil|in|cm|mm")
	cmd.Flags().StringVar(&distance, "distance", "", "角度与线性互换时的距离，如 100m")
	cmd.Flags().StringVar(&model, "moa-model", string(unit.MOAExact), "MOA 模型 exact|customary")
	_ = cmd.MarkFlagRequired("value")
	return cmd
}

// configCmd 配置文件
func (a *app) configCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "配置文件管理",
	}

	var path string
	var force bool
	initCmd := &cobra.Command{
		Use:         "init",
		Short:       "写入默认配置文件",
		Args:        cobra.NoArgs,
		Annotations: noCore(),
		RunE: func(cmd *cobra.Command, args []string) error {
			target := path
			if target == "" {
				p, err := config.DefaultConfigPath()
				if err != nil {
					return err
				}
				target = p
			}
			if _, err := os.Stat(target); err == nil && !force {
				return fmt.Errorf("配置文件已存在: %s（使用 --force 覆盖）", target)
			} else if err != nil && !errors.Is(err, os.ErrNotExist) {
				return fmt.Errorf("检查配置文件失败: %w", err)
			}
			if err := config.WriteFile(target, config.Default()); err != nil {
				return err
			}
			return a.emit(cmd, map[string]string{"path": target}, func(out io.Writer) {
				fmt.Fprintf(out, "✅ 已写入配置文件 %s\n", target)
			})
		},
	}
	initCmd.Flags().StringVar(&path, "path", "", "输出路径（默认可执行文件目录下 config/config.yaml）")
	initCmd.Flags().BoolVar(&force, "force", false, "覆盖已存在的文件")

	cmd.AddCommand(initCmd)
	return cmd
}

// statusCmd 查看数据库与数据概况
func (a *app) statusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "查看数据库状态",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			core := a.core
			st := dto.StatusDTO{
				App: dto.AppStatusDTO{
					Name:       core.Cfg.App.Name,
					Version:    buildinfo.Version,
					Commit:     buildinfo.Commit,
					SafeMode:   core.DB.SafeMode,
					ConfigPath: a.cfgFile,
				},
				Storage: dto.StorageStatusDTO{
					DBPath:         core.DB.Path,
					SchemaVersion:  core.DB.SchemaVersion,
					SafeModeReason: core.DB.MigrationError,
				},
			}
			if !core.DB.SafeMode {
				w, am, d, r, err := core.Counts(cmd.Context())
				if err != nil {
					return err
				}
				st.Counts = dto.CountsDTO{Weapons: int(w), Ammunition: int(am), Distances: int(d), Results: int(r)}
			}

			return a.emit(cmd, st, func(out io.Writer) {
				fmt.Fprintf(out, "📊 %s %s\n", st.App.Name, buildinfo.String())
				fmt.Fprintln(out, rule)
				fmt.Fprintf(out, "  • 数据库: %s (schema v%d)\n", st.Storage.DBPath, st.Storage.SchemaVersion)
				if st.App.SafeMode {
					fmt.Fprintf(out, "  • ⚠️  安全模式: %s\n", st.Storage.SafeModeReason)
					return
				}
				fmt.Fprintf(out, "  • 武器: %d  弹药: %d  距离: %d  结果: %d\n",
					st.Counts.Weapons, st.Counts.Ammunition, st.Counts.Distances, st.Counts.Results)
			})
		},
	}
}

// versionCmd 版本信息
func (a *app) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:         "version",
		Short:       "显示版本",
		Args:        cobra.NoArgs,
		Annotations: noCore(),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.emit(cmd, map[string]string{"version": buildinfo.Version, "commit": buildinfo.Commit}, func(out io.Writer) {
				fmt.Fprintln(out, buildinfo.String())
			})
		},
	}
}
