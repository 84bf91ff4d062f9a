package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/yuqie6/ScopeClicks/internal/dto"
	"github.com/yuqie6/ScopeClicks/internal/schema"
	"github.com/yuqie6/ScopeClicks/internal/unit"
)

// weaponCmd 武器管理
func (a *app) weaponCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "weapon",
		Short: "管理武器",
	}

	var caliber string
	add := &cobra.Command{
		Use:   "add <name>",
		Short: "新建武器",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.core.RequireWritable(); err != nil {
				return err
			}
			w, err := a.core.Services.Equipment.CreateWeapon(cmd.Context(), args[0], caliber)
			if err != nil {
				return err
			}
			return a.emit(cmd, dto.NewWeaponDTO(*w), func(out io.Writer) {
				fmt.Fprintf(out, "✅ 已创建武器 #%d %s (%s)\n", w.ID, w.Name, w.Caliber)
			})
		},
	}
	add.Flags().StringVar(&caliber, "caliber", "", "口径，如 7.62 mm 或 .308 in")
	_ = add.MarkFlagRequired("caliber")

	list := &cobra.Command{
		Use:   "list",
		Short: "列出武器",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			items, err := a.core.Services.Equipment.ListWeapons(cmd.Context())
			if err != nil {
				return err
			}
			return a.emit(cmd, dto.WeaponDTOs(items), func(out io.Writer) {
				if len(items) == 0 {
					fmt.Fprintln(out, "📚 还没有武器，使用 'scope weapon add' 添加")
					return
				}
				fmt.Fprintf(out, "🔫 武器 (%d)\n", len(items))
				for _, w := range items {
					fmt.Fprintf(out, "  #%-4d %-30s %s\n", w.ID, w.Name, w.Caliber)
				}
			})
		},
	}

	var newName, newCaliber string
	update := &cobra.Command{
		Use:   "update <id|name>",
		Short: "修改武器名称或口径",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.core.RequireWritable(); err != nil {
				return err
			}
			ctx := cmd.Context()
			cur, err := a.resolveWeapon(ctx, args[0])
			if err != nil {
				return err
			}
			name, cal := keepIfEmpty(newName, cur.Name), keepIfEmpty(newCaliber, cur.Caliber)
			w, err := a.core.Services.Equipment.UpdateWeapon(ctx, cur.ID, name, cal)
			if err != nil {
				return err
			}
			return a.emit(cmd, dto.NewWeaponDTO(*w), func(out io.Writer) {
				fmt.Fprintf(out, "✅ 已更新武器 #%d %s (%s)\n", w.ID, w.Name, w.Caliber)
			})
		},
	}
	update.Flags().StringVar(&newName, "name", "", "新名称")
	update.Flags().StringVar(&newCaliber, "caliber", "", "新口径")

	rm := &cobra.Command{
		Use:   "rm <id|name>",
		Short: "删除武器（同时删除其结果）",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.core.RequireWritable(); err != nil {
				return err
			}
			ctx := cmd.Context()
			w, err := a.resolveWeapon(ctx, args[0])
			if err != nil {
				return err
			}
			if err := a.core.Services.Equipment.DeleteWeapon(ctx, w.ID); err != nil {
				return err
			}
			return a.emit(cmd, dto.NewWeaponDTO(*w), func(out io.Writer) {
				fmt.Fprintf(out, "🗑️  已删除武器 #%d %s\n", w.ID, w.Name)
			})
		},
	}

	cmd.AddCommand(add, list, update, rm)
	return cmd
}

// ammoCmd 弹药管理
func (a *app) ammoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "ammo",
		Aliases: []string{"ammunition"},
		Short:   "管理弹药",
	}

	var caliber string
	add := &cobra.Command{
		Use:   "add <name>",
		Short: "新建弹药",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.core.RequireWritable(); err != nil {
				return err
			}
			am, err := a.core.Services.Equipment.CreateAmmunition(cmd.Context(), args[0], caliber)
			if err != nil {
				return err
			}
			return a.emit(cmd, dto.NewAmmunitionDTO(*am), func(out io.Writer) {
				fmt.Fprintf(out, "✅ 已创建弹药 #%d %s (%s)\n", am.ID, am.Name, am.Caliber)
			})
		},
	}
	add.Flags().StringVar(&caliber, "caliber", "", "口径，如 7.62 mm 或 .308 in")
	_ = add.MarkFlagRequired("caliber")

	list := &cobra.Command{
		Use:   "list",
		Short: "列出弹药",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			items, err := a.core.Services.Equipment.ListAmmunition(cmd.Context())
			if err != nil {
				return err
			}
			return a.emit(cmd, dto.AmmunitionDTOs(items), func(out io.Writer) {
				printAmmunition(out, "📦 弹药", items)
			})
		},
	}

	forWeapon := &cobra.Command{
		Use:   "for-weapon <id|name>",
		Short: "列出与武器口径相同的弹药",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			w, err := a.resolveWeapon(ctx, args[0])
			if err != nil {
				return err
			}
			items, err := a.core.Services.Equipment.CompatibleAmmunition(ctx, w.ID)
			if err != nil {
				return err
			}
			return a.emit(cmd, dto.AmmunitionDTOs(items), func(out io.Writer) {
				printAmmunition(out, fmt.Sprintf("📦 %s 可用弹药 [%s]", w.Name, w.Caliber), items)
			})
		},
	}

	var newName, newCaliber string
	update := &cobra.Command{
		Use:   "update <id|name>",
		Short: "修改弹药名称或口径",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.core.RequireWritable(); err != nil {
				return err
			}
			ctx := cmd.Context()
			cur, err := a.resolveAmmunition(ctx, args[0])
			if err != nil {
				return err
			}
			name, cal := keepIfEmpty(newName, cur.Name), keepIfEmpty(newCaliber, cur.Caliber)
			am, err := a.core.Services.Equipment.UpdateAmmunition(ctx, cur.ID, name, cal)
			if err != nil {
				return err
			}
			return a.emit(cmd, dto.NewAmmunitionDTO(*am), func(out io.Writer) {
				fmt.Fprintf(out, "✅ 已更新弹药 #%d %s (%s)\n", am.ID, am.Name, am.Caliber)
			})
		},
	}
	update.Flags().StringVar(&newName, "name", "", "新名称")
	update.Flags().StringVar(&newCaliber, "caliber", "", "新口径")

	rm := &cobra.Command{
		Use:   "rm <id|name>",
		Short: "删除弹药（同时删除其结果）",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.core.RequireWritable(); err != nil {
				return err
			}
			ctx := cmd.Context()
			am, err := a.resolveAmmunition(ctx, args[0])
			if err != nil {
				return err
			}
			if err := a.core.Services.Equipment.DeleteAmmunition(ctx, am.ID); err != nil {
				return err
			}
			return a.emit(cmd, dto.NewAmmunitionDTO(*am), func(out io.Writer) {
				fmt.Fprintf(out, "🗑️  已删除弹药 #%d %s\n", am.ID, am.Name)
			})
		},
	}

	cmd.AddCommand(add, list, forWeapon, update, rm)
	return cmd
}

func printAmmunition(out io.Writer, title string, items []schema.Ammunition) {
	if len(items) == 0 {
		fmt.Fprintf(out, "%s: 无\n", title)
		return
	}
	fmt.Fprintf(out, "%s (%d)\n", title, len(items))
	for _, am := range items {
		fmt.Fprintf(out, "  #%-4d %-30s %s\n", am.ID, am.Name, am.Caliber)
	}
}

// distanceCmd 距离管理
func (a *app) distanceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "distance",
		Short: "管理射击距离",
	}

	add := &cobra.Command{
		Use:   "add <distance>",
		Short: "新建距离，如 100m、300 yd",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.core.RequireWritable(); err != nil {
				return err
			}
			m, err := unit.ParseDistance(strings.Join(args, ""))
			if err != nil {
				return err
			}
			d, err := a.core.Services.Equipment.CreateDistance(cmd.Context(), m)
			if err != nil {
				return err
			}
			return a.emit(cmd, dto.NewDistanceDTO(*d), func(out io.Writer) {
				fmt.Fprintf(out, "✅ 已创建距离 #%d %s\n", d.ID, d.Display())
			})
		},
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "列出距离",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			items, err := a.core.Services.Equipment.ListDistances(cmd.Context())
			if err != nil {
				return err
			}
			return a.emit(cmd, dto.DistanceDTOs(items), func(out io.Writer) {
				if len(items) == 0 {
					fmt.Fprintln(out, "📏 还没有距离，使用 'scope distance add 100m' 添加")
					return
				}
				fmt.Fprintf(out, "📏 距离 (%d)\n", len(items))
				for _, d := range items {
					fmt.Fprintf(out, "  #%-4d %s\n", d.ID, d.Display())
				}
			})
		},
	}

	update := &cobra.Command{
		Use:   "update <id|distance> <new-distance>",
		Short: "修改距离",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.core.RequireWritable(); err != nil {
				return err
			}
			ctx := cmd.Context()
			cur, err := a.resolveDistance(ctx, args[0])
			if err != nil {
				return err
			}
			m, err := unit.ParseDistance(args[1])
			if err != nil {
				return err
			}
			d, err := a.core.Services.Equipment.UpdateDistance(ctx, cur.ID, m)
			if err != nil {
				return err
			}
			return a.emit(cmd, dto.NewDistanceDTO(*d), func(out io.Writer) {
				fmt.Fprintf(out, "✅ 已更新距离 #%d %s -> %s\n", d.ID, cur.Display(), d.Display())
			})
		},
	}

	rm := &cobra.Command{
		Use:   "rm <id|distance>",
		Short: "删除距离（同时删除其结果）",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.core.RequireWritable(); err != nil {
				return err
			}
			ctx := cmd.Context()
			d, err := a.resolveDistance(ctx, args[0])
			if err != nil {
				return err
			}
			if err := a.core.Services.Equipment.DeleteDistance(ctx, d.ID); err != nil {
				return err
			}
			return a.emit(cmd, dto.NewDistanceDTO(*d), func(out io.Writer) {
				fmt.Fprintf(out, "🗑️  已删除距离 #%d %s\n", d.ID, d.Display())
			})
		},
	}

	cmd.AddCommand(add, list, update, rm)
	return cmd
}

func keepIfEmpty(v, fallback string) string {
	if strings.TrimSpace(v) == "" {
		return fallback
	}
	return v
}
