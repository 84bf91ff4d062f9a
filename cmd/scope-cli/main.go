package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/yuqie6/ScopeClicks/internal/bootstrap"
	"github.com/yuqie6/ScopeClicks/internal/pkg/buildinfo"
)

// annotationNoCore 标记不需要打开数据库的命令
const annotationNoCore = "scope/no-core"

// app 命令行共享状态
type app struct {
	cfgFile string
	jsonOut bool
	core    *bootstrap.Core
}

func main() {
	a := &app{}
	err := a.rootCmd().Execute()
	if cerr := a.closeCore(); err == nil {
		err = cerr
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ %v\n", err)
		os.Exit(1)
	}
}

func (a *app) rootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "scope",
		Short:         "Scope - 瞄准镜点击计算器",
		Long:          `Scope 根据瞄具点击值、目标距离与弹着偏差计算需要调整的点击数与方向，并按 武器+弹药+距离 保存归零位置。`,
		Version:       buildinfo.String(),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Annotations[annotationNoCore] != "" {
				return nil
			}
			core, err := bootstrap.NewCore(a.cfgFile)
			if err != nil {
				return fmt.Errorf("初始化失败: %w", err)
			}
			a.core = core
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVarP(&a.cfgFile, "config", "c", "", "配置文件路径")
	rootCmd.PersistentFlags().BoolVar(&a.jsonOut, "json", false, "以 JSON 输出")

	// 添加子命令
	rootCmd.AddCommand(a.weaponCmd())
	rootCmd.AddCommand(a.ammoCmd())
	rootCmd.AddCommand(a.distanceCmd())
	rootCmd.AddCommand(a.resultCmd())
	rootCmd.AddCommand(a.clicksCmd())
	rootCmd.AddCommand(a.correctCmd())
	rootCmd.AddCommand(a.convertCmd())
	rootCmd.AddCommand(a.configCmd())
	rootCmd.AddCommand(a.statusCmd())
	rootCmd.AddCommand(a.versionCmd())

	return rootCmd
}

// closeCore 命令出错时也要关闭数据库
func (a *app) closeCore() error {
	if a.core == nil {
		return nil
	}
	err := a.core.Close()
	a.core = nil
	return err
}

func noCore() map[string]string {
	return map[string]string{annotationNoCore: "true"}
}
