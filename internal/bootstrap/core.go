package bootstrap

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/yuqie6/ScopeClicks/internal/calculator"
	"github.com/yuqie6/ScopeClicks/internal/pkg/config"
	"github.com/yuqie6/ScopeClicks/internal/repository"
	"github.com/yuqie6/ScopeClicks/internal/service"
	"github.com/yuqie6/ScopeClicks/internal/unit"
)

// Core 持有命令行与测试共享的核心依赖
type Core struct {
	Cfg        *config.Config
	DB         *repository.Database
	LogCloser  io.Closer
	Calculator *calculator.Calculator

	Repos struct {
		Weapon     *repository.WeaponRepository
		Ammunition *repository.AmmunitionRepository
		Distance   *repository.DistanceRepository
		Result     *repository.ResultRepository
	}

	Services struct {
		Equipment *service.EquipmentService
		Results   *service.ResultService
	}
}

// NewCore 加载配置并构建核心依赖
func NewCore(cfgPath string) (*Core, error) {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, err
	}
	logCloser, err := config.SetupLogger(config.LoggerOptions{
		Level:     cfg.App.LogLevel,
		Path:      cfg.App.LogPath,
		Component: filepath.Base(os.Args[0]),
	})
	if err != nil {
		return nil, err
	}

	c, err := NewCoreWithConfig(cfg)
	if err != nil {
		if logCloser != nil {
			_ = logCloser.Close()
		}
		return nil, err
	}
	c.LogCloser = logCloser
	return c, nil
}

// NewCoreWithConfig 使用已加载的配置构建核心依赖（不设置日志）
func NewCoreWithConfig(cfg *config.Config) (*Core, error) {
	if cfg == nil {
		return nil, fmt.Errorf("cfg 不能为空")
	}
	calcCfg, err := cfg.Calculator.Build()
	if err != nil {
		return nil, err
	}

	var seeds []unit.Distance
	if cfg.Storage.SeedDistances {
		seeds, err = cfg.Defaults.SeedDistances()
		if err != nil {
			return nil, err
		}
	}

	db, err := repository.NewDatabase(cfg.Storage.DBPath, repository.Options{SeedDistances: seeds})
	if err != nil {
		return nil, err
	}

	c := &Core{Cfg: cfg, DB: db, Calculator: calculator.New(calcCfg)}

	// Repos
	c.Repos.Weapon = repository.NewWeaponRepository(db.DB)
	c.Repos.Ammunition = repository.NewAmmunitionRepository(db.DB)
	c.Repos.Distance = repository.NewDistanceRepository(db.DB)
	c.Repos.Result = repository.NewResultRepository(db.DB)

	// Services
	c.Services.Equipment = service.NewEquipmentService(c.Repos.Weapon, c.Repos.Ammunition, c.Repos.Distance)
	c.Services.Results = service.NewResultService(
		c.Repos.Weapon,
		c.Repos.Ammunition,
		c.Repos.Distance,
		c.Repos.Result,
		c.Calculator,
	)

	return c, nil
}

// RequireWritable 安全模式下拒绝写操作
func (c *Core) RequireWritable() error {
	if c.DB != nil && c.DB.SafeMode {
		return fmt.Errorf("数据库处于安全模式（%s），仅支持只读命令", c.DB.MigrationError)
	}
	return nil
}

// Counts 各表记录数
func (c *Core) Counts(ctx context.Context) (weapons, ammunition, distances, results int64, err error) {
	if weapons, err = c.Repos.Weapon.Count(ctx); err != nil {
		return
	}
	if ammunition, err = c.Repos.Ammunition.Count(ctx); err != nil {
		return
	}
	if distances, err = c.Repos.Distance.Count(ctx); err != nil {
		return
	}
	results, err = c.Repos.Result.Count(ctx)
	return
}

// Close 关闭核心依赖资源
func (c *Core) Close() error {
	if c == nil {
		return nil
	}
	var dbErr error
	if c.DB != nil {
		dbErr = c.DB.Close()
	}
	if c.LogCloser != nil {
		_ = c.LogCloser.Close()
	}
	return dbErr
}
