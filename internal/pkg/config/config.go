package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"github.com/yuqie6/ScopeClicks/internal/calculator"
	"github.com/yuqie6/ScopeClicks/internal/unit"
)

// Config 应用配置
type Config struct {
	App        AppConfig        `mapstructure:"app"`
	Storage    StorageConfig    `mapstructure:"storage"`
	Calculator CalculatorConfig `mapstructure:"calculator"`
	Defaults   DefaultsConfig   `mapstructure:"defaults"`
}

// AppConfig 应用配置
type AppConfig struct {
	Name     string `mapstructure:"name"`
	Version  string `mapstructure:"version"`
	LogLevel string `mapstructure:"log_level"`
	LogPath  string `mapstructure:"log_path"`
}

// StorageConfig 存储配置
type StorageConfig struct {
	DBPath        string `mapstructure:"db_path"`
	SeedDistances bool   `mapstructure:"seed_distances"`
}

// CalculatorConfig 计算器与默认瞄具配置
type CalculatorConfig struct {
	ClickUnit         string  `mapstructure:"click_unit"`
	ClickValue        float64 `mapstructure:"click_value"`
	ReferenceDistance string  `mapstructure:"reference_distance"`
	MOAModel          string  `mapstructure:"moa_model"`
	Rounding          string  `mapstructure:"rounding"`
	PositionLimit     int     `mapstructure:"position_limit"`
}

// DefaultsConfig 首次建库写入的默认数据
type DefaultsConfig struct {
	Distances []string `mapstructure:"distances"`
}

// Load 加载配置文件
func Load(configPath string) (*Config, error) {
	v := viper.New()

	// 设置默认值
	setDefaults(v)

	// 设置配置文件路径
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		// 默认查找路径
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./config")
		v.AddConfigPath(".")
	}

	// 支持环境变量
	v.SetEnvPrefix("SCOPE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// 读取配置文件
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			slog.Debug("配置文件未找到，使用默认配置")
		} else {
			return nil, fmt.Errorf("读取配置文件失败: %w", err)
		}
	} else {
		slog.Debug("加载配置文件", "path", v.ConfigFileUsed())
	}

	cfg, err := unmarshal(v)
	if err != nil {
		return nil, err
	}

	// 处理相对路径
	cfg.Storage.DBPath = resolvePath(cfg.Storage.DBPath)
	if cfg.App.LogPath != "" {
		cfg.App.LogPath = resolvePath(cfg.App.LogPath)
	}

	return cfg, nil
}

// Default 返回全部默认值（不读文件与环境变量，路径保持相对）
func Default() *Config {
	v := viper.New()
	setDefaults(v)
	cfg, err := unmarshal(v)
	if err != nil {
		// 默认值是常量，解析失败只可能是编码错误
		panic(err)
	}
	return cfg
}

func unmarshal(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("解析配置失败: %w", err)
	}
	return &cfg, nil
}

// setDefaults 设置默认值
func setDefaults(v *viper.Viper) {
	// App
	v.SetDefault("app.name", "scope-clicks")
	v.SetDefault("app.version", "0.1.0")
	v.SetDefault("app.log_level", "warn")
	v.SetDefault("app.log_path", "")

	// Storage
	v.SetDefault("storage.db_path", "./database/riflescope_clicks.db")
	v.SetDefault("storage.seed_distances", true)

	// Calculator
	v.SetDefault("calculator.click_unit", string(calculator.ClickMOA))
	v.SetDefault("calculator.click_value", 0.25)
	v.SetDefault("calculator.reference_distance", "100yd")
	v.SetDefault("calculator.moa_model", string(unit.MOAExact))
	v.SetDefault("calculator.rounding", string(calculator.RoundHalfUp))
	v.SetDefault("calculator.position_limit", calculator.DefaultPositionLimit)

	// Defaults
	v.SetDefault("defaults.distances", []string{"10m", "15m", "25m", "50m", "100m", "200m", "300m"})
}

// Build 转换为计算器的显式配置
func (c CalculatorConfig) Build() (calculator.Config, error) {
	model, err := unit.ParseMOAModel(c.MOAModel)
	if err != nil {
		return calculator.Config{}, err
	}
	rounding, err := calculator.ParseRoundingPolicy(c.Rounding)
	if err != nil {
		return calculator.Config{}, err
	}
	return calculator.Config{
		MOA:           model,
		Rounding:      rounding,
		PositionLimit: c.PositionLimit,
	}, nil
}

// Scope 默认瞄具：每次点击的量、单位与参考距离
func (c CalculatorConfig) Scope() (calculator.Scope, error) {
	u, err := calculator.ParseClickUnit(c.ClickUnit)
	if err != nil {
		return calculator.Scope{}, err
	}
	ref, err := unit.ParseDistance(c.ReferenceDistance)
	if err != nil {
		return calculator.Scope{}, fmt.Errorf("calculator.reference_distance: %w", err)
	}
	return calculator.Scope{Unit: u, Value: c.ClickValue, Reference: ref}, nil
}

// SeedDistances 解析默认距离列表，如 "100m"
func (c DefaultsConfig) SeedDistances() ([]unit.Distance, error) {
	out := make([]unit.Distance, 0, len(c.Distances))
	for _, s := range c.Distances {
		d, err := unit.ParseDistance(s)
		if err != nil {
			return nil, fmt.Errorf("defaults.distances: %w", err)
		}
		out = append(out, d)
	}
	return out, nil
}

// resolvePath 解析相对路径为绝对路径
func resolvePath(path string) string {
	if path == "" || path == ":memory:" || filepath.IsAbs(path) {
		return path
	}

	// 获取可执行文件目录
	exe, err := os.Executable()
	if err != nil {
		return path
	}

	exeDir := filepath.Dir(exe)
	return filepath.Join(exeDir, path)
}
