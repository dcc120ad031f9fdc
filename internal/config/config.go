package config

import (
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// AppConfig 应用配置
type AppConfig struct {
	Server   ServerConfig   `toml:"server"`
	Data     DataConfig     `toml:"data"`
	Business BusinessConfig `toml:"business"`
}

// ServerConfig 服务器配置
type ServerConfig struct {
	Port    int  `toml:"port"`
	DevMode bool `toml:"dev_mode"`
}

// DataConfig 数据源配置
type DataConfig struct {
	DataDir       string `toml:"data_dir"`
	SalesFile     string `toml:"sales_file"`
	SuppliersFile string `toml:"suppliers_file"`
	RentalsFile   string `toml:"rentals_file"`
}

// BusinessConfig 业务配置
type BusinessConfig struct {
	ReferenceCutoffYear int    `toml:"reference_cutoff_year"` // 预测参照截止年
	ForecastYear        int    `toml:"forecast_year"`
	RFMAsOf             string `toml:"rfm_as_of"` // YYYY-MM-DD，空 = 取最近销售日期
}

// DefaultConfig 默认配置
func DefaultConfig() *AppConfig {
	return &AppConfig{
		Server: ServerConfig{
			Port:    20262,
			DevMode: false,
		},
		Data: DataConfig{
			DataDir:       "data",
			SalesFile:     "sales.xlsx",
			SuppliersFile: "suppliers.xlsx",
			RentalsFile:   "rentals.xlsx",
		},
		Business: BusinessConfig{
			ReferenceCutoffYear: 2024,
			ForecastYear:        2025,
			RFMAsOf:             "",
		},
	}
}

// GetExeDir 获取可执行文件所在目录
func GetExeDir() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", err
	}
	return filepath.Dir(exe), nil
}

// LoadConfig 从可执行文件同目录下的 config.toml 加载配置
// 配置文件不存在时使用默认配置
func LoadConfig() (*AppConfig, error) {
	config := DefaultConfig()

	exeDir, err := GetExeDir()
	if err != nil {
		exeDir = "."
	}

	configPath := filepath.Join(exeDir, "config.toml")

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			applyEnvOverrides(config)
			return config, nil
		}
		return nil, err
	}

	if err := toml.Unmarshal(data, config); err != nil {
		return nil, err
	}

	applyEnvOverrides(config)
	return config, nil
}

// applyEnvOverrides 环境变量覆盖（用于 E2E / 本地运行）
func applyEnvOverrides(config *AppConfig) {
	if v := os.Getenv("BABAJINA_SALES_FILE"); v != "" {
		config.Data.SalesFile = v
	}
	if v := os.Getenv("BABAJINA_SUPPLIERS_FILE"); v != "" {
		config.Data.SuppliersFile = v
	}
	if v := os.Getenv("BABAJINA_RENTALS_FILE"); v != "" {
		config.Data.RentalsFile = v
	}
}

// SaveConfig 保存配置到 config.toml
func SaveConfig(config *AppConfig) error {
	exeDir, err := GetExeDir()
	if err != nil {
		exeDir = "."
	}

	configPath := filepath.Join(exeDir, "config.toml")

	data, err := toml.Marshal(config)
	if err != nil {
		return err
	}

	return os.WriteFile(configPath, data, 0644)
}

// EnsureDataDir 确保数据目录存在并返回绝对路径
func EnsureDataDir(config *AppConfig) (string, error) {
	exeDir, err := GetExeDir()
	if err != nil {
		exeDir = "."
	}

	dataDir := config.Data.DataDir
	if !filepath.IsAbs(dataDir) {
		dataDir = filepath.Join(exeDir, dataDir)
	}

	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return "", err
	}

	subdirs := []string{"uploads", "exports"}
	for _, subdir := range subdirs {
		path := filepath.Join(dataDir, subdir)
		if err := os.MkdirAll(path, 0755); err != nil {
			return "", err
		}
	}

	return dataDir, nil
}

// DatasetPath 数据源文件的完整路径（配置里写绝对路径时原样使用）
func DatasetPath(dataDir, filename string) string {
	if filepath.IsAbs(filename) {
		return filename
	}
	return filepath.Join(dataDir, filename)
}
