package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/diillson/demand-forecast-go/internal/domain/repository"
	"github.com/diillson/demand-forecast-go/internal/shared/types"
	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml"
	"gopkg.in/yaml.v3"
)

// Variáveis de ambiente reconhecidas.
const (
	EnvRegion        = "AWS_REGION"
	EnvProfile       = "AWS_PROFILE"
	EnvDataBucket    = "DATA_BUCKET"
	EnvHistoricalKey = "HISTORICAL_KEY"
	EnvForecastKey   = "FORECAST_KEY"
	EnvSQLitePath    = "SQLITE_DB_PATH"
	EnvLogGroup      = "LOG_GROUP"
)

// ConfigRepositoryImpl implementa o ConfigRepository.
type ConfigRepositoryImpl struct {
	lookup func(string) (string, bool)
}

// NewConfigRepository cria uma nova implementação do ConfigRepository.
func NewConfigRepository() repository.ConfigRepository {
	return &ConfigRepositoryImpl{lookup: os.LookupEnv}
}

// LoadConfigFile carrega um arquivo de configuração TOML, YAML ou JSON.
func (r *ConfigRepositoryImpl) LoadConfigFile(filePath string) (*types.Config, error) {
	fileExtension := strings.ToLower(filepath.Ext(filePath))

	fileInfo, err := os.Stat(filePath)
	if err != nil {
		return nil, fmt.Errorf("error accessing config file: %w", err)
	}
	if fileInfo.IsDir() {
		return nil, fmt.Errorf("%s is a directory, not a file", filePath)
	}

	fileData, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	var config types.Config

	switch fileExtension {
	case ".toml":
		if err := toml.Unmarshal(fileData, &config); err != nil {
			return nil, fmt.Errorf("error parsing TOML file: %w", err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(fileData, &config); err != nil {
			return nil, fmt.Errorf("error parsing YAML file: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(fileData, &config); err != nil {
			return nil, fmt.Errorf("error parsing JSON file: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported config file format: %s", fileExtension)
	}

	return &config, nil
}

// LoadEnv monta a configuração a partir do ambiente. Os arquivos .env informados
// (ou ".env" quando nenhum é passado) completam o que o processo não definiu;
// arquivos inexistentes são ignorados.
func (r *ConfigRepositoryImpl) LoadEnv(files ...string) types.Config {
	if len(files) == 0 {
		files = []string{".env"}
	}

	dotenv := map[string]string{}
	for _, f := range files {
		values, err := godotenv.Read(f)
		if err != nil {
			continue
		}
		for k, v := range values {
			if _, seen := dotenv[k]; !seen {
				dotenv[k] = v
			}
		}
	}

	get := func(key string) string {
		if v, ok := r.lookup(key); ok && v != "" {
			return v
		}
		return dotenv[key]
	}

	return types.Config{
		Region:        get(EnvRegion),
		Profile:       get(EnvProfile),
		Bucket:        get(EnvDataBucket),
		HistoricalKey: get(EnvHistoricalKey),
		ForecastKey:   get(EnvForecastKey),
		SQLitePath:    get(EnvSQLitePath),
		LogGroup:      get(EnvLogGroup),
	}
}
