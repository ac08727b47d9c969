package aws

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatchlogs"
	"github.com/aws/aws-sdk-go-v2/service/costexplorer"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/sts"
	"github.com/diillson/demand-forecast-go/internal/domain/entity"
	"github.com/diillson/demand-forecast-go/internal/domain/repository"
)

// costExplorerRegion é a única região que atende a API do Cost Explorer.
const costExplorerRegion = "us-east-1"

// AWSRepositoryImpl implementa o AWSRepository com cache de config e de clientes.
type AWSRepositoryImpl struct {
	region      string
	cfgCache    map[string]aws.Config
	clientCache map[string]interface{}
	mu          sync.Mutex
}

// NewAWSRepository cria uma nova implementação do AWSRepository.
// region vazio usa a região do perfil/ambiente.
func NewAWSRepository(region string) *AWSRepositoryImpl {
	return &AWSRepositoryImpl{
		region:      region,
		cfgCache:    make(map[string]aws.Config),
		clientCache: make(map[string]interface{}),
	}
}

var _ repository.AWSRepository = (*AWSRepositoryImpl)(nil)

// SetRegion troca a região e descarta configs e clientes já criados.
func (r *AWSRepositoryImpl) SetRegion(region string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if region == r.region {
		return
	}
	r.region = region
	r.cfgCache = make(map[string]aws.Config)
	r.clientCache = make(map[string]interface{})
}

func (r *AWSRepositoryImpl) getAWSConfig(ctx context.Context, profile string) (aws.Config, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if cfg, ok := r.cfgCache[profile]; ok {
		return cfg, nil
	}

	opts := []func(*config.LoadOptions) error{config.WithRetryMaxAttempts(3)}
	if profile != "" {
		opts = append(opts, config.WithSharedConfigProfile(profile))
	}
	if r.region != "" {
		opts = append(opts, config.WithRegion(r.region))
	}

	cfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return aws.Config{}, fmt.Errorf("failed to load AWS config for profile %q: %w", profile, err)
	}

	r.cfgCache[profile] = cfg
	return cfg, nil
}

func (r *AWSRepositoryImpl) getServiceClient(ctx context.Context, profile, service string) (interface{}, error) {
	cacheKey := fmt.Sprintf("%s-%s", profile, service)

	r.mu.Lock()
	if client, ok := r.clientCache[cacheKey]; ok {
		r.mu.Unlock()
		return client, nil
	}
	r.mu.Unlock()

	cfg, err := r.getAWSConfig(ctx, profile)
	if err != nil {
		return nil, err
	}
	regionalCfg := cfg.Copy()

	var client interface{}
	switch service {
	case "sts":
		client = sts.NewFromConfig(regionalCfg)
	case "s3":
		client = s3.NewFromConfig(regionalCfg)
	case "costexplorer":
		regionalCfg.Region = costExplorerRegion
		client = costexplorer.NewFromConfig(regionalCfg)
	case "cloudwatchlogs":
		client = cloudwatchlogs.NewFromConfig(regionalCfg)
	default:
		return nil, fmt.Errorf("unsupported service: %s", service)
	}

	r.mu.Lock()
	r.clientCache[cacheKey] = client
	r.mu.Unlock()

	return client, nil
}

// Region devolve a região efetiva do perfil.
func (r *AWSRepositoryImpl) Region(ctx context.Context, profile string) string {
	cfg, err := r.getAWSConfig(ctx, profile)
	if err != nil {
		return r.region
	}
	return cfg.Region
}

// GetAWSProfiles lista os perfis de ~/.aws/credentials e ~/.aws/config.
func (r *AWSRepositoryImpl) GetAWSProfiles() []string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return []string{"default"}
	}
	return profilesFrom(
		filepath.Join(homeDir, ".aws", "credentials"),
		filepath.Join(homeDir, ".aws", "config"),
	)
}

var profileRegex = regexp.MustCompile(`\[([^]]+)\]`)

func profilesFrom(credentialsPath, configPath string) []string {
	profiles := make(map[string]bool)

	parseFile := func(path string, isConfig bool) {
		content, err := os.ReadFile(path)
		if err != nil {
			return
		}
		for _, match := range profileRegex.FindAllStringSubmatch(string(content), -1) {
			name := match[1]
			if isConfig {
				name = strings.TrimPrefix(name, "profile ")
			}
			profiles[name] = true
		}
	}

	parseFile(credentialsPath, false)
	parseFile(configPath, true)

	if len(profiles) == 0 {
		profiles["default"] = true
	}

	result := make([]string, 0, len(profiles))
	for profile := range profiles {
		result = append(result, profile)
	}
	sort.Strings(result)
	return result
}

func (r *AWSRepositoryImpl) GetAccountID(ctx context.Context, profile string) (string, error) {
	client, err := r.getServiceClient(ctx, profile, "sts")
	if err != nil {
		return "", err
	}

	result, err := client.(*sts.Client).GetCallerIdentity(ctx, &sts.GetCallerIdentityInput{})
	if err != nil {
		return "", fmt.Errorf("error getting account ID for profile %q: %w", profile, err)
	}
	return aws.ToString(result.Account), nil
}

// GetS3Series baixa os objetos de histórico e previsão do bucket de dados.
func (r *AWSRepositoryImpl) GetS3Series(ctx context.Context, profile, bucket, historicalKey, forecastKey string) (entity.Series, error) {
	client, err := r.getServiceClient(ctx, profile, "s3")
	if err != nil {
		return entity.Series{}, err
	}
	return loadS3Series(ctx, client.(*s3.Client), bucket, historicalKey, forecastKey)
}

// GetCostSeries monta séries mensais por serviço a partir do Cost Explorer.
func (r *AWSRepositoryImpl) GetCostSeries(ctx context.Context, profile string, months, forecastMonths, topServices int) (entity.Series, error) {
	client, err := r.getServiceClient(ctx, profile, "costexplorer")
	if err != nil {
		return entity.Series{}, err
	}
	return loadCostSeries(ctx, client.(*costexplorer.Client), costWindow(nowUTC(), months, forecastMonths), topServices)
}

// TestConnectivity executa o diagnóstico de credenciais, STS e S3.
func (r *AWSRepositoryImpl) TestConnectivity(ctx context.Context, profile, dataBucket string) entity.ConnectivityReport {
	report := entity.ConnectivityReport{
		Region:     r.region,
		DataBucket: dataBucket,
		ServerTime: nowUTC(),
	}

	cfg, err := r.getAWSConfig(ctx, profile)
	if err != nil {
		return failReport(report, err)
	}
	report.Region = cfg.Region

	if cfg.Credentials != nil {
		creds, err := cfg.Credentials.Retrieve(ctx)
		if err != nil {
			return failReport(report, err)
		}
		report.CredentialSource = creds.Source
	}

	stsClient, err := r.getServiceClient(ctx, profile, "sts")
	if err != nil {
		return failReport(report, err)
	}
	s3Client, err := r.getServiceClient(ctx, profile, "s3")
	if err != nil {
		return failReport(report, err)
	}

	return runConnectivity(ctx, stsClient.(*sts.Client), s3Client.(*s3.Client), report)
}

// LogsClient devolve o cliente do CloudWatch Logs usado pelo sink de diagnóstico.
func (r *AWSRepositoryImpl) LogsClient(ctx context.Context, profile string) (*cloudwatchlogs.Client, error) {
	client, err := r.getServiceClient(ctx, profile, "cloudwatchlogs")
	if err != nil {
		return nil, err
	}
	return client.(*cloudwatchlogs.Client), nil
}
