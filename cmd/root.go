package cmd

import (
	"errors"
	"io/fs"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	app       = "resume-matcher"
	envPrefix = "RESUME_MATCHER"
)

type Config struct {
	Artifact *ArtifactConfig `mapstructure:"artifact"`
	Dataset  *DatasetConfig  `mapstructure:"dataset"`
	Training *TrainingConfig `mapstructure:"training"`
	Predict  *PredictConfig  `mapstructure:"predict"`
	History  *HistoryConfig  `mapstructure:"history"`
	Log      *LogConfig      `mapstructure:"log"`
	AI       *AIConfig       `mapstructure:"ai"`
}

type ArtifactConfig struct {
	Path    string    `mapstructure:"path"`
	Backend string    `mapstructure:"backend"`
	S3      *S3Config `mapstructure:"s3"`
}

type S3Config struct {
	Bucket              string `mapstructure:"bucket"`
	Prefix              string `mapstructure:"prefix"`
	Region              string `mapstructure:"region"`
	Endpoint            string `mapstructure:"endpoint"`
	PathStyle           bool   `mapstructure:"path-style"`
	AccessKeyID         string `mapstructure:"access-key-id"`
	AccessKeyIDFile     string `mapstructure:"access-key-id-file"`
	SecretAccessKey     string `mapstructure:"secret-access-key"`
	SecretAccessKeyFile string `mapstructure:"secret-access-key-file"`
}

type DatasetConfig struct {
	Path        string `mapstructure:"path"`
	TextColumn  string `mapstructure:"text-column"`
	LabelColumn string `mapstructure:"label-column"`
}

type TrainingConfig struct {
	MaxFeatures int     `mapstructure:"max-features"`
	TestSize    float64 `mapstructure:"test-size"`
	Seed        int64   `mapstructure:"seed"`
	MaxIter     int     `mapstructure:"max-iter"`
	C           float64 `mapstructure:"c"`
	Tolerance   float64 `mapstructure:"tolerance"`
}

type PredictConfig struct {
	MinConfidence float64 `mapstructure:"min-confidence"`
	CacheSize     int     `mapstructure:"cache-size"`
}

type HistoryConfig struct {
	Path string `mapstructure:"path"`
}

type LogConfig struct {
	File       string `mapstructure:"file"`
	MaxSizeMB  int    `mapstructure:"max-size-mb"`
	MaxBackups int    `mapstructure:"max-backups"`
	MaxAgeDays int    `mapstructure:"max-age-days"`
}

type AIConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Provider string        `mapstructure:"provider"`
	Gemini   *GeminiConfig `mapstructure:"gemini"`
}

type GeminiConfig struct {
	APIKey       string        `mapstructure:"api-key"`
	APIKeyFile   string        `mapstructure:"api-key-file"`
	Model        string        `mapstructure:"model"`
	MaxLogLength int           `mapstructure:"max-log-length"`
	Timeout      time.Duration `mapstructure:"timeout"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "resume-matcher predicts job titles from resumes and matches resumes against job descriptions",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is resume-matcher.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")
	rootCmd.PersistentFlags().String("artifact", "", "location of the trained model (default model/job_title_model.json)")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
	viper.BindPFlag("artifact.path", rootCmd.PersistentFlags().Lookup("artifact"))

	setDefaults(viper.GetViper())
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("artifact.path", "model/job_title_model.json")
	v.SetDefault("artifact.backend", "file")
	v.SetDefault("artifact.s3.bucket", "")
	v.SetDefault("artifact.s3.prefix", "")
	v.SetDefault("artifact.s3.region", "")
	v.SetDefault("artifact.s3.endpoint", "")
	v.SetDefault("artifact.s3.path-style", false)
	v.SetDefault("artifact.s3.access-key-id", "")
	v.SetDefault("artifact.s3.access-key-id-file", "")
	v.SetDefault("artifact.s3.secret-access-key", "")
	v.SetDefault("artifact.s3.secret-access-key-file", "")

	v.SetDefault("dataset.path", "")
	v.SetDefault("dataset.text-column", "Resume")
	v.SetDefault("dataset.label-column", "Category")

	v.SetDefault("training.max-features", 3000)
	v.SetDefault("training.test-size", 0.2)
	v.SetDefault("training.seed", 42)
	v.SetDefault("training.max-iter", 1000)
	v.SetDefault("training.c", 1.0)
	v.SetDefault("training.tolerance", 1e-4)

	v.SetDefault("predict.min-confidence", 0.0)
	v.SetDefault("predict.cache-size", 4)

	v.SetDefault("history.path", "")

	v.SetDefault("log.file", "")
	v.SetDefault("log.max-size-mb", 10)
	v.SetDefault("log.max-backups", 3)
	v.SetDefault("log.max-age-days", 28)

	v.SetDefault("ai.enabled", false)
	v.SetDefault("ai.provider", "gemini")
	v.SetDefault("ai.gemini.api-key", "")
	v.SetDefault("ai.gemini.api-key-file", "")
	v.SetDefault("ai.gemini.model", "gemini-2.5-flash")
	v.SetDefault("ai.gemini.max-log-length", 200)
	v.SetDefault("ai.gemini.timeout", "60s")
}

func initConfig() {
	// .env is optional; values already present in the environment win.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Fatalf("loading .env file: %v", err)
	}

	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app)
		viper.SetConfigType("yaml")
	}

	// We can't proceed if the config file parsed with error. A missing default file is fine.
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			log.Fatal(err)
		}
	}
}

func getConfig() (*Config, error) {
	var config *Config
	err := viper.Unmarshal(&config)
	if err != nil {
		return config, err
	}

	return config, nil
}
