package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/tsawler/linea/batch"
	"github.com/tsawler/linea/source"
)

var (
	batchConfigPath string

	batchS3Endpoint string
	batchS3Bucket   string
	batchS3Prefix   string
	batchS3SSL      bool

	batchWebURL string
)

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Process every PDF from a directory, S3 bucket, or website",
	Long: `Process a collection of PDFs, writing one JSON outline per input.

Settings layer in precedence order: flags, then LINEA_* environment
variables, then the config file, then defaults. With no flags at all,
the conventional container mounts /app/input and /app/output are used
when present, otherwise ./data serves as both input and output.

Examples:
  # Directory mode with defaults
  linea batch

  # Explicit directories and worker count
  linea batch --input ./pdfs --output ./outlines --workers 8

  # Config file plus an override
  linea batch --config linea.yaml --title-policy any-page

  # S3 bucket (credentials from AWS_ACCESS_KEY_ID / AWS_SECRET_ACCESS_KEY)
  linea batch --s3-endpoint s3.amazonaws.com --s3-bucket reports --s3-ssl

  # Crawl a site for linked PDFs
  linea batch --web-url https://example.com/papers --output ./outlines
`,
	RunE: runBatch,
}

func init() {
	flags := batchCmd.Flags()
	flags.StringVarP(&batchConfigPath, "config", "c", "", "Path to YAML config file")

	flags.String("input", "", "Input directory")
	flags.String("output", "", "Output directory")
	flags.Int("workers", 0, "Number of concurrent documents")
	flags.Duration("doc-timeout", 0, "Wall-clock budget per document")
	flags.Int("min-heading-length", 0, "Minimum heading length in characters")
	flags.Int("max-heading-length", 0, "Maximum heading length in characters")
	flags.String("title-policy", "", "Where the title may come from: first-page or any-page")
	flags.String("log-style", "", "Log style: terminal, json, or noop")
	flags.String("log-level", "", "Log level: debug, info, warn, or error")
	flags.String("ocr-image-dir", "", "Directory of page scans for OCR title recovery")

	flags.StringVar(&batchS3Endpoint, "s3-endpoint", "", "S3 endpoint; enables S3 source with --s3-bucket")
	flags.StringVar(&batchS3Bucket, "s3-bucket", "", "S3 bucket to traverse")
	flags.StringVar(&batchS3Prefix, "s3-prefix", "", "S3 key prefix")
	flags.BoolVar(&batchS3SSL, "s3-ssl", false, "Use HTTPS for the S3 endpoint")

	flags.StringVar(&batchWebURL, "web-url", "", "Start URL; enables the web crawl source")
}

// loadBatchConfig layers configuration: flags over environment over
// config file over defaults.
func loadBatchConfig(cmd *cobra.Command) (batch.Config, error) {
	defaults := batch.DefaultConfig()

	v := viper.New()
	v.SetDefault("input", defaults.Input)
	v.SetDefault("output", defaults.Output)
	v.SetDefault("workers", defaults.Workers)
	v.SetDefault("doc_timeout", defaults.DocTimeout)
	v.SetDefault("min_heading_length", defaults.MinHeadingLength)
	v.SetDefault("max_heading_length", defaults.MaxHeadingLength)
	v.SetDefault("min_font_size", defaults.MinFontSize)
	v.SetDefault("max_font_size", defaults.MaxFontSize)
	v.SetDefault("max_symbol_ratio", defaults.MaxSymbolRatio)
	v.SetDefault("require_heading_shape", defaults.RequireHeadingShape)
	v.SetDefault("title_policy", defaults.TitlePolicy)
	v.SetDefault("logging.style", defaults.Logging.Style)
	v.SetDefault("logging.level", defaults.Logging.Level)

	if batchConfigPath != "" {
		v.SetConfigFile(batchConfigPath)
		if err := v.ReadInConfig(); err != nil {
			return batch.Config{}, fmt.Errorf("read config %s: %w", batchConfigPath, err)
		}
	}

	v.SetEnvPrefix("LINEA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	flags := cmd.Flags()
	v.BindPFlag("input", flags.Lookup("input"))
	v.BindPFlag("output", flags.Lookup("output"))
	v.BindPFlag("workers", flags.Lookup("workers"))
	v.BindPFlag("doc_timeout", flags.Lookup("doc-timeout"))
	v.BindPFlag("min_heading_length", flags.Lookup("min-heading-length"))
	v.BindPFlag("max_heading_length", flags.Lookup("max-heading-length"))
	v.BindPFlag("title_policy", flags.Lookup("title-policy"))
	v.BindPFlag("logging.style", flags.Lookup("log-style"))
	v.BindPFlag("logging.level", flags.Lookup("log-level"))
	v.BindPFlag("ocr_image_dir", flags.Lookup("ocr-image-dir"))

	var config batch.Config
	if err := v.Unmarshal(&config); err != nil {
		return batch.Config{}, fmt.Errorf("parse configuration: %w", err)
	}
	if err := config.Validate(); err != nil {
		return batch.Config{}, err
	}
	return config, nil
}

func runBatch(cmd *cobra.Command, args []string) error {
	config, err := loadBatchConfig(cmd)
	if err != nil {
		return err
	}

	logger, err := batch.NewLogger(config.Logging)
	if err != nil {
		return err
	}
	defer logger.Sync()

	runner, err := batch.NewRunner(config, logger)
	if err != nil {
		return err
	}

	switch {
	case batchS3Bucket != "":
		src, err := source.NewS3Source(source.S3Config{
			Endpoint: batchS3Endpoint,
			Bucket:   batchS3Bucket,
			Prefix:   batchS3Prefix,
			UseSSL:   batchS3SSL,
		})
		if err != nil {
			return err
		}
		runner = runner.WithSource(src)
	case batchWebURL != "":
		src, err := source.NewWebSource(source.WebConfig{StartURL: batchWebURL})
		if err != nil {
			return err
		}
		runner = runner.WithSource(src)
	}

	summary, err := runner.Run(cmd.Context())
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Successfully processed %d/%d files in %s\n",
		summary.Succeeded, summary.Total, summary.Duration.Round(time.Millisecond))
	if summary.Failed > 0 {
		return fmt.Errorf("%d of %d documents failed", summary.Failed, summary.Total)
	}
	return nil
}
