package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/hupe1980/kclust"
	"github.com/hupe1980/kclust/config"
	"github.com/hupe1980/kclust/distance"
	"github.com/hupe1980/kclust/ingest"
	promcol "github.com/hupe1980/kclust/metric/prometheus"
	"github.com/hupe1980/kclust/model"
	"github.com/hupe1980/kclust/report"
	"github.com/hupe1980/kclust/source"
	miniostore "github.com/hupe1980/kclust/source/minio"
	s3store "github.com/hupe1980/kclust/source/s3"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// runFlags maps run flags to config keys.
var runFlags = map[string]string{
	"clusters":       "clusters",
	"max-iterations": "max_iterations",
	"runs":           "runs",
	"seed":           "seed",
	"metric":         "metric",
	"input":          "input.uri",
	"header":         "input.header",
	"delimiter":      "input.delimiter",
	"log-level":      "log.level",
	"log-format":     "log.format",
	"output":         "output.format",
	"metrics":        "output.metrics",
}

func newRunCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run [input]",
		Short: "Cluster the records of an input",
		Long: `
Run reads customer records from a local file, an s3:// or minio:// object,
or every object below a prefix ending in "/", then performs the configured
number of independent clustering runs and prints per-iteration cluster
percentages.
`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				if err := cmd.Flags().Set("input", args[0]); err != nil {
					return err
				}
			}
			cfg, err := loadConfig(cmd, runFlags)
			if err != nil {
				return err
			}
			return run(cmd.Context(), cfg, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	addRunFlags(cmd.Flags())
	return cmd
}

// addRunFlags registers the flags listed in runFlags with config defaults.
func addRunFlags(f *pflag.FlagSet) {
	def := config.Default()
	f.IntP("clusters", "k", def.Clusters, "Number of clusters.")
	f.Int("max-iterations", def.MaxIterations, "Maximum assign/update passes per run.")
	f.Int("runs", def.Runs, "Number of independent runs.")
	f.Int64("seed", def.Seed, "Random seed. 0 selects a time-based seed.")
	f.String("metric", def.Metric, "Distance metric: euclidean, squared_euclidean or manhattan.")
	f.StringP("input", "i", def.Input.URI, "Input path or URI.")
	f.Bool("header", def.Input.Header, "Skip the first row of each input.")
	f.String("delimiter", def.Input.Delimiter, "Field delimiter.")
	f.String("log-level", def.Log.Level, "Log level: debug, info, warn or error.")
	f.String("log-format", def.Log.Format, "Log format: text or json.")
	f.String("output", def.Output.Format, "Report format: text, log or none.")
	f.Bool("metrics", def.Output.Metrics, "Write Prometheus metrics to stderr on exit.")
}

func run(ctx context.Context, cfg config.Config, stdout, stderr io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}

	logger := newLogger(cfg, stderr)

	records, err := loadRecords(ctx, cfg)
	logger.LogIngest(ctx, cfg.Input.URI, len(records), err)
	if err != nil {
		return err
	}

	metric, err := distance.ParseMetric(cfg.Metric)
	if err != nil {
		return err
	}

	opts := []kclust.Option{
		kclust.WithMaxIterations(cfg.MaxIterations),
		kclust.WithRuns(cfg.Runs),
		kclust.WithMetric(metric),
		kclust.WithLogger(logger),
	}
	if cfg.Seed != 0 {
		opts = append(opts, kclust.WithSeed(cfg.Seed))
	}

	var text *report.Text
	switch cfg.Output.Format {
	case "text":
		text = report.NewText(stdout)
		opts = append(opts, kclust.WithReporter(text))
	case "log":
		opts = append(opts, kclust.WithReporter(report.NewLog(logger.Logger, slog.LevelInfo)))
	}

	var reg *prometheus.Registry
	if cfg.Output.Metrics {
		reg = prometheus.NewRegistry()
		col, err := promcol.NewCollector(reg, "")
		if err != nil {
			return err
		}
		opts = append(opts, kclust.WithMetricsCollector(col))
	}

	c, err := kclust.New(cfg.Clusters, opts...)
	if err != nil {
		return err
	}

	results, runErr := c.Run(ctx, records)

	if reg != nil {
		if err := promcol.WriteText(stderr, reg); err != nil && runErr == nil {
			runErr = err
		}
	}
	if runErr != nil {
		return runErr
	}
	if text != nil && text.Err() != nil {
		return fmt.Errorf("write report: %w", text.Err())
	}

	if best, ok := kclust.BestRun(results); ok {
		logger.Info("best run",
			slog.Int("run", best.Run),
			slog.String("run_id", best.ID),
			slog.Bool("converged", best.Converged),
			slog.Int("iterations", best.Iterations),
			slog.Float64("inertia", best.Inertia),
		)
	}
	return nil
}

func newLogger(cfg config.Config, w io.Writer) *kclust.Logger {
	opts := &slog.HandlerOptions{Level: cfg.SlogLevel()}
	if cfg.Log.Format == "json" {
		return kclust.NewLogger(slog.NewJSONHandler(w, opts))
	}
	return kclust.NewLogger(slog.NewTextHandler(w, opts))
}

func readerOptions(in config.Input) func(*ingest.Options) {
	return func(o *ingest.Options) {
		o.Header = in.Header
		o.Comma = []rune(in.Delimiter)[0]
		o.Columns = ingest.Columns{
			ID:     in.Columns.ID,
			Age:    in.Columns.Age,
			Income: in.Columns.Income,
			Score:  in.Columns.Score,
		}
	}
}

// loadRecords resolves the input URI to a source and reads every record.
func loadRecords(ctx context.Context, cfg config.Config) ([]*model.Record, error) {
	loc, err := source.ParseURI(cfg.Input.URI)
	if err != nil {
		return nil, err
	}

	src, name, err := openSource(ctx, cfg, loc)
	if err != nil {
		return nil, err
	}

	if loc.IsPrefix() {
		return ingest.LoadPrefix(ctx, src, name, readerOptions(cfg.Input))
	}
	return ingest.Load(ctx, src, name, readerOptions(cfg.Input))
}

// openSource returns the source for loc and the name or prefix to read
// from it.
func openSource(ctx context.Context, cfg config.Config, loc source.Location) (source.Source, string, error) {
	switch loc.Scheme {
	case source.SchemeFile:
		if loc.IsPrefix() {
			root := loc.Path
			if root == "" {
				root = "."
			}
			return source.NewLocalStore(root), "", nil
		}
		return source.NewLocalStore(filepath.Dir(loc.Path)), filepath.Base(loc.Path), nil

	case source.SchemeS3:
		client, err := newS3Client(ctx, cfg.S3)
		if err != nil {
			return nil, "", err
		}
		return s3store.NewStore(client, loc.Bucket, ""), loc.Path, nil

	case source.SchemeMinio:
		client, err := newMinioClient(cfg.MinIO)
		if err != nil {
			return nil, "", err
		}
		return miniostore.NewStore(client, loc.Bucket, ""), loc.Path, nil
	}
	return nil, "", fmt.Errorf("unsupported input scheme %q", loc.Scheme)
}

func newS3Client(ctx context.Context, cfg config.S3) (*awss3.Client, error) {
	var loadOpts []func(*awsconfig.LoadOptions) error
	if cfg.Region != "" {
		loadOpts = append(loadOpts, awsconfig.WithRegion(cfg.Region))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	return awss3.NewFromConfig(awsCfg, func(o *awss3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
		o.UsePathStyle = cfg.UsePathStyle
	}), nil
}

func newMinioClient(cfg config.MinIO) (*minio.Client, error) {
	if cfg.Endpoint == "" {
		return nil, fmt.Errorf("minio input requires minio.endpoint")
	}
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.Secure,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("create minio client: %w", err)
	}
	return client, nil
}
