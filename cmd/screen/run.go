package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strings"
	"syscall"
	"time"

	"github.com/fadilmartias/resume-screener/internal/config"
	"github.com/fadilmartias/resume-screener/internal/export"
	"github.com/fadilmartias/resume-screener/internal/extractor"
	"github.com/fadilmartias/resume-screener/internal/logger"
	"github.com/fadilmartias/resume-screener/internal/model"
	"github.com/fadilmartias/resume-screener/internal/service"
	"github.com/fadilmartias/resume-screener/internal/verifier"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type textExtractor interface {
	Extract(ctx context.Context, data []byte) (extractor.Result, error)
}

type profileVerifier interface {
	Verify(ctx context.Context, req verifier.Request) (*verifier.VerificationDetails, error)
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Screen every PDF in a directory and write a ranked xlsx report",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return run(cmd)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().String("dir", "", "directory containing resume PDFs (required)")
	runCmd.Flags().StringP("out", "o", "screening-report.xlsx", "path of the xlsx report")
	runCmd.Flags().Bool("verify", false, "verify LinkedIn and GitHub profiles found in resumes")
	runCmd.MarkFlagRequired("dir")
}

func run(cmd *cobra.Command) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := godotenv.Load(); err != nil {
		log.Println("Could not load .env file")
	}

	zl, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		return fmt.Errorf("creating a logger: %w", err)
	}
	defer zl.Sync()

	cfg, err := loadConfig(cfgFile)
	if err != nil {
		return err
	}

	dir, _ := cmd.Flags().GetString("dir")
	out, _ := cmd.Flags().GetString("out")
	verify, _ := cmd.Flags().GetBool("verify")
	verify = verify || cfg.Verify

	zl.Info("starting the screening",
		zap.String("version", version),
		zap.String("dir", dir),
		zap.Int("criteria", len(cfg.Criteria)),
		zap.Bool("verify", verify),
	)

	parser, err := extractor.NewParser(config.LoadPDFConfig(), zl.Named("pdf"))
	if err != nil {
		return fmt.Errorf("building pdf parser: %w", err)
	}

	aiCfg := *config.LoadAIConfig()
	if cfg.AI != nil {
		if cfg.AI.Provider != "" {
			aiCfg.Provider = strings.ToLower(cfg.AI.Provider)
		}
		if cfg.AI.MaxOutputTokens > 0 {
			aiCfg.MaxOutputTokens = cfg.AI.MaxOutputTokens
		}
	}
	aiCfg.EmbedResumes = false
	analyzer, _, err := service.NewAnalyzer(ctx, &aiCfg, zl.Named("ai"))
	if err != nil {
		return fmt.Errorf("building analyzer: %w", err)
	}

	s := &screener{
		extractor:   extractor.New(parser, extractor.WithLogger(zl.Named("extractor"))),
		analyzer:    analyzer,
		criteria:    cfg.Criteria,
		concurrency: cfg.Concurrency,
		logger:      zl,
	}
	if verify {
		ver, err := verifier.NewFromConfig(config.LoadVerifierConfig(), zl)
		if err != nil {
			return fmt.Errorf("building verifier: %w", err)
		}
		defer ver.Close()
		s.verifier = ver
	}

	candidates, err := s.screenDir(ctx, dir)
	if err != nil {
		return err
	}
	if len(candidates) == 0 {
		zl.Info("exiting", zap.String("reason", "no resumes could be screened"))
		return nil
	}

	path, err := export.SaveReport(out, export.Report{
		Title:       cfg.Title,
		Criteria:    cfg.Criteria,
		Candidates:  candidates,
		GeneratedAt: time.Now(),
	})
	if err != nil {
		return err
	}
	zl.Info("report written", zap.String("path", path), zap.Int("candidates", len(candidates)))
	return nil
}

type screener struct {
	extractor   textExtractor
	analyzer    service.Analyzer
	verifier    profileVerifier
	criteria    []model.Criterion
	concurrency int
	logger      *zap.Logger
}

// listPDFs returns the .pdf files directly inside dir, sorted by name.
func listPDFs(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", dir, err)
	}
	var files []string
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".pdf") {
			continue
		}
		files = append(files, filepath.Join(dir, e.Name()))
	}
	sort.Strings(files)
	return files, nil
}

// screenDir screens every PDF in dir. A resume that fails is logged and
// left out of the result.
func (s *screener) screenDir(ctx context.Context, dir string) ([]export.Candidate, error) {
	files, err := listPDFs(dir)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no PDF files found in %s", dir)
	}
	s.logger.Info("found resumes", zap.Int("count", len(files)))

	results := make([]*export.Candidate, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(s.concurrency, 1))
	for i, path := range files {
		g.Go(func() error {
			c, err := s.screenFile(gctx, path)
			if err != nil {
				if ctxErr := gctx.Err(); ctxErr != nil {
					return ctxErr
				}
				s.logger.Error("screening failed", zap.String("file", filepath.Base(path)), zap.Error(err))
				return nil
			}
			results[i] = c
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	candidates := make([]export.Candidate, 0, len(results))
	for _, c := range results {
		if c != nil {
			candidates = append(candidates, *c)
		}
	}
	return candidates, nil
}

func (s *screener) screenFile(ctx context.Context, path string) (*export.Candidate, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	extracted, err := s.extractor.Extract(ctx, data)
	if err != nil {
		return nil, fmt.Errorf("extracting text: %w", err)
	}
	if strings.TrimSpace(extracted.Text) == "" {
		return nil, fmt.Errorf("no text could be extracted")
	}

	analysis, err := s.analyzer.Analyze(ctx, extracted.Text, s.criteria)
	if err != nil {
		return nil, fmt.Errorf("analyzing: %w", err)
	}
	analysis = service.ValidateAnalysis(extracted.Text, analysis, s.criteria)

	c := &export.Candidate{
		Name:                model.CandidateName(filepath.Base(path)),
		Criteria:            analysis.Criteria,
		Summary:             analysis.Summary,
		QualificationsCount: analysis.QualificationsCount,
		LinkedInURL:         extracted.LinkedInURL,
		GitHubURL:           extracted.GitHubURL,
	}

	if s.verifier != nil && (c.LinkedInURL != "" || c.GitHubURL != "") {
		profile := model.Profile{Criteria: s.criteria}
		details, err := s.verifier.Verify(ctx, verifier.Request{
			LinkedInURL: c.LinkedInURL,
			GitHubURL:   c.GitHubURL,
			Keywords:    profile.Keywords(),
		})
		if err != nil {
			s.logger.Warn("verification failed", zap.String("candidate", c.Name), zap.Error(err))
		} else {
			score := details.OverallScore
			c.VerificationScore = &score
		}
	}

	fields := []zap.Field{
		zap.String("candidate", c.Name),
		zap.Int("qualifications", c.QualificationsCount),
		zap.Int("of", len(s.criteria)),
	}
	if c.VerificationScore != nil {
		fields = append(fields, zap.Int("verification_score", *c.VerificationScore))
	}
	s.logger.Info("candidate screened", fields...)
	return c, nil
}
