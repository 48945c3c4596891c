// Command dailyrun generates posters for every employee celebrating on
// the target date, writes them to the output directory, and mails them.
package main

import (
	"context"
	"fmt"
	"image"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/salasarservices/autogreet/internal/bgremove"
	"github.com/salasarservices/autogreet/internal/config"
	"github.com/salasarservices/autogreet/internal/employee"
	"github.com/salasarservices/autogreet/internal/facecrop"
	"github.com/salasarservices/autogreet/internal/infra"
	"github.com/salasarservices/autogreet/internal/mailer"
	"github.com/salasarservices/autogreet/internal/poster"
	"github.com/salasarservices/autogreet/internal/schedule"
	"github.com/salasarservices/autogreet/internal/util"
)

var (
	flagConfig  string
	flagSecrets string
	flagDate    string
	flagOut     string
	flagWorkers int
	flagNoEmail bool
)

func main() {
	root := &cobra.Command{
		Use:          "dailyrun",
		Short:        "Generate and send today's birthday and anniversary posters",
		SilenceUsage: true,
		RunE:         run,
	}
	root.Flags().StringVar(&flagConfig, "config", "template_config.json", "poster configuration file")
	root.Flags().StringVar(&flagSecrets, "secrets", "secrets.toml", "secrets file")
	root.Flags().StringVar(&flagDate, "date", "", "target date (YYYY-MM-DD), defaults to today")
	root.Flags().StringVar(&flagOut, "out", "storage/output", "poster output directory")
	root.Flags().IntVar(&flagWorkers, "workers", 4, "parallel poster generations")
	root.Flags().BoolVar(&flagNoEmail, "no-email", false, "generate posters without sending email")

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

// job is one poster to generate.
type job struct {
	emp employee.Employee
	cat poster.Category
}

type result struct {
	cat      poster.Category
	filename string
	data     []byte
}

func run(cmd *cobra.Command, args []string) error {
	_ = godotenv.Load(".env", ".env.local")
	logger := infra.NewLogger(getenv("APP_ENV", "development"))

	on := time.Now()
	if flagDate != "" {
		parsed, err := time.Parse("2006-01-02", flagDate)
		if err != nil {
			return fmt.Errorf("--date must be YYYY-MM-DD: %w", err)
		}
		on = parsed
	}

	cfg, err := config.Load(flagConfig)
	if err != nil {
		return err
	}
	secrets, err := config.LoadSecrets(flagSecrets)
	if err != nil {
		return err
	}
	fonts, err := cfg.LoadFonts()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	comp := &poster.Compositor{
		Remover: bgremove.New(bgremove.Options{
			APIKey: secrets.WithoutBGAPIKey,
			Logger: &logger,
		}),
		Fonts:      fonts,
		HTTPClient: util.DefaultClient,
		Now:        func() time.Time { return on },
		Logger:     &logger,
	}
	if cfg.CascadeFile != "" {
		det, err := facecrop.LoadPigoDetector(cfg.CascadeFile)
		if err != nil {
			logger.Warn().Err(err).Msg("dailyrun: face cascade unavailable, crops will be centered")
		} else {
			comp.Detector = det
		}
	}

	src, err := cfg.DataSource.EmployeeSource(cfg.FieldMapping, util.DefaultClient)
	if err != nil {
		return err
	}
	emps, err := src.Employees(ctx)
	if err != nil {
		return err
	}

	templates := map[poster.Category]image.Image{}
	var jobs []job
	for _, e := range schedule.BirthdaysOn(emps, on) {
		jobs = append(jobs, job{emp: e, cat: poster.CategoryBirthday})
	}
	for _, e := range schedule.AnniversariesOn(emps, on) {
		jobs = append(jobs, job{emp: e, cat: poster.CategoryAnniversary})
	}
	if len(jobs) == 0 {
		logger.Info().Time("date", on).Msg("dailyrun: nobody celebrates today")
		return nil
	}
	for _, cat := range []poster.Category{poster.CategoryBirthday, poster.CategoryAnniversary} {
		catCfg, _ := cfg.Category(cat)
		tmpl, err := config.LoadTemplate(catCfg)
		if err != nil {
			return err
		}
		templates[cat] = tmpl
	}

	if err := util.EnsureDir(flagOut); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	results := generate(ctx, comp, cfg, templates, jobs, on, logger)

	byCategory := map[poster.Category][]mailer.Attachment{}
	for _, r := range results {
		path := filepath.Join(flagOut, r.filename)
		if err := os.WriteFile(path, r.data, 0o644); err != nil {
			logger.Error().Str("path", path).Err(err).Msg("dailyrun: write poster failed")
			continue
		}
		logger.Info().Str("path", path).Msg("dailyrun: poster written")
		byCategory[r.cat] = append(byCategory[r.cat], mailer.Attachment{Filename: r.filename, Data: r.data})
	}

	if flagNoEmail {
		logger.Info().Int("posters", len(results)).Msg("dailyrun: done, email skipped")
		return nil
	}

	m := mailer.New(secrets.SMTPSender, secrets.SMTPPassword)
	bd := cfg.Recipients[string(poster.CategoryBirthday)]
	if err := m.SendBirthday(byCategory[poster.CategoryBirthday], bd.To, bd.CC, on); err != nil {
		logger.Error().Err(err).Msg("dailyrun: birthday email failed")
	}
	an := cfg.Recipients[string(poster.CategoryAnniversary)]
	if err := m.SendAnniversary(byCategory[poster.CategoryAnniversary], an.To, an.CC, on); err != nil {
		logger.Error().Err(err).Msg("dailyrun: anniversary email failed")
	}

	logger.Info().Int("posters", len(results)).Msg("dailyrun: done")
	return nil
}

// generate runs the jobs through a bounded worker pool. Every poster is
// independent; a failure is logged and skipped so the run continues.
func generate(ctx context.Context, comp *poster.Compositor, cfg *config.Config, templates map[poster.Category]image.Image, jobs []job, on time.Time, logger infra.Logger) []result {
	workers := flagWorkers
	if workers < 1 {
		workers = 1
	}

	jobCh := make(chan job)
	var mu sync.Mutex
	var out []result

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range jobCh {
				catCfg, err := cfg.Category(j.cat)
				if err != nil {
					logger.Error().Str("employee", j.emp.Name).Str("category", string(j.cat)).Err(err).Msg("dailyrun: unknown category")
					continue
				}
				data, err := comp.Compose(ctx, j.emp, templates[j.cat], catCfg.Layout, j.cat)
				if err != nil {
					logger.Error().Str("employee", j.emp.Name).Str("category", string(j.cat)).Err(err).Msg("dailyrun: poster failed")
					continue
				}
				name := fmt.Sprintf("%s_%s_%s.png", j.cat, util.SafeName(j.emp.Name), on.Format("2006-01-02"))
				mu.Lock()
				out = append(out, result{cat: j.cat, filename: name, data: data})
				mu.Unlock()
			}
		}()
	}

	for _, j := range jobs {
		select {
		case jobCh <- j:
		case <-ctx.Done():
		}
	}
	close(jobCh)
	wg.Wait()
	return out
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
