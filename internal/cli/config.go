package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/mdedit/internal/configloader"
	"github.com/yaklabco/mdedit/internal/logging"
	"github.com/yaklabco/mdedit/pkg/config"
	"github.com/yaklabco/mdedit/pkg/fsutil"
	"github.com/yaklabco/mdedit/pkg/preview"
	"github.com/yaklabco/mdedit/pkg/workspace"
)

// session is the resolved environment of one command invocation.
type session struct {
	ctx     context.Context
	cfg     *config.Config
	workDir string
	color   string
}

// loadSession resolves the configuration for cmd, layering cli on top of the
// config files and environment.
func loadSession(cmd *cobra.Command, cli *config.Config) (*session, error) {
	logger := logging.Default()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, fmt.Errorf("get config flag: %w", err)
	}
	color, err := cmd.Flags().GetString("color")
	if err != nil {
		color = "auto"
	}

	workDir, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("get working directory: %w", err)
	}

	loadResult, err := configloader.Load(ctx, configloader.LoadOptions{
		WorkingDir:   workDir,
		ExplicitPath: configPath,
		CLIConfig:    cli,
	})
	if err != nil {
		return nil, errors.Join(errConfig, err)
	}

	for _, warning := range loadResult.Warnings {
		logger.Warn(warning)
	}
	if len(loadResult.LoadedFrom) > 0 {
		logger.Debug("loaded configuration from", logging.FieldFiles, loadResult.LoadedFrom)
	}

	cfg := loadResult.Config
	logger.Debug("configuration loaded",
		logging.FieldFlavor, cfg.Flavor,
		logging.FieldTheme, cfg.Theme,
		logging.FieldDryRun, cfg.DryRun,
	)

	return &session{
		ctx:     logging.WithLogger(ctx, logger),
		cfg:     cfg,
		workDir: workDir,
		color:   color,
	}, nil
}

// store returns a document store honoring the backup, size and force
// settings.
func (s *session) store() *workspace.Store {
	mode := fsutil.BackupMode(s.cfg.Backups.Mode)
	if mode == "" {
		mode = fsutil.BackupSidecar
	}
	return workspace.NewStore(workspace.StoreOptions{
		Backups:     fsutil.BackupPolicy{Enabled: s.cfg.BackupsEnabled(), Mode: mode},
		MaxFileSize: s.cfg.Workspace.MaxFileSize,
		Force:       s.cfg.Force,
	})
}

// scanOptions returns the project scan settings.
func (s *session) scanOptions() workspace.ScanOptions {
	return workspace.ScanOptions{
		Extensions:  s.cfg.Workspace.Extensions,
		Hidden:      s.cfg.Workspace.Hidden,
		Ignore:      s.cfg.Workspace.Ignore,
		MaxFileSize: s.cfg.Workspace.MaxFileSize,
	}
}

// renderer returns a preview renderer for the configured flavor and theme.
func (s *session) renderer() *preview.Renderer {
	return preview.New(preview.Options{
		Flavor:         string(s.cfg.Flavor),
		Linkify:        s.cfg.Preview.Linkify,
		Typographer:    s.cfg.Preview.Typographer,
		HardWraps:      s.cfg.Preview.Breaks,
		HighlightStyle: s.cfg.Preview.HighlightStyle,
		Theme:          preview.Theme(s.cfg.Theme),
	})
}

// projectRoot returns the project folder containing dir.
func (s *session) projectRoot(dir string) (string, error) {
	root, err := configloader.ProjectRoot(s.ctx, dir)
	if err != nil {
		return "", fmt.Errorf("find project root: %w", err)
	}
	return root, nil
}
