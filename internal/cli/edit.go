package cli

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/yaklabco/mdedit/internal/logging"
	"github.com/yaklabco/mdedit/internal/tui"
	"github.com/yaklabco/mdedit/internal/ui/pretty"
	"github.com/yaklabco/mdedit/pkg/config"
	"github.com/yaklabco/mdedit/pkg/workspace"
)

type editFlags struct {
	logFile string
	create  bool
	noWatch bool
}

func newEditCommand() *cobra.Command {
	var cfg config.Config
	flags := &editFlags{}

	cmd := &cobra.Command{
		Use:   "edit [file|dir]",
		Short: "Open a Markdown document in the terminal editor",
		Long: `Open a Markdown document in the terminal editor.

Given a directory, or nothing, the first document of that folder is opened.
Embedded images are shown as ![alt]([base64 image hidden]); their data is
kept and written back when the document is saved.

Keys:
  ctrl+s save          ctrl+f find          f3/shift+f3 next/previous
  ctrl+r replace       ctrl+g embed image   ctrl+v/ctrl+c paste/copy
  ctrl+l select all    esc cancel           ctrl+q quit

Examples:
  mdedit edit README.md             # Edit a file
  mdedit edit notes/new.md --create # Create the file first
  mdedit edit --log-file edit.log   # Keep a log of the session`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			target := ""
			if len(args) == 1 {
				target = args[0]
			}
			return runEdit(cmd, &cfg, flags, target)
		},
	}

	cmd.Flags().StringVar(&flags.logFile, "log-file", "", "append editor logs to this file")
	cmd.Flags().BoolVar(&flags.create, "create", false, "create the file if it does not exist")
	cmd.Flags().BoolVar(&flags.noWatch, "no-watch", false, "do not reload the file when it changes on disk")
	cmd.Flags().BoolVar(&cfg.Force, "force", false, "save even when the file changed on disk")
	cmd.Flags().BoolVar(&cfg.NoBackups, "no-backups", false, "do not keep a backup when saving")
	cmd.Flags().IntVar(&cfg.Editor.ScrollContext, "scroll-context", 0, "lines kept above a found match")
	cmd.Flags().DurationVar(&cfg.Editor.AutoSaveDelay, "autosave-delay", 0, "idle time before autosave")

	return cmd
}

func runEdit(cmd *cobra.Command, cli *config.Config, flags *editFlags, target string) error {
	sess, err := loadSession(cmd, cli)
	if err != nil {
		return err
	}

	logger, closeLog, err := editorLogger(flags.logFile, cmd)
	if err != nil {
		return err
	}
	defer func() { _ = closeLog.Close() }()

	path, err := resolveDocument(sess, target, flags.create)
	if err != nil {
		return err
	}

	var watcher *workspace.Watcher
	if !flags.noWatch {
		watcher, err = workspace.NewWatcher()
		if err != nil {
			logger.Warn("file watching disabled", logging.FieldError, err)
		} else {
			defer func() { _ = watcher.Close() }()
		}
	}

	ed := sess.cfg.Editor
	opts := tui.Options{
		Path:          path,
		Store:         sess.store(),
		Watcher:       watcher,
		AutoSave:      ed.AutoSave,
		AutoSaveDelay: ed.AutoSaveDelay,
		ScrollContext: ed.ScrollContext,
		TabWidth:      ed.TabWidth,
		MaxImageSide:  sess.cfg.Images.MaxSide,
		Styles:        pretty.NewStyles(pretty.IsColorEnabled(sess.color, os.Stdout)),
		Logger:        logger,
		Clipboard:     tui.SystemClipboard{},
	}

	return tui.Run(logging.WithLogger(sess.ctx, logger), opts)
}

// editorLogger returns the session logger. The editor owns the terminal, so
// logs go to a file or nowhere.
func editorLogger(path string, cmd *cobra.Command) (*log.Logger, io.Closer, error) {
	level := "info"
	if debug, _ := cmd.Flags().GetBool("debug"); debug {
		level = "debug"
	}
	if path == "" {
		return logging.NewWithWriter(io.Discard, level), io.NopCloser(nil), nil
	}
	logger, closer, err := logging.NewFile(path, level)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	return logger, closer, nil
}

// resolveDocument turns the edit target into a document path. Directories
// open their first document; a missing file is created when create is set.
func resolveDocument(sess *session, target string, create bool) (string, error) {
	if target == "" {
		target = sess.workDir
	}

	info, err := os.Stat(target)
	switch {
	case err == nil && info.IsDir():
		project, err := workspace.Scan(sess.ctx, target, sess.scanOptions())
		if err != nil {
			return "", err
		}
		path, ok := project.FirstFile()
		if !ok {
			return "", fmt.Errorf("no Markdown files in %s", target)
		}
		return path, nil

	case err == nil:
		return target, nil

	case errors.Is(err, fs.ErrNotExist) && create:
		return workspace.CreateFile(filepath.Dir(target), filepath.Base(target))

	default:
		return "", fmt.Errorf("open %s: %w", target, err)
	}
}
