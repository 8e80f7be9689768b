package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/yaklabco/mdedit/internal/logging"
	"github.com/yaklabco/mdedit/pkg/config"
	"github.com/yaklabco/mdedit/pkg/fsutil"
	"github.com/yaklabco/mdedit/pkg/imagefold"
)

// stdinPath selects standard input where a file argument is expected.
const stdinPath = "-"

func newFoldCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "fold [file]",
		Short: "Print a document with embedded images folded",
		Long: `Print a document as the editor shows it: every embedded image data URI is
replaced with "[base64 image hidden]". Reads standard input when no file is
given or the file is "-".

Examples:
  mdedit fold README.md
  cat README.md | mdedit fold`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := loadSession(cmd, &config.Config{})
			if err != nil {
				return err
			}
			content, err := readInput(sess.ctx, cmd, firstArg(args), sess.cfg.Workspace.MaxFileSize)
			if err != nil {
				return err
			}

			mapper := imagefold.NewMapper(content)
			logging.FromContext(sess.ctx).Debug("folded",
				logging.FieldImages, len(mapper.Spans()),
				logging.FieldBytes, len(content)-len(mapper.Display()),
			)

			_, err = io.WriteString(cmd.OutOrStdout(), mapper.Display())
			return err
		},
	}
}

func newUnfoldCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "unfold <original> [folded]",
		Short: "Restore images hidden by fold",
		Long: `Restore the image data of a folded document. Placeholders are matched to the
images of the original document in order; alt text and all other edits come
from the folded document. Reads the folded document from standard input when
it is not given.

Examples:
  mdedit fold doc.md > view.md
  $EDITOR view.md
  mdedit unfold doc.md view.md > doc.new.md`,
		Args: cobra.RangeArgs(1, 2), //nolint:mnd // original and optional folded file
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := loadSession(cmd, &config.Config{})
			if err != nil {
				return err
			}
			limit := sess.cfg.Workspace.MaxFileSize

			original, err := readInput(sess.ctx, cmd, args[0], limit)
			if err != nil {
				return err
			}
			folded, err := readInput(sess.ctx, cmd, firstArg(args[1:]), limit)
			if err != nil {
				return err
			}

			_, err = io.WriteString(cmd.OutOrStdout(), imagefold.Unfold(folded, original))
			return err
		},
	}
}

func firstArg(args []string) string {
	if len(args) == 0 {
		return stdinPath
	}
	return args[0]
}

// readInput reads a file, or standard input for "-".
func readInput(ctx context.Context, cmd *cobra.Command, path string, limit int64) (string, error) {
	if path == stdinPath {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("read standard input: %w", err)
		}
		return string(data), nil
	}

	data, _, err := fsutil.ReadFile(ctx, path, limit)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
