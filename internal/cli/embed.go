package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/mdedit/internal/logging"
	"github.com/yaklabco/mdedit/pkg/config"
	"github.com/yaklabco/mdedit/pkg/editor"
	"github.com/yaklabco/mdedit/pkg/imagefold"
	"github.com/yaklabco/mdedit/pkg/textpos"
)

type embedFlags struct {
	into string
	line int
	alt  string
}

func newEmbedCommand() *cobra.Command {
	var cfg config.Config
	flags := &embedFlags{}

	cmd := &cobra.Command{
		Use:   "embed <image>",
		Short: "Embed an image as a base64 data URI",
		Long: `Convert an image file into a Markdown image with a data URI.

PNG, JPEG, GIF and WebP images larger than images.max_side are scaled down;
SVG files are embedded unchanged. The snippet is printed, or inserted into a
document with --into. The alt text defaults to the file name.

Examples:
  mdedit embed logo.png                      # Print the snippet
  mdedit embed logo.png --into README.md     # Append to a document
  mdedit embed chart.svg --into doc.md --line 3 --alt "Sales chart"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEmbed(cmd, &cfg, flags, args[0])
		},
	}

	cmd.Flags().StringVar(&flags.into, "into", "", "insert the image into this document")
	cmd.Flags().IntVar(&flags.line, "line", 0, "insert before this line (default: append)")
	cmd.Flags().StringVar(&flags.alt, "alt", "", "alt text")
	cmd.Flags().IntVar(&cfg.Images.MaxSide, "max-side", 0, "longest side of raster images, in pixels")
	cmd.Flags().BoolVar(&cfg.NoBackups, "no-backups", false, "do not keep a backup of the document")

	return cmd
}

func runEmbed(cmd *cobra.Command, cli *config.Config, flags *embedFlags, imagePath string) error {
	sess, err := loadSession(cmd, cli)
	if err != nil {
		return err
	}

	data, err := os.ReadFile(imagePath)
	if err != nil {
		return fmt.Errorf("read image: %w", err)
	}
	snippet, err := imagefold.EmbedImage(imagePath, data, imagefold.EmbedOptions{MaxSide: sess.cfg.Images.MaxSide})
	if err != nil {
		return err
	}
	if flags.alt != "" {
		span := imagefold.FindSpans(snippet)[0]
		snippet = imagefold.Snippet(flags.alt, span.URL(snippet))
	}

	if flags.into == "" {
		_, err = io.WriteString(cmd.OutOrStdout(), snippet+"\n")
		return err
	}

	if err := insertImage(sess.ctx, editor.New(sess.store()), flags.into, flags.line, snippet); err != nil {
		return err
	}
	logging.FromContext(sess.ctx).Info("embedded image",
		logging.FieldPath, flags.into,
		logging.FieldBytes, len(snippet),
	)
	return nil
}

// insertImage opens path in buf, inserts snippet on its own line before the
// 1-based line, or at the end when line is not positive, and saves.
func insertImage(ctx context.Context, buf *editor.Buffer, path string, line int, snippet string) error {
	if err := buf.Open(ctx, path); err != nil {
		return err
	}

	display := buf.Display()
	at := len(display)
	if line > 0 {
		offset, ok := textpos.NewIndex(display).Offset(line, 1)
		if !ok {
			return fmt.Errorf("%s has no line %d", path, line)
		}
		at = offset
	}

	text := snippet + "\n"
	if at == len(display) && display != "" && display[len(display)-1] != '\n' {
		text = "\n" + text
	}

	buf.SetCursor(at)
	buf.InsertAtCursor(text)
	return buf.Save(ctx)
}
