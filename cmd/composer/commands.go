package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"resume-composer/internal/config"
	"resume-composer/internal/export"
	"resume-composer/internal/export/docx"
	"resume-composer/internal/export/raster"
	"resume-composer/internal/logger"
	"resume-composer/internal/model"
	"resume-composer/internal/render"
	infra "resume-composer/pkg/infrastructure"
)

type rootOptions struct {
	settingsPath string
	verbose      bool
	log          zerolog.Logger
}

type styleFlags struct {
	template  string
	font      string
	primary   string
	secondary string
}

func (f *styleFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.template, "template", "t", "", "Template id, see the templates command")
	cmd.Flags().StringVarP(&f.font, "font", "f", "", "Font token")
	cmd.Flags().StringVar(&f.primary, "primary", "", "Primary color")
	cmd.Flags().StringVar(&f.secondary, "secondary", "", "Secondary color")
}

// presentation layers defaults, the settings file and flags, in that order.
func (o *rootOptions) presentation(f styleFlags) (render.Presentation, error) {
	s := config.Settings{}
	if o.settingsPath != "" {
		loaded, err := config.LoadSettings(o.settingsPath)
		if err != nil {
			return render.Presentation{}, err
		}
		s = loaded
	}
	s = s.Merge(config.Settings{
		Template:       f.template,
		Font:           f.font,
		PrimaryColor:   f.primary,
		SecondaryColor: f.secondary,
	})
	return s.Over(render.DefaultPresentation), nil
}

func newRootCmd() *cobra.Command {
	o := &rootOptions{}
	root := &cobra.Command{
		Use:           "composer",
		Short:         "Compose, preview and export resumes",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			o.log = logger.Console(o.verbose)
		},
	}
	root.PersistentFlags().StringVar(&o.settingsPath, "settings", "", "TOML settings file with template, font and colors")
	root.PersistentFlags().BoolVarP(&o.verbose, "verbose", "v", false, "Log progress to stderr")

	root.AddCommand(
		newNewCmd(),
		newValidateCmd(),
		newTemplatesCmd(),
		newRenderCmd(o),
		newExportCmd(o),
	)
	return root
}

func readDocument(path string) (model.Document, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return model.Document{}, err
	}
	return model.Decode(b)
}

func newNewCmd() *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "new",
		Short: "Write the sample document",
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := model.Encode(model.Default())
			if err != nil {
				return err
			}
			if out == "" {
				_, err = cmd.OutOrStdout().Write(append(b, '\n'))
				return err
			}
			if err := os.WriteFile(out, b, 0o644); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", out)
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "Output file (default stdout)")
	return cmd
}

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <document.json>",
		Short: "Check a saved document against the schema",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := readDocument(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "ok: %d sections, %d visible\n", len(doc.Sections), len(doc.VisibleSections()))
			return nil
		},
	}
}

func newTemplatesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "templates",
		Short: "List templates and fonts",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			fmt.Fprintln(w, "Templates:")
			for _, t := range render.Templates() {
				fmt.Fprintf(w, "  %-22s %s\n", t.ID, t.Name)
			}
			fmt.Fprintln(w, "Fonts:")
			for _, f := range render.Fonts() {
				fmt.Fprintf(w, "  %-22s %s\n", f.Token, f.Name)
			}
			return nil
		},
	}
}

func newRenderCmd(o *rootOptions) *cobra.Command {
	var (
		style styleFlags
		out   string
	)
	cmd := &cobra.Command{
		Use:   "render <document.json>",
		Short: "Render the HTML preview",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := readDocument(args[0])
			if err != nil {
				return err
			}
			p, err := o.presentation(style)
			if err != nil {
				return err
			}
			b, err := render.RenderHTML(p.Input(doc))
			if err != nil {
				return err
			}
			o.log.Debug().Str("template", string(p.Template)).Int("bytes", len(b)).Msg("rendered preview")
			if out == "" {
				_, err = cmd.OutOrStdout().Write(b)
				return err
			}
			return os.WriteFile(out, b, 0o644)
		},
	}
	style.register(cmd)
	cmd.Flags().StringVarP(&out, "out", "o", "", "Output file (default stdout)")
	return cmd
}

func newExportCmd(o *rootOptions) *cobra.Command {
	var (
		style      styleFlags
		outDir     string
		chromePath string
		scale      float64
		timeout    time.Duration
	)
	cmd := &cobra.Command{
		Use:       "export <pdf|docx> <document.json>",
		Short:     "Export a document as PDF or DOCX",
		Args:      cobra.ExactArgs(2),
		ValidArgs: []string{string(export.KindPDF), string(export.KindDOCX)},
		RunE: func(cmd *cobra.Command, args []string) error {
			kind := export.Kind(args[0])
			doc, err := readDocument(args[1])
			if err != nil {
				return err
			}
			p, err := o.presentation(style)
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			var buf bytes.Buffer
			switch kind {
			case export.KindPDF:
				var htmlDoc []byte
				htmlDoc, err = render.RenderHTML(p.Input(doc))
				if err != nil {
					return err
				}
				browser := infra.NewChromedpBrowser(chromePath, timeout, o.log)
				ex := raster.New(browser, raster.WithScale(scale), raster.WithLogger(o.log))
				var res raster.Result
				res, err = ex.Export(ctx, htmlDoc, doc.PersonalInfo.Name, &buf)
				if err == nil {
					o.log.Info().Int("pages", res.Pages).Msg("pdf assembled")
				}
			case export.KindDOCX:
				_, err = docx.New(docx.WithLogger(o.log)).Export(ctx, doc, p.Theme, p.Font, &buf)
			default:
				return fmt.Errorf("unknown export kind %q (want pdf or docx)", kind)
			}
			if err != nil {
				return fmt.Errorf("%s: %w", export.Notice(err), err)
			}

			if err := os.MkdirAll(outDir, 0o755); err != nil {
				return err
			}
			path := filepath.Join(outDir, export.FileName(kind, doc.PersonalInfo.Name))
			if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
			return nil
		},
	}
	style.register(cmd)
	cmd.Flags().StringVarP(&outDir, "out-dir", "d", ".", "Directory for the exported file")
	cmd.Flags().StringVar(&chromePath, "chrome-path", os.Getenv("COMPOSER_CHROME_PATH"), "Chrome binary used for PDF export")
	cmd.Flags().Float64Var(&scale, "scale", raster.MinScale, "Raster supersampling factor (min 2)")
	cmd.Flags().DurationVar(&timeout, "timeout", 60*time.Second, "Export timeout")
	return cmd
}
