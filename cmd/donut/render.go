package main

import (
	"context"
	"fmt"
	"image/png"
	"os"
	"path/filepath"
	"time"

	"github.com/gogpu/gg"
	"github.com/spf13/cobra"

	"github.com/gogpu/donut"
	"github.com/gogpu/donut/internal/blend"
)

// maxFrames bounds the frames command for charts whose animation never
// settles within a reasonable time.
const maxFrames = 10000

// epoch is the fixed reset time of offline renders, so output does not
// depend on the wall clock.
var epoch = time.Unix(0, 0)

func renderCommand() *cobra.Command {
	var (
		chartPath  string
		output     string
		at         time.Duration
		background string
	)
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render a chart to a PNG file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			chart, err := newChart(chartPath, donut.WithClock(func() time.Time { return epoch }))
			if err != nil {
				return err
			}
			defer chart.Close()

			if err := chart.LoadIcons(cmd.Context()); err != nil {
				donut.Logger().Warn("render: some icons were not loaded", "err", err)
			}
			if cmd.Flags().Changed("at") {
				chart.Frame(epoch.Add(at))
			} else {
				chart.Settle()
			}

			pm, err := flatten(chart.Pixmap(), background)
			if err != nil {
				return err
			}
			if err := savePNG(pm, output); err != nil {
				return fmt.Errorf("failed to save: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "chart saved to %s (%dx%d)\n", output, pm.Width(), pm.Height())
			return nil
		},
	}
	cmd.Flags().StringVarP(&chartPath, "config", "c", "", "chart file (.toml, .yaml, .yml or .json); the demo chart when empty")
	cmd.Flags().StringVarP(&output, "output", "o", "chart.png", "output file")
	cmd.Flags().DurationVar(&at, "at", 0, "render the frame at this time since reset instead of the settled chart")
	cmd.Flags().StringVar(&background, "background", "", "background color (#RGB or #RRGGBB); transparent when empty")
	return cmd
}

func framesCommand() *cobra.Command {
	var (
		chartPath  string
		outDir     string
		fps        int
		background string
	)
	cmd := &cobra.Command{
		Use:   "frames",
		Short: "Render the animation as numbered PNG frames",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if fps <= 0 {
				return fmt.Errorf("fps must be positive, got %d", fps)
			}
			chart, err := newChart(chartPath, donut.WithClock(func() time.Time { return epoch }))
			if err != nil {
				return err
			}
			defer chart.Close()

			if err := chart.LoadIcons(cmd.Context()); err != nil {
				donut.Logger().Warn("frames: some icons were not loaded", "err", err)
			}
			if err := os.MkdirAll(outDir, 0o755); err != nil {
				return err
			}

			n, err := writeFrames(cmd.Context(), chart, outDir, fps, background)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d frames saved to %s\n", n, outDir)
			return nil
		},
	}
	cmd.Flags().StringVarP(&chartPath, "config", "c", "", "chart file (.toml, .yaml, .yml or .json); the demo chart when empty")
	cmd.Flags().StringVarP(&outDir, "output", "o", "frames", "output directory")
	cmd.Flags().IntVar(&fps, "fps", 30, "frames per second of animation time")
	cmd.Flags().StringVar(&background, "background", "", "background color (#RGB or #RRGGBB); transparent when empty")
	return cmd
}

// writeFrames steps the chart at a fixed rate from its reset until the
// animation settles, saving every frame. It returns the number of frames
// written.
func writeFrames(ctx context.Context, chart *donut.Chart, dir string, fps int, background string) (int, error) {
	interval := time.Second / time.Duration(fps)
	for i := 0; i < maxFrames; i++ {
		if err := ctx.Err(); err != nil {
			return i, err
		}
		active := chart.Frame(epoch.Add(time.Duration(i) * interval))

		pm, err := flatten(chart.Pixmap(), background)
		if err != nil {
			return i, err
		}
		name := filepath.Join(dir, fmt.Sprintf("frame_%04d.png", i))
		if err := savePNG(pm, name); err != nil {
			return i, fmt.Errorf("failed to save: %w", err)
		}
		if !active {
			return i + 1, nil
		}
	}
	return maxFrames, nil
}

// flatten returns the chart raster over a solid background, or the raster
// itself when background is empty.
func flatten(src *gg.Pixmap, background string) (*gg.Pixmap, error) {
	if background == "" {
		return src, nil
	}
	c, err := donut.ParseColor(background)
	if err != nil {
		return nil, err
	}
	dst := gg.NewPixmap(src.Width(), src.Height())
	dst.Clear(c)
	blend.Composite(dst, src, dst.Bounds(), blend.ModeSourceOver, 1)
	return dst, nil
}

// savePNG encodes pm with straight alpha.
func savePNG(pm *gg.Pixmap, path string) error {
	img := blend.ToNRGBA(pm)

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
