package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/esimov/folco"
	"github.com/esimov/folco/install"
	"github.com/esimov/folco/render"
)

// customizeFlags holds the options of the customize command.
type customizeFlags struct {
	profile         string
	profileFile     string
	color           string
	decal           string
	decalScale      float64
	overlay         string
	overlayPosition string
	overlayScale    float64
	workers         int
	size            int
}

// profileFlags are the options describing a profile piece by piece. They
// cannot be combined with a profile document.
var profileFlags = []string{"color", "decal", "decal-scale", "overlay", "overlay-position", "overlay-scale"}

func customizeCmd(a *app) *cobra.Command {
	var f customizeFlags

	cmd := &cobra.Command{
		Use:   "customize DIR...",
		Short: "Render a folder icon and install it on the given directories",
		Example: `  folco customize ~/Music --color red --overlay "musical note"
  folco customize ~/Work --decal ./briefcase.svg --decal-scale 0.5
  folco customize ~/Projects --profile-file profile.json`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := f.buildProfile(cmd)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("workers") {
				f.workers = a.cfg.Workers
			}
			if !cmd.Flags().Changed("size") {
				f.size = a.cfg.IconSize
			}

			c := a.customizer(f.workers, f.size)
			return a.runBatch(cmd.Context(), func(ctx context.Context, events chan<- folco.Progress) folco.Result {
				return c.Customize(ctx, args, p, events)
			})
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&f.profile, "profile", "", "profile as a JSON document")
	flags.StringVar(&f.profileFile, "profile-file", "", "file holding the profile JSON document")
	flags.StringVar(&f.color, "color", "", "named folder colour (see folco colors)")
	flags.StringVar(&f.decal, "decal", "", "svg markup or svg file drawn on the folder")
	flags.Float64Var(&f.decalScale, "decal-scale", 0.70, "decal size relative to the folder body, in (0, 1]")
	flags.StringVar(&f.overlay, "overlay", "", "svg markup, svg file, emoji or emoji name drawn at a corner")
	flags.StringVar(&f.overlayPosition, "overlay-position", folco.DefaultOverlayPosition.String(), "overlay anchor: bottom-left, bottom-right, top-left, top-right or center")
	flags.Float64Var(&f.overlayScale, "overlay-scale", 0.70, "overlay size relative to half of the icon, in (0, 1]")
	flags.IntVar(&f.workers, "workers", 0, "directories processed concurrently (default number of CPUs)")
	flags.IntVar(&f.size, "size", render.DefaultSize, "icon size in pixels")
	cmd.MarkFlagsMutuallyExclusive("profile", "profile-file")
	return cmd
}

// buildProfile returns the profile described by the flags: either a JSON
// document or the individual options.
func (f *customizeFlags) buildProfile(cmd *cobra.Command) (folco.Profile, error) {
	doc := f.profile
	if f.profileFile != "" {
		data, err := os.ReadFile(f.profileFile)
		if err != nil {
			return folco.Profile{}, fmt.Errorf("read profile: %w", err)
		}
		doc = string(data)
	}
	if doc != "" || cmd.Flags().Changed("profile") {
		for _, name := range profileFlags {
			if cmd.Flags().Changed(name) {
				return folco.Profile{}, fmt.Errorf("--%s cannot be combined with a profile document", name)
			}
		}
		return folco.ProfileFromJSON(doc)
	}

	p := folco.NewProfile()
	if f.color != "" {
		c, err := folco.ParseFolderColor(f.color)
		if err != nil {
			return folco.Profile{}, err
		}
		p = p.WithHSLMutation(c.HSLMutation())
	}
	if f.decal != "" {
		src, err := folco.ResolveDecalSource(f.decal)
		if err != nil {
			return folco.Profile{}, err
		}
		d, err := folco.NewDecalSettings(src, f.decalScale)
		if err != nil {
			return folco.Profile{}, fmt.Errorf("decal: %w", err)
		}
		p = p.WithDecal(d)
	}
	if f.overlay != "" {
		src, err := folco.ResolveOverlaySource(f.overlay)
		if err != nil {
			return folco.Profile{}, err
		}
		pos, err := folco.ParsePosition(f.overlayPosition)
		if err != nil {
			return folco.Profile{}, err
		}
		o, err := folco.NewOverlaySettings(src, pos, f.overlayScale)
		if err != nil {
			return folco.Profile{}, fmt.Errorf("overlay: %w", err)
		}
		p = p.WithOverlay(o)
	}
	return p, nil
}

// customizer wires the default renderer and the platform installer.
func (a *app) customizer(workers, size int) *folco.Customizer {
	emoji := &render.Twemoji{
		BaseURL:  a.cfg.EmojiBaseURL,
		CacheDir: a.cfg.TwemojiCacheDir(),
		Logger:   a.log,
	}
	return &folco.Customizer{
		Renderer: render.New(
			render.WithSize(size),
			render.WithEmojiSource(emoji),
			render.WithLogger(a.log),
		),
		Installer: install.New(a.log),
		Workers:   workers,
		Capacity:  a.cfg.ProgressCapacity,
		Logger:    a.log,
	}
}

// runBatch runs a batch while a second goroutine drains its progress
// stream. It returns once every event has been reported.
func (a *app) runBatch(ctx context.Context, batch func(context.Context, chan<- folco.Progress) folco.Result) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	rep := newReporter(a, a.stderr)
	defer rep.close()

	events := folco.NewProgressChannel(a.cfg.ProgressCapacity)
	drained := make(chan folco.Result, 1)
	go func() {
		drained <- folco.Drain(events, rep.handle)
	}()

	res := batch(ctx, events)
	<-drained

	if res.Err != nil || res.Failed > 0 {
		return errBatchFailed
	}
	return nil
}
