package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gioui.org/app"
	"github.com/esimov/doodle"
	"github.com/esimov/doodle/utils"
)

const HelpBanner = `
┌┬┐┌─┐┌─┐┌┬┐┬  ┌─┐
 │││ ││ │ │││  ├┤
─┴┘└─┘└─┘─┴┘┴─┘└─┘

Drawing board with polygon clipped image compositing.
    Version: %s

`

// Version indicates the current build version.
var Version string

var (
	// Flags
	configFile = flag.String("config", "", "TOML configuration file")
	script     = flag.String("script", "", "YAML event script to replay (- for stdin)")
	output     = flag.String("out", "", "Export destination (- for stdout), defaults to the configured export name")
	primary    = flag.String("primary", "", "Primary image, file path or URL")
	secondary  = flag.String("secondary", "", "Secondary image shown inside the polygon, file path or URL")
	strokeCol  = flag.String("color", "", "Stroke color as hex string")
	blend      = flag.String("blend", "", "Blend mode of the secondary image (darken, lighten, multiply, screen, overlay)")
	gui        = flag.Bool("gui", false, "Open the interactive drawing board")
	watch      = flag.Bool("watch", true, "Reload the images when they change on disk (gui only)")
	verbose    = flag.Bool("v", false, "Verbose logging")
)

func main() {
	log.SetFlags(0)

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, HelpBanner, Version)
		flag.PrintDefaults()
	}
	flag.Parse()

	if *verbose {
		doodle.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	cfg := doodle.DefaultConfig()
	if *configFile != "" {
		var err error
		cfg, err = doodle.LoadConfig(*configFile)
		if err != nil {
			fatal("Failed to load the configuration file:", err)
		}
	}
	if *blend != "" {
		cfg.Secondary.Blend = *blend
		if err := cfg.Validate(); err != nil {
			fatal("Invalid blend mode:", err)
		}
	}

	engine := doodle.NewEngine(cfg)
	if *strokeCol != "" {
		if err := engine.SetColorHex(*strokeCol); err != nil {
			fatal("Invalid stroke color:", err)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if *gui {
		runGUI(ctx, engine)
		return
	}

	if *script == "" && *primary == "" && *secondary == "" {
		flag.Usage()
		log.Fatal(fmt.Sprintf("%s%s",
			utils.DecorateText("\nPlease provide an event script or an image to export!", utils.ErrorMessage),
			utils.DefaultColor,
		))
	}

	spinner := utils.NewSpinner(utils.Banner("is rendering the canvas...", utils.DefaultMessage), time.Millisecond*100, true)

	err := engine.Execute(ctx, &doodle.Ops{
		Script:    *script,
		Out:       *output,
		Primary:   *primary,
		Secondary: *secondary,
		Spinner:   spinner,
	})
	if err != nil {
		fatal("Error exporting the canvas:", err)
	}
}

// runGUI opens the drawing board. The Gio event loop has to own the main goroutine.
func runGUI(ctx context.Context, engine *doodle.Engine) {
	loader := doodle.NewImageLoader(ctx, engine)

	for _, img := range []struct {
		slot doodle.Slot
		src  string
	}{
		{doodle.Primary, *primary},
		{doodle.Secondary, *secondary},
	} {
		if img.src == "" {
			continue
		}
		if *watch {
			go func() {
				if err := loader.Watch(img.slot, img.src); err != nil {
					log.Println(utils.DecorateText(fmt.Sprintf("Failed to load the %s image: %v", img.slot, err), utils.ErrorMessage))
				}
			}()
		} else {
			loader.LoadAsync(img.slot, img.src)
		}
	}

	go func() {
		err := doodle.NewGUI(engine, loader).Run(ctx)
		loader.Close()
		if err != nil {
			fatal("The drawing board closed unexpectedly:", err)
		}
		os.Exit(0)
	}()
	app.Main()
}

func fatal(msg string, err error) {
	log.Fatalf("%s %s",
		utils.DecorateText(msg, utils.ErrorMessage),
		utils.DecorateText(err.Error(), utils.DefaultMessage),
	)
}
