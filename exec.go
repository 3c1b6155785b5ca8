package doodle

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/esimov/doodle/utils"
	"golang.org/x/term"
)

// pipeName is the file name that indicates stdin/stdout is being used.
const pipeName = "-"

// Ops holds the options of a headless run.
type Ops struct {
	// Script is the YAML event script, or the pipe name for stdin.
	Script string
	// Out is the export destination, or the pipe name for stdout.
	Out string
	// Primary and Secondary override the images named by the script.
	Primary, Secondary string
	// Spinner is the progress indicator. A nil spinner disables it.
	Spinner *utils.Spinner
}

// Execute replays the event script on e and exports the resulting canvas.
func (e *Engine) Execute(ctx context.Context, op *Ops) error {
	now := time.Now()

	successMsg := utils.Banner("⇢ the canvas has been exported successfully ✔", utils.SuccessMessage)
	errorMsg := utils.Banner("exporting the canvas failed... ✘", utils.ErrorMessage)

	if op.Spinner != nil {
		op.Spinner.Start()
		defer op.Spinner.Stop()
		op.Spinner.StopMsg = errorMsg
	}

	script, err := op.readScript()
	if err != nil {
		return err
	}

	loader := NewImageLoader(ctx, e)
	defer loader.Close()

	for _, img := range []struct {
		slot Slot
		src  string
	}{
		{Primary, firstNonEmpty(op.Primary, script.Primary)},
		{Secondary, firstNonEmpty(op.Secondary, script.Secondary)},
	} {
		if img.src == "" {
			continue
		}
		if err := loader.Load(img.slot, img.src); err != nil {
			return fmt.Errorf("load %s image: %w", img.slot, err)
		}
	}

	if err := script.Replay(ctx, e); err != nil {
		return fmt.Errorf("replay script: %w", err)
	}

	out := firstNonEmpty(op.Out, e.cfg.Export.Name)
	if out == pipeName && term.IsTerminal(int(os.Stdout.Fd())) {
		return errors.New("`-` should be used with a pipe for stdout")
	}

	// Capture CTRL-C, restore the cursor and drop the partially written file.
	signalChan := make(chan os.Signal, 1)
	signal.Notify(signalChan, os.Interrupt, syscall.SIGTERM)
	done := make(chan struct{})
	defer func() {
		signal.Stop(signalChan)
		close(done)
	}()
	go func() {
		select {
		case <-done:
			return
		case <-signalChan:
		}
		if op.Spinner != nil {
			op.Spinner.RestoreCursor()
		}
		if out != pipeName {
			os.Remove(out)
		}
		os.Exit(1)
	}()

	dc, err := NewRenderer().RenderScene(e.Scene())
	if err != nil {
		return fmt.Errorf("render canvas: %w", err)
	}
	defer dc.Close()

	if err := ExportFile(out, dc, e.cfg.Export.Quality); err != nil {
		if out != pipeName {
			os.Remove(out)
		}
		return err
	}

	if op.Spinner != nil {
		op.Spinner.StopMsg = successMsg
		op.Spinner.Stop()
	}
	if out != pipeName {
		fmt.Fprintf(os.Stderr, "\nThe canvas has been saved as: %s %s\n",
			utils.DecorateText(filepath.Base(out), utils.SuccessMessage),
			utils.DefaultColor,
		)
	}
	fmt.Fprintf(os.Stderr, "\nExecution time: %s\n",
		utils.DecorateText(utils.FormatTime(time.Since(now)), utils.SuccessMessage),
	)

	return nil
}

// readScript reads the event script from a file or from a pipe. An empty
// script name yields an empty script, which exports the images alone.
func (op *Ops) readScript() (*Script, error) {
	switch op.Script {
	case "":
		return &Script{}, nil
	case pipeName:
		if term.IsTerminal(int(os.Stdin.Fd())) {
			return nil, errors.New("`-` should be used with a pipe for stdin")
		}
		return ParseScript(os.Stdin)
	}
	return LoadScript(op.Script)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
