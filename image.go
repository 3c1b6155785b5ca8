package doodle

import (
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/disintegration/imaging"
	"github.com/esimov/doodle/utils"
	"github.com/fsnotify/fsnotify"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

// reloadDelay debounces the reloads triggered by a burst of file writes.
const reloadDelay = 100 * time.Millisecond

// DecodeImage decodes an image, applying the EXIF orientation of JPEG files.
func DecodeImage(r io.Reader) (image.Image, error) {
	img, err := imaging.Decode(r, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", utils.ErrNotImage, err)
	}
	return img, nil
}

// LoadImage decodes the image found at src, which is either a local path or an http(s) URL.
func LoadImage(ctx context.Context, src string) (image.Image, error) {
	if utils.IsValidUrl(src) {
		f, err := utils.DownloadImage(ctx, src)
		if err != nil {
			return nil, fmt.Errorf("download image: %w", err)
		}
		defer func() {
			f.Close()
			os.Remove(f.Name())
		}()
		return DecodeImage(f)
	}

	ctype, err := utils.DetectContentType(src)
	if err != nil {
		return nil, err
	}
	if !strings.Contains(ctype, "image") {
		return nil, fmt.Errorf("%w: %s has content type %s", utils.ErrNotImage, src, ctype)
	}

	f, err := os.Open(src)
	if err != nil {
		return nil, fmt.Errorf("open image: %w", err)
	}
	defer f.Close()

	return DecodeImage(f)
}

// ImageLoader decodes images off the event loop and hands them over to
// the engine once they are ready. Local files are watched and decoded
// again when they change on disk.
type ImageLoader struct {
	engine *Engine

	mu      sync.Mutex
	onLoad  func(Slot)
	sources map[string]Slot
	watcher *fsnotify.Watcher
	errs    chan error
	wg      sync.WaitGroup

	ctx    context.Context
	cancel context.CancelFunc
}

// NewImageLoader creates an image loader feeding e.
func NewImageLoader(ctx context.Context, e *Engine) *ImageLoader {
	ctx, cancel := context.WithCancel(ctx)
	return &ImageLoader{
		engine:  e,
		sources: make(map[string]Slot),
		errs:    make(chan error, 10),
		ctx:     ctx,
		cancel:  cancel,
	}
}

// Errors returns the channel on which the asynchronous load failures are reported.
func (l *ImageLoader) Errors() <-chan error {
	return l.errs
}

// Load decodes src and installs it in the given slot. On failure the slot
// keeps its previous image.
func (l *ImageLoader) Load(slot Slot, src string) error {
	img, err := LoadImage(l.ctx, src)
	if err != nil {
		Logger().Warn("image load failed", "slot", slot, "src", src, "err", err)
		return err
	}
	l.engine.SetImage(slot, img)

	l.mu.Lock()
	fn := l.onLoad
	l.mu.Unlock()
	if fn != nil {
		fn(slot)
	}
	return nil
}

// OnLoad registers a function called after each image installed in the engine.
func (l *ImageLoader) OnLoad(fn func(Slot)) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.onLoad = fn
}

// LoadAsync runs Load in a new goroutine. Errors are sent to the Errors channel.
func (l *ImageLoader) LoadAsync(slot Slot, src string) {
	l.wg.Add(1)
	go func() {
		defer l.wg.Done()
		if err := l.Load(slot, src); err != nil {
			l.report(err)
		}
	}()
}

// Watch loads src into slot, then reloads it each time the file is written.
func (l *ImageLoader) Watch(slot Slot, src string) error {
	if utils.IsValidUrl(src) {
		return l.Load(slot, src)
	}
	path, err := filepath.Abs(src)
	if err != nil {
		return err
	}
	if err := l.Load(slot, path); err != nil {
		return err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if l.watcher == nil {
		w, err := fsnotify.NewWatcher()
		if err != nil {
			return fmt.Errorf("create watcher: %w", err)
		}
		l.watcher = w
		l.wg.Add(1)
		go l.watchLoop(w)
	}
	// Watch the directory, since editors often replace the file on save.
	if err := l.watcher.Add(filepath.Dir(path)); err != nil {
		return fmt.Errorf("watch %s: %w", path, err)
	}
	l.sources[path] = slot

	return nil
}

func (l *ImageLoader) watchLoop(w *fsnotify.Watcher) {
	defer l.wg.Done()

	timers := make(map[string]*time.Timer)
	defer func() {
		for _, t := range timers {
			t.Stop()
		}
	}()

	for {
		select {
		case <-l.ctx.Done():
			return

		case event, ok := <-w.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			path := filepath.Clean(event.Name)

			l.mu.Lock()
			slot, found := l.sources[path]
			l.mu.Unlock()
			if !found {
				continue
			}

			if t, ok := timers[path]; ok {
				t.Stop()
			}
			timers[path] = time.AfterFunc(reloadDelay, func() {
				if l.ctx.Err() != nil {
					return
				}
				if err := l.Load(slot, path); err != nil {
					l.report(fmt.Errorf("reload %s: %w", path, err))
				}
			})

		case err, ok := <-w.Errors:
			if !ok {
				return
			}
			l.report(err)
		}
	}
}

func (l *ImageLoader) report(err error) {
	if errors.Is(err, context.Canceled) {
		return
	}
	select {
	case l.errs <- err:
	default:
	}
}

// Close stops the watcher and waits for the pending loads.
func (l *ImageLoader) Close() error {
	l.cancel()

	l.mu.Lock()
	w := l.watcher
	l.mu.Unlock()

	var err error
	if w != nil {
		err = w.Close()
	}
	l.wg.Wait()

	return err
}
