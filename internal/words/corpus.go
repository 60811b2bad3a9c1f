// internal/words/corpus.go
//
// Corpus holds the dictionary handed to new sessions and can replace it when
// the backing word list changes on disk. Sessions keep the *Dictionary they
// were created with, so a reload never changes an in-flight game.
package words

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog/log"
)

// reloadDelay coalesces the burst of events editors emit for one save.
const reloadDelay = 250 * time.Millisecond

// Corpus is a swappable reference to the current Dictionary.
type Corpus struct {
	source string
	cur    atomic.Pointer[Dictionary]
}

// NewCorpus wraps d. source is the pattern d was loaded from; it may be
// empty for corpora that cannot be reloaded (embedded lists).
func NewCorpus(d *Dictionary, source string) *Corpus {
	c := &Corpus{source: source}
	c.cur.Store(d)
	return c
}

// Current returns the dictionary new sessions should use.
func (c *Corpus) Current() *Dictionary { return c.cur.Load() }

// Source returns the pattern the corpus was loaded from.
func (c *Corpus) Source() string { return c.source }

// Reload re-reads the source. On failure the current dictionary is kept.
func (c *Corpus) Reload() error {
	if c.source == "" {
		return errors.New("words: corpus has no source to reload")
	}
	d, err := Load(c.source)
	if err != nil {
		return err
	}
	c.cur.Store(d)
	log.Info().Str("source", c.source).Int("words", d.Len()).Msg("corpus reloaded")
	return nil
}

// Watch reloads the corpus whenever its source file changes, until ctx is
// cancelled. The parent directory is watched so that atomic renames used by
// editors are seen too.
func (c *Corpus) Watch(ctx context.Context) error {
	st, err := os.Stat(c.source)
	if err != nil {
		return err
	}
	if st.IsDir() {
		return errors.New("words: watch source is a directory")
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	abs, err := filepath.Abs(c.source)
	if err != nil {
		fw.Close()
		return err
	}
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		fw.Close()
		return err
	}

	go c.watchLoop(ctx, fw, abs)
	return nil
}

func (c *Corpus) watchLoop(ctx context.Context, fw *fsnotify.Watcher, target string) {
	defer fw.Close()

	var (
		mu    sync.Mutex
		timer *time.Timer
	)
	schedule := func() {
		mu.Lock()
		defer mu.Unlock()
		if timer != nil {
			timer.Stop()
		}
		timer = time.AfterFunc(reloadDelay, func() {
			if err := c.Reload(); err != nil {
				log.Warn().Err(err).Str("source", c.source).Msg("corpus reload failed; keeping previous list")
			}
		})
	}

	for {
		select {
		case <-ctx.Done():
			mu.Lock()
			if timer != nil {
				timer.Stop()
			}
			mu.Unlock()
			return

		case ev, ok := <-fw.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != target {
				continue
			}
			if ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) || ev.Has(fsnotify.Rename) {
				log.Debug().Str("path", ev.Name).Str("op", ev.Op.String()).Msg("word list changed")
				schedule()
			}

		case err, ok := <-fw.Errors:
			if !ok {
				return
			}
			log.Warn().Err(err).Msg("word list watcher")
		}
	}
}
