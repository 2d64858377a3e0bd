package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/milk9111/fpsarena/arena"
	"github.com/milk9111/fpsarena/logger"
	"github.com/milk9111/fpsarena/prefabs"
	"github.com/milk9111/fpsarena/replay"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

type options struct {
	arena   string
	ticks   int
	tps     int
	pilot   string
	record  string
	summary bool
	watch   bool
	seed    int64
	inspect string
}

func main() {
	var opts options
	flag.StringVar(&opts.arena, "arena", "training", "arena name in prefabs/arenas/ (basename, .yaml optional)")
	flag.IntVar(&opts.ticks, "ticks", 600, "number of ticks to simulate (0 runs until interrupted with -watch)")
	flag.IntVar(&opts.tps, "tps", 0, "ticks per second (0 uses the arena's tick_rate)")
	flag.StringVar(&opts.pilot, "pilot", "", "pilot script in prefabs/scripts/ to drive the player")
	flag.StringVar(&opts.record, "record", "", "write a msgpack replay to this path")
	flag.BoolVar(&opts.summary, "summary", false, "print a match summary when done")
	flag.BoolVar(&opts.watch, "watch", false, "run in real time and rebuild the match when prefabs change")
	flag.Int64Var(&opts.seed, "seed", 0, "seed for a reproducible match id")
	flag.StringVar(&opts.inspect, "inspect", "", "summarize an existing replay and exit")
	flag.Parse()

	logger.Init()

	if opts.ticks < 0 {
		fmt.Fprintln(os.Stderr, "arena: -ticks must not be negative")
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var err error
	if opts.inspect != "" {
		err = inspect(opts.inspect, os.Stdout)
	} else {
		err = run(ctx, opts)
	}
	if err != nil && !errors.Is(err, context.Canceled) {
		logger.Log.WithError(err).Error("arena failed")
		os.Exit(1)
	}
}

func run(ctx context.Context, opts options) error {
	game, err := newGame(opts)
	if err != nil {
		return err
	}

	var rec *recording
	if opts.record != "" {
		rec = &recording{path: opts.record, seed: opts.seed}
		if err := rec.open(game); err != nil {
			return err
		}
	}

	games := []*arena.Game{game}
	if opts.watch {
		games, err = watch(ctx, opts, game, rec)
	} else {
		err = game.Run(ctx, opts.ticks)
	}

	if rec != nil {
		if cerr := rec.close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	if opts.summary {
		if perr := printSummaries(os.Stdout, games); perr != nil && err == nil {
			err = perr
		}
	}
	return err
}

// recording writes one replay file per match. A rebuild under -watch starts
// a new segment next to the first file: match.rpl, match.1.rpl, match.2.rpl.
type recording struct {
	path    string
	seed    int64
	segment int
	out     *os.File
	writer  *replay.Writer
}

func segmentPath(path string, segment int) string {
	if segment == 0 {
		return path
	}
	ext := filepath.Ext(path)
	return fmt.Sprintf("%s.%d%s", strings.TrimSuffix(path, ext), segment, ext)
}

func (r *recording) open(game *arena.Game) error {
	path := segmentPath(r.path, r.segment)
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create replay: %w", err)
	}
	w, err := replay.NewWriter(out, game.Header(r.seed))
	if err != nil {
		out.Close()
		return err
	}
	r.out, r.writer = out, w
	game.SetRecorder(w)
	return nil
}

// rotate closes the current segment and records next into a new one.
func (r *recording) rotate(next *arena.Game) error {
	if err := r.close(); err != nil {
		return err
	}
	r.segment++
	return r.open(next)
}

func (r *recording) close() error {
	if r.out == nil {
		return nil
	}
	err := r.writer.Flush()
	if cerr := r.out.Close(); cerr != nil && err == nil {
		err = cerr
	}
	logger.Log.WithFields(logrus.Fields{
		"frames": r.writer.Frames(),
		"path":   segmentPath(r.path, r.segment),
	}).Info("replay written")
	r.out, r.writer = nil, nil
	return err
}

func newGame(opts options) (*arena.Game, error) {
	spec, err := prefabs.LoadArenaSpec(opts.arena)
	if err != nil {
		return nil, err
	}
	if opts.pilot != "" {
		spec.Player.Pilot = opts.pilot
	}
	return arena.NewGame(spec, arena.Options{TickRate: opts.tps, Seed: opts.seed})
}

// watch runs the match in real time. A changed prefab, arena or script
// rebuilds the match in place; a rebuild that fails keeps the old one. Every
// match played is returned in order.
func watch(ctx context.Context, opts options, game *arena.Game, rec *recording) ([]*arena.Game, error) {
	games := []*arena.Game{game}

	dirs := []string{}
	if info, err := os.Stat(prefabs.Dir); err == nil && info.IsDir() {
		dirs = append(dirs, prefabs.Dir)
	}

	var events <-chan string
	var errs <-chan error
	if len(dirs) > 0 {
		watcher, err := prefabs.NewWatcher(dirs...)
		if err != nil {
			return games, fmt.Errorf("watch prefabs: %w", err)
		}
		defer watcher.Close()
		events = watcher.Events
		errs = watcher.Errors
		logger.Log.WithField("dir", prefabs.Dir).Info("watching for prefab changes")
	} else {
		logger.Log.WithField("dir", prefabs.Dir).Warn("prefab directory not found; hot reload disabled")
	}

	ticker := time.NewTicker(time.Duration(float64(time.Second) * game.TickDuration()))
	defer ticker.Stop()

	ran := 0
	for opts.ticks == 0 || ran < opts.ticks {
		select {
		case <-ctx.Done():
			return games, ctx.Err()
		case name, ok := <-events:
			if !ok {
				events = nil
				continue
			}
			next, err := newGame(opts)
			if err != nil {
				logger.Log.WithError(err).WithField("file", filepath.Base(name)).Error("reload failed; keeping current match")
				continue
			}
			if rec != nil {
				if err := rec.rotate(next); err != nil {
					return games, err
				}
			}
			game = next
			games = append(games, game)
			ran = 0
			logger.Log.WithFields(logrus.Fields{
				"file":  filepath.Base(name),
				"match": game.MatchID,
			}).Info("match rebuilt")
		case err, ok := <-errs:
			if !ok {
				errs = nil
				continue
			}
			logger.Log.WithError(err).Warn("watch error")
		case <-ticker.C:
			if _, err := game.Step(); err != nil {
				return games, err
			}
			ran++
		}
	}
	return games, nil
}

func inspect(path string, out io.Writer) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open replay: %w", err)
	}
	defer f.Close()

	r, err := replay.NewReader(f)
	if err != nil {
		return err
	}
	s, err := replay.Summarize(r)
	if err != nil {
		return err
	}
	return printSummary(out, s)
}

// printSummaries writes one YAML document per match.
func printSummaries(out io.Writer, games []*arena.Game) error {
	for i, g := range games {
		if i > 0 {
			if _, err := fmt.Fprintln(out, "---"); err != nil {
				return err
			}
		}
		if err := printSummary(out, g.Summary()); err != nil {
			return err
		}
	}
	return nil
}

func printSummary(out io.Writer, s *replay.Summary) error {
	enc := yaml.NewEncoder(out)
	if err := enc.Encode(s); err != nil {
		return err
	}
	if err := enc.Close(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(out, "accuracy: %.2f\n", s.Accuracy())
	return err
}
