package cli

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/Meshed/PondDiggingCalculator-sub003/internal/config"
	"github.com/Meshed/PondDiggingCalculator-sub003/internal/service"
)

type WatchOptions struct {
	GlobalOptions

	File     string
	Debounce time.Duration
	Output   string

	out    io.Writer
	errOut io.Writer
	mu     sync.Mutex
}

func DefaultWatchOptions() *WatchOptions {
	return &WatchOptions{
		GlobalOptions: DefaultGlobalOptions(),
	}
}

func NewCmdWatch() *cobra.Command {
	o := DefaultWatchOptions()
	cmd := &cobra.Command{
		Use:   "watch -f FILE",
		Short: "Re-estimate a project file every time it is saved.",
		Long: `Watch a YAML or JSON project file and print a fresh estimate after each pause in editing.
When the file becomes invalid the previous estimate is kept and marked stale.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := o.Complete(cmd, args); err != nil {
				return err
			}
			if err := o.Validate(args); err != nil {
				return err
			}
			return o.Run(cmd.Context(), args)
		},
		SilenceUsage: true,
	}
	o.Bind(cmd.Flags())
	return cmd
}

func (o *WatchOptions) Bind(fs *pflag.FlagSet) {
	o.GlobalOptions.Bind(fs)

	fs.StringVarP(&o.File, "file", "f", o.File, "YAML or JSON project file to watch")
	fs.DurationVar(&o.Debounce, "debounce", o.Debounce, "Quiet period before re-estimating (env: POND_CALC_DEBOUNCE_WINDOW)")
	fs.StringVarP(&o.Output, "output", "o", o.Output, fmt.Sprintf("Output format. One of: (%s).", strings.Join(legalOutputTypes, ", ")))
}

func (o *WatchOptions) Complete(cmd *cobra.Command, args []string) error {
	if err := o.GlobalOptions.Complete(cmd, args); err != nil {
		return err
	}
	if o.Debounce == 0 {
		cfg, err := config.New()
		if err != nil {
			return err
		}
		o.Debounce = cfg.Estimation.DebounceWindow
	}
	if o.File == "" {
		return fmt.Errorf("--file is required")
	}
	abs, err := filepath.Abs(o.File)
	if err != nil {
		return err
	}
	o.File = abs
	o.out = cmd.OutOrStdout()
	o.errOut = cmd.ErrOrStderr()
	return nil
}

func (o *WatchOptions) Validate(args []string) error {
	if err := o.GlobalOptions.Validate(args); err != nil {
		return err
	}
	if o.Debounce < 0 {
		return fmt.Errorf("debounce must not be negative")
	}
	return validateOutput(o.Output)
}

func (o *WatchOptions) Run(ctx context.Context, args []string) error {
	session := service.NewSession(o.Service(), o.Debounce, service.WithOnUpdate(o.render))
	defer session.Close()

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating file watcher: %w", err)
	}
	defer watcher.Close()

	// editors often replace the file, so watch the directory
	if err := watcher.Add(filepath.Dir(o.File)); err != nil {
		return fmt.Errorf("watching %q: %w", filepath.Dir(o.File), err)
	}

	if req, err := readRequest(o.File); err != nil {
		session.Reject(ctx, err)
	} else {
		session.Evaluate(ctx, *req)
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != o.File || !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			req, err := readRequest(o.File)
			if err != nil {
				session.Reject(ctx, err)
				continue
			}
			session.Submit(ctx, *req)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			zap.S().Named("watch").Warnw("file watcher error", "error", err)
		}
	}
}

func (o *WatchOptions) render(v service.View) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.Output != "" {
		if err := printStructured(o.out, v, o.Output); err != nil {
			zap.S().Named("watch").Errorw("printing view", "error", err)
		}
		return
	}

	header := fmt.Sprintf("=== revision %d", v.Revision)
	if v.Stale {
		header += " (stale: showing the last valid estimate)"
	}
	fmt.Fprintln(o.out, header)

	if v.Result != nil {
		printOutcome(o.out, &service.Outcome{Result: *v.Result, Breakdown: v.Breakdown, PondVolume: v.PondVolume})
	}
	switch {
	case v.CalculationUnavailable:
		fmt.Fprintf(o.errOut, "calculation unavailable: %s\n", v.Message)
	case len(v.Errors) > 0:
		printIssues(o.errOut, v.Errors)
	case v.Message != "":
		fmt.Fprintln(o.errOut, v.Message)
	}
	fmt.Fprintln(o.out)
}
