package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"taskpilot/internal/config"
	"taskpilot/internal/gateway"
	"taskpilot/internal/intake"
	"taskpilot/internal/render"
	"taskpilot/internal/scoring"
	"taskpilot/internal/session"
	"taskpilot/internal/task"
)

var (
	errStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
	promptStyle = lipgloss.NewStyle().Faint(true)
)

// repl is the interactive session: one in-memory task collection living for
// the life of the process. Remote calls run in the background; responses for
// superseded requests are dropped by the session's exchange sequencing.
type repl struct {
	ctx  context.Context
	cfg  *config.Config
	log  *zap.Logger
	in   *bufio.Scanner
	out  io.Writer
	sess *session.Session
	pipe *intake.Pipeline
	gw   *gateway.Client

	pending sync.WaitGroup
}

func newREPL(ctx context.Context, cfg *config.Config, log *zap.Logger, in io.Reader, out io.Writer) *repl {
	sess := session.New()
	return &repl{
		ctx:  ctx,
		cfg:  cfg,
		log:  log,
		in:   bufio.NewScanner(in),
		out:  out,
		sess: sess,
		pipe: intake.New(sess, log),
		gw:   gateway.New(cfg.APIBase, log),
	}
}

func (r *repl) run() {
	fmt.Fprintln(r.out, "taskpilot interactive session. Type 'help' for commands.")
	for {
		fmt.Fprint(r.out, promptStyle.Render("> "))
		if !r.in.Scan() {
			break
		}
		line := strings.TrimSpace(r.in.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		cmd, args := fields[0], fields[1:]

		switch cmd {
		case "add":
			r.add()
		case "bulk":
			r.bulk()
		case "list":
			fmt.Fprint(r.out, render.Tasks(r.sess.Tasks()))
		case "analyze":
			strategy := r.cfg.Strategy
			if len(args) > 0 {
				strategy = args[0]
			}
			r.analyze(strategy)
		case "suggest":
			r.suggest()
		case "strategies":
			fmt.Fprintf(r.out, "known strategies: %s\n", strings.Join(scoring.StrategyNames(), ", "))
			fmt.Fprintln(r.out, "any other identifier is passed through to the service unvalidated")
		case "help":
			r.help()
		case "quit", "exit":
			r.pending.Wait()
			return
		default:
			fmt.Fprintf(r.out, "unknown command %q, type 'help'\n", cmd)
		}
	}
	r.pending.Wait()
}

func (r *repl) help() {
	fmt.Fprint(r.out, `commands:
  add                 add one task (prompts for each field)
  bulk                paste a JSON array of tasks, finish with a line containing only "."
  list                show the current task collection
  analyze [strategy]  score all tasks remotely
  suggest             fetch the suggested top tasks for today
  strategies          list known strategy identifiers
  quit                leave
`)
}

func (r *repl) readField(label string) string {
	fmt.Fprint(r.out, label+": ")
	if !r.in.Scan() {
		return ""
	}
	return r.in.Text()
}

func (r *repl) add() {
	form := intake.Form{
		Title:        r.readField("Title"),
		DueDate:      r.readField("Due date (e.g. 2030-05-01T10:30)"),
		Hours:        r.readField("Estimated hours"),
		Importance:   r.readField("Importance (1-10)"),
		Dependencies: r.readField("Dependencies (comma-separated ids, optional)"),
	}

	r.sess.ClearError()
	t, err := r.pipe.AddSingle(form)
	if err != nil {
		r.sess.SetError(err)
		r.printError(err)
		return
	}
	fmt.Fprintf(r.out, "added task %d\n", t.ID)
	fmt.Fprint(r.out, render.Tasks(r.sess.Tasks()))
}

func (r *repl) bulk() {
	fmt.Fprintln(r.out, `paste a JSON array of tasks, finish with a line containing only "."`)
	var lines []string
	for r.in.Scan() {
		line := r.in.Text()
		if strings.TrimSpace(line) == "." {
			break
		}
		lines = append(lines, line)
	}

	r.sess.ClearError()
	n, err := r.pipe.AddBulk(strings.Join(lines, "\n"))
	if err != nil {
		r.sess.SetError(err)
		r.printError(err)
		return
	}
	fmt.Fprintf(r.out, "added %d tasks\n", n)
	fmt.Fprint(r.out, render.Tasks(r.sess.Tasks()))
}

func (r *repl) analyze(strategy string) {
	r.exchange("Analyzing...", "Analyzed with strategy: "+strategy,
		func(ctx context.Context, tasks []task.Task) ([]task.Result, error) {
			return r.gw.Analyze(ctx, strategy, tasks)
		})
}

func (r *repl) suggest() {
	r.exchange("Fetching suggestions...", "Suggested top tasks for today (with explanations).",
		r.gw.Suggest)
}

// exchange runs one remote operation in the background. The collection is
// snapshotted up front; only the latest issued exchange may publish.
func (r *repl) exchange(progress, heading string, call func(context.Context, []task.Task) ([]task.Result, error)) {
	r.sess.ClearError()
	tasks := r.sess.Tasks()
	seq := r.sess.BeginExchange()
	fmt.Fprintln(r.out, progress)

	r.pending.Add(1)
	go func() {
		defer r.pending.Done()
		results, err := call(r.ctx, tasks)
		if !r.sess.CompleteExchange(seq, heading, results, err) {
			r.log.Debug("dropped stale response", zap.Uint64("seq", seq))
			return
		}
		if err != nil {
			r.printError(err)
			return
		}
		published, h := r.sess.Results()
		fmt.Fprint(r.out, render.Results(render.Normalize(h, published)))
	}()
}

func (r *repl) printError(err error) {
	fmt.Fprintln(r.out, errStyle.Render("error: "+err.Error()))
}
