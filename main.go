package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/zeebo/clingy"
	"github.com/zeebo/errs/v2"

	"loov.dev/calltimeline/callgraph"
	"loov.dev/calltimeline/import/loader"
	"loov.dev/calltimeline/plot"
	"loov.dev/calltimeline/toolserver"
	"loov.dev/calltimeline/trace"
)

var version = "devel"

func main() {
	ok, err := run(context.Background(), os.Args[1:], os.Stdout, os.Stderr)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
	}
	if !ok || err != nil {
		os.Exit(1)
	}
}

var commands = []string{"plot", "export", "dump", "serve", "demo"}

// ErrUsage marks arguments a command does not accept.
const ErrUsage = errs.Tag("usage")

func run(ctx context.Context, args []string, stdout, stderr io.Writer) (bool, error) {
	args = normalizeArgs(args)

	env := clingy.Environment{
		Name:   "calltimeline",
		Args:   args,
		Stdout: stdout,
		Stderr: stderr,
	}
	ok, err := env.Run(ctx, func(cmds clingy.Commands) {
		cmds.New("plot", "show the call graph of a trace in a window", new(cmdPlot))
		cmds.New("export", "render the call graph of a trace to a png or svg file", new(cmdExport))
		cmds.New("dump", "print the reconstructed call graph", new(cmdDump))
		cmds.New("serve", "serve trace reconstruction as MCP tools over stdio", new(cmdServe))
		cmds.New("demo", "write the call log of a traced banking workload", new(cmdDemo))
	})
	return ok && len(args) > 0, err
}

// normalizeArgs turns a single path argument into the plot command.
func normalizeArgs(args []string) []string {
	if len(args) == 1 && !isCommand(args[0]) && len(args[0]) > 0 && args[0][0] != '-' {
		return []string{"plot", args[0]}
	}
	if args == nil {
		return []string{}
	}
	return args
}

func isCommand(name string) bool {
	for _, cmd := range commands {
		if cmd == name {
			return true
		}
	}
	return false
}

func loadGraph(path string) (*trace.Log, *callgraph.Graph, error) {
	tracelog, _, err := loader.Load(path)
	if err != nil {
		return nil, nil, err
	}
	return tracelog, callgraph.Reconstruct(tracelog, trace.NewRegistry(tracelog)), nil
}

type cmdPlot struct {
	path string
}

func (cmd *cmdPlot) Setup(params clingy.Parameters) {
	cmd.path = params.Arg("log", "trace file to plot").(string)
	params.Arg("extra", "not accepted, plot shows a single trace",
		clingy.Repeated, clingy.Transform(rejectArgument))
}

// rejectArgument fails every value, so that surplus arguments print the usage.
func rejectArgument(arg string) (string, error) {
	return "", ErrUsage.Errorf("unexpected argument %q", arg)
}

func (cmd *cmdPlot) Execute(ctx clingy.Context) error {
	tracelog, graph, err := loadGraph(cmd.path)
	if err != nil {
		return err
	}
	return showWindow(NewUI(graph, caption(cmd.path, tracelog, graph)))
}

type cmdExport struct {
	path   string
	out    string
	width  int
	height int
	title  string
}

func (cmd *cmdExport) Setup(params clingy.Parameters) {
	cmd.width = params.Flag("width", "image width in pixels", plot.DefaultOptions.Width,
		clingy.Transform(strconv.Atoi)).(int)
	cmd.height = params.Flag("height", "image height in pixels", plot.DefaultOptions.Height,
		clingy.Transform(strconv.Atoi)).(int)
	cmd.title = params.Flag("title", "chart title", plot.DefaultOptions.Title).(string)

	cmd.path = params.Arg("log", "trace file to render").(string)
	cmd.out = params.Arg("out", "output file, .png or .svg").(string)
}

func (cmd *cmdExport) Execute(ctx clingy.Context) (err error) {
	format, err := plot.FormatFromPath(cmd.out)
	if err != nil {
		return err
	}
	if cmd.width <= 0 || cmd.height <= 0 {
		return errs.Errorf("invalid size %dx%d", cmd.width, cmd.height)
	}

	_, graph, err := loadGraph(cmd.path)
	if err != nil {
		return err
	}

	f, err := os.Create(cmd.out)
	if err != nil {
		return fmt.Errorf("failed to create %q: %w", cmd.out, err)
	}
	defer func() {
		if closeErr := f.Close(); err == nil && closeErr != nil {
			err = closeErr
		}
	}()

	err = plot.Render(f, graph, format, plot.Options{
		Title:  cmd.title,
		Width:  cmd.width,
		Height: cmd.height,
	})
	if err != nil {
		return fmt.Errorf("failed to render %q: %w", cmd.path, err)
	}

	fmt.Fprintf(ctx, "wrote %s\n", cmd.out)
	return nil
}

type cmdDump struct {
	path       string
	json       bool
	primitives bool
}

func (cmd *cmdDump) Setup(params clingy.Parameters) {
	cmd.json = params.Flag("json", "print as json", false,
		clingy.Transform(strconv.ParseBool), clingy.Boolean).(bool)
	cmd.primitives = params.Flag("primitives", "include the draw primitives", false,
		clingy.Transform(strconv.ParseBool), clingy.Boolean).(bool)

	cmd.path = params.Arg("log", "trace file to dump").(string)
}

type dumpPrimitive struct {
	Kind  string              `json:"kind"`
	Value callgraph.Primitive `json:"value"`
}

func kindOf(p callgraph.Primitive) string {
	switch p.(type) {
	case callgraph.Vertical:
		return "vertical"
	case callgraph.Horizontal:
		return "horizontal"
	case callgraph.Guide:
		return "guide"
	case callgraph.Label:
		return "label"
	}
	return "unknown"
}

func (cmd *cmdDump) Execute(ctx clingy.Context) error {
	tracelog, graph, err := loadGraph(cmd.path)
	if err != nil {
		return err
	}
	summary := graph.Summarize(tracelog.Skipped)

	if cmd.json {
		out := struct {
			Summary    callgraph.Summary `json:"summary"`
			Primitives []dumpPrimitive   `json:"primitives,omitempty"`
		}{Summary: summary}
		if cmd.primitives {
			for _, p := range graph.Primitives {
				out.Primitives = append(out.Primitives, dumpPrimitive{Kind: kindOf(p), Value: p})
			}
		}

		enc := json.NewEncoder(ctx.Stdout())
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	if _, err := summary.WriteTo(ctx.Stdout()); err != nil {
		return err
	}
	if cmd.primitives {
		fmt.Fprintln(ctx)
		for _, p := range graph.Primitives {
			fmt.Fprintln(ctx, p)
		}
	}
	return nil
}

type cmdServe struct{}

func (cmd *cmdServe) Setup(params clingy.Parameters) {}

func (cmd *cmdServe) Execute(ctx clingy.Context) error {
	return toolserver.Serve(version)
}
