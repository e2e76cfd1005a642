package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"gioui.org/app"
	"gioui.org/font/gofont"
	"gioui.org/io/key"
	"gioui.org/io/system"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/unit"
	"gioui.org/widget/material"

	"loov.dev/calltimeline/callgraph"
	"loov.dev/calltimeline/trace"
	"loov.dev/calltimeline/tui"
)

// showWindow runs ui in a new window. It does not return, the process exits
// when the window is closed.
func showWindow(ui *UI) error {
	go func() {
		w := app.NewWindow(
			app.Title("Function Call Graph"),
			app.Size(unit.Dp(1200), unit.Dp(600)),
		)
		if err := ui.Run(w); err != nil {
			log.Println(err)
			os.Exit(1)
		}
		os.Exit(0)
	}()

	app.Main()
	return nil
}

func caption(path string, tracelog *trace.Log, graph *callgraph.Graph) string {
	return fmt.Sprintf("%s: %d events, max depth %d, %d skipped lines, %d unbalanced exits, %d dangling enters",
		filepath.Base(path), len(graph.Events), graph.MaxDepth,
		tracelog.Skipped, graph.Unbalanced, graph.Dangling)
}

type UI struct {
	Theme   *material.Theme
	Graph   *callgraph.Graph
	Caption string
}

func NewUI(graph *callgraph.Graph, caption string) *UI {
	return &UI{
		Theme:   material.NewTheme(gofont.Collection()),
		Graph:   graph,
		Caption: caption,
	}
}

func (ui *UI) Run(w *app.Window) error {
	var ops op.Ops

	for e := range w.Events() {
		switch e := e.(type) {
		case system.FrameEvent:
			gtx := layout.NewContext(&ops, e)
			ui.Layout(gtx)
			e.Frame(gtx.Ops)

		case key.Event:
			switch e.Name {
			case key.NameEscape:
				return nil
			}

		case system.DestroyEvent:
			return e.Err
		}
	}

	return nil
}

func (ui *UI) Layout(gtx layout.Context) layout.Dimensions {
	return layout.UniformInset(tui.Large).Layout(gtx, func(gtx layout.Context) layout.Dimensions {
		return tui.Panel(ui.Theme, ui.Caption).Layout(gtx, tui.Graph(ui.Theme, ui.Graph).Layout)
	})
}
