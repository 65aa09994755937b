//go:build js && wasm

package main

import (
	"syscall/js"

	"github.com/inamate/sketchboard/internal/engine"
)

var eng *engine.Engine

func main() {
	eng = engine.NewEngine(engine.ToolLine)

	// Create the engine API object
	sketchboardEngine := js.Global().Get("Object").New()

	// --- Commands (frontend → backend) ---
	sketchboardEngine.Set("setTool", js.FuncOf(setTool))
	sketchboardEngine.Set("pointerDown", js.FuncOf(pointerDown))
	sketchboardEngine.Set("pointerMove", js.FuncOf(pointerMove))
	sketchboardEngine.Set("pointerUp", js.FuncOf(pointerUp))
	sketchboardEngine.Set("loadSampleBoard", js.FuncOf(loadSampleBoard))

	// --- Queries (frontend ← backend) ---
	sketchboardEngine.Set("render", js.FuncOf(render))
	sketchboardEngine.Set("hitTest", js.FuncOf(hitTest))
	sketchboardEngine.Set("getShapes", js.FuncOf(getShapes))
	sketchboardEngine.Set("getSession", js.FuncOf(getSession))
	sketchboardEngine.Set("getTool", js.FuncOf(getTool))
	sketchboardEngine.Set("getFrameCount", js.FuncOf(getFrameCount))

	// Register on global scope
	js.Global().Set("sketchboardEngine", sketchboardEngine)

	// Signal that WASM is ready
	js.Global().Set("sketchboardWasmReady", js.ValueOf(true))

	// Keep Go runtime alive
	select {}
}

func errorResult(err error) interface{} {
	return js.ValueOf(map[string]interface{}{"error": err.Error()})
}

func outcomeResult(out engine.Outcome) interface{} {
	return js.ValueOf(map[string]interface{}{
		"ok":      true,
		"mutated": out.Mutated,
		"hover":   out.Hover,
	})
}

// --- Command Handlers ---

func setTool(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return js.ValueOf(map[string]interface{}{"error": "missing tool"})
	}
	if err := eng.SetTool(args[0].String()); err != nil {
		return errorResult(err)
	}
	return js.ValueOf(map[string]interface{}{"ok": true})
}

func pointerDown(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return js.ValueOf(map[string]interface{}{"error": "missing coordinates"})
	}
	out, err := eng.PointerDown(args[0].Float(), args[1].Float())
	if err != nil {
		return errorResult(err)
	}
	return outcomeResult(out)
}

func pointerMove(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return js.ValueOf(map[string]interface{}{"error": "missing coordinates"})
	}
	out, err := eng.PointerMove(args[0].Float(), args[1].Float())
	if err != nil {
		return errorResult(err)
	}
	return outcomeResult(out)
}

func pointerUp(this js.Value, args []js.Value) interface{} {
	return outcomeResult(eng.PointerUp())
}

func loadSampleBoard(this js.Value, args []js.Value) interface{} {
	if err := eng.LoadSampleBoard(); err != nil {
		return errorResult(err)
	}
	return js.ValueOf(map[string]interface{}{"ok": true})
}

// --- Query Handlers ---

func render(this js.Value, args []js.Value) interface{} {
	return js.ValueOf(eng.Render())
}

func hitTest(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return js.ValueOf("")
	}
	x := args[0].Float()
	y := args[1].Float()
	return js.ValueOf(eng.HitTest(x, y))
}

func getShapes(this js.Value, args []js.Value) interface{} {
	return js.ValueOf(eng.GetShapes())
}

func getSession(this js.Value, args []js.Value) interface{} {
	return js.ValueOf(eng.GetSession())
}

func getTool(this js.Value, args []js.Value) interface{} {
	return js.ValueOf(eng.GetTool())
}

func getFrameCount(this js.Value, args []js.Value) interface{} {
	// js.ValueOf has no int64 case.
	return js.ValueOf(float64(eng.GetFrameCount()))
}
