//go:build js && wasm

package main

import (
	"encoding/json"
	"syscall/js"

	"github.com/postcraft/postcraft/backend-go/internal/codegen"
	"github.com/postcraft/postcraft/backend-go/internal/codeparse"
	"github.com/postcraft/postcraft/backend-go/internal/engine"
	"github.com/postcraft/postcraft/backend-go/internal/scene"
)

var state *engine.State

func main() {
	state = engine.NewState(scene.DefaultCanvas("canvas_local"))

	postcraftEngine := js.Global().Get("Object").New()

	// --- Commands (frontend → backend) ---
	postcraftEngine.Set("apply", js.FuncOf(apply))
	postcraftEngine.Set("loadSnapshot", js.FuncOf(loadSnapshot))
	postcraftEngine.Set("loadSampleCanvas", js.FuncOf(loadSampleCanvas))
	postcraftEngine.Set("ingest", js.FuncOf(ingest))

	// --- Queries (frontend ← backend) ---
	postcraftEngine.Set("getState", js.FuncOf(getState))
	postcraftEngine.Set("getSelection", js.FuncOf(getSelection))
	postcraftEngine.Set("getSelectionBounds", js.FuncOf(getSelectionBounds))
	postcraftEngine.Set("synthesize", js.FuncOf(synthesize))
	postcraftEngine.Set("hitTest", js.FuncOf(hitTest))
	postcraftEngine.Set("getSnapshot", js.FuncOf(getSnapshot))

	// Register on global scope
	js.Global().Set("postcraftEngine", postcraftEngine)

	// Signal that WASM is ready
	js.Global().Set("postcraftWasmReady", js.ValueOf(true))

	// Keep Go runtime alive
	select {}
}

// --- Command Handlers ---

func apply(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return js.ValueOf(map[string]interface{}{"error": "missing command JSON"})
	}

	var cmd engine.Command
	if err := json.Unmarshal([]byte(args[0].String()), &cmd); err != nil {
		return js.ValueOf(map[string]interface{}{"error": err.Error()})
	}

	state, _ = engine.Apply(state, cmd)
	return js.ValueOf(map[string]interface{}{"ok": true})
}

func loadSnapshot(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return js.ValueOf(map[string]interface{}{"error": "missing snapshot JSON"})
	}

	snap := engine.DecodeSnapshot([]byte(args[0].String()))
	state = engine.StateFromSnapshot(snap, "canvas_local")
	return js.ValueOf(map[string]interface{}{"ok": true})
}

func loadSampleCanvas(this js.Value, args []js.Value) interface{} {
	canvasID := "canvas_sample"
	if len(args) > 0 && args[0].Type() == js.TypeString {
		canvasID = args[0].String()
	}

	state = engine.NewState(scene.SampleCanvas(canvasID))
	return js.ValueOf(map[string]interface{}{"ok": true})
}

func ingest(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return js.ValueOf(map[string]interface{}{"error": "missing source"})
	}

	source := args[0].String()
	if source == "" {
		state, _ = engine.Apply(state, engine.Command{Type: engine.CmdClearCanvas})
	} else {
		state, _ = engine.Apply(state, engine.Command{
			Type:   engine.CmdLoadCanvas,
			Canvas: codeparse.Ingest(source),
		})
	}
	return js.ValueOf(map[string]interface{}{"ok": true})
}

// --- Query Handlers ---

func getState(this js.Value, args []js.Value) interface{} {
	data, err := json.Marshal(state)
	if err != nil {
		return js.ValueOf("{}")
	}
	return js.ValueOf(string(data))
}

func getSelection(this js.Value, args []js.Value) interface{} {
	data, err := json.Marshal(state.Selection)
	if err != nil {
		return js.ValueOf("[]")
	}
	return js.ValueOf(string(data))
}

func getSelectionBounds(this js.Value, args []js.Value) interface{} {
	data, err := json.Marshal(state.SelectionBounds())
	if err != nil {
		return js.ValueOf("{}")
	}
	return js.ValueOf(string(data))
}

func synthesize(this js.Value, args []js.Value) interface{} {
	dialect := ""
	variant := ""
	if len(args) > 0 {
		dialect = args[0].String()
	}
	if len(args) > 1 {
		variant = args[1].String()
	}
	return js.ValueOf(codegen.Synthesize(state.Canvas, codegen.Dialect(dialect), codegen.Variant(variant)))
}

func hitTest(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return js.ValueOf("")
	}
	el := state.Canvas.ElementAt(args[0].Float(), args[1].Float())
	if el == nil {
		return js.ValueOf("")
	}
	return js.ValueOf(el.ID)
}

func getSnapshot(this js.Value, args []js.Value) interface{} {
	data, err := engine.EncodeSnapshot(engine.SnapshotOf(state))
	if err != nil {
		return js.ValueOf("{}")
	}
	return js.ValueOf(string(data))
}
