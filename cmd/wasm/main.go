//go:build js && wasm

package main

import (
	"syscall/js"

	"github.com/gridboard/gridboard/backend-go/internal/engine"
)

var eng *engine.Engine

func main() {
	eng = engine.NewEngine()

	// Create the engine API object
	gridboardEngine := js.Global().Get("Object").New()

	// --- Commands (frontend → backend) ---
	gridboardEngine.Set("loadDocument", js.FuncOf(loadDocument))
	gridboardEngine.Set("saveDocument", js.FuncOf(saveDocument))
	gridboardEngine.Set("loadSampleDocument", js.FuncOf(loadSampleDocument))
	gridboardEngine.Set("setTool", js.FuncOf(setTool))
	gridboardEngine.Set("setStyle", js.FuncOf(setStyle))
	gridboardEngine.Set("pointerDown", js.FuncOf(pointerDown))
	gridboardEngine.Set("pointerMove", js.FuncOf(pointerMove))
	gridboardEngine.Set("pointerUp", js.FuncOf(pointerUp))
	gridboardEngine.Set("escape", js.FuncOf(escape))
	gridboardEngine.Set("pan", js.FuncOf(pan))
	gridboardEngine.Set("panReleased", js.FuncOf(panReleased))
	gridboardEngine.Set("setCellSize", js.FuncOf(setCellSize))
	gridboardEngine.Set("setSurfaceSize", js.FuncOf(setSurfaceSize))
	gridboardEngine.Set("dragVertex", js.FuncOf(dragVertex))
	gridboardEngine.Set("beginParamsEdit", js.FuncOf(beginParamsEdit))
	gridboardEngine.Set("commitParams", js.FuncOf(commitParams))
	gridboardEngine.Set("cancelParamsEdit", js.FuncOf(cancelParamsEdit))

	// --- Queries (frontend ← backend) ---
	gridboardEngine.Set("visibleShapes", js.FuncOf(visibleShapes))
	gridboardEngine.Set("currentPreview", js.FuncOf(currentPreview))
	gridboardEngine.Set("hitTest", js.FuncOf(hitTest))
	gridboardEngine.Set("selectedId", js.FuncOf(selectedID))
	gridboardEngine.Set("state", js.FuncOf(state))
	gridboardEngine.Set("window", js.FuncOf(window))
	gridboardEngine.Set("toWorld", js.FuncOf(toWorld))
	gridboardEngine.Set("toScreen", js.FuncOf(toScreen))
	gridboardEngine.Set("toCell", js.FuncOf(toCell))

	// Register on global scope
	js.Global().Set("gridboardEngine", gridboardEngine)

	// Signal that WASM is ready
	js.Global().Set("gridboardWasmReady", js.ValueOf(true))

	// Keep Go runtime alive
	select {}
}

// --- Command Handlers ---

func loadDocument(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return js.ValueOf(map[string]interface{}{"error": "missing document JSON"})
	}

	jsonData := args[0].String()
	if err := eng.LoadDocument(jsonData); err != nil {
		return js.ValueOf(map[string]interface{}{"error": err.Error()})
	}

	return js.ValueOf(map[string]interface{}{"ok": true})
}

func saveDocument(this js.Value, args []js.Value) interface{} {
	return js.ValueOf(eng.SaveDocument())
}

func loadSampleDocument(this js.Value, args []js.Value) interface{} {
	boardID := "board_sample"
	if len(args) > 0 && args[0].Type() == js.TypeString {
		boardID = args[0].String()
	}

	eng.LoadSampleDocument(boardID)
	return js.ValueOf(map[string]interface{}{"ok": true})
}

func setTool(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		eng.SetTool("")
		return nil
	}
	eng.SetTool(args[0].String())
	return nil
}

func setStyle(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return nil
	}
	if err := eng.SetStyle(args[0].String()); err != nil {
		return js.ValueOf(map[string]interface{}{"error": err.Error()})
	}
	return nil
}

func pointerDown(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return nil
	}
	eng.PointerDown(args[0].Float(), args[1].Float())
	return nil
}

func pointerMove(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return nil
	}
	eng.PointerMove(args[0].Float(), args[1].Float())
	return nil
}

func pointerUp(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return nil
	}
	eng.PointerUp(args[0].Float(), args[1].Float())
	return nil
}

func escape(this js.Value, args []js.Value) interface{} {
	eng.Escape()
	return nil
}

func pan(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return nil
	}
	eng.Pan(args[0].Float(), args[1].Float())
	return nil
}

func panReleased(this js.Value, args []js.Value) interface{} {
	eng.PanReleased()
	return nil
}

func setCellSize(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return nil
	}
	if err := eng.SetCellSize(args[0].Float()); err != nil {
		return js.ValueOf(map[string]interface{}{"error": err.Error()})
	}
	return nil
}

func setSurfaceSize(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return nil
	}
	eng.SetSurfaceSize(args[0].Float(), args[1].Float())
	return nil
}

func dragVertex(this js.Value, args []js.Value) interface{} {
	if len(args) < 3 {
		return nil
	}
	if err := eng.DragVertex(args[0].Int(), args[1].Float(), args[2].Float()); err != nil {
		return js.ValueOf(map[string]interface{}{"error": err.Error()})
	}
	return nil
}

func beginParamsEdit(this js.Value, args []js.Value) interface{} {
	eng.BeginParamsEdit()
	return nil
}

func commitParams(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return nil
	}
	if err := eng.CommitParams(args[0].String()); err != nil {
		return js.ValueOf(map[string]interface{}{"error": err.Error()})
	}
	return nil
}

func cancelParamsEdit(this js.Value, args []js.Value) interface{} {
	eng.CancelParamsEdit()
	return nil
}

// --- Query Handlers ---

func visibleShapes(this js.Value, args []js.Value) interface{} {
	return js.ValueOf(eng.VisibleShapes())
}

func currentPreview(this js.Value, args []js.Value) interface{} {
	return js.ValueOf(eng.CurrentPreview())
}

func hitTest(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return js.ValueOf("")
	}
	return js.ValueOf(eng.HitTest(args[0].Float(), args[1].Float()))
}

func selectedID(this js.Value, args []js.Value) interface{} {
	return js.ValueOf(eng.SelectedID())
}

func state(this js.Value, args []js.Value) interface{} {
	return js.ValueOf(eng.State())
}

func window(this js.Value, args []js.Value) interface{} {
	return js.ValueOf(eng.Window())
}

func toWorld(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return js.ValueOf("{}")
	}
	return js.ValueOf(eng.ToWorld(args[0].Float(), args[1].Float()))
}

func toScreen(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return js.ValueOf("{}")
	}
	return js.ValueOf(eng.ToScreen(args[0].Float(), args[1].Float()))
}

func toCell(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return js.ValueOf("{}")
	}
	return js.ValueOf(eng.ToCell(args[0].Float(), args[1].Float()))
}
