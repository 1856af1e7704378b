//go:build js && wasm

package main

import (
	"encoding/json"
	"fmt"
	"syscall/js"

	"github.com/domino14/trailbot/board"
	"github.com/domino14/trailbot/negamax"
)

const defaultDepth = 10

type errorBody struct {
	Error string `json:"error"`
}

func errorJSON(err error) string {
	data, _ := json.Marshal(errorBody{Error: err.Error()})
	return string(data)
}

func decide(reqJSON string, depth int) (string, error) {
	var req board.Request
	if err := json.Unmarshal([]byte(reqJSON), &req); err != nil {
		return "", fmt.Errorf("%w: %v", board.ErrInvalidRequest, err)
	}
	b, err := board.FromRequest(req)
	if err != nil {
		return "", err
	}
	d, err := negamax.NewSolver(b).Decide(depth)
	if err != nil {
		return "", err
	}
	data, err := json.Marshal(d)
	return string(data), err
}

func depthArg(args []js.Value) int {
	if len(args) > 1 && args[1].Type() == js.TypeNumber {
		return args[1].Int()
	}
	return defaultDepth
}

// (string, depth?) => string
func aiResponse(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return errorJSON(fmt.Errorf("%w: missing request", board.ErrInvalidRequest))
	}
	resp, err := decide(args[0].String(), depthArg(args))
	if err != nil {
		return errorJSON(err)
	}
	return resp
}

// (string, depth?) => Promise<string>
func aiResponseAsync(this js.Value, args []js.Value) (interface{}, error) {
	if len(args) < 1 {
		return nil, fmt.Errorf("%w: missing request", board.ErrInvalidRequest)
	}
	return decide(args[0].String(), depthArg(args))
}

func registerCallbacks() {
	js.Global().Set("aiResponse", js.FuncOf(aiResponse))
	js.Global().Set("aiResponseAsync", js.FuncOf(asyncFunc(aiResponseAsync)))
	if ready := js.Global().Get("resTrailbot"); ready.Type() == js.TypeFunction {
		ready.Invoke()
	}
}

func main() {
	registerCallbacks()
	// Keep Go "program" running.
	select {}
}
