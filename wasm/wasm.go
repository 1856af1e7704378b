//go:build js && wasm

package main

import (
	"syscall/js"
)

// asyncFunc wraps f so that calling it from JS returns a Promise. f runs
// on its own goroutine so a long search does not block the event loop.
func asyncFunc(f func(this js.Value, args []js.Value) (interface{}, error)) func(this js.Value, args []js.Value) interface{} {
	return func(this js.Value, args []js.Value) interface{} {
		handler := js.FuncOf(func(_ js.Value, pargs []js.Value) interface{} {
			resolve, reject := pargs[0], pargs[1]
			go func() {
				res, err := f(this, args)
				if err != nil {
					reject.Invoke(js.Global().Get("Error").New(err.Error()))
					return
				}
				resolve.Invoke(res)
			}()
			return nil
		})
		promise := js.Global().Get("Promise").New(handler)
		handler.Release()
		return promise
	}
}
