//go:build js && wasm

package main

import (
	"context"
	"net/http"
	"syscall/js"

	"github.com/reusee/dscope"
	"github.com/sambuaneesh/why-py/configs"
	"github.com/sambuaneesh/why-py/controllers"
	"github.com/sambuaneesh/why-py/modes"
	"github.com/sambuaneesh/why-py/nets"
	"github.com/sambuaneesh/why-py/transcripts"
	"github.com/sambuaneesh/why-py/whypyconfigs"
)

type Module struct {
	dscope.Module
	Controllers controllers.Module
}

func main() {
	ctx := context.Background()

	dscope.New(
		new(Module),
		modes.ForProduction(),
	).Fork(
		func() configs.Loader {
			if v := js.Global().Get("whypyConfig"); v.Type() == js.TypeString {
				return whypyconfigs.NewSourceLoader("whypyConfig", v.String())
			}
			return whypyconfigs.NewLoader()
		},
		func(loader configs.Loader) whypyconfigs.BaseURL {
			if v := configs.Get[whypyconfigs.BaseURL](loader); v != "" {
				return v
			}
			return whypyconfigs.BaseURL(baseURL())
		},
		// the browser fetch transport does not support custom dialers
		func() nets.HTTPClient {
			return http.DefaultClient
		},
	).Call(func(
		newController controllers.NewController,
	) {
		controller := newController()
		api := js.Global().Get("Object").New()

		api.Set("state", js.FuncOf(func(this js.Value, args []js.Value) any {
			return controller.State().String()
		}))

		api.Set("entries", js.FuncOf(func(this js.Value, args []js.Value) any {
			entries := controller.Transcript().Entries()
			ret := make([]any, 0, len(entries))
			for _, entry := range entries {
				ret = append(ret, toJS(entry))
			}
			return js.ValueOf(ret)
		}))

		// subscribe(callback) returns an unsubscribe function
		api.Set("subscribe", js.FuncOf(func(this js.Value, args []js.Value) any {
			if len(args) == 0 || args[0].Type() != js.TypeFunction {
				return js.Undefined()
			}
			callback := args[0]
			cancel := controller.Transcript().Subscribe(func(entry transcripts.Entry) {
				callback.Invoke(toJS(entry))
			})
			var unsubscribe js.Func
			unsubscribe = js.FuncOf(func(this js.Value, args []js.Value) any {
				cancel()
				unsubscribe.Release()
				return js.Undefined()
			})
			return unsubscribe
		}))

		api.Set("setInput", js.FuncOf(func(this js.Value, args []js.Value) any {
			if len(args) > 0 {
				controller.SetInput(args[0].String())
			}
			return js.Undefined()
		}))

		api.Set("input", js.FuncOf(func(this js.Value, args []js.Value) any {
			return controller.Input()
		}))

		// keydown(key, shiftKey) reports whether the event was consumed
		api.Set("keydown", js.FuncOf(func(this js.Value, args []js.Value) any {
			if len(args) < 2 {
				return false
			}
			ev := controllers.KeyEvent{
				Key:   args[0].String(),
				Shift: args[1].Truthy(),
			}
			if ev.Key != controllers.KeyEnter || ev.Shift {
				return false
			}
			// js callbacks must not block
			go func() {
				if _, err := controller.HandleKey(ctx, ev); err != nil {
					js.Global().Get("console").Call("warn", err.Error())
				}
			}()
			return true
		}))

		js.Global().Set("whypy", api)

		go func() {
			if err := controller.Start(ctx); err != nil {
				js.Global().Get("console").Call("error", err.Error())
			}
		}()

		// wait indefinitely so that the callbacks stay available
		<-make(chan struct{})
	})
}

func baseURL() string {
	if v := js.Global().Get("whypyBaseURL"); v.Type() == js.TypeString {
		return v.String()
	}
	return js.Global().Get("location").Get("origin").String() + "/interpreter"
}

func toJS(entry transcripts.Entry) js.Value {
	return js.ValueOf(map[string]any{
		"seq":  entry.Seq,
		"type": entry.Kind.String(),
		"text": entry.Text,
	})
}
