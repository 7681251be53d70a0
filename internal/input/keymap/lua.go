package keymap

import (
	"fmt"
	"os"

	lua "github.com/yuin/gopher-lua"
)

// LoadLua runs a Lua script that customizes bindings through a
// bind(mode, key, action) global:
//
//	bind("emacs", "ctrl+g", "edit.clear")
//	bind("vi-normal", "G", "cursor.end")
//
// The script runs in a restricted state: base, string, table and math
// libraries only, no filesystem or process access.
func (k *Keymap) LoadLua(path string) error {
	src, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read keymap script: %w", err)
	}
	return k.RunLua(string(src), path)
}

// RunLua executes Lua source against the keymap. name labels the chunk
// in error messages.
func (k *Keymap) RunLua(src, name string) error {
	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	defer L.Close()

	for _, open := range []struct {
		name string
		fn   lua.LGFunction
	}{
		{lua.BaseLibName, lua.OpenBase},
		{lua.StringLibName, lua.OpenString},
		{lua.TabLibName, lua.OpenTable},
		{lua.MathLibName, lua.OpenMath},
	} {
		L.Push(L.NewFunction(open.fn))
		L.Push(lua.LString(open.name))
		L.Call(1, 0)
	}

	L.SetGlobal("bind", L.NewFunction(func(L *lua.LState) int {
		mode := L.CheckString(1)
		keyName := L.CheckString(2)
		action := L.CheckString(3)
		if err := k.Bind(Mode(mode), keyName, action); err != nil {
			L.RaiseError("%v", err)
		}
		return 0
	}))

	fn, err := L.LoadString(src)
	if err != nil {
		return fmt.Errorf("parse keymap script %s: %w", name, err)
	}
	L.Push(fn)
	if err := L.PCall(0, 0, nil); err != nil {
		return fmt.Errorf("run keymap script %s: %w", name, err)
	}
	return nil
}
