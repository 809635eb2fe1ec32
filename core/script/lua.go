package script

import (
	"context"
	"fmt"
	"io"
	"math"

	lua "github.com/yuin/gopher-lua"
)

// Tree owns the interpreter state holding a decoded script.
type Tree struct {
	state *lua.LState
}

// Decode loads and runs the script read from r.
// chunkName is used in interpreter error messages.
func Decode(ctx context.Context, r io.Reader, chunkName string) (*Tree, error) {
	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	if ctx != nil {
		L.SetContext(ctx)
	}

	fn, err := L.Load(r, chunkName)
	if err != nil {
		L.Close()
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}

	L.Push(fn)
	if err := L.PCall(0, lua.MultRet, nil); err != nil {
		L.Close()
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}

	return &Tree{state: L}, nil
}

// Global returns the global variable name, Nil if unset.
func (t *Tree) Global(name string) Value {
	return convert(t.state.GetGlobal(name))
}

// Close releases the interpreter. Tables obtained from the tree must not be
// used afterwards.
func (t *Tree) Close() {
	t.state.Close()
}

type luaTable struct {
	t *lua.LTable
}

func (luaTable) Kind() Kind { return KindTable }

func (lt luaTable) Get(key string) (Value, error) {
	return convert(lt.t.RawGetString(key)), nil
}

func (lt luaTable) Pairs(fn func(key, value Value) error) error {
	for k, v := lt.t.Next(lua.LNil); k != lua.LNil; k, v = lt.t.Next(k) {
		if err := fn(convert(k), convert(v)); err != nil {
			return err
		}
	}
	return nil
}

func convert(v lua.LValue) Value {
	switch lv := v.(type) {
	case lua.LString:
		return String(lv)
	case lua.LNumber:
		f := float64(lv)
		if f == math.Trunc(f) && f >= math.MinInt64 && f < math.MaxInt64 {
			return Integer(int64(f))
		}
		return Number(f)
	case lua.LBool:
		return Bool(lv)
	case *lua.LTable:
		return luaTable{t: lv}
	case nil:
		return Nil{}
	}
	if v == lua.LNil {
		return Nil{}
	}
	return Other{TypeName: v.Type().String()}
}
