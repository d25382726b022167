package scripting

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
)

// globalSetID is the reserved key for shared scripts loaded via LoadGlobal.
// CallHook falls back to this VM when no named VM is found.
const globalSetID = "__global__"

// vm is one loaded script set. LState is single-threaded, so every call
// holds mu.
type vm struct {
	mu     sync.Mutex
	L      *lua.LState
	cancel func()
	limit  int
}

// Manager owns one sandboxed LState per script set and exposes hook dispatch.
//
// Manager is safe for concurrent use. Calls into the same script set are
// serialized; different sets run concurrently.
type Manager struct {
	mu     sync.RWMutex
	states map[string]*vm
	logger *zap.Logger
}

// NewManager creates a Manager.
//
// Precondition: logger must be non-nil.
// Postcondition: Returns a non-nil Manager with no script sets loaded.
func NewManager(logger *zap.Logger) *Manager {
	if logger == nil {
		panic("scripting: NewManager requires a non-nil logger")
	}
	return &Manager{
		states: make(map[string]*vm),
		logger: logger,
	}
}

// Load creates a sandboxed VM for setID, registers the engine.* modules,
// then executes every *.lua file in scriptDir in lexicographic order.
//
// Precondition: setID must be non-empty; scriptDir must be a readable directory.
// Postcondition: The VM is registered, replacing any previous one for setID;
// returns an error on Lua load failure.
func (m *Manager) Load(setID, scriptDir string, instLimit int) error {
	return m.loadInto(setID, scriptDir, instLimit)
}

// LoadGlobal creates the "__global__" VM, the CallHook fallback for any set.
//
// Precondition: scriptDir must be a readable directory.
// Postcondition: Global VM is registered; returns error on Lua load failure.
func (m *Manager) LoadGlobal(scriptDir string, instLimit int) error {
	return m.loadInto(globalSetID, scriptDir, instLimit)
}

func (m *Manager) loadInto(key, scriptDir string, instLimit int) error {
	L, cancel := NewSandboxedState(instLimit)
	m.RegisterModules(L)

	entries, err := os.ReadDir(scriptDir)
	if err != nil {
		cancel()
		L.Close()
		return fmt.Errorf("scripting: reading script dir %q for %q: %w", scriptDir, key, err)
	}

	var luaFiles []string
	for _, e := range entries {
		if !e.IsDir() && filepath.Ext(e.Name()) == ".lua" {
			luaFiles = append(luaFiles, filepath.Join(scriptDir, e.Name()))
		}
	}
	sort.Strings(luaFiles)

	for _, path := range luaFiles {
		if err := L.DoFile(path); err != nil {
			cancel()
			L.Close()
			return fmt.Errorf("scripting: loading %q for %q: %w", path, key, err)
		}
	}
	m.logger.Debug("scripting: loaded script set",
		zap.String("set", key),
		zap.Int("files", len(luaFiles)),
	)

	next := &vm{L: L, cancel: cancel, limit: effectiveLimit(instLimit)}
	m.mu.Lock()
	old := m.states[key]
	m.states[key] = next
	m.mu.Unlock()
	if old != nil {
		old.close()
	}
	return nil
}

// CallHook calls the named Lua global function in setID's VM with a fresh
// instruction budget. If the set has no VM, the __global__ VM is tried as a
// fallback. Returns (LNil, nil) if the hook is not defined or no VM exists.
// Lua runtime errors, including an exhausted budget, are logged at Warn
// level and never propagated.
//
// Precondition: args must be valid lua.LValue instances created for no other LState.
// Postcondition: Returns the first return value of the hook, or LNil.
func (m *Manager) CallHook(setID, hook string, args ...lua.LValue) (lua.LValue, error) {
	return m.callHook(setID, hook, func(*lua.LState) []lua.LValue { return args })
}

// callHook is CallHook with arguments built inside the VM's lock, for
// values such as tables that belong to a specific LState.
func (m *Manager) callHook(setID, hook string, build func(L *lua.LState) []lua.LValue) (lua.LValue, error) {
	m.mu.RLock()
	v, ok := m.states[setID]
	if !ok {
		v = m.states[globalSetID]
	}
	m.mu.RUnlock()

	if v == nil {
		m.logger.Info("scripting: no VM for script set",
			zap.String("set", setID),
			zap.String("hook", hook),
		)
		return lua.LNil, nil
	}

	v.mu.Lock()
	defer v.mu.Unlock()
	if v.L == nil {
		return lua.LNil, nil
	}

	fn := v.L.GetGlobal(hook)
	if fn == lua.LNil {
		return lua.LNil, nil
	}

	cancel := resetBudget(v.L, v.limit)
	defer cancel()
	if err := v.L.CallByParam(lua.P{
		Fn:      fn,
		NRet:    1,
		Protect: true,
	}, build(v.L)...); err != nil {
		m.logger.Warn("scripting: Lua runtime error",
			zap.String("set", setID),
			zap.String("hook", hook),
			zap.Error(err),
		)
		return lua.LNil, nil
	}

	ret := v.L.Get(-1)
	v.L.Pop(1)
	return ret, nil
}

// Close releases every VM. CallHook afterwards returns LNil.
func (m *Manager) Close() {
	m.mu.Lock()
	states := m.states
	m.states = make(map[string]*vm)
	m.mu.Unlock()
	for _, v := range states {
		v.close()
	}
}

func (v *vm) close() {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.L == nil {
		return
	}
	v.cancel()
	v.L.Close()
	v.L = nil
}
