package logger

import "sync"

// named holds loggers registered by name. Lookups vastly outnumber
// registrations, which happen once per process or test.
var named = struct {
	sync.RWMutex
	byName map[string]*Logger
}{byName: make(map[string]*Logger)}

// Register stores l under name, replacing any logger already there.
// A nil l removes the entry so Get falls back to the global logger.
func Register(name string, l *Logger) {
	named.Lock()
	defer named.Unlock()
	if l == nil {
		delete(named.byName, name)
		return
	}
	named.byName[name] = l
}

// Get returns the logger registered under name. Without one it returns the
// global logger tagged with name as its component.
func Get(name string) *Logger {
	named.RLock()
	l, ok := named.byName[name]
	named.RUnlock()
	if ok {
		return l
	}
	return GetGlobalLogger().WithComponent(name)
}
