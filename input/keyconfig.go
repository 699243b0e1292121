package input

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/gdamore/tcell/v2"
)

// Sentinel errors
var (
	ErrUnknownAction = errors.New("unknown action")
	ErrUnknownKey    = errors.New("unknown key")
)

// Rune aliases for keys that can't be bare single-char TOML strings
var runeAliases = map[string]rune{
	"space":     ' ',
	"backslash": '\\',
}

// specialKeys is tcell's key name table keyed by lowercase name
var specialKeys = func() map[string]tcell.Key {
	m := make(map[string]tcell.Key, len(tcell.KeyNames))
	for k, name := range tcell.KeyNames {
		m[strings.ToLower(name)] = k
	}
	m["escape"] = tcell.KeyEsc
	return m
}()

// KeyMap resolves key events to actions
type KeyMap struct {
	runes map[rune]Action
	keys  map[tcell.Key]Action
}

// DefaultKeyMap binds arrows, a/s/d and h/j/l to lanes, Enter to start, p to pause,
// m to mute and q/Esc to quit
func DefaultKeyMap() *KeyMap {
	return &KeyMap{
		runes: map[rune]Action{
			'a': ActionLaneLeft, 'h': ActionLaneLeft,
			's': ActionLaneCenter, 'j': ActionLaneCenter,
			'd': ActionLaneRight, 'l': ActionLaneRight,
			' ': ActionStart,
			'p': ActionPause,
			'm': ActionMute,
			'q': ActionQuit,
		},
		keys: map[tcell.Key]Action{
			tcell.KeyLeft:  ActionLaneLeft,
			tcell.KeyDown:  ActionLaneCenter,
			tcell.KeyRight: ActionLaneRight,
			tcell.KeyEnter: ActionStart,
			tcell.KeyEsc:   ActionQuit,
		},
	}
}

// Resolve maps a key event to its action; Ctrl-C always quits
func (m *KeyMap) Resolve(ev *tcell.EventKey) Action {
	if ev.Key() == tcell.KeyCtrlC {
		return ActionQuit
	}
	if ev.Key() == tcell.KeyRune {
		return m.runes[ev.Rune()]
	}
	return m.keys[ev.Key()]
}

// Bind attaches a key name to an action, replacing any existing binding of that key
func (m *KeyMap) Bind(key string, a Action) error {
	if r, ok := resolveRune(key); ok {
		m.runes[r] = a
		return nil
	}
	if k, ok := specialKeys[strings.ToLower(key)]; ok {
		m.keys[k] = a
		return nil
	}
	return fmt.Errorf("%w: %q", ErrUnknownKey, key)
}

// Unbind removes every key bound to a
func (m *KeyMap) Unbind(a Action) {
	for r, bound := range m.runes {
		if bound == a {
			delete(m.runes, r)
		}
	}
	for k, bound := range m.keys {
		if bound == a {
			delete(m.keys, k)
		}
	}
}

// keymapFile is the TOML layout: each action lists the keys that trigger it
//
//	[keys]
//	left = ["a", "Left"]
//	pause = ["p", "space"]
type keymapFile struct {
	Keys map[string][]string `toml:"keys"`
}

// LoadKeyMap applies TOML overrides on top of the defaults
// An action present in the file loses its default keys; an empty list leaves it unbound
// Returns error on unknown action names, invalid key names, or parse failure
func LoadKeyMap(data []byte) (*KeyMap, error) {
	var f keymapFile
	if _, err := toml.Decode(string(data), &f); err != nil {
		return nil, fmt.Errorf("keymap parse: %w", err)
	}
	return ApplyBindings(DefaultKeyMap(), f.Keys)
}

// LoadKeyMapFile reads a keymap from path
func LoadKeyMapFile(path string) (*KeyMap, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("keymap read: %w", err)
	}
	return LoadKeyMap(data)
}

// ApplyBindings overrides m with action → keys lists and returns it
func ApplyBindings(m *KeyMap, bindings map[string][]string) (*KeyMap, error) {
	for name, keys := range bindings {
		a, err := ParseAction(name)
		if err != nil {
			return nil, fmt.Errorf("[keys] %w", err)
		}
		m.Unbind(a)
		for _, key := range keys {
			if err := m.Bind(key, a); err != nil {
				return nil, fmt.Errorf("[keys] %s: %w", name, err)
			}
		}
	}
	return m, nil
}

// resolveRune converts a key string to a rune
// Accepts single characters and named aliases
func resolveRune(s string) (rune, bool) {
	if r, ok := runeAliases[strings.ToLower(s)]; ok {
		return r, true
	}
	runes := []rune(s)
	if len(runes) == 1 {
		return runes[0], true
	}
	return 0, false
}
