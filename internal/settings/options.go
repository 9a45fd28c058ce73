package settings

import (
	"fmt"
	"strings"
)

const DebugMode = "debug_mode"

type Option struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	Description string `json:"description"`
	Default     string `json:"default"`
}

// Options are the options the plugin declares.
var Options = []Option{
	{Name: DebugMode, Type: "boolean", Description: "Debug mode", Default: "off"},
}

// Lookup returns the declared option called name.
func Lookup(name string) (Option, bool) {
	for _, opt := range Options {
		if opt.Name == name {
			return opt, true
		}
	}
	return Option{}, false
}

// Register writes each option's default when it is not set yet and refreshes
// its description.
func Register(store Store, options []Option) error {
	for _, opt := range options {
		_, ok, err := store.Get(opt.Name)
		if err != nil {
			return err
		}
		if !ok {
			if err := store.Set(opt.Name, opt.Default); err != nil {
				return err
			}
		}
		if err := store.Describe(opt.Name, opt.Description); err != nil {
			return err
		}
	}
	return nil
}

// Value reads an option, falling back to its declared default.
func Value(store Store, name string) (string, error) {
	v, ok, err := store.Get(name)
	if err != nil {
		return "", err
	}
	if ok {
		return v, nil
	}
	if opt, declared := Lookup(name); declared {
		return opt.Default, nil
	}
	return "", fmt.Errorf("unknown option %q", name)
}

// Enabled reports whether a boolean option is "on" or "true".
func Enabled(store Store, name string) bool {
	v, err := Value(store, name)
	if err != nil {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "on", "true":
		return true
	default:
		return false
	}
}

// DebugEnabled is Enabled for debug_mode.
func DebugEnabled(store Store) bool {
	return Enabled(store, DebugMode)
}
