package commands

import (
	"fmt"
	"strconv"
	"strings"
)

// argSet is the parsed form of a command's arguments. Flags are read in
// --name value, --name=value and bare --name forms.
type argSet struct {
	positional []string
	values     map[string]string
	bools      map[string]bool
}

// parseArgs splits args. Names listed in valueFlags consume the next
// argument; every other flag is boolean.
func parseArgs(args []string, valueFlags ...string) (argSet, error) {
	takes := make(map[string]bool, len(valueFlags))
	for _, f := range valueFlags {
		takes[f] = true
	}

	set := argSet{values: map[string]string{}, bools: map[string]bool{}}
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if !strings.HasPrefix(arg, "--") || arg == "--" {
			set.positional = append(set.positional, arg)
			continue
		}

		name := strings.TrimPrefix(arg, "--")
		if eq := strings.IndexByte(name, '='); eq >= 0 {
			set.values[name[:eq]] = name[eq+1:]
			continue
		}
		if !takes[name] {
			set.bools[name] = true
			continue
		}
		if i+1 >= len(args) {
			return set, fmt.Errorf("--%s requires a value", name)
		}
		set.values[name] = args[i+1]
		i++
	}
	return set, nil
}

func (s argSet) value(name string) string { return s.values[name] }

func (s argSet) flag(name string) bool { return s.bools[name] }

func (s argSet) intValue(name string, def int) (int, error) {
	v, ok := s.values[name]
	if !ok {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("--%s must be a number: %w", name, err)
	}
	return n, nil
}
