// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// propFlag binds one command flag to one resource property.
type propFlag struct {
	flag string
	prop string
}

// collectProps returns the properties of every bound flag the user set.
// Values are shaped like decoded JSON: numbers become float64 and lists
// become []interface{}.
func collectProps(cmd *cobra.Command, bindings []propFlag) (map[string]interface{}, error) {
	props := make(map[string]interface{})
	for _, b := range bindings {
		f := cmd.Flags().Lookup(b.flag)
		if f == nil || !f.Changed {
			continue
		}
		v, err := flagValue(f)
		if err != nil {
			return nil, fmt.Errorf("--%s: %w", b.flag, err)
		}
		props[b.prop] = v
	}
	return props, nil
}

func flagValue(f *pflag.Flag) (interface{}, error) {
	switch f.Value.Type() {
	case "int":
		n, err := strconv.Atoi(f.Value.String())
		if err != nil {
			return nil, err
		}
		return float64(n), nil
	case "bool":
		return strconv.ParseBool(f.Value.String())
	case "stringSlice":
		sv, ok := f.Value.(pflag.SliceValue)
		if !ok {
			return nil, fmt.Errorf("unexpected value type %T", f.Value)
		}
		items := sv.GetSlice()
		out := make([]interface{}, len(items))
		for i, s := range items {
			out[i] = s
		}
		return out, nil
	default:
		return f.Value.String(), nil
	}
}

// parseAllowed turns rules like "tcp:22,80" or "icmp" into firewall
// allowed entries.
func parseAllowed(rules []string) ([]interface{}, error) {
	out := make([]interface{}, 0, len(rules))
	for _, rule := range rules {
		protocol, ports, hasPorts := strings.Cut(rule, ":")
		protocol = strings.ToLower(strings.TrimSpace(protocol))
		if protocol == "" {
			return nil, fmt.Errorf("invalid rule %q: protocol is required", rule)
		}

		entry := map[string]interface{}{"protocol": protocol}
		if hasPorts {
			var list []interface{}
			for _, p := range strings.Split(ports, ",") {
				p = strings.TrimSpace(p)
				if p == "" {
					return nil, fmt.Errorf("invalid rule %q: empty port", rule)
				}
				list = append(list, p)
			}
			entry["ports"] = list
		}
		out = append(out, entry)
	}
	return out, nil
}
