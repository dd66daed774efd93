// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package network

import (
	"fmt"
	"net"
	"strings"

	"github.com/platform-engineering-labs/ovh-compute/pkg/resources/base"
)

// routeRequest maps schema fields to the route API:
//   - destRange → destination (must be a CIDR)
//   - nextHopIp → nextHop (must be an IP)
//   - nextHopInstance → nextHopInstanceId
func routeRequest(props map[string]interface{}, ctx base.TransformContext) (map[string]interface{}, error) {
	result := copyExcept(props, "destRange", "nextHopIp", "nextHopInstance")

	if dest, ok := props["destRange"].(string); ok {
		if _, _, err := net.ParseCIDR(dest); err != nil {
			return nil, fmt.Errorf("invalid destRange %q: %w", dest, err)
		}
		result["destination"] = dest
	}

	hopIP, hasIP := props["nextHopIp"].(string)
	hopInstance, hasInstance := props["nextHopInstance"].(string)
	switch {
	case hasIP && hasInstance:
		return nil, fmt.Errorf("nextHopIp and nextHopInstance are mutually exclusive")
	case hasIP:
		if net.ParseIP(hopIP) == nil {
			return nil, fmt.Errorf("invalid nextHopIp %q", hopIP)
		}
		result["nextHop"] = hopIP
	case hasInstance:
		result["nextHopInstanceId"] = hopInstance
	}

	return result, nil
}

var backendProtocols = map[string]bool{"tcp": true, "udp": true, "http": true, "https": true}

// backendServiceRequest normalises protocol to lower case, defaulting to tcp,
// and checks the port range.
func backendServiceRequest(props map[string]interface{}, ctx base.TransformContext) (map[string]interface{}, error) {
	result := copyExcept(props)

	protocol := "tcp"
	if p, ok := props["protocol"].(string); ok && p != "" {
		protocol = strings.ToLower(p)
	}
	if !backendProtocols[protocol] {
		return nil, fmt.Errorf("unsupported protocol %q", protocol)
	}
	result["protocol"] = protocol

	if port, ok := props["port"]; ok {
		n, ok := port.(float64)
		if !ok || n < 1 || n > 65535 || n != float64(int(n)) {
			return nil, fmt.Errorf("port must be an integer between 1 and 65535, got %v", port)
		}
	}

	if ctx.Region != "" {
		result["region"] = ctx.Region
	}
	return result, nil
}

// firewallRequest defaults direction to ingress, validates sourceRanges as
// CIDRs and renames sourceRanges → sources.
func firewallRequest(props map[string]interface{}, ctx base.TransformContext) (map[string]interface{}, error) {
	result := copyExcept(props, "sourceRanges")

	direction := "ingress"
	if d, ok := props["direction"].(string); ok && d != "" {
		direction = strings.ToLower(d)
	}
	if direction != "ingress" && direction != "egress" {
		return nil, fmt.Errorf("direction must be ingress or egress, got %q", direction)
	}
	result["direction"] = direction

	if ranges, ok := props["sourceRanges"].([]interface{}); ok {
		sources := make([]interface{}, 0, len(ranges))
		for _, r := range ranges {
			cidr, ok := r.(string)
			if !ok {
				return nil, fmt.Errorf("sourceRanges entries must be strings, got %T", r)
			}
			if _, _, err := net.ParseCIDR(cidr); err != nil {
				return nil, fmt.Errorf("invalid source range %q: %w", cidr, err)
			}
			sources = append(sources, cidr)
		}
		result["sources"] = sources
	}

	return result, nil
}

func copyExcept(props map[string]interface{}, skip ...string) map[string]interface{} {
	result := make(map[string]interface{}, len(props))
	for k, v := range props {
		result[k] = v
	}
	for _, k := range skip {
		delete(result, k)
	}
	return result
}
