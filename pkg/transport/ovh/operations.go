// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package ovh

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/platform-engineering-labs/ovh-compute/pkg/operation"
)

// Provider operation states as returned by /cloud/project/{p}/operation.
const (
	operationStatusCreated    = "created"
	operationStatusPending    = "pending"
	operationStatusInProgress = "in-progress"
	operationStatusRunning    = "running"
	operationStatusCompleted  = "completed"
	operationStatusDone       = "done"
	operationStatusError      = "error"
	operationStatusFailed     = "failed"
)

// WarningCodeSubOperationFailed marks a child operation that failed while
// its parent carried on.
const WarningCodeSubOperationFailed = "SUB_OPERATION_FAILED"

// OperationClient queries operation status through the Cloud API.
type OperationClient struct {
	client Doer
}

var _ operation.StatusClient = (*OperationClient)(nil)

// NewOperationClient creates a status client on top of client.
func NewOperationClient(client Doer) *OperationClient {
	return &OperationClient{client: client}
}

// GlobalOperationPath is the status path of a project-wide operation.
func GlobalOperationPath(project, id string) string {
	return fmt.Sprintf("/cloud/project/%s/operation/%s", url.PathEscape(project), url.PathEscape(id))
}

// RegionOperationPath is the status path of a regional operation.
func RegionOperationPath(project, region, id string) string {
	return fmt.Sprintf("/cloud/project/%s/region/%s/operation/%s",
		url.PathEscape(project), url.PathEscape(region), url.PathEscape(id))
}

// ZoneOperationPath is the status path of a zonal operation.
func ZoneOperationPath(project, zone, id string) string {
	return fmt.Sprintf("/cloud/project/%s/zone/%s/operation/%s",
		url.PathEscape(project), url.PathEscape(zone), url.PathEscape(id))
}

func (c *OperationClient) ZoneOperation(ctx context.Context, project, zone, id string) (*operation.Snapshot, error) {
	return c.get(ctx, ZoneOperationPath(project, zone, id))
}

func (c *OperationClient) RegionOperation(ctx context.Context, project, region, id string) (*operation.Snapshot, error) {
	return c.get(ctx, RegionOperationPath(project, region, id))
}

func (c *OperationClient) GlobalOperation(ctx context.Context, project, id string) (*operation.Snapshot, error) {
	return c.get(ctx, GlobalOperationPath(project, id))
}

func (c *OperationClient) get(ctx context.Context, path string) (*operation.Snapshot, error) {
	resp, err := c.client.Do(ctx, RequestOptions{Method: http.MethodGet, Path: path})
	if err != nil {
		return nil, err
	}
	return DecodeOperation(resp.Body)
}

// IsOperation reports whether a response body describes an async operation
// rather than a resource.
func IsOperation(body map[string]interface{}) bool {
	if body == nil {
		return false
	}
	_, hasAction := body["action"]
	id, _ := body["id"].(string)
	return hasAction && id != ""
}

// DecodeOperation converts an operation payload into a Snapshot.
func DecodeOperation(body map[string]interface{}) (*operation.Snapshot, error) {
	if body == nil {
		return nil, fmt.Errorf("empty operation payload")
	}

	id, _ := body["id"].(string)
	if id == "" {
		return nil, fmt.Errorf("operation payload without id")
	}

	raw, _ := body["status"].(string)
	snap := &operation.Snapshot{ID: id}
	failed := false

	switch raw {
	case operationStatusCreated, operationStatusPending:
		snap.Status = operation.StatusPending
	case operationStatusInProgress, operationStatusRunning:
		snap.Status = operation.StatusRunning
	case operationStatusCompleted, operationStatusDone:
		snap.Status = operation.StatusDone
	case operationStatusError, operationStatusFailed:
		snap.Status = operation.StatusDone
		failed = true
	default:
		return nil, fmt.Errorf("operation %s has unknown status %q", id, raw)
	}

	if progress, ok := body["progress"].(float64); ok {
		snap.Progress = int(progress)
	}
	snap.ResourceID, _ = body["resourceId"].(string)

	if e := decodeProviderError(body["error"]); e != nil {
		snap.Error = e
	} else if failed {
		msg, _ := body["message"].(string)
		if msg == "" {
			msg = "operation failed"
		}
		snap.Error = &operation.ProviderError{Code: "OPERATION_ERROR", Message: msg}
	}

	snap.Warnings = decodeWarnings(body["warnings"])
	if snap.Error == nil {
		snap.Warnings = append(snap.Warnings, subOperationWarnings(body["subOperations"])...)
	}

	return snap, nil
}

func decodeProviderError(v interface{}) *operation.ProviderError {
	switch e := v.(type) {
	case map[string]interface{}:
		code, _ := e["code"].(string)
		msg, _ := e["message"].(string)
		if code == "" && msg == "" {
			return nil
		}
		pe := &operation.ProviderError{Code: code, Message: msg}
		if details, ok := e["details"].([]interface{}); ok {
			for _, d := range details {
				m, ok := d.(map[string]interface{})
				if !ok {
					continue
				}
				detail := operation.ErrorDetail{}
				detail.Code, _ = m["code"].(string)
				detail.Location, _ = m["location"].(string)
				detail.Message, _ = m["message"].(string)
				pe.Details = append(pe.Details, detail)
			}
		}
		return pe
	case string:
		if e == "" {
			return nil
		}
		return &operation.ProviderError{Message: e}
	default:
		return nil
	}
}

func decodeWarnings(v interface{}) []operation.Warning {
	items, ok := v.([]interface{})
	if !ok {
		return nil
	}

	warnings := make([]operation.Warning, 0, len(items))
	for _, item := range items {
		switch w := item.(type) {
		case map[string]interface{}:
			code, _ := w["code"].(string)
			msg, _ := w["message"].(string)
			if msg == "" {
				continue
			}
			warnings = append(warnings, operation.Warning{Code: code, Message: msg})
		case string:
			if w != "" {
				warnings = append(warnings, operation.Warning{Message: w})
			}
		}
	}
	return warnings
}

func subOperationWarnings(v interface{}) []operation.Warning {
	items, ok := v.([]interface{})
	if !ok {
		return nil
	}

	var warnings []operation.Warning
	for _, item := range items {
		sub, ok := item.(map[string]interface{})
		if !ok {
			continue
		}
		status, _ := sub["status"].(string)
		if status != operationStatusError && status != operationStatusFailed {
			continue
		}

		id, _ := sub["id"].(string)
		action, _ := sub["action"].(string)
		msg := fmt.Sprintf("sub-operation %s (%s) failed", id, action)
		if e := decodeProviderError(sub["error"]); e != nil {
			msg = fmt.Sprintf("%s: %s", msg, e.Message)
		}
		warnings = append(warnings, operation.Warning{Code: WarningCodeSubOperationFailed, Message: msg})
	}
	return warnings
}
