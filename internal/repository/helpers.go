package repository

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/surrealdb/surrealdb.go/pkg/models"
)

// newRecordID generates a record ID for the given table. Dashes are
// stripped so the ID stays a plain SurrealDB identifier.
func newRecordID(table string) string {
	return table + ":" + strings.ReplaceAll(uuid.New().String(), "-", "")
}

// isUniqueConstraintError checks if an error is a unique constraint violation
func isUniqueConstraintError(err error) bool {
	if err == nil {
		return false
	}
	errStr := err.Error()
	return strings.Contains(errStr, "unique") ||
		strings.Contains(errStr, "duplicate") ||
		strings.Contains(errStr, "already exists")
}

// isRevisionConflictError checks if an error came from a THROW raised by a
// revision guard inside a transaction.
func isRevisionConflictError(err error) bool {
	return err != nil && strings.Contains(err.Error(), "revision conflict")
}

// buildSetClause builds a deterministic SET clause from an updates map.
// Keys are sorted so the generated query is stable across calls. Values are
// bound as $u0, $u1, ... in the returned vars map.
func buildSetClause(updates map[string]interface{}, vars map[string]interface{}) string {
	keys := make([]string, 0, len(updates))
	for key := range updates {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for i, key := range keys {
		varName := fmt.Sprintf("u%d", i)
		parts = append(parts, fmt.Sprintf("%s = $%s", key, varName))
		vars[varName] = updates[key]
	}
	return strings.Join(parts, ", ")
}

// extractQueryResults extracts the result array from a SurrealDB response
func extractQueryResults(result interface{}) ([]interface{}, bool) {
	if results, ok := result.([]interface{}); ok {
		if len(results) > 0 {
			if firstResult, ok := results[0].(map[string]interface{}); ok {
				if resultArray, ok := firstResult["result"].([]interface{}); ok {
					return resultArray, true
				}
			}
			// Direct array format
			return results, true
		}
	}
	return nil, false
}

// extractCount extracts count from a SurrealDB count query result
func extractCount(result interface{}) int {
	if resp, ok := result.(map[string]interface{}); ok {
		if status, ok := resp["status"].(string); ok && status == "OK" {
			if resultData, ok := resp["result"].([]interface{}); ok && len(resultData) > 0 {
				if data, ok := resultData[0].(map[string]interface{}); ok {
					return extractCountValue(data["count"])
				}
			}
		}
		return extractCountValue(resp["count"])
	}
	return 0
}

func extractCountValue(v interface{}) int {
	switch c := v.(type) {
	case float64:
		return int(c)
	case float32:
		return int(c)
	case int:
		return c
	case int64:
		return int(c)
	case uint64:
		return int(c)
	}
	return 0
}

// unwrapRecord peels the SurrealDB response wrappers down to a single
// record map. Returns false when the response holds no record.
func unwrapRecord(result interface{}) (map[string]interface{}, bool) {
	if result == nil {
		return nil, false
	}

	if resp, ok := result.(map[string]interface{}); ok {
		if status, ok := resp["status"].(string); ok && status == "OK" {
			if resultData, ok := resp["result"].([]interface{}); ok {
				if len(resultData) == 0 {
					return nil, false
				}
				result = resultData[0]
			}
		}
	}

	if arr, ok := result.([]interface{}); ok {
		if len(arr) == 0 {
			return nil, false
		}
		result = arr[0]
	}

	data, ok := result.(map[string]interface{})
	return data, ok
}

// decodeRecord converts a record map into a typed model via JSON.
// The id field is normalized to a "table:id" string first.
func decodeRecord(data map[string]interface{}, out interface{}) error {
	if id, ok := data["id"]; ok {
		data["id"] = convertSurrealID(id)
	}
	normalizeTimes(data)

	jsonBytes, err := json.Marshal(data)
	if err != nil {
		return err
	}
	return json.Unmarshal(jsonBytes, out)
}

// normalizeTimes rewrites SurrealDB datetime values as RFC3339 strings so
// the JSON round-trip in decodeRecord can parse them into time.Time.
func normalizeTimes(data map[string]interface{}) {
	for key, value := range data {
		switch t := value.(type) {
		case models.CustomDateTime:
			data[key] = t.Time.Format(time.RFC3339Nano)
		case *models.CustomDateTime:
			if t != nil {
				data[key] = t.Time.Format(time.RFC3339Nano)
			}
		case time.Time:
			data[key] = t.Format(time.RFC3339Nano)
		}
	}
}

// convertSurrealID converts a SurrealDB ID (which may be a complex object) to a string
func convertSurrealID(id interface{}) string {
	if str, ok := id.(string); ok {
		return str
	}

	if rid, ok := id.(models.RecordID); ok {
		return fmt.Sprintf("%s:%v", rid.Table, rid.ID)
	}
	if rid, ok := id.(*models.RecordID); ok && rid != nil {
		return fmt.Sprintf("%s:%v", rid.Table, rid.ID)
	}

	// Handle map format: {"tb": "guild", "id": {"String": "xyz"}} or similar
	if m, ok := id.(map[string]interface{}); ok {
		tb := ""
		idPart := ""

		if t, ok := m["tb"].(string); ok {
			tb = t
		} else if t, ok := m["Table"].(string); ok {
			tb = t
		}

		if idVal, ok := m["id"]; ok {
			idPart = extractIDValue(idVal)
		} else if idVal, ok := m["ID"]; ok {
			idPart = extractIDValue(idVal)
		}

		if tb != "" && idPart != "" {
			return tb + ":" + idPart
		}
		if idPart != "" {
			return idPart
		}
	}

	return fmt.Sprintf("%v", id)
}

// extractIDValue extracts the ID value which may be nested
func extractIDValue(val interface{}) string {
	if str, ok := val.(string); ok {
		return str
	}
	if m, ok := val.(map[string]interface{}); ok {
		if s, ok := m["String"].(string); ok {
			return s
		}
		if s, ok := m["string"].(string); ok {
			return s
		}
	}
	return fmt.Sprintf("%v", val)
}

// errUnexpectedFormat is returned when a SurrealDB response cannot be
// decoded into the expected record shape.
var errUnexpectedFormat = errors.New("unexpected result format")
