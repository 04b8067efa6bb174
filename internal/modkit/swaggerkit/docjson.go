package swaggerkit

import (
	_ "embed"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"servicehistory/internal/platform/config"
	perr "servicehistory/internal/platform/errors"
	phttp "servicehistory/internal/platform/net/http"
)

//go:embed doc/openapi.json
var openAPIDoc string

// SpecMutator edits the parsed document before it is served
type SpecMutator func(map[string]any)

var (
	mutators  []SpecMutator
	docReader = func() string { return openAPIDoc }
)

// Register queues m to run on every doc.json request. Call it before serving starts
func Register(m SpecMutator) {
	if m != nil {
		mutators = append(mutators, m)
	}
}

// oasVersion is the newest version the bundled Swagger UI renders
const oasVersion = "3.0.3"

const errorSchemaRef = "#/components/schemas/ErrorResponse"

func serveDocJSON() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		var spec map[string]any
		if err := json.Unmarshal([]byte(docReader()), &spec); err != nil {
			http.Error(w, "spec parse error", http.StatusInternalServerError)
			return
		}

		ensureServers(spec, "/api/v1")
		if suffix := config.New().Prefix("CORE_API_").MayString("DOCS_TITLE_SUFFIX", ""); suffix != "" {
			if info, ok := spec["info"].(map[string]any); ok {
				if title, ok := info["title"].(string); ok {
					info["title"] = title + " " + suffix
				}
			}
		}
		addErrorSchema(spec)
		addDefaultResponse(spec, http.StatusBadRequest, perr.ErrorCodeValidation,
			"result.serviceHistoryDetails[0].mileage: expected a whole number, got string")
		addDefaultResponse(spec, http.StatusInternalServerError, perr.ErrorCodeDB,
			"insert into vehicle_db.service_history: code: 60, message: Table vehicle_db.service_history does not exist")
		for _, m := range mutators {
			m(spec)
		}

		w.Header().Set("Cache-Control", "no-store")
		phttp.JSON(w, http.StatusOK, spec)
	}
}

// ensureServers lifts Swagger 2 and 3.1 documents to oasVersion and adds a servers entry at url
func ensureServers(spec map[string]any, url string) {
	delete(spec, "swagger")
	if v, _ := spec["openapi"].(string); v == "" || strings.HasPrefix(v, "3.1") {
		spec["openapi"] = oasVersion
	}
	if _, ok := spec["servers"]; !ok {
		spec["servers"] = []any{map[string]any{"url": url}}
	}
}

// child returns m[key] as an object, creating it when absent
func child(m map[string]any, key string) map[string]any {
	c, ok := m[key].(map[string]any)
	if !ok {
		c = map[string]any{}
		m[key] = c
	}
	return c
}

// addErrorSchema describes phttp.Envelope on the error path
func addErrorSchema(spec map[string]any) {
	schemas := child(child(spec, "components"), "schemas")
	if _, ok := schemas["ErrorResponse"]; ok {
		return
	}
	str := map[string]any{"type": "string"}
	i32 := map[string]any{"type": "integer", "format": "int32"}
	schemas["ErrorResponse"] = map[string]any{
		"type":        "object",
		"description": "Error envelope",
		"properties": map[string]any{
			"status_code": i32,
			"status":      str,
			"code":        i32,
			"error":       str,
			"field":       str,
			"request_id":  str,
		},
		"required": []any{"status_code", "status"},
	}
}

// addDefaultResponse documents status on every operation that has not described it
func addDefaultResponse(spec map[string]any, status int, code perr.ErrorCode, msg string) {
	key := http.StatusText(status)
	code3 := strconv.Itoa(status)
	resp := map[string]any{
		"description": key,
		"content": map[string]any{
			"application/json": map[string]any{
				"schema": map[string]any{"$ref": errorSchemaRef},
				"example": map[string]any{
					"status_code": status,
					"status":      key,
					"code":        int(code),
					"error":       msg,
					"request_id":  "579f33bf50b1/abc-000001",
				},
			},
		},
	}
	paths, _ := spec["paths"].(map[string]any)
	for _, item := range paths {
		ops, ok := item.(map[string]any)
		if !ok {
			continue
		}
		for _, o := range ops {
			op, ok := o.(map[string]any)
			if !ok {
				continue
			}
			resps := child(op, "responses")
			if _, ok := resps[code3]; !ok {
				resps[code3] = resp
			}
		}
	}
}
