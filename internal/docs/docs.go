// Package docs registra los documentos Swagger de ambos servicios en swag,
// para servirlos con http-swagger en /swagger/*.
package docs

import (
	"encoding/json"
	"strings"

	"github.com/swaggo/swag"
)

const (
	ShelterInstance = "shelter"
	BookingInstance = "booking"
)

type resourceDoc struct {
	path       string
	tag        string
	definition string
	patch      bool
}

type property struct {
	name     string
	typ      string
	format   string
	required bool
}

var definitions = map[string][]property{
	"Animal": {
		{name: "id", typ: "integer", format: "int64"},
		{name: "name", typ: "string", required: true},
		{name: "species", typ: "string"},
		{name: "sex", typ: "string", required: true},
		{name: "age", typ: "number", required: true},
		{name: "breed", typ: "string"},
		{name: "adopted", typ: "boolean"},
		{name: "photoUrl", typ: "string", format: "uri"},
		{name: "hasChip", typ: "boolean"},
		{name: "lastCheckupDate", typ: "string", format: "date-time"},
		{name: "note", typ: "string"},
	},
	"Donation": {
		{name: "id", typ: "integer", format: "int64"},
		{name: "category", typ: "string"},
		{name: "type", typ: "string", required: true},
		{name: "amount", typ: "number"},
		{name: "description", typ: "string"},
	},
	"Announcement": {
		{name: "id", typ: "integer", format: "int64"},
		{name: "title", typ: "string", required: true},
		{name: "date", typ: "string", format: "date-time"},
		{name: "text", typ: "string"},
		{name: "important", typ: "boolean"},
	},
	"Reservation": {
		{name: "id", typ: "integer", format: "int64"},
		{name: "name", typ: "string"},
		{name: "surname", typ: "string"},
		{name: "age", typ: "number"},
		{name: "startDate", typ: "string", format: "date-time"},
		{name: "endDate", typ: "string", format: "date-time"},
		{name: "class", typ: "string"},
		{name: "email", typ: "string", format: "email", required: true},
	},
	"City": {
		{name: "id", typ: "integer", format: "int64"},
		{name: "name", typ: "string", required: true},
		{name: "country", typ: "string"},
	},
	"Class": {
		{name: "id", typ: "integer", format: "int64"},
		{name: "name", typ: "string", required: true},
	},
}

var ShelterInfo = newSpec(ShelterInstance, "Shelter API", "Animal intake, donations and announcements.", []resourceDoc{
	{path: "/zivotinje", tag: "zivotinje", definition: "Animal", patch: true},
	{path: "/donacije", tag: "donacije", definition: "Donation"},
	{path: "/obavijesti", tag: "obavijesti", definition: "Announcement"},
})

var BookingInfo = newSpec(BookingInstance, "Booking API", "Reservations, cities and classes.", []resourceDoc{
	{path: "/reservations", tag: "reservations", definition: "Reservation"},
	{path: "/cities", tag: "cities", definition: "City"},
	{path: "/classes", tag: "classes", definition: "Class"},
})

func init() {
	swag.Register(ShelterInfo.InstanceName(), ShelterInfo)
	swag.Register(BookingInfo.InstanceName(), BookingInfo)
}

func newSpec(instance, title, description string, resources []resourceDoc) *swag.Spec {
	return &swag.Spec{
		Version:          "1.0",
		BasePath:         "/",
		Schemes:          []string{},
		Title:            title,
		Description:      description,
		InfoInstanceName: instance,
		SwaggerTemplate:  buildTemplate(resources),
		LeftDelim:        "{{",
		RightDelim:       "}}",
	}
}

// buildTemplate arma el swagger 2.0; los placeholders los completa swag en ReadDoc.
func buildTemplate(resources []resourceDoc) string {
	paths := map[string]any{}
	defs := map[string]any{}

	for _, rd := range resources {
		ref := map[string]any{"$ref": "#/definitions/" + rd.definition}
		idParam := map[string]any{"name": "id", "in": "path", "required": true, "type": "integer"}
		bodyParam := map[string]any{"name": "payload", "in": "body", "required": true, "schema": ref}

		paths[rd.path] = map[string]any{
			"get": op(rd.tag, "List all records", nil, map[string]any{
				"200": map[string]any{"description": "OK", "schema": map[string]any{"type": "array", "items": ref}},
				"500": textResponse("storage error"),
			}),
			"post": op(rd.tag, "Create a record with a fresh id", []any{bodyParam}, map[string]any{
				"200": textResponse("confirmation; Location header carries the new id"),
				"400": textResponse("missing or invalid fields"),
				"500": textResponse("storage error"),
			}),
		}

		item := map[string]any{
			"get": op(rd.tag, "Get a record by id", []any{idParam}, map[string]any{
				"200": map[string]any{"description": "OK", "schema": ref},
				"404": textResponse("not found"),
				"500": textResponse("storage error"),
			}),
			"put": op(rd.tag, "Overwrite the fields present in the body", []any{idParam, bodyParam}, map[string]any{
				"200": map[string]any{"description": "OK", "schema": ref},
				"400": textResponse("invalid fields"),
				"404": textResponse("not found"),
				"500": textResponse("storage error"),
			}),
			"delete": op(rd.tag, "Delete a record", []any{idParam}, map[string]any{
				"200": textResponse("confirmation"),
				"404": textResponse("not found"),
				"500": textResponse("storage error"),
			}),
		}
		if rd.patch {
			adopted := map[string]any{
				"name": "payload", "in": "body", "required": true,
				"schema": map[string]any{
					"type":       "object",
					"required":   []string{"adopted"},
					"properties": map[string]any{"adopted": map[string]any{"type": "boolean"}},
				},
			}
			item["patch"] = op(rd.tag, "Set adoption status", []any{idParam, adopted}, map[string]any{
				"200": map[string]any{"description": "OK", "schema": ref},
				"400": textResponse("adopted required"),
				"404": textResponse("not found"),
				"500": textResponse("storage error"),
			})
		}
		paths[rd.path+"/{id}"] = item

		defs[rd.definition] = definition(definitions[rd.definition])
	}

	doc := map[string]any{
		"schemes": "{{ marshal .Schemes }}",
		"swagger": "2.0",
		"info": map[string]any{
			"title":       "{{.Title}}",
			"description": "{{escape .Description}}",
			"version":     "{{.Version}}",
		},
		"host":        "{{.Host}}",
		"basePath":    "{{.BasePath}}",
		"paths":       paths,
		"definitions": defs,
	}

	b, err := json.MarshalIndent(doc, "", "    ")
	if err != nil {
		panic(err)
	}
	// "schemes" va sin comillas para que swag inserte el array.
	return strings.Replace(string(b), `"{{ marshal .Schemes }}"`, `{{ marshal .Schemes }}`, 1)
}

func op(tag, summary string, params []any, responses map[string]any) map[string]any {
	o := map[string]any{
		"tags":      []string{tag},
		"summary":   summary,
		"consumes":  []string{"application/json"},
		"produces":  []string{"application/json", "text/plain"},
		"responses": responses,
	}
	if len(params) > 0 {
		o["parameters"] = params
	}
	return o
}

func textResponse(desc string) map[string]any {
	return map[string]any{"description": desc, "schema": map[string]any{"type": "string"}}
}

func definition(props []property) map[string]any {
	properties := map[string]any{}
	required := []string{}
	for _, p := range props {
		schema := map[string]any{"type": p.typ}
		if p.format != "" {
			schema["format"] = p.format
		}
		properties[p.name] = schema
		if p.required {
			required = append(required, p.name)
		}
	}
	return map[string]any{"type": "object", "required": required, "properties": properties}
}
