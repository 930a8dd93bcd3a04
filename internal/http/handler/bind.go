package handler

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/valyala/fasthttp"

	"issuetracker/internal/model"
)

// bodyFields decodes the request body into raw fields. An empty body yields
// no fields. JSON is recognised by content type or a leading '{'; any other
// body is read as url-encoded form data.
func bodyFields(c *fiber.Ctx) (model.Fields, error) {
	body := bytes.TrimSpace(c.Body())
	if len(body) == 0 {
		return model.Fields{}, nil
	}

	if c.Is("json") || body[0] == '{' {
		dec := json.NewDecoder(bytes.NewReader(body))
		dec.UseNumber()
		var obj map[string]any
		if err := dec.Decode(&obj); err != nil {
			return nil, fmt.Errorf("decode json body: %w", err)
		}
		return model.FieldsFromJSON(obj), nil
	}

	var args fasthttp.Args
	args.ParseBytes(body)
	fields := make(model.Fields, args.Len())
	args.VisitAll(func(k, v []byte) {
		fields[string(k)] = string(v)
	})
	return fields, nil
}

// queryFilter turns the query string into equality constraints.
// A repeated key keeps its last value.
func queryFilter(c *fiber.Ctx) model.Filter {
	filter := model.Filter{}
	c.Context().QueryArgs().VisitAll(func(k, v []byte) {
		filter[string(k)] = string(v)
	})
	return filter
}
