package router

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/mitchellh/mapstructure"
	"github.com/squareblocks/backend/pkg/errorx"
)

// bindRequest fills the request object from the JSON body for POST, or from
// the query string for GET. Query values are decoded weakly typed through
// mapstructure using the json field tags.
func bindRequest(req *http.Request, method string, obj any) error {
	switch method {
	case http.MethodGet:
		values := map[string]string{}
		for key, value := range req.URL.Query() {
			if len(value) > 0 {
				values[key] = value[0]
			}
		}

		decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
			Result:           obj,
			TagName:          "json",
			WeaklyTypedInput: true,
		})
		if err != nil {
			return errorx.Unknown
		}

		if err := decoder.Decode(values); err != nil {
			return errorx.New(errorx.BadRequest, "Cannot bind the request")
		}

	case http.MethodPost:
		if err := json.NewDecoder(req.Body).Decode(obj); err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}

			return errorx.New(errorx.BadRequest, "Cannot bind the request")
		}
	}

	return nil
}
