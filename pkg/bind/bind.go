// Package bind decodes a JSON request body into a struct and runs its
// validation rules in one step.
package bind

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/ecotrackhq/ecotrack/config"
	"github.com/ecotrackhq/ecotrack/pkg/validate"
)

const defaultMaxBody = 4 << 20

func maxBodyBytes() int64 {
	n, err := strconv.ParseInt(config.Get("MAX_BODY_BYTES", "4194304"), 10, 64)
	if err != nil || n <= 0 {
		return defaultMaxBody
	}
	return n
}

// JSON reads r.Body into dest, capped at MAX_BODY_BYTES, then validates
// it. Validation failures come back as (errs, nil); a malformed or
// oversized body as (nil, err).
func JSON(r *http.Request, dest interface{}) (map[string]string, error) {
	r.Body = http.MaxBytesReader(nil, r.Body, maxBodyBytes())

	if err := json.NewDecoder(r.Body).Decode(dest); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return nil, fmt.Errorf("request body too large (max %d bytes)", maxErr.Limit)
		}
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}

	if errs := validate.Struct(dest); validate.HasErrors(errs) {
		return errs, nil
	}
	return nil, nil
}
