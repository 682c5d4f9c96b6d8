package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/gin-gonic/gin"
)

// maxPayloadBytes bounds request bodies; the largest payload is a receipt with its line items
const maxPayloadBytes = 1 << 20

// bindPayload decodes a JSON body sent either flat ({...}) or inside an envelope key
// ({"receipt": {...}}). Malformed, empty or oversized bodies are bad requests.
func bindPayload(c *gin.Context, envelope string, dst any) error {
	if c.Request.Body == nil {
		return fmt.Errorf("%w: request body is required", errBadRequest)
	}
	body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxPayloadBytes+1))
	if err != nil {
		return fmt.Errorf("%w: %v", errBadRequest, err)
	}
	if len(body) > maxPayloadBytes {
		return fmt.Errorf("%w: request body exceeds %d bytes", errBadRequest, maxPayloadBytes)
	}
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return fmt.Errorf("%w: request body is required", errBadRequest)
	}

	var wrapped map[string]json.RawMessage
	if json.Unmarshal(body, &wrapped) == nil {
		if inner, ok := wrapped[envelope]; ok {
			body = inner
		}
	}

	if err := json.Unmarshal(body, dst); err != nil {
		return fmt.Errorf("%w: %v", errBadRequest, err)
	}
	return nil
}
