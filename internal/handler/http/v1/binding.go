package v1

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/gin-gonic/gin"
	"github.com/shenikar/incident_reporting_system/pkg/casing"
)

var errEmptyBody = errors.New("request body is empty")

// bindCamelJSON читает JSON тело, приводит ключи к camelCase и декодирует в dst.
// Так user_id и userId попадают в одно поле.
func bindCamelJSON(c *gin.Context, dst any) error {
	if c.Request.Body == nil {
		return errEmptyBody
	}
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		return fmt.Errorf("read body: %w", err)
	}
	if len(body) == 0 {
		return errEmptyBody
	}

	var raw any
	if err := json.Unmarshal(body, &raw); err != nil {
		return fmt.Errorf("decode body: %w", err)
	}
	normalized, err := json.Marshal(casing.CamelCaseKeys(raw))
	if err != nil {
		return fmt.Errorf("encode body: %w", err)
	}
	if err := json.Unmarshal(normalized, dst); err != nil {
		return fmt.Errorf("decode body: %w", err)
	}
	return nil
}
