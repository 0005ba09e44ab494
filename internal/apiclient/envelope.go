package apiclient

import (
	"bytes"
	"encoding/json"
	"strings"

	"wallet_client/internal/custom_err"
	"wallet_client/internal/models"
)

const maxUnwrapDepth = 3

// unwrap strips the {success|status, message, data|content} envelopes the
// wallet service puts around some payloads. A body without envelope markers
// is returned as is, unless "data" or "content" is its only field.
func unwrap(body []byte) ([]byte, error) {
	payload := bytes.TrimSpace(body)
	for i := 0; i < maxUnwrapDepth; i++ {
		next, err := unwrapOnce(payload)
		if err != nil {
			return nil, err
		}
		if bytes.Equal(next, payload) {
			break
		}
		payload = next
	}
	return payload, nil
}

func unwrapOnce(payload []byte) ([]byte, error) {
	if len(payload) == 0 || payload[0] != '{' {
		return payload, nil
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(payload, &fields); err != nil {
		return payload, nil
	}

	marked := false
	if raw, ok := fields["success"]; ok {
		var success bool
		if json.Unmarshal(raw, &success) == nil {
			marked = true
			if !success {
				return nil, envelopeFailure(fields)
			}
		}
	}
	if raw, ok := fields["status"]; ok {
		var status string
		if json.Unmarshal(raw, &status) == nil {
			marked = true
			if failedStatus(status) {
				return nil, envelopeFailure(fields)
			}
		}
	}

	for _, key := range []string{"data", "content"} {
		raw, ok := fields[key]
		if !ok || isNull(raw) {
			continue
		}
		if marked || len(fields) == 1 {
			return bytes.TrimSpace(raw), nil
		}
	}
	return payload, nil
}

func failedStatus(status string) bool {
	switch strings.ToLower(status) {
	case "error", "fail", "failed", "failure":
		return true
	}
	return false
}

func isNull(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}

func envelopeFailure(fields map[string]json.RawMessage) error {
	msg := stringField(fields, "message")
	if msg == "" {
		msg = "request rejected by wallet service"
	}
	return &custom_err.APIError{Kind: custom_err.KindValidation, Message: msg}
}

func stringField(fields map[string]json.RawMessage, key string) string {
	raw, ok := fields[key]
	if !ok {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return ""
	}
	return strings.TrimSpace(s)
}

// errorMessage pulls a human readable message out of an error body.
func errorMessage(body []byte) string {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return ""
	}
	if trimmed[0] != '{' {
		if len(trimmed) > 200 || bytes.HasPrefix(trimmed, []byte("<")) {
			return ""
		}
		return string(trimmed)
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &fields); err != nil {
		return ""
	}
	for _, key := range []string{"message", "error", "detail"} {
		if msg := stringField(fields, key); msg != "" {
			return msg
		}
	}
	return ""
}

// decodePage accepts a bare array, a page object, or either inside an envelope.
func (c *Client) decodePage(op string, body []byte) (models.TransactionPage, error) {
	payload, err := unwrap(body)
	if err != nil {
		return models.TransactionPage{}, withOp(op, err)
	}
	var page models.TransactionPage
	if len(payload) > 0 && payload[0] == '[' {
		if err := json.Unmarshal(payload, &page.Content); err != nil {
			return models.TransactionPage{}, &custom_err.APIError{Op: op, Kind: custom_err.KindServer, Message: "malformed response", Err: err}
		}
		page.Size = len(page.Content)
		page.TotalElements = int64(len(page.Content))
		page.TotalPages = 1
		page.First, page.Last = true, true
		page.Empty = len(page.Content) == 0
		return page, nil
	}
	if err := c.decode(op, payload, &page); err != nil {
		return models.TransactionPage{}, err
	}
	if page.Content == nil {
		page.Content = []models.Transaction{}
	}
	return page, nil
}

// decodeWallets accepts a bare array of wallets or a page of them.
func (c *Client) decodeWallets(op string, body []byte) ([]models.Wallet, error) {
	payload, err := unwrap(body)
	if err != nil {
		return nil, withOp(op, err)
	}
	if len(payload) > 0 && payload[0] == '{' {
		var page struct {
			Content []models.Wallet `json:"content"`
		}
		if err := json.Unmarshal(payload, &page); err == nil && page.Content != nil {
			return page.Content, nil
		}
		var single models.Wallet
		if err := c.decode(op, payload, &single); err != nil {
			return nil, err
		}
		return []models.Wallet{single}, nil
	}
	var wallets []models.Wallet
	if err := c.decode(op, payload, &wallets); err != nil {
		return nil, err
	}
	return wallets, nil
}
