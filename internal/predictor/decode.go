package predictor

import (
	"bytes"
	"encoding/json"
	"errors"
	"strconv"
	"strings"

	"github.com/Totarae/phishcheck/internal/model"
)

var (
	errInvalidJSON = errors.New("body is not valid JSON")
	errNullBody    = errors.New("empty JSON body")
)

// decodeResponse читает тело так же, как страница читает data.result и
// data.error: не объект даёт пустой ответ, result учитывается только строкой,
// error - любым истинным значением в строковом виде.
func decodeResponse(raw []byte) (*model.PredictResponse, error) {
	raw = bytes.TrimSpace(raw)
	if !json.Valid(raw) {
		return nil, errInvalidJSON
	}
	if bytes.Equal(raw, []byte("null")) {
		return nil, errNullBody
	}
	if raw[0] != '{' {
		return &model.PredictResponse{}, nil
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, err
	}

	out := &model.PredictResponse{}
	if r := fields["result"]; len(r) > 0 && r[0] == '"' {
		_ = json.Unmarshal(r, &out.Result)
	}
	if e := fields["error"]; len(e) > 0 && truthy(e) {
		out.Error = jsString(e)
		if out.Error == "" {
			// Пустой массив истинен, но печатается пустой строкой.
			out.Error = string(e)
		}
	}
	return out, nil
}

func truthy(v json.RawMessage) bool {
	switch v[0] {
	case '"':
		var s string
		_ = json.Unmarshal(v, &s)
		return s != ""
	case 't', '{', '[':
		return true
	case 'f', 'n':
		return false
	default:
		f, err := strconv.ParseFloat(string(v), 64)
		return err == nil && f != 0
	}
}

func jsString(v json.RawMessage) string {
	switch v[0] {
	case '"':
		var s string
		_ = json.Unmarshal(v, &s)
		return s
	case 't':
		return "true"
	case 'f':
		return "false"
	case 'n':
		return "null"
	case '{':
		return "[object Object]"
	case '[':
		var items []json.RawMessage
		_ = json.Unmarshal(v, &items)
		parts := make([]string, len(items))
		for i, item := range items {
			if item[0] != 'n' {
				parts[i] = jsString(item)
			}
		}
		return strings.Join(parts, ",")
	default:
		f, err := strconv.ParseFloat(string(v), 64)
		if err != nil {
			return string(v)
		}
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
}
