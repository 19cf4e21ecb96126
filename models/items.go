package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// LineItem adalah satu baris item menu di dalam order, dengan harga yang
// di-capture saat order dibuat.
type LineItem struct {
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
}

// UnmarshalJSON menerima payload item yang "kotor": price bisa berupa angka
// atau string, quantity bisa hilang. Price yang tidak numerik dianggap 0,
// quantity yang tidak numerik atau nol dianggap 1. Tidak pernah gagal hanya
// karena field yang malformed.
func (li *LineItem) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		// Item berupa string polos (data legacy): jadikan nama dengan qty 1.
		var s string
		if json.Unmarshal(data, &s) == nil {
			*li = LineItem{Name: s, Quantity: 1}
			return nil
		}
		return err
	}

	if v, ok := raw["name"]; ok {
		var name string
		if json.Unmarshal(v, &name) != nil {
			name = strings.Trim(string(v), `"`)
		}
		li.Name = name
	}

	li.Price = lenientNumber(raw["price"], 0)

	qty := lenientNumber(raw["quantity"], 1)
	if qty <= 0 {
		qty = 1
	}
	li.Quantity = int(qty)
	return nil
}

// lenientNumber membaca angka dari JSON number atau string; fallback ke def.
func lenientNumber(v json.RawMessage, def float64) float64 {
	if len(v) == 0 {
		return def
	}
	var f float64
	if json.Unmarshal(v, &f) == nil {
		return f
	}
	var s string
	if json.Unmarshal(v, &s) == nil {
		if parsed, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
			return parsed
		}
	}
	return def
}

// ItemList menormalkan bentuk items di boundary: sumber data lama kadang
// menyimpan items sebagai array dan kadang sebagai map ber-key. Setelah
// decode, downstream (kalkulator, renderer bill) selalu melihat list terurut.
type ItemList []LineItem

func (l *ItemList) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "" || trimmed == "null" {
		*l = nil
		return nil
	}

	if strings.HasPrefix(trimmed, "[") {
		var items []LineItem
		if err := json.Unmarshal(data, &items); err != nil {
			return err
		}
		*l = items
		return nil
	}

	// Bentuk map ber-key: urutkan berdasarkan key supaya deterministik.
	var keyed map[string]LineItem
	if err := json.Unmarshal(data, &keyed); err != nil {
		return err
	}
	keys := make([]string, 0, len(keyed))
	for k := range keyed {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	items := make([]LineItem, 0, len(keyed))
	for _, k := range keys {
		items = append(items, keyed[k])
	}
	*l = items
	return nil
}

// Value menyimpan items sebagai JSON text di kolom database.
func (l ItemList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	data, err := json.Marshal([]LineItem(l))
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

// Scan membaca kembali kolom JSON text menjadi ItemList.
func (l *ItemList) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*l = nil
		return nil
	case []byte:
		return l.UnmarshalJSON(v)
	case string:
		return l.UnmarshalJSON([]byte(v))
	default:
		return fmt.Errorf("unsupported items column type %T", value)
	}
}
