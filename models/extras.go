package models

import (
	"encoding/json"
	"reflect"
	"strings"
)

// Extras holds client-supplied fields that have no typed home on a document.
// They are stored and returned verbatim.
type Extras map[string]interface{}

// splitExtras returns the keys of data that are not json fields of typed.
// encoding/json fills typed fields case-insensitively, so any casing of a
// typed key is dropped too, as are keys Mongo would reject ("_id", "$..."
// and dotted paths).
func splitExtras(data []byte, typed interface{}) (Extras, error) {
	var raw map[string]interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	keys := jsonKeys(typed)
	extra := Extras{}
	for k, v := range raw {
		if k == "_id" || strings.HasPrefix(k, "$") || strings.Contains(k, ".") {
			continue
		}
		if matchesKey(keys, k) {
			continue
		}
		extra[k] = v
	}
	if len(extra) == 0 {
		return nil, nil
	}
	return extra, nil
}

// mergeExtras marshals typed and folds extra into the same object.
// Typed fields win on key collisions, compared case-insensitively.
func mergeExtras(typed interface{}, extra Extras) ([]byte, error) {
	data, err := json.Marshal(typed)
	if err != nil || len(extra) == 0 {
		return data, err
	}
	var out map[string]interface{}
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	keys := jsonKeys(typed)
	for k, v := range extra {
		if k == "_id" || matchesKey(keys, k) {
			continue
		}
		if _, exists := out[k]; !exists {
			out[k] = v
		}
	}
	return json.Marshal(out)
}

func jsonKeys(v interface{}) []string {
	t := reflect.TypeOf(v)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	keys := make([]string, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		tag := t.Field(i).Tag.Get("json")
		name := strings.Split(tag, ",")[0]
		if name == "" || name == "-" {
			continue
		}
		keys = append(keys, name)
	}
	return keys
}

func matchesKey(keys []string, k string) bool {
	for _, key := range keys {
		if strings.EqualFold(key, k) {
			return true
		}
	}
	return false
}
