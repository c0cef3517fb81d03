package rbtranslations

import (
	"fmt"
)

// flattenCatalog converts a possibly nested document into a flat catalog with
// dot-separated keys. Scalar leaves are rendered with fmt.Sprint so numeric
// and boolean values become usable message strings.
func flattenCatalog(data map[string]any) map[string]string {
	catalog := make(map[string]string, len(data))
	flattenInto(catalog, "", data)
	return catalog
}

func flattenInto(catalog map[string]string, prefix string, data map[string]any) {
	for k, v := range data {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}

		switch val := v.(type) {
		case map[string]any:
			flattenInto(catalog, key, val)
		case map[any]any:
			// Older YAML documents decode map keys as any.
			converted := make(map[string]any, len(val))
			for mk, mv := range val {
				if ks, ok := mk.(string); ok {
					converted[ks] = mv
				}
			}
			flattenInto(catalog, key, converted)
		case nil:
			// Null leaves carry no message.
		case string:
			catalog[key] = val
		default:
			catalog[key] = fmt.Sprint(val)
		}
	}
}
