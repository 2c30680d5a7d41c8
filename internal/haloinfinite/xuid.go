package haloinfinite

import "strings"

// UnwrapXUID strips the xuid(...) wrapper the stats service puts around player ids.
// Ids that are not wrapped are returned unchanged.
func UnwrapXUID(id string) string {
	id = strings.TrimSpace(id)
	if strings.HasPrefix(id, "xuid(") && strings.HasSuffix(id, ")") {
		return id[len("xuid(") : len(id)-1]
	}
	return id
}

// WrapXUID is the inverse of UnwrapXUID.
func WrapXUID(xuid string) string {
	return "xuid(" + UnwrapXUID(xuid) + ")"
}
